package reader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	vals := []float64{0, 1.5, -273.15, math.Inf(1), 1e-300}
	got, err := decodeValues(encodeValues(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestCodec_NaNSurvives(t *testing.T) {
	got, err := decodeValues(encodeValues([]float64{math.NaN()}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, math.IsNaN(got[0]))
}

func TestCodec_Empty(t *testing.T) {
	got, err := decodeValues(encodeValues(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeValues_BadLength(t *testing.T) {
	_, err := decodeValues(make([]byte, 11))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple of 8")
}
