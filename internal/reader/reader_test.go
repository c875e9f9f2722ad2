package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridReader_GetCurves(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ds := testDataset()
	require.NoError(t, store.PutDataset(ctx, ds))

	r := NewGridReader(store)
	values, rps, err := r.GetCurves(ctx, ds.Path, []float64{0.5, 1.5}, []float64{1.5, 0.5}, InterpolationFloor)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 10}, rps)
	require.Len(t, values, 2)
	assert.Equal(t, []float64{1, 10}, values[0])
	assert.Equal(t, []float64{4, 40}, values[1])
}

func TestGridReader_GetCurves_ReturnPeriodsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ds := testDataset()
	require.NoError(t, store.PutDataset(ctx, ds))

	r := NewGridReader(store)
	_, rps, err := r.GetCurves(ctx, ds.Path, []float64{0.5}, []float64{0.5}, InterpolationFloor)
	require.NoError(t, err)

	rps[0] = -1
	assert.Equal(t, []float64{2, 10}, ds.ReturnPeriods)
}

func TestGridReader_GetCurves_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.PutDataset(ctx, testDataset()))
	r := NewGridReader(store)

	t.Run("mismatched coordinate lengths", func(t *testing.T) {
		_, _, err := r.GetCurves(ctx, "p", []float64{1, 2}, []float64{1}, InterpolationFloor)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitudes")
	})

	t.Run("bad interpolation", func(t *testing.T) {
		_, _, err := r.GetCurves(ctx, "p", []float64{1}, []float64{1}, "cubic")
		assert.Error(t, err)
	})

	t.Run("missing dataset", func(t *testing.T) {
		_, _, err := r.GetCurves(ctx, "no/such/array", []float64{1}, []float64{1}, InterpolationFloor)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
