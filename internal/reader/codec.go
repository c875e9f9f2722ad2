package reader

import (
	"encoding/binary"
	"math"

	"github.com/rotisserie/eris"
)

// encodeValues packs a float64 slice as little-endian bytes for BLOB/BYTEA
// columns.
func encodeValues(vals []float64) []byte {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// decodeValues unpacks a little-endian float64 blob.
func decodeValues(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, eris.Errorf("reader: value blob length %d is not a multiple of 8", len(buf))
	}
	vals := make([]float64, len(buf)/8)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return vals, nil
}
