package vectorx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		vector []float64
	}{
		{name: "empty", vector: []float64{}},
		{name: "single", vector: []float64{0.5}},
		{name: "typical", vector: []float64{0.1, -0.2, 3.75, 0}},
		{name: "extremes", vector: []float64{math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := Encode(tt.vector)
			require.NoError(t, err)

			got, err := Decode(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.vector, got)
		})
	}
}

func TestEncode_NilVector(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrInvalidBlob)
}

func TestEncode_BlobLayout(t *testing.T) {
	blob, err := Encode([]float64{1.0})
	require.NoError(t, err)
	require.Len(t, blob, 4+8)

	assert.Equal(t, int32(1), int32(binary.LittleEndian.Uint32(blob[:4])))
	assert.Equal(t, 1.0, math.Float64frombits(binary.LittleEndian.Uint64(blob[4:])))
}

func TestDecode_InvalidBlobs(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "too short for prefix", data: []byte{1, 0}},
		{name: "negative length", data: []byte{0xff, 0xff, 0xff, 0xff}},
		{name: "truncated payload", data: []byte{2, 0, 0, 0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.ErrorIs(t, err, ErrInvalidBlob)
		})
	}
}
