// Package vectorx converts embedding vectors between their JSON form
// ([]float64) and the opaque blob stored in the database.
//
// Blob layout: an int32 element count followed by the elements, each an
// IEEE-754 float64, everything little-endian. The count prefix lets a reader
// reject truncated blobs without guessing at the length.
package vectorx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBlob is returned when a stored blob cannot be decoded back into
// a vector (truncated data, negative length, impossible size).
var ErrInvalidBlob = errors.New("invalid vector blob")

// Encode serializes a vector into its storage blob. A nil vector is invalid;
// an empty vector encodes to just the zero length prefix.
func Encode(vector []float64) ([]byte, error) {
	if vector == nil {
		return nil, ErrInvalidBlob
	}

	if len(vector) > math.MaxInt32 {
		return nil, fmt.Errorf("vector too large: %d elements", len(vector))
	}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, int32(len(vector))); err != nil {
		return nil, fmt.Errorf("failed to encode vector length: %w", err)
	}
	for _, val := range vector {
		if err := binary.Write(buf, binary.LittleEndian, val); err != nil {
			return nil, fmt.Errorf("failed to encode vector value: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// Decode deserializes a storage blob back into a vector.
func Decode(data []byte) ([]float64, error) {
	if len(data) < 4 {
		return nil, ErrInvalidBlob
	}

	buf := bytes.NewReader(data)

	var length int32
	if err := binary.Read(buf, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("failed to decode vector length: %w", err)
	}
	if length < 0 {
		return nil, ErrInvalidBlob
	}
	if length == 0 {
		return []float64{}, nil
	}

	// 8 bytes per float64
	if buf.Len() < int(length)*8 {
		return nil, ErrInvalidBlob
	}

	vector := make([]float64, length)
	for i := int32(0); i < length; i++ {
		if err := binary.Read(buf, binary.LittleEndian, &vector[i]); err != nil {
			return nil, fmt.Errorf("failed to decode vector value at index %d: %w", i, err)
		}
	}

	return vector, nil
}
