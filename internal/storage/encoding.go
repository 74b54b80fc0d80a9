package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

const float64Size = 8

// encodeVector writes v as little-endian float64s. The result is never nil so it can
// be stored in NOT NULL columns.
func encodeVector(v []float64) []byte {
	out := make([]byte, len(v)*float64Size)
	for i, x := range v {
		binary.LittleEndian.PutUint64(out[i*float64Size:], math.Float64bits(x))
	}
	return out
}

func decodeVector(b []byte) ([]float64, error) {
	if len(b)%float64Size != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of %d", len(b), float64Size)
	}
	out := make([]float64, len(b)/float64Size)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*float64Size:]))
	}
	return out, nil
}

// encodeMatrix writes rows back to back.
func encodeMatrix(rows [][]float64, cols int) ([]byte, error) {
	out := make([]byte, 0, len(rows)*cols*float64Size)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		out = append(out, encodeVector(row)...)
	}
	return out, nil
}

func decodeMatrix(b []byte, rows, cols int) ([][]float64, error) {
	flat, err := decodeVector(b)
	if err != nil {
		return nil, err
	}
	if len(flat) != rows*cols {
		return nil, fmt.Errorf("matrix blob holds %d values, want %dx%d", len(flat), rows, cols)
	}
	out := make([][]float64, rows)
	for i := range out {
		out[i] = flat[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out, nil
}
