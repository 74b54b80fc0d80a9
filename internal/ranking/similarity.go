// Package ranking scores sentences by cosine similarity to the corpus centroid and
// orders them deterministically.
package ranking

import (
	"fmt"

	"github.com/hyperjump/yoyaku/internal/models"
	"gonum.org/v1/gonum/floats"
)

// unitEpsilon is how close to ±1 a cosine must be to count as exactly parallel.
const unitEpsilon = 1e-9

// Cosine returns dot(u, v) / (|u| |v|) in [-1, 1]. Results within unitEpsilon of ±1
// are snapped, so parallel rows always compare as exactly 1.
// A zero-norm operand yields models.ErrZeroVector.
func Cosine(u, v []float64) (float64, error) {
	if len(u) != len(v) {
		return 0, fmt.Errorf("cosine: length mismatch %d vs %d", len(u), len(v))
	}
	nu, nv := floats.Norm(u, 2), floats.Norm(v, 2)
	if nu == 0 || nv == 0 {
		return 0, models.ErrZeroVector
	}
	c := floats.Dot(u, v) / (nu * nv)
	switch {
	case c >= 1-unitEpsilon:
		return 1, nil
	case c <= -1+unitEpsilon:
		return -1, nil
	}
	return c, nil
}

// Similarity is Cosine with the zero-vector policy applied: a zero-weight sentence is
// maximally dissimilar to everything and scores 0. Mismatched lengths also score 0.
func Similarity(u, v []float64) float64 {
	c, err := Cosine(u, v)
	if err != nil {
		return 0
	}
	return c
}
