// Package weighting computes TF-IDF weights: the sentence-word matrix and the corpus
// centroid vector.
package weighting

import (
	"fmt"
	"math"

	"github.com/hyperjump/yoyaku/internal/models"
)

// IDFPolicy selects how the centroid weights its terms.
type IDFPolicy string

const (
	// IDFConstant weights every present term with log(1/2), treating the whole corpus as
	// one document compared against a single absent one.
	IDFConstant IDFPolicy = "constant"
	// IDFCorpus uses the same corpus-derived IDF as the matrix.
	IDFCorpus IDFPolicy = "corpus"
)

// ParseIDFPolicy maps a config value to a policy. Empty selects IDFConstant.
func ParseIDFPolicy(s string) (IDFPolicy, error) {
	switch IDFPolicy(s) {
	case "", IDFConstant:
		return IDFConstant, nil
	case IDFCorpus:
		return IDFCorpus, nil
	default:
		return "", fmt.Errorf("unknown centroid idf policy %q", s)
	}
}

// constantIDF is ComputeIDF(1, 1) = log(1/2).
var constantIDF = ComputeIDF(1, 1)

// ComputeTF returns termCount / totalTermsInDoc.
func ComputeTF(termCount, totalTermsInDoc int) (float64, error) {
	if totalTermsInDoc <= 0 {
		return 0, models.ErrEmptyDocument
	}
	return float64(termCount) / float64(totalTermsInDoc), nil
}

// ComputeIDF returns log(totalDocs / (docsContainingTerm + 1)). The +1 keeps the
// denominator positive; an empty corpus yields 0 rather than log(0).
func ComputeIDF(totalDocs, docsContainingTerm int) float64 {
	if totalDocs <= 0 || docsContainingTerm < 0 {
		return 0
	}
	return math.Log(float64(totalDocs) / float64(docsContainingTerm+1))
}
