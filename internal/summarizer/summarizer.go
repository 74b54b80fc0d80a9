// Package summarizer runs the extractive pipeline: weigh the corpus, rank sentences
// against the centroid and select a non-redundant summary within the length budget.
package summarizer

import (
	"github.com/hyperjump/yoyaku/internal/ranking"
	"github.com/hyperjump/yoyaku/internal/selection"
	"github.com/hyperjump/yoyaku/internal/weighting"
)

// Corpus is the statistics source plus sentence texts.
type Corpus interface {
	weighting.Corpus
	SentenceText(i int) string
}

// Options controls one summarization run.
type Options struct {
	LengthBudget        int
	RedundancyThreshold float64
	CentroidIDF         weighting.IDFPolicy
	Storage             weighting.Storage
	Workers             int
}

// DefaultOptions returns the default budget, threshold and constant centroid IDF with
// dense storage.
func DefaultOptions() Options {
	return Options{
		LengthBudget:        selection.DefaultLengthBudget,
		RedundancyThreshold: selection.DefaultRedundancyThreshold,
		CentroidIDF:         weighting.IDFConstant,
		Storage:             weighting.StorageDense,
	}
}

func (o Options) weighting() weighting.Options {
	return weighting.Options{Storage: o.Storage, CentroidIDF: o.CentroidIDF, Workers: o.Workers}
}

func (o Options) selection() selection.Config {
	return selection.Config{LengthBudget: o.LengthBudget, RedundancyThreshold: o.RedundancyThreshold}
}

// Summarize returns the selected sentence texts in selection order. An empty corpus
// yields an empty summary. Errors from weighting (ErrEmptyDocument, ErrUnknownTerm)
// are returned unchanged in the chain.
func Summarize(c Corpus, opts Options) ([]string, error) {
	if isEmpty(c) {
		return []string{}, nil
	}
	w, err := weighting.Build(c, opts.weighting())
	if err != nil {
		return nil, err
	}
	res, _, err := selectFrom(c, w, opts)
	if err != nil {
		return nil, err
	}
	return res.Texts(), nil
}

func isEmpty(c Corpus) bool {
	return c.DocumentCount() == 0 || c.TotalSentenceCount() == 0
}

func selectFrom(c Corpus, w *weighting.Weights, opts Options) (selection.Result, ranking.Ranking, error) {
	r, err := ranking.Rank(w.Matrix, w.Centroid)
	if err != nil {
		return selection.Result{}, ranking.Ranking{}, err
	}
	return selection.Select(r, w.Matrix, c.SentenceText, opts.selection()), r, nil
}
