package weighting

import (
	"fmt"
	"runtime"

	"github.com/hyperjump/yoyaku/internal/corpus"
	"github.com/hyperjump/yoyaku/internal/models"
	"golang.org/x/sync/errgroup"
)

// Corpus is the term statistics source the weights are computed from.
type Corpus interface {
	Vocabulary() *corpus.Vocabulary
	DocumentCount() int
	SentenceCount(doc int) int
	TotalSentenceCount() int
	TermCountInDoc(term string, doc int) (int, error)
	TotalTermCountInDoc(doc int) int
	DocCountContainingTerm(term string) (int, error)
	TotalTermCountAcrossCorpus() int
	TotalTermCountForTerm(term string) (int, error)
}

// Options controls matrix and centroid construction.
type Options struct {
	Storage     Storage
	CentroidIDF IDFPolicy
	// Workers bounds concurrent document partitions; <= 0 uses GOMAXPROCS.
	Workers int
}

// Weights is the matrix and centroid computed for one corpus.
type Weights struct {
	Matrix   Matrix
	Centroid []float64
}

// Build computes the matrix and centroid over the corpus vocabulary.
func Build(c Corpus, opts Options) (*Weights, error) {
	vocab := c.Vocabulary()
	m, err := BuildMatrix(c, vocab, opts)
	if err != nil {
		return nil, err
	}
	centroid, err := BuildCentroid(c, vocab, opts.CentroidIDF)
	if err != nil {
		return nil, err
	}
	return &Weights{Matrix: m, Centroid: centroid}, nil
}

// BuildMatrix returns the sentence-word TF-IDF matrix. Every sentence of a document
// gets that document's weights. Documents are processed by independent workers that
// write disjoint rows.
func BuildMatrix(c Corpus, vocab *corpus.Vocabulary, opts Options) (Matrix, error) {
	terms := vocab.Terms()
	numDocs := c.DocumentCount()

	docFreq := make([]int, len(terms))
	for j, term := range terms {
		df, err := c.DocCountContainingTerm(term)
		if err != nil {
			return nil, fmt.Errorf("build matrix: %w", err)
		}
		docFreq[j] = df
	}

	offsets := make([]int, numDocs+1)
	for d := 0; d < numDocs; d++ {
		offsets[d+1] = offsets[d] + c.SentenceCount(d)
	}

	m, err := newRowSetter(opts.Storage, offsets[numDocs], len(terms))
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for d := 0; d < numDocs; d++ {
		if offsets[d] == offsets[d+1] {
			continue
		}
		d := d
		g.Go(func() error {
			row, err := documentRow(c, terms, docFreq, numDocs, d)
			if err != nil {
				return fmt.Errorf("build matrix: document %d: %w", d, err)
			}
			for s := offsets[d]; s < offsets[d+1]; s++ {
				m.SetRow(s, row)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// documentRow computes TF-IDF for every term present in document d.
func documentRow(c Corpus, terms []string, docFreq []int, numDocs, d int) ([]float64, error) {
	total := c.TotalTermCountInDoc(d)
	if total == 0 {
		return nil, models.ErrEmptyDocument
	}
	row := make([]float64, len(terms))
	for j, term := range terms {
		count, err := c.TermCountInDoc(term, d)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		tf, err := ComputeTF(count, total)
		if err != nil {
			return nil, err
		}
		row[j] = tf * ComputeIDF(numDocs, docFreq[j])
	}
	return row, nil
}

// BuildCentroid returns the weights of the whole corpus read as one sentence: the
// term's share of all corpus occurrences times the policy's IDF.
func BuildCentroid(c Corpus, vocab *corpus.Vocabulary, policy IDFPolicy) ([]float64, error) {
	total := c.TotalTermCountAcrossCorpus()
	if total == 0 {
		return nil, fmt.Errorf("build centroid: %w", models.ErrEmptyDocument)
	}
	numDocs := c.DocumentCount()
	centroid := make([]float64, vocab.Len())
	for j, term := range vocab.Terms() {
		count, err := c.TotalTermCountForTerm(term)
		if err != nil {
			return nil, fmt.Errorf("build centroid: %w", err)
		}
		if count == 0 {
			continue
		}
		tf, err := ComputeTF(count, total)
		if err != nil {
			return nil, fmt.Errorf("build centroid: %w", err)
		}
		switch policy {
		case IDFCorpus:
			df, err := c.DocCountContainingTerm(term)
			if err != nil {
				return nil, fmt.Errorf("build centroid: %w", err)
			}
			centroid[j] = tf * ComputeIDF(numDocs, df)
		case IDFConstant, "":
			centroid[j] = tf * constantIDF
		default:
			return nil, fmt.Errorf("build centroid: unknown idf policy %q", policy)
		}
	}
	return centroid, nil
}

// FromRows rebuilds a matrix from materialized rows, e.g. after loading from a cache.
func FromRows(storage Storage, rows [][]float64, cols int) (Matrix, error) {
	m, err := newRowSetter(storage, len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		m.SetRow(i, row)
	}
	return m, nil
}
