package corpus

import (
	"fmt"

	"github.com/hyperjump/yoyaku/internal/fingerprint"
	"github.com/hyperjump/yoyaku/internal/models"
)

// Index holds precomputed term statistics over an ordered list of documents.
// It is read-only after New and safe for concurrent readers.
type Index struct {
	docs          []models.Document
	vocab         *Vocabulary
	sentenceTexts []string
	sentenceDocs  []int
	docCounts     []map[string]int
	docTotals     []int
	docFreq       map[string]int
	corpusCounts  map[string]int
	corpusTotal   int
	id            string
}

// New indexes docs. Terms shorter than minTermLength are ignored everywhere, including
// document totals; minTermLength <= 0 uses DefaultMinTermLength.
func New(docs []models.Document, minTermLength int) *Index {
	if minTermLength <= 0 {
		minTermLength = DefaultMinTermLength
	}
	idx := &Index{
		docs:         docs,
		docCounts:    make([]map[string]int, len(docs)),
		docTotals:    make([]int, len(docs)),
		docFreq:      make(map[string]int),
		corpusCounts: make(map[string]int),
	}
	var all []string
	for d, doc := range docs {
		counts := make(map[string]int)
		for _, s := range doc.Sentences {
			idx.sentenceTexts = append(idx.sentenceTexts, s.Text)
			idx.sentenceDocs = append(idx.sentenceDocs, d)
			for _, t := range s.Terms {
				if !KeepTerm(t, minTermLength) {
					continue
				}
				counts[t]++
				idx.docTotals[d]++
				idx.corpusCounts[t]++
				idx.corpusTotal++
				all = append(all, t)
			}
		}
		for t := range counts {
			idx.docFreq[t]++
		}
		idx.docCounts[d] = counts
	}
	idx.vocab = NewVocabulary(all, minTermLength)
	idx.id = fingerprint.Corpus(docs)
	return idx
}

// ID is the corpus identity used for cache keys.
func (c *Index) ID() string {
	return c.id
}

// Documents returns the indexed documents.
func (c *Index) Documents() []models.Document {
	return c.docs
}

// Vocabulary returns the corpus vocabulary.
func (c *Index) Vocabulary() *Vocabulary {
	return c.vocab
}

// DocumentCount returns the number of documents.
func (c *Index) DocumentCount() int {
	return len(c.docs)
}

// SentenceCount returns the number of sentences in document doc.
func (c *Index) SentenceCount(doc int) int {
	return len(c.docs[doc].Sentences)
}

// TotalSentenceCount returns the number of sentences across all documents.
func (c *Index) TotalSentenceCount() int {
	return len(c.sentenceTexts)
}

// TermCountInDoc returns how often term occurs in document doc.
func (c *Index) TermCountInDoc(term string, doc int) (int, error) {
	if !c.vocab.Contains(term) {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownTerm, term)
	}
	return c.docCounts[doc][term], nil
}

// TotalTermCountInDoc returns the number of term occurrences in document doc.
func (c *Index) TotalTermCountInDoc(doc int) int {
	return c.docTotals[doc]
}

// DocCountContainingTerm returns the number of documents containing term.
func (c *Index) DocCountContainingTerm(term string) (int, error) {
	if !c.vocab.Contains(term) {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownTerm, term)
	}
	return c.docFreq[term], nil
}

// TotalTermCountAcrossCorpus returns the number of term occurrences in all documents.
func (c *Index) TotalTermCountAcrossCorpus() int {
	return c.corpusTotal
}

// TotalTermCountForTerm returns how often term occurs in all documents.
func (c *Index) TotalTermCountForTerm(term string) (int, error) {
	if !c.vocab.Contains(term) {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownTerm, term)
	}
	return c.corpusCounts[term], nil
}

// SentenceText returns the surface text of global sentence i.
func (c *Index) SentenceText(i int) string {
	return c.sentenceTexts[i]
}

// SentenceDocument returns the document index containing global sentence i.
func (c *Index) SentenceDocument(i int) int {
	return c.sentenceDocs[i]
}
