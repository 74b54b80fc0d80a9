// Package corpus indexes analyzed documents and answers the term statistics the
// summarizer consumes.
package corpus

import (
	"sort"
	"unicode/utf8"

	"github.com/hyperjump/yoyaku/internal/fingerprint"
)

// DefaultMinTermLength drops single-character terms.
const DefaultMinTermLength = 2

// Vocabulary is an ordered set of unique terms with a fixed index per term.
type Vocabulary struct {
	terms   []string
	index   map[string]int
	version string
}

// NewVocabulary deduplicates terms, drops those shorter than minLength runes and sorts
// the rest. Indices are assigned in sorted order and never change.
func NewVocabulary(terms []string, minLength int) *Vocabulary {
	seen := make(map[string]struct{}, len(terms))
	unique := make([]string, 0, len(terms))
	for _, t := range terms {
		if !KeepTerm(t, minLength) {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	sort.Strings(unique)
	index := make(map[string]int, len(unique))
	for i, t := range unique {
		index[t] = i
	}
	return &Vocabulary{
		terms:   unique,
		index:   index,
		version: fingerprint.Vocabulary(unique),
	}
}

// KeepTerm reports whether a term passes the minimum-length filter.
func KeepTerm(term string, minLength int) bool {
	return term != "" && utf8.RuneCountInString(term) >= minLength
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the ordered terms.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Term returns the term at index i.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Index returns the column of term, if present.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Contains reports whether term is in the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.index[term]
	return ok
}

// Version identifies the exact term list and order.
func (v *Vocabulary) Version() string {
	return v.version
}
