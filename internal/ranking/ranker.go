package ranking

import (
	"fmt"
	"sort"

	"github.com/hyperjump/yoyaku/internal/weighting"
)

// Entry is one ranked sentence.
type Entry struct {
	Score float64 `json:"score"`
	Index int     `json:"index"`
}

// Ranking is an immutable list of entries sorted by descending score, ties broken by
// ascending sentence index.
type Ranking struct {
	entries []Entry
}

// Len returns the number of ranked sentences.
func (r Ranking) Len() int {
	return len(r.entries)
}

// At returns the entry at rank i.
func (r Ranking) At(i int) Entry {
	return r.entries[i]
}

// Entries returns a copy of all entries in rank order.
func (r Ranking) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Indices returns the sentence indices in rank order.
func (r Ranking) Indices() []int {
	out := make([]int, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Index
	}
	return out
}

// Rank scores every matrix row against the centroid. The result has one entry per row
// and is a permutation of all row indices.
func Rank(m weighting.Matrix, centroid []float64) (Ranking, error) {
	rows, cols := m.Dims()
	if len(centroid) != cols {
		return Ranking{}, fmt.Errorf("rank: centroid has %d terms, matrix has %d", len(centroid), cols)
	}
	entries := make([]Entry, rows)
	for i := 0; i < rows; i++ {
		entries[i] = Entry{Score: Similarity(m.Row(i), centroid), Index: i}
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Score != entries[b].Score {
			return entries[a].Score > entries[b].Score
		}
		return entries[a].Index < entries[b].Index
	})
	return Ranking{entries: entries}, nil
}
