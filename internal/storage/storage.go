// Package storage persists computed sentence-word matrices and centroids so unchanged
// corpora are not reweighted.
package storage

import (
	"context"
	"time"
)

// WeightCache stores weights keyed by corpus identity, vocabulary version and
// centroid policy.
type WeightCache interface {
	// Get returns the entry for key. found is false on a miss.
	Get(ctx context.Context, key string) (entry *Entry, found bool, err error)
	// Put stores entry and drops every other entry recorded for the same corpus name.
	Put(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, key string) error
	// DeleteCorpus drops all entries for a corpus name.
	DeleteCorpus(ctx context.Context, corpus string) error
	Count(ctx context.Context) (int64, error)
	Close() error
}

// Entry is one cached matrix and centroid.
type Entry struct {
	Key               string
	Corpus            string // human-readable corpus name, e.g. the source directory
	CorpusID          string
	VocabularyVersion string
	Policy            string
	Rows              int
	Cols              int
	Matrix            [][]float64
	Centroid          []float64
	CreatedAt         time.Time
}
