// Package cache holds recently computed corpus weights in memory.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hyperjump/yoyaku/internal/weighting"
)

// DefaultSize is the number of corpora kept when no size is configured.
const DefaultSize = 16

// WeightCache is an LRU of computed weights keyed by cache key. It is safe for
// concurrent use.
type WeightCache struct {
	lru *lru.Cache[string, *weighting.Weights]
}

// NewWeightCache creates a cache holding at most size entries. size <= 0 uses DefaultSize.
func NewWeightCache(size int) (*WeightCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, *weighting.Weights](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create weight cache: %w", err)
	}
	return &WeightCache{lru: c}, nil
}

// Get returns the weights stored under key if present.
func (c *WeightCache) Get(key string) (*weighting.Weights, bool) {
	return c.lru.Get(key)
}

// Set stores weights under key, evicting the least recently used entry if full.
func (c *WeightCache) Set(key string, w *weighting.Weights) {
	c.lru.Add(key, w)
}

// Remove drops key.
func (c *WeightCache) Remove(key string) {
	c.lru.Remove(key)
}

// Len returns the number of cached entries.
func (c *WeightCache) Len() int {
	return c.lru.Len()
}

// Purge drops all entries.
func (c *WeightCache) Purge() {
	c.lru.Purge()
}
