package config

import (
	"github.com/hyperjump/yoyaku/internal/cache"
	"github.com/hyperjump/yoyaku/internal/corpus"
	"github.com/hyperjump/yoyaku/internal/extract"
	"github.com/hyperjump/yoyaku/internal/selection"
)

const (
	defaultRedundancyThreshold = selection.DefaultRedundancyThreshold
	defaultDebounceMs          = 400
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.CachePath == "" {
		cfg.Storage.CachePath = "/usr/local/var/yoyaku/data/cache/weights.db"
	}
	if cfg.Storage.MemoryCacheSize == 0 {
		cfg.Storage.MemoryCacheSize = cache.DefaultSize
	}
	if cfg.Corpus.Directory == "" {
		cfg.Corpus.Directory = "."
	}
	cfg.Corpus.Extensions = extract.NormalizeExtensions(cfg.Corpus.Extensions)
	if cfg.Corpus.MinTermLength == 0 {
		cfg.Corpus.MinTermLength = corpus.DefaultMinTermLength
	}
	if cfg.Summary.LengthBudget == 0 {
		cfg.Summary.LengthBudget = selection.DefaultLengthBudget
	}
	// Explicit 0.0 is a valid threshold, so only nil gets the default.
	if cfg.Summary.RedundancyThreshold == nil {
		th := defaultRedundancyThreshold
		cfg.Summary.RedundancyThreshold = &th
	}
	if cfg.Summary.CentroidIDF == "" {
		cfg.Summary.CentroidIDF = "constant"
	}
	if cfg.Summary.Matrix == "" {
		cfg.Summary.Matrix = "dense"
	}
	if cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = defaultDebounceMs
	}
}
