// Package config provides configuration loading and structs for the yoyaku summarizer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/yoyaku/internal/corpus"
	"github.com/hyperjump/yoyaku/internal/summarizer"
	"github.com/hyperjump/yoyaku/internal/weighting"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Summary SummaryConfig `yaml:"summary"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the weight cache settings.
type StorageConfig struct {
	CachePath       string `yaml:"cache_path"`
	MemoryCacheSize int    `yaml:"memory_cache_size"`
}

// CorpusConfig selects the documents to summarize. When Documents is empty every file
// in Directory with one of Extensions is loaded in path order.
type CorpusConfig struct {
	Directory     string   `yaml:"directory"`
	Documents     []string `yaml:"documents"`
	Extensions    []string `yaml:"extensions"`
	Recursive     bool     `yaml:"recursive"`
	MinTermLength int      `yaml:"min_term_length"`
}

// Source returns the corpus location for the loader.
func (c *CorpusConfig) Source() corpus.Source {
	return corpus.Source{
		Directory:  c.Directory,
		Documents:  c.Documents,
		Extensions: c.Extensions,
		Recursive:  c.Recursive,
	}
}

// SummaryConfig holds the selection and weighting parameters.
type SummaryConfig struct {
	LengthBudget        int      `yaml:"length_budget"`
	RedundancyThreshold *float64 `yaml:"redundancy_threshold"`
	CentroidIDF         string   `yaml:"centroid_idf"`
	Matrix              string   `yaml:"matrix"`
	Workers             int      `yaml:"workers"`
}

// RedundancyThresholdOrDefault returns the threshold; 0.539 when unset.
func (s *SummaryConfig) RedundancyThresholdOrDefault() float64 {
	if s.RedundancyThreshold != nil {
		return *s.RedundancyThreshold
	}
	return defaultRedundancyThreshold
}

// Options converts the section into summarizer options.
func (s *SummaryConfig) Options() (summarizer.Options, error) {
	policy, err := weighting.ParseIDFPolicy(s.CentroidIDF)
	if err != nil {
		return summarizer.Options{}, err
	}
	storage, err := weighting.ParseStorage(s.Matrix)
	if err != nil {
		return summarizer.Options{}, err
	}
	return summarizer.Options{
		LengthBudget:        s.LengthBudget,
		RedundancyThreshold: s.RedundancyThresholdOrDefault(),
		CentroidIDF:         policy,
		Storage:             storage,
		Workers:             s.Workers,
	}, nil
}

// SummaryOverrides are per-request changes to the configured summary settings. Zero
// and empty values keep the configured setting.
type SummaryOverrides struct {
	LengthBudget        int
	RedundancyThreshold *float64
	CentroidIDF         string
	Matrix              string
}

// OptionsWith converts the section into summarizer options with o layered on top.
func (s *SummaryConfig) OptionsWith(o SummaryOverrides) (summarizer.Options, error) {
	opts, err := s.Options()
	if err != nil {
		return summarizer.Options{}, err
	}
	if o.LengthBudget > 0 {
		opts.LengthBudget = o.LengthBudget
	}
	if o.RedundancyThreshold != nil {
		th := *o.RedundancyThreshold
		if th < 0 || th > 1 {
			return summarizer.Options{}, fmt.Errorf("redundancy threshold must be within [0, 1], got %g", th)
		}
		opts.RedundancyThreshold = th
	}
	if o.CentroidIDF != "" {
		if opts.CentroidIDF, err = weighting.ParseIDFPolicy(o.CentroidIDF); err != nil {
			return summarizer.Options{}, err
		}
	}
	if o.Matrix != "" {
		if opts.Storage, err = weighting.ParseStorage(o.Matrix); err != nil {
			return summarizer.Options{}, err
		}
	}
	return opts, nil
}

// WatchConfig holds directory watch settings.
type WatchConfig struct {
	Recursive  *bool `yaml:"recursive"`
	DebounceMs int   `yaml:"debounce_ms"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Load reads and parses the config file at path, applies environment overrides and
// defaults, expands paths and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	configDir := filepath.Dir(path)
	if err := loadDotEnv(configDir); err != nil {
		return nil, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)

	cfg.Storage.CachePath = expandPath(cfg.Storage.CachePath, configDir)
	cfg.Corpus.Directory = expandPath(cfg.Corpus.Directory, configDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration with environment overrides applied.
// Relative paths resolve against dir.
func Default(dir string) (*Config, error) {
	var cfg Config
	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	cfg.Storage.CachePath = expandPath(cfg.Storage.CachePath, dir)
	cfg.Corpus.Directory = expandPath(cfg.Corpus.Directory, dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Summary.LengthBudget < 0 {
		return fmt.Errorf("summary.length_budget cannot be negative")
	}
	if th := c.Summary.RedundancyThresholdOrDefault(); th < 0 || th > 1 {
		return fmt.Errorf("summary.redundancy_threshold must be within [0, 1], got %g", th)
	}
	if _, err := c.Summary.Options(); err != nil {
		return fmt.Errorf("invalid summary config: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
