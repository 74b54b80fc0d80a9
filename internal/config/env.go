package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "YOYAKU_"

// loadDotEnv loads dir/.env into the process environment if present. Variables that
// are already set win.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with YOYAKU_* variables. List values are comma-separated.
func ApplyEnv(cfg *Config) error {
	var err error
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && err == nil {
			n, perr := strconv.Atoi(strings.TrimSpace(v))
			if perr != nil {
				err = fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, perr)
				return
			}
			*dst = n
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = nil
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					*dst = append(*dst, part)
				}
			}
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "DEBUG"); ok {
		b, perr := strconv.ParseBool(strings.TrimSpace(v))
		if perr != nil {
			return fmt.Errorf("invalid %sDEBUG: %w", EnvPrefix, perr)
		}
		cfg.Debug = b
	}
	str("SERVER_HOST", &cfg.Server.Host)
	num("SERVER_PORT", &cfg.Server.Port)
	str("CACHE_PATH", &cfg.Storage.CachePath)
	num("MEMORY_CACHE_SIZE", &cfg.Storage.MemoryCacheSize)
	str("CORPUS_DIRECTORY", &cfg.Corpus.Directory)
	list("CORPUS_DOCUMENTS", &cfg.Corpus.Documents)
	list("CORPUS_EXTENSIONS", &cfg.Corpus.Extensions)
	num("MIN_TERM_LENGTH", &cfg.Corpus.MinTermLength)
	num("LENGTH_BUDGET", &cfg.Summary.LengthBudget)
	str("CENTROID_IDF", &cfg.Summary.CentroidIDF)
	str("MATRIX", &cfg.Summary.Matrix)
	num("WORKERS", &cfg.Summary.Workers)
	num("WATCH_DEBOUNCE_MS", &cfg.Watch.DebounceMs)
	if err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvPrefix + "REDUNDANCY_THRESHOLD"); ok {
		f, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if perr != nil {
			return fmt.Errorf("invalid %sREDUNDANCY_THRESHOLD: %w", EnvPrefix, perr)
		}
		cfg.Summary.RedundancyThreshold = &f
	}
	return nil
}
