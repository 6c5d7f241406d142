// Package config provides the environment-driven configuration for the
// indexing, querying, and evaluation subsystems, mirroring the teacher's
// config.IndexSettings shape: a single struct of plain fields with a
// Validate method, loaded from the environment rather than a request
// payload.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Settings holds every environment-configurable path and default used
// across the collections, index builder, and CLI.
type Settings struct {
	DataCACMPath      string // path to the CACM collection's .all file
	DataCACMQueries   string // path to the CACM query file
	DataCACMQrels     string // path to the CACM relevance-judgment file
	DataCS276Path     string // root directory of the CS276 shard tree
	DataStopWordsPath string // path to the stop-word list

	CacheDir string // directory persisted index artifacts are read from and written to

	DefaultBlockSize int // external sorter's default buffer size, in entries
	DefaultBatchSize int // external sorter's default merge fan-in
}

const (
	envCACMPath      = "DATA_CACM_PATH"
	envCACMQueries   = "DATA_CACM_QUERIES"
	envCACMQrels     = "DATA_CACM_QRELS"
	envCS276Path     = "DATA_CS276_PATH"
	envStopWordsPath = "DATA_STOP_WORDS_PATH"
	envCacheDir      = "IR_CACHE_DIR"
	envBlockSize     = "IR_DEFAULT_BLOCK_SIZE"
	envBatchSize     = "IR_DEFAULT_BATCH_SIZE"

	defaultCacheDir  = "cache"
	defaultBlockSize = 10000
	defaultBatchSize = 100
)

// Load reads Settings from the environment, falling back to defaults
// for CacheDir, DefaultBlockSize, and DefaultBatchSize. The data-path
// fields have no defaults: a blank value means the corresponding
// collection is unusable until configured.
func Load() Settings {
	return Settings{
		DataCACMPath:      os.Getenv(envCACMPath),
		DataCACMQueries:   os.Getenv(envCACMQueries),
		DataCACMQrels:     os.Getenv(envCACMQrels),
		DataCS276Path:     os.Getenv(envCS276Path),
		DataStopWordsPath: os.Getenv(envStopWordsPath),
		CacheDir:          envOrDefault(envCacheDir, defaultCacheDir),
		DefaultBlockSize:  envIntOrDefault(envBlockSize, defaultBlockSize),
		DefaultBatchSize:  envIntOrDefault(envBatchSize, defaultBatchSize),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Validate reports configuration problems that would prevent the named
// collection ("cacm" or "cs276") from being built or queried.
func (s Settings) Validate(collection string) error {
	if s.DefaultBlockSize <= 0 {
		return fmt.Errorf("config: DefaultBlockSize must be positive, got %d", s.DefaultBlockSize)
	}
	if s.DefaultBatchSize <= 0 {
		return fmt.Errorf("config: DefaultBatchSize must be positive, got %d", s.DefaultBatchSize)
	}
	if s.DataStopWordsPath == "" {
		return fmt.Errorf("config: %s is not set", envStopWordsPath)
	}

	switch collection {
	case "cacm":
		if s.DataCACMPath == "" {
			return fmt.Errorf("config: %s is not set", envCACMPath)
		}
	case "cs276":
		if s.DataCS276Path == "" {
			return fmt.Errorf("config: %s is not set", envCS276Path)
		}
	default:
		return fmt.Errorf("config: unknown collection %q", collection)
	}

	return nil
}
