package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		envCACMPath, envCACMQueries, envCACMQrels, envCS276Path,
		envStopWordsPath, envCacheDir, envBlockSize, envBatchSize,
	}
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadAppliesDefaultsWhenUnset(t *testing.T) {
	clearSettingsEnv(t)

	s := Load()
	assert.Equal(t, defaultCacheDir, s.CacheDir)
	assert.Equal(t, defaultBlockSize, s.DefaultBlockSize)
	assert.Equal(t, defaultBatchSize, s.DefaultBatchSize)
	assert.Empty(t, s.DataCACMPath)
	assert.Empty(t, s.DataStopWordsPath)
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv(envCACMPath, "/data/cacm.all")
	t.Setenv(envStopWordsPath, "/data/stopwords.txt")
	t.Setenv(envBlockSize, "500")
	t.Setenv(envBatchSize, "8")

	s := Load()
	assert.Equal(t, "/data/cacm.all", s.DataCACMPath)
	assert.Equal(t, "/data/stopwords.txt", s.DataStopWordsPath)
	assert.Equal(t, 500, s.DefaultBlockSize)
	assert.Equal(t, 8, s.DefaultBatchSize)
}

func TestLoadFallsBackToDefaultOnUnparseableInt(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv(envBlockSize, "not-a-number")

	s := Load()
	assert.Equal(t, defaultBlockSize, s.DefaultBlockSize)
}

func TestValidateRequiresStopWordsPath(t *testing.T) {
	s := Settings{DataCACMPath: "/x", DefaultBlockSize: 1, DefaultBatchSize: 1}
	err := s.Validate("cacm")
	assert.ErrorContains(t, err, envStopWordsPath)
}

func TestValidateCACMRequiresCACMPath(t *testing.T) {
	s := Settings{DataStopWordsPath: "/sw", DefaultBlockSize: 1, DefaultBatchSize: 1}
	err := s.Validate("cacm")
	assert.ErrorContains(t, err, envCACMPath)
}

func TestValidateCS276RequiresCS276Path(t *testing.T) {
	s := Settings{DataStopWordsPath: "/sw", DefaultBlockSize: 1, DefaultBatchSize: 1}
	err := s.Validate("cs276")
	assert.ErrorContains(t, err, envCS276Path)
}

func TestValidateUnknownCollectionIsError(t *testing.T) {
	s := Settings{DataStopWordsPath: "/sw", DefaultBlockSize: 1, DefaultBatchSize: 1}
	assert.Error(t, s.Validate("bm25"))
}

func TestValidateRejectsNonPositiveSizes(t *testing.T) {
	s := Settings{
		DataStopWordsPath: "/sw",
		DataCACMPath:      "/x",
		DefaultBlockSize:  0,
		DefaultBatchSize:  1,
	}
	assert.Error(t, s.Validate("cacm"))
}

func TestValidatePassesWithCompleteSettings(t *testing.T) {
	s := Settings{
		DataStopWordsPath: "/sw",
		DataCACMPath:      "/x",
		DefaultBlockSize:  10,
		DefaultBatchSize:  4,
	}
	assert.NoError(t, s.Validate("cacm"))
}
