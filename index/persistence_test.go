package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/florimondmanca/cs-ir/bsbi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadJSONRoundTrip(t *testing.T) {
	entries := []bsbi.Entry{
		{Token: "a", DocID: 1},
		{Token: "a", DocID: 2},
		{Token: "a", DocID: 2},
		{Token: "b", DocID: 1},
		{Token: "c", DocID: 3},
	}
	original := Build("tiny", entries)

	path := filepath.Join(t.TempDir(), "tiny_index.json")
	require.NoError(t, SaveJSON(path, original))

	loaded, err := LoadJSON(path)
	require.NoError(t, err)

	assert.Equal(t, original.Collection, loaded.Collection)
	assert.Equal(t, original.postings, loaded.postings)
	assert.Equal(t, original.docIDs, loaded.docIDs)
	assert.Equal(t, original.df, loaded.df)
	assert.ElementsMatch(t, original.Terms(), loaded.Terms())
}

func TestLoadJSONMissingFileIsCacheMiss(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "does_not_exist.json"))
	require.Error(t, err)
}

func TestLoadJSONMalformedArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0o640))

	_, err := LoadJSON(path)
	require.Error(t, err)
}
