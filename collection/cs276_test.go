package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/florimondmanca/cs-ir/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShards(t *testing.T, root string) {
	t.Helper()
	shard0 := filepath.Join(root, "0")
	shard1 := filepath.Join(root, "1")
	require.NoError(t, os.MkdirAll(shard0, 0o755))
	require.NoError(t, os.MkdirAll(shard1, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(shard0, "doc_a"), []byte("cat dog\nbird\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(shard1, "doc_b"), []byte("fish whale\n"), 0o644))
}

func TestCS276EachWalksDirectoryWhenNoCache(t *testing.T) {
	dir := t.TempDir()
	writeShards(t, dir)

	cs := NewCS276(
		dir,
		filepath.Join(dir, "cs276_index.json"),
		filepath.Join(dir, "stanford_tokens.txt"),
		filepath.Join(dir, "stanford_doc_map.txt"),
		nil,
	)

	var got []tokenDoc
	err := cs.Each(func(token string, docID index.DocID) error {
		got = append(got, tokenDoc{token, docID})
		return nil
	})
	require.NoError(t, err)

	want := []tokenDoc{
		{"cat", 1}, {"dog", 1}, {"bird", 1},
		{"fish", 2}, {"whale", 2},
	}
	assert.Equal(t, want, got)

	assert.FileExists(t, filepath.Join(dir, "stanford_tokens.txt"))
	assert.FileExists(t, filepath.Join(dir, "stanford_doc_map.txt"))
}

func TestCS276EachUsesTokenCacheOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	writeShards(t, dir)

	tokenCache := filepath.Join(dir, "stanford_tokens.txt")
	docMap := filepath.Join(dir, "stanford_doc_map.txt")
	cs := NewCS276(dir, filepath.Join(dir, "cs276_index.json"), tokenCache, docMap, nil)

	require.NoError(t, cs.Each(func(token string, docID index.DocID) error { return nil }))

	// Remove the source directory entirely; a second Each must still
	// succeed by reading the flattened token cache instead of walking.
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "0")))
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "1")))

	var got []tokenDoc
	err := cs.Each(func(token string, docID index.DocID) error {
		got = append(got, tokenDoc{token, docID})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []tokenDoc{
		{"cat", 1}, {"dog", 1}, {"bird", 1},
		{"fish", 2}, {"whale", 2},
	}, got)
}

func TestCS276NameAndCachePath(t *testing.T) {
	cs := NewCS276("/data", "/cache/cs276_index.json", "/cache/tok.txt", "/cache/map.txt", nil)
	assert.Equal(t, "cs276", cs.Name())
	assert.Equal(t, "/cache/cs276_index.json", cs.IndexCachePath())
	assert.False(t, cs.IndexCacheExists())
}
