package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsLowercasesAndDropsEmpty(t *testing.T) {
	tokens := Tokenize("The Quick-Brown Fox, jumps!! over 123dogs.", nil)
	assert.Equal(t, []string{"the", "quick", "brown", "fox", "jumps", "over", "123dogs"}, tokens)
}

func TestTokenizeDropsStopWords(t *testing.T) {
	stopWords := StopWords{"the": {}, "over": {}}
	tokens := Tokenize("The fox jumps over the dog", stopWords)
	assert.Equal(t, []string{"fox", "jumps", "dog"}, tokens)
}

func TestTokenizeNilStopWordsFiltersNothing(t *testing.T) {
	tokens := Tokenize("a b c", nil)
	assert.Equal(t, []string{"a", "b", "c"}, tokens)
}

func TestLoadStopWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stopwords.txt")
	require.NoError(t, os.WriteFile(path, []byte("the\na\n\nover\n"), 0o644))

	words, err := LoadStopWords(path)
	require.NoError(t, err)
	assert.True(t, words.Contains("the"))
	assert.True(t, words.Contains("a"))
	assert.True(t, words.Contains("over"))
	assert.False(t, words.Contains("fox"))
}

func TestLoadStopWordsMissingFile(t *testing.T) {
	_, err := LoadStopWords("/nonexistent/path/stopwords.txt")
	assert.Error(t, err)
}
