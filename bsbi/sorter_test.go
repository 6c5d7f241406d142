package bsbi

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalSorterTinyInput(t *testing.T) {
	input := []Entry{
		{Token: "b", DocID: 1},
		{Token: "a", DocID: 2},
		{Token: "a", DocID: 1},
		{Token: "c", DocID: 3},
		{Token: "a", DocID: 2},
	}

	result, err := SortExternal(input, 2, t.TempDir(), 4)
	require.NoError(t, err)

	want := append([]Entry(nil), input...)
	sort.Slice(want, func(i, j int) bool { return want[i].Less(want[j]) })

	assert.Equal(t, want, result)
}

func TestExternalSorterLargeInputIsSortedAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tokens := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

	const n = 25000
	input := make([]Entry, n)
	for i := range input {
		input[i] = Entry{
			Token: tokens[rng.Intn(len(tokens))],
			DocID: uint32(rng.Intn(1000)),
		}
	}

	tempDir := t.TempDir()
	result, err := SortExternal(input, 1000, tempDir, 4)
	require.NoError(t, err)
	require.Len(t, result, n)

	for i := 1; i < len(result); i++ {
		assert.False(t, result[i].Less(result[i-1]), "result not sorted at index %d", i)
	}

	wantCounts := countEntries(input)
	gotCounts := countEntries(result)
	assert.Equal(t, wantCounts, gotCounts)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "working directory should be removed after Close")
}

func countEntries(entries []Entry) map[string]int {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[fmt.Sprintf("%s|%d", e.Token, e.DocID)]++
	}
	return counts
}

func TestExternalSorterEmptyInput(t *testing.T) {
	result, err := SortExternal(nil, 10, t.TempDir(), 4)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestExternalSorterCleansUpOnExplicitClose(t *testing.T) {
	tempDir := t.TempDir()
	sorter, err := Open(10, tempDir)
	require.NoError(t, err)

	require.NoError(t, sorter.Add(Entry{Token: "x", DocID: 1}))
	require.NoError(t, sorter.Close())

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
