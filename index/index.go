// Package index holds the Index entity (C4) and the builder that produces
// it from a collection via the BSBI external sort (C3).
package index

import (
	"sort"

	"github.com/florimondmanca/cs-ir/bsbi"
)

// DocID identifies a document within a collection.
type DocID = uint32

// DefaultBlockSize is the number of entries buffered in memory before a
// spill, used when a caller doesn't override it.
const DefaultBlockSize = 10000

// Index is the persistent, immutable result of building an inverted index
// over a collection. It is constructed exactly once (by Build or LoadJSON) and
// never mutated afterwards, so it requires no synchronization to be shared
// among concurrent readers.
type Index struct {
	// Collection is the name of the collection this index was built from.
	Collection string

	postings map[string][]DocID
	docIDs   map[DocID]struct{}

	// df[t] is the document frequency of t as defined by this index: the
	// number of postings for t, i.e. total term occurrences across the
	// collection rather than the number of distinct documents containing
	// t. This diverges from the textbook definition of document frequency
	// but matches the behavior of the system this package was ported
	// from; the complex weighting scheme's 1/df term is affected by the
	// distinction. See SPEC_FULL.md §9.
	df map[string]int
}

// Postings returns the posting list for term t, or an empty slice if t was
// never seen. Term frequency within a document is encoded by repetition:
// if a token occurs k times in a document, that document's ID appears k
// times in the returned slice.
func (ix *Index) Postings(t string) []DocID {
	return ix.postings[t]
}

// Terms returns the set of distinct terms in the index.
func (ix *Index) Terms() []string {
	terms := make([]string, 0, len(ix.postings))
	for t := range ix.postings {
		terms = append(terms, t)
	}
	return terms
}

// DocIDs returns the set of distinct document IDs observed while building
// the index.
func (ix *Index) DocIDs() map[DocID]struct{} {
	return ix.docIDs
}

// DF returns the document frequency of term t, or 0 if t was never seen.
// This is the occurrence count described on the df field (the length of
// t's posting list), not the number of distinct documents containing t.
func (ix *Index) DF(t string) int {
	return ix.df[t]
}

// NumDocuments returns the number of distinct documents in the index.
func (ix *Index) NumDocuments() int {
	return len(ix.docIDs)
}

// Build folds a totally-ordered entry stream into an Index. The stream
// must already be sorted by the bsbi.Entry total order (token, then
// docID); Build does not sort it again.
func Build(collection string, entries []bsbi.Entry) *Index {
	postings := make(map[string][]DocID)
	docIDs := make(map[DocID]struct{})
	df := make(map[string]int)

	for _, entry := range entries {
		postings[entry.Token] = append(postings[entry.Token], entry.DocID)
		docIDs[entry.DocID] = struct{}{}
		df[entry.Token]++
	}

	return &Index{
		Collection: collection,
		postings:   postings,
		docIDs:     docIDs,
		df:         df,
	}
}

// sortedDocIDs returns the index's document IDs as an ascending slice; used
// by SortedDocIDs, which persistence calls.
func sortedDocIDs(docIDs map[DocID]struct{}) []DocID {
	out := make([]DocID, 0, len(docIDs))
	for id := range docIDs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortedDocIDs returns the index's document IDs as an ascending slice.
func (ix *Index) SortedDocIDs() []DocID {
	return sortedDocIDs(ix.docIDs)
}
