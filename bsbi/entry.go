// Package bsbi implements Block Sort-Based Indexing: an external,
// bounded-memory sort over (token, docID) pairs produced while scanning a
// document collection. It knows nothing about postings, term frequencies,
// or documents proper — it only ever deals in totally ordered entries.
package bsbi

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/florimondmanca/cs-ir/irerrors"
)

// Entry is a single (token, docID) occurrence. The total order over entries
// is lexicographic on Token, then numeric on DocID.
type Entry struct {
	Token string
	DocID uint32
}

// Less reports whether e sorts strictly before other under the entry total
// order.
func (e Entry) Less(other Entry) bool {
	if e.Token != other.Token {
		return e.Token < other.Token
	}
	return e.DocID < other.DocID
}

// Line renders the entry as the single space-separated line used by spill
// block files: "<token> <doc_id>".
func (e Entry) Line() string {
	return e.Token + " " + strconv.FormatUint(uint64(e.DocID), 10)
}

// ParseLine parses a single block-file line back into an Entry. A malformed
// line is a fatal data-corruption condition for the caller.
func ParseLine(path, line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, irerrors.NewMalformedLineError(path, line)
	}
	docID, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return Entry{}, irerrors.NewMalformedLineError(path, line)
	}
	return Entry{Token: fields[0], DocID: uint32(docID)}, nil
}

// ReadBlock streams the entries of an already-open block file, in the order
// they appear on disk (which is the entry total order for any block this
// package wrote).
func ReadBlock(path string, r *bufio.Reader) ([]Entry, error) {
	var entries []Entry
	for {
		line, err := r.ReadString('\n')
		trimmed := strings.TrimRight(line, "\n")
		if trimmed != "" {
			entry, perr := ParseLine(path, trimmed)
			if perr != nil {
				return nil, perr
			}
			entries = append(entries, entry)
		}
		if err != nil {
			break
		}
	}
	return entries, nil
}

// blockReader is a lazy, single-pass cursor over one block file's entries,
// used by the k-way merge to avoid holding an entire block in memory.
type blockReader struct {
	path string
	r    *bufio.Reader
}

func newBlockReader(path string, r *bufio.Reader) *blockReader {
	return &blockReader{path: path, r: r}
}

// next returns the next entry in the block, or ok=false at end of file.
func (b *blockReader) next() (Entry, bool, error) {
	line, err := b.r.ReadString('\n')
	trimmed := strings.TrimRight(line, "\n")
	if trimmed == "" {
		if err != nil {
			return Entry{}, false, nil
		}
		// Blank line mid-block: keep reading, blank lines never occur in
		// well-formed block files but treating them as noise is cheap.
		return b.next()
	}
	entry, perr := ParseLine(b.path, trimmed)
	if perr != nil {
		return Entry{}, false, perr
	}
	return entry, true, nil
}

func (e Entry) String() string {
	return fmt.Sprintf("(%s, %d)", e.Token, e.DocID)
}
