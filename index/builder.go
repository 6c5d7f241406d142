package index

import (
	"errors"
	"fmt"
	"os"

	"github.com/florimondmanca/cs-ir/bsbi"
	"github.com/florimondmanca/cs-ir/irerrors"
)

// Collection is the stream of (token, docID) pairs the builder consumes.
// Implementations normalize tokens (lowercase, stop-words dropped) before
// emitting them; the builder assumes this and does no normalization of its
// own. See collection.CACM and collection.CS276 for the adapter
// implementations.
type Collection interface {
	// Name identifies the collection; it is used to derive the cache path
	// and is stored in the persisted artifact.
	Name() string

	// Each streams every (token, docID) pair in the collection to emit,
	// in any order. Each returns the first error emit or the stream
	// itself returns.
	Each(emit func(token string, docID DocID) error) error

	// IndexCachePath returns the path of the persisted index artifact for
	// this collection.
	IndexCachePath() string

	// IndexCacheExists reports whether an artifact already exists at
	// IndexCachePath.
	IndexCacheExists() bool
}

// BuildOptions configures BuildIndex.
type BuildOptions struct {
	// BlockSize is the number of entries the external sorter buffers
	// before spilling. Defaults to DefaultBlockSize when zero.
	BlockSize int
	// BatchSize is the number of blocks merged together at each
	// hierarchical merge stage. Defaults to bsbi.DefaultBatchSize when
	// zero.
	BatchSize int
	// TempDir is the parent directory for the external sorter's working
	// directory. Defaults to os.TempDir() when empty.
	TempDir string
	// NoCache, when true, skips the cache lookup and always rebuilds.
	NoCache bool
}

// BuildIndex builds (or loads, if cached) the index for collection.
//
// If NoCache is false and a cache artifact already exists, it is loaded
// and returned without ever invoking collection.Each. Otherwise the
// collection is streamed through an external sort (bsbi), folded into an
// Index, persisted to the cache path, and returned. A cache miss (no
// artifact present yet) is not an error; BuildIndex proceeds to build.
func BuildIndex(collection Collection, opts BuildOptions) (*Index, error) {
	if !opts.NoCache && collection.IndexCacheExists() {
		ix, err := LoadJSON(collection.IndexCachePath())
		if err == nil {
			return ix, nil
		}
		if !errors.Is(err, irerrors.ErrIndexCacheMissing) {
			return nil, err
		}
		// Cache said it existed but disappeared by the time we got to it;
		// fall through and rebuild.
	}

	blockSize := opts.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	batchSize := opts.BatchSize
	if batchSize == 0 {
		batchSize = bsbi.DefaultBatchSize
	}
	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	sorter, err := bsbi.Open(blockSize, tempDir)
	if err != nil {
		return nil, err
	}
	defer sorter.Close()

	err = collection.Each(func(token string, docID DocID) error {
		return sorter.Add(bsbi.Entry{Token: token, DocID: docID})
	})
	if err != nil {
		return nil, fmt.Errorf("index: failed to stream collection %s: %w", collection.Name(), err)
	}

	entries, err := sorter.Merge(batchSize)
	if err != nil {
		return nil, err
	}

	ix := Build(collection.Name(), entries)

	if err := SaveJSON(collection.IndexCachePath(), ix); err != nil {
		return nil, err
	}

	return ix, nil
}
