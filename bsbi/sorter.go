package bsbi

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// DefaultBatchSize is the number of blocks merged together at each stage of
// the hierarchical merge when the caller doesn't override it.
const DefaultBatchSize = 100

// ExternalSorter performs a bounded-memory external sort over a stream of
// Entry values, using the classic BSBI buffer/spill/merge pipeline.
//
// An ExternalSorter owns exactly one working directory for its lifetime.
// Always pair Open with a deferred Close so the directory is removed even
// if the caller panics or returns early; the sorter is single-use.
type ExternalSorter struct {
	blockSize int
	workDir   string
	buffer    []Entry
	counter   int
}

// Open acquires a fresh working directory under tempDir (named with a
// random UUID so concurrent sorters never collide) and returns a ready
// ExternalSorter. The caller must call Close when done.
func Open(blockSize int, tempDir string) (*ExternalSorter, error) {
	workDir := filepath.Join(tempDir, uuid.NewString())
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return nil, fmt.Errorf("bsbi: failed to create working directory %s: %w", workDir, err)
	}
	return &ExternalSorter{blockSize: blockSize, workDir: workDir}, nil
}

// Close removes the sorter's working directory tree. It is best-effort: a
// missing directory is not an error.
func (s *ExternalSorter) Close() error {
	return os.RemoveAll(s.workDir)
}

// Add appends entry to the in-memory buffer. Once the buffer exceeds the
// configured block size, it is sorted and spilled to disk and the buffer is
// reset.
func (s *ExternalSorter) Add(entry Entry) error {
	if len(s.buffer) > s.blockSize {
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.buffer = append(s.buffer, entry)
	return nil
}

// flush sorts the current buffer in place and writes it as a fresh block
// file, then empties the buffer.
func (s *ExternalSorter) flush() error {
	sort.Slice(s.buffer, func(i, j int) bool { return s.buffer[i].Less(s.buffer[j]) })

	s.counter++
	blockPath := filepath.Join(s.workDir, strconv.Itoa(s.counter))

	if err := writeBlock(blockPath, s.buffer); err != nil {
		return err
	}

	s.buffer = nil
	return nil
}

func writeBlock(path string, entries []Entry) error {
	f, err := os.Create(path) // #nosec G304 -- path is derived from the sorter's own working directory
	if err != nil {
		return fmt.Errorf("bsbi: failed to create block %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, entry := range entries {
		if _, err := w.WriteString(entry.Line() + "\n"); err != nil {
			return fmt.Errorf("bsbi: failed to write block %s: %w", path, err)
		}
	}
	return w.Flush()
}

// Merge drains any remaining buffered entries to a final spill, then
// hierarchically k-way merges all spill blocks into a single totally
// ordered sequence, which is read into memory and returned.
//
// batchSize controls how many blocks are merged together at each stage; it
// defaults to DefaultBatchSize when zero.
func (s *ExternalSorter) Merge(batchSize int) ([]Entry, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if len(s.buffer) > 0 {
		if err := s.flush(); err != nil {
			return nil, err
		}
	}
	return s.mergeStage(batchSize, 0)
}

func (s *ExternalSorter) mergeStage(batchSize, step int) ([]Entry, error) {
	blockPaths, err := blockFiles(s.workDir)
	if err != nil {
		return nil, err
	}

	if len(blockPaths) == 0 {
		return nil, nil
	}
	if len(blockPaths) == 1 {
		return readBlockFile(blockPaths[0])
	}

	for idx, batch := range batchesOf(blockPaths, batchSize) {
		outPath := filepath.Join(s.workDir, fmt.Sprintf("%d-%d", step, idx))
		if err := mergeBatch(outPath, batch); err != nil {
			return nil, err
		}
	}

	return s.mergeStage(batchSize, step+1)
}

// blockFiles returns the current block file paths in the working
// directory, in a stable (lexicographic by name) order. Name order does
// not affect correctness of the merge itself, only the (irrelevant) naming
// of the next stage's outputs.
func blockFiles(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("bsbi: failed to list working directory %s: %w", dir, err)
	}
	paths := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, item.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// batchesOf partitions paths into groups of at most batchSize.
func batchesOf(paths []string, batchSize int) [][]string {
	var batches [][]string
	for i := 0; i < len(paths); i += batchSize {
		end := i + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		batches = append(batches, paths[i:end])
	}
	return batches
}

func readBlockFile(path string) ([]Entry, error) {
	f, err := os.Open(path) // #nosec G304 -- path is derived from the sorter's own working directory
	if err != nil {
		return nil, fmt.Errorf("bsbi: failed to open block %s: %w", path, err)
	}
	defer f.Close()
	return ReadBlock(path, bufio.NewReader(f))
}

// mergeBatch k-way merges the blocks at inputPaths into a single new block
// at outPath, then deletes the inputs.
func mergeBatch(outPath string, inputPaths []string) error {
	files := make([]*os.File, 0, len(inputPaths))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	readers := make([]*blockReader, 0, len(inputPaths))
	for _, path := range inputPaths {
		f, err := os.Open(path) // #nosec G304 -- path is derived from the sorter's own working directory
		if err != nil {
			return fmt.Errorf("bsbi: failed to open block %s: %w", path, err)
		}
		files = append(files, f)
		readers = append(readers, newBlockReader(path, bufio.NewReader(f)))
	}

	out, err := os.Create(outPath) // #nosec G304 -- path is derived from the sorter's own working directory
	if err != nil {
		return fmt.Errorf("bsbi: failed to create merged block %s: %w", outPath, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	lookahead := make([]*Entry, len(readers))
	for i, r := range readers {
		entry, ok, err := r.next()
		if err != nil {
			return err
		}
		if ok {
			e := entry
			lookahead[i] = &e
		}
	}

	for {
		idx := -1
		for i, entry := range lookahead {
			if entry == nil {
				continue
			}
			if idx == -1 || entry.Less(*lookahead[idx]) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}

		if _, err := w.WriteString(lookahead[idx].Line() + "\n"); err != nil {
			return fmt.Errorf("bsbi: failed to write merged block %s: %w", outPath, err)
		}

		entry, ok, err := readers[idx].next()
		if err != nil {
			return err
		}
		if ok {
			e := entry
			lookahead[idx] = &e
		} else {
			lookahead[idx] = nil
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("bsbi: failed to flush merged block %s: %w", outPath, err)
	}

	for _, path := range inputPaths {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("bsbi: failed to remove merged input %s: %w", path, err)
		}
	}

	return nil
}

// SortExternal is a convenience wrapper that opens a sorter, adds every
// entry from entries, and merges the result, closing the sorter's working
// directory before returning.
func SortExternal(entries []Entry, blockSize int, tempDir string, batchSize int) ([]Entry, error) {
	sorter, err := Open(blockSize, tempDir)
	if err != nil {
		return nil, err
	}
	defer sorter.Close()

	for _, entry := range entries {
		if err := sorter.Add(entry); err != nil {
			return nil, err
		}
	}
	return sorter.Merge(batchSize)
}
