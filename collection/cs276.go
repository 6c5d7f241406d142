package collection

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/florimondmanca/cs-ir/index"
)

// CS276 reads a Stanford-style directory-of-shards collection: one
// subdirectory per shard, one file per document, whitespace-separated
// pre-tokenized content, which Each still passes through Tokenize
// (lowercasing, non-alphanumeric split, stop-word removal) so its tokens
// are normalized like every other collection's. It caches a flattened
// "token doc_id" file and a
// "doc_id filename" map alongside the index cache so repeat runs skip
// the directory walk, grounded on original_source/collectshuns.py's
// CS276 class.
type CS276 struct {
	dir            string
	cachePath      string
	tokenCachePath string
	docMapPath     string
	stopWords      StopWords
}

// NewCS276 returns a CS276 collection reading dir, caching its built
// index at cachePath and its flattened token/doc-map files alongside it.
func NewCS276(dir, cachePath, tokenCachePath, docMapPath string, stopWords StopWords) *CS276 {
	return &CS276{
		dir:            dir,
		cachePath:      cachePath,
		tokenCachePath: tokenCachePath,
		docMapPath:     docMapPath,
		stopWords:      stopWords,
	}
}

func (c *CS276) Name() string { return "cs276" }

func (c *CS276) IndexCachePath() string { return c.cachePath }

func (c *CS276) IndexCacheExists() bool {
	_, err := os.Stat(c.cachePath)
	return err == nil
}

// Each streams from the flattened token cache if present, else walks the
// shard directory tree, building the token cache and doc map as it goes.
func (c *CS276) Each(emit func(token string, docID index.DocID) error) error {
	if _, err := os.Stat(c.tokenCachePath); err == nil {
		return c.fromCache(emit)
	}
	return c.fromDir(emit)
}

func (c *CS276) fromCache(emit func(token string, docID index.DocID) error) error {
	f, err := os.Open(c.tokenCachePath)
	if err != nil {
		return fmt.Errorf("collection: cs276: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		id, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("collection: cs276: malformed cache line %q: %w", scanner.Text(), err)
		}
		if err := emit(fields[0], index.DocID(id)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (c *CS276) fromDir(emit func(token string, docID index.DocID) error) error {
	shards, err := sortedSubdirs(c.dir)
	if err != nil {
		return fmt.Errorf("collection: cs276: %w", err)
	}

	docMap, err := os.Create(c.docMapPath)
	if err != nil {
		return fmt.Errorf("collection: cs276: %w", err)
	}
	defer docMap.Close()

	tokenCache, err := os.Create(c.tokenCachePath)
	if err != nil {
		return fmt.Errorf("collection: cs276: %w", err)
	}
	defer tokenCache.Close()

	docWriter := bufio.NewWriter(docMap)
	defer docWriter.Flush()
	tokenWriter := bufio.NewWriter(tokenCache)
	defer tokenWriter.Flush()

	var nextDocID uint32 = 1
	for _, shard := range shards {
		files, err := sortedFiles(shard)
		if err != nil {
			return fmt.Errorf("collection: cs276: %w", err)
		}
		for _, file := range files {
			docID := index.DocID(nextDocID)
			nextDocID++

			if _, err := fmt.Fprintf(docWriter, "%d %s\n", docID, filepath.Base(file)); err != nil {
				return fmt.Errorf("collection: cs276: %w", err)
			}

			if err := c.emitFile(file, docID, tokenWriter, emit); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *CS276) emitFile(path string, docID index.DocID, tokenWriter *bufio.Writer, emit func(token string, docID index.DocID) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("collection: cs276: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, token := range Tokenize(scanner.Text(), c.stopWords) {
			if _, err := fmt.Fprintf(tokenWriter, "%s %d\n", token, docID); err != nil {
				return fmt.Errorf("collection: cs276: %w", err)
			}
			if err := emit(token, docID); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func sortedSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func sortedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
