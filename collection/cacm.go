package collection

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/florimondmanca/cs-ir/index"
)

var (
	cacmDocIDRegex   = regexp.MustCompile(`^\.I (\d+)$`)
	cacmSectionRegex = regexp.MustCompile(`^\.(\w)$`)
)

// cacmSectionsOfInterest are the CACM `.all` file sections that
// contribute to a document's text: title, abstract ("W" for "window"),
// and keywords.
var cacmSectionsOfInterest = map[string]struct{}{
	"W": {},
	"T": {},
	"K": {},
}

// CACM reads a CACM-format `.all` file and streams (token, docID) pairs,
// grounded on original_source/collectshuns.py's CACM class.
type CACM struct {
	path      string
	cachePath string
	stopWords StopWords
}

// NewCACM returns a CACM collection reading path, caching its built
// index at cachePath.
func NewCACM(path, cachePath string, stopWords StopWords) *CACM {
	return &CACM{path: path, cachePath: cachePath, stopWords: stopWords}
}

func (c *CACM) Name() string { return "cacm" }

func (c *CACM) IndexCachePath() string { return c.cachePath }

func (c *CACM) IndexCacheExists() bool {
	_, err := os.Stat(c.cachePath)
	return err == nil
}

// Each parses the `.all` file line by line, accumulating the text of
// each section of interest for the current document, and flushing
// (tokenizing and emitting) on every new document or section boundary.
func (c *CACM) Each(emit func(token string, docID index.DocID) error) error {
	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("collection: cacm: %w", err)
	}
	defer f.Close()

	var docID index.DocID
	var haveDocID bool
	var currentSection string
	var buffer []string

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		if !haveDocID {
			buffer = buffer[:0]
			return nil
		}
		text := strings.Join(buffer, " ")
		buffer = buffer[:0]
		for _, token := range Tokenize(text, c.stopWords) {
			if err := emit(token, docID); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if m := cacmDocIDRegex.FindStringSubmatch(line); m != nil {
			if haveDocID {
				if err := flush(); err != nil {
					return err
				}
			}
			id, err := strconv.ParseUint(m[1], 10, 32)
			if err != nil {
				return fmt.Errorf("collection: cacm: malformed doc id %q: %w", m[1], err)
			}
			docID = index.DocID(id)
			haveDocID = true
			currentSection = "I"
			continue
		}

		if m := cacmSectionRegex.FindStringSubmatch(line); m != nil {
			if err := flush(); err != nil {
				return err
			}
			currentSection = m[1]
			continue
		}

		if _, interesting := cacmSectionsOfInterest[currentSection]; interesting {
			buffer = append(buffer, strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("collection: cacm: %w", err)
	}

	return flush()
}
