// Package collection implements the C8 collection adapters (CACM,
// CS276) and the shared text tokenizer they and the vector ranker use.
package collection

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// nonAlphaNumeric matches runs of characters that are not ASCII letters
// or digits; splitting on it is the core of the shared tokenizer, kept
// close to the teacher's internal/tokenizer.Tokenize regex split plus
// lowercasing, minus its camelCase-splitting and n-gram generation which
// belong to a different search paradigm this spec does not call for.
var nonAlphaNumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// StopWords is a set of normalized stop words.
type StopWords map[string]struct{}

// Contains reports whether token is a stop word.
func (s StopWords) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// LoadStopWords reads one stop word per line from path.
func LoadStopWords(path string) (StopWords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(StopWords)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Tokenize splits text on runs of non-alphanumeric characters, lowercases
// the result, drops empty tokens, and drops any token present in
// stopWords (stopWords may be nil, meaning no stop-word filtering).
func Tokenize(text string, stopWords StopWords) []string {
	parts := nonAlphaNumeric.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		token := strings.ToLower(p)
		if stopWords.Contains(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
