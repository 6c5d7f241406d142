package evaluation

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	queryOpenRegex  = regexp.MustCompile(`^\.W$`)
	queryCloseRegex = regexp.MustCompile(`^\.(\w)$`)
)

// ParseQueries parses a CACM-format query file: one query per ".W"
// section, implicitly numbered from 0 in file order, terminated by the
// next section marker. Grounded on
// original_source/evaluation/evaluation.py's parse_requests.
func ParseQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}
	defer f.Close()

	var queries []string
	var lines []string
	querying := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case queryOpenRegex.MatchString(line):
			lines = nil
			querying = true
		case querying && queryCloseRegex.MatchString(line):
			queries = append(queries, strings.Join(lines, " "))
			querying = false
		case querying:
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}
	if querying {
		queries = append(queries, strings.Join(lines, " "))
	}

	return queries, nil
}

// ParseQrels parses a CACM relevance-judgment file: lines of
// "<query_id> <doc_id> <relevance> <ignored...>", one line per
// (query, relevant document) pair. query_id is expected to walk 0, 1,
// 2, ... in non-decreasing order matching query file order; a query_id
// equal to the number of queries parsed so far starts a new query's
// relevant-set, otherwise the doc_id is added to the current query's
// set. Grounded on original_source/evaluation/evaluation.py's
// parse_answers.
func ParseQrels(path string) ([]map[int]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}
	defer f.Close()

	var answers []map[int]struct{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		queryID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("evaluation: malformed qrels line %q: %w", scanner.Text(), err)
		}
		docID, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("evaluation: malformed qrels line %q: %w", scanner.Text(), err)
		}

		if queryID == len(answers) {
			answers = append(answers, map[int]struct{}{docID: {}})
		} else {
			answers[len(answers)-1][docID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}

	return answers, nil
}
