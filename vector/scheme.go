// Package vector implements the vector-space ranking model (C6, C7): a
// pluggable TF-IDF weighting scheme plus a top-k scorer.
package vector

import (
	"math"

	"github.com/florimondmanca/cs-ir/index"
)

// Scheme computes per-term, per-document weights and document
// normalizers for a single vector-space query. A Scheme instance is
// constructed fresh for every Search call, scoped to that call's query
// term vector, and is never shared across queries or goroutines — its
// internal cache needs no synchronization.
type Scheme interface {
	// Name identifies the scheme (used for CLI/API selection).
	Name() string

	// TF returns the frequency of term in doc, which is either an
	// index.DocID (counted via the index's postings) or a raw query
	// string (counted via the shared tokenizer).
	TF(term string, doc interface{}) float64

	// DF returns the scheme's document-frequency factor for term (not
	// the raw index.DF count — see the complex scheme).
	DF(term string) float64

	// Norm returns the per-document normalization factor for docID,
	// derived from whatever weights have been recorded against it so
	// far. Search calls this both while accumulating scores (seeing a
	// partial sum) and again while normalizing the final scores (seeing
	// the full sum); this mirrors SPEC_FULL.md §4.6-4.7 exactly and is
	// not a bug to fix here.
	Norm(docID index.DocID) float64

	// Weight returns Norm(docID) * DF(term) * TF(term, docID), and
	// records the result in the scheme's cache against term and docID
	// for later Norm calls to sum over.
	Weight(term string, docID index.DocID) float64
}

// Tokenizer tokenizes a raw query string the same way the collection
// normalizes document text, so that TF can be computed consistently for
// both indexed documents and ad-hoc query strings.
type Tokenizer func(text string) []string

// NewScheme constructs a Scheme by name ("simple" or "complex") for the
// given index and query term vector. It returns nil for an unknown name.
func NewScheme(name string, ix *index.Index, query []string, tokenize Tokenizer) Scheme {
	termIndex := make(map[string]int, len(query))
	for i, t := range query {
		if _, ok := termIndex[t]; !ok {
			termIndex[t] = i
		}
	}

	base := &base{
		index:     ix,
		tokenize:  tokenize,
		termIndex: termIndex,
		weights:   make([]map[index.DocID]float64, len(query)),
	}
	for i := range base.weights {
		base.weights[i] = make(map[index.DocID]float64)
	}

	switch name {
	case "simple":
		return &simpleScheme{base: base}
	case "complex":
		return &complexScheme{base: base}
	default:
		return nil
	}
}

// base holds the state shared by every weighting scheme: the index being
// searched, the tokenizer used to count term occurrences in a raw query
// string, and the per-query-term-index weight cache that Norm reads from.
type base struct {
	index     *index.Index
	tokenize  Tokenizer
	termIndex map[string]int
	weights   []map[index.DocID]float64
}

// rawTF counts occurrences of term in doc, which is either an index.DocID
// or a string (an ad-hoc query).
func (b *base) rawTF(term string, doc interface{}) float64 {
	if text, ok := doc.(string); ok {
		count := 0
		for _, token := range b.tokenize(text) {
			if token == term {
				count++
			}
		}
		return float64(count)
	}

	docID := doc.(index.DocID)
	count := 0
	for _, id := range b.index.Postings(term) {
		if id == docID {
			count++
		}
	}
	return float64(count)
}

// record stores w as the weight of term against docID, keyed by term's
// slot in the query term vector, so a later Norm(docID) call can sum
// across all query terms seen so far for that document.
func (b *base) record(term string, docID index.DocID, w float64) {
	idx, ok := b.termIndex[term]
	if !ok {
		return
	}
	b.weights[idx][docID] = w
}

// sumWeights sums, across every query-term slot, whatever weight has so
// far been recorded against docID (0 for slots with nothing recorded
// yet).
func (b *base) sumWeights(docID index.DocID) float64 {
	var sum float64
	for _, byDoc := range b.weights {
		sum += byDoc[docID]
	}
	return sum
}

// --- simple scheme: raw term counts, no idf, no normalization ----------

type simpleScheme struct{ base *base }

func (s *simpleScheme) Name() string { return "simple" }

func (s *simpleScheme) TF(term string, doc interface{}) float64 {
	return s.base.rawTF(term, doc)
}

func (s *simpleScheme) DF(term string) float64 { return 1 }

func (s *simpleScheme) Norm(docID index.DocID) float64 { return 1 }

func (s *simpleScheme) Weight(term string, docID index.DocID) float64 {
	w := s.Norm(docID) * s.DF(term) * s.TF(term, docID)
	s.base.record(term, docID, w)
	return w
}

// --- complex scheme: log-scaled tf, inverse df, sqrt(Σw) normalization -

type complexScheme struct{ base *base }

func (s *complexScheme) Name() string { return "complex" }

// TF applies log-scaling on top of the raw count: 1 + log10(raw) when
// raw > 0, else 0.
func (s *complexScheme) TF(term string, doc interface{}) float64 {
	raw := s.base.rawTF(term, doc)
	if raw <= 0 {
		return 0
	}
	return 1 + math.Log10(raw)
}

// DF returns the inverse of the index's (occurrence-based, see
// index.Index.DF) document frequency, or 0 if the term was never seen.
func (s *complexScheme) DF(term string) float64 {
	df := s.base.index.DF(term)
	if df == 0 {
		return 0
	}
	return 1 / float64(df)
}

// Norm returns 1/sqrt(Σᵢ weights[i][docID]) over whatever has been
// recorded so far, or 1 if that sum is zero or negative.
func (s *complexScheme) Norm(docID index.DocID) float64 {
	sum := s.base.sumWeights(docID)
	if sum <= 0 {
		return 1
	}
	return 1 / math.Sqrt(sum)
}

func (s *complexScheme) Weight(term string, docID index.DocID) float64 {
	w := s.Norm(docID) * s.DF(term) * s.TF(term, docID)
	s.base.record(term, docID, w)
	return w
}
