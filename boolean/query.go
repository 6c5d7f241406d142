// Package boolean implements the boolean query model (C5): a composable,
// immutable algebra of AND/OR/NOT over posting lists.
package boolean

import (
	"sort"

	"github.com/florimondmanca/cs-ir/index"
)

// Query is an immutable boolean query node. Unlike the mutable
// operation-accumulator this package's predecessor used, a Query is a
// value: combining two queries with And/Or, or wrapping one in Not,
// produces a new Query without touching either operand. The same Query can
// be evaluated against different indexes any number of times.
type Query interface {
	eval(ix *index.Index) []index.DocID
}

// Term returns a Query matching the posting list of t.
func Term(t string) Query {
	return termQuery{term: t}
}

// And returns a Query for the set intersection of a and b.
func And(a, b Query) Query {
	return andQuery{a: a, b: b}
}

// Or returns a Query for the set union of a and b.
func Or(a, b Query) Query {
	return orQuery{a: a, b: b}
}

// Not returns a Query for the complement of a within the index's document
// set.
func Not(a Query) Query {
	return notQuery{a: a}
}

// Evaluate runs query against ix and returns its result as a strictly
// ascending, duplicate-free slice of document IDs. Evaluation never
// mutates query or ix, so the same query may be re-evaluated against any
// number of indexes.
func Evaluate(query Query, ix *index.Index) []index.DocID {
	return query.eval(ix)
}

type termQuery struct{ term string }

func (q termQuery) eval(ix *index.Index) []index.DocID {
	// Postings may contain duplicates (repeated docIDs encode term
	// frequency); a bare term query still needs to return a set, per
	// spec §4.5's "strictly ascending, no duplicates" contract.
	return toSortedSet(ix.Postings(q.term))
}

type andQuery struct{ a, b Query }

func (q andQuery) eval(ix *index.Index) []index.DocID {
	left := toSet(q.a.eval(ix))
	right := q.b.eval(ix)

	var out []index.DocID
	for _, id := range right {
		if _, ok := left[id]; ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return dedupSorted(out)
}

type orQuery struct{ a, b Query }

func (q orQuery) eval(ix *index.Index) []index.DocID {
	set := toSet(q.a.eval(ix))
	for _, id := range q.b.eval(ix) {
		set[id] = struct{}{}
	}
	return setToSortedSlice(set)
}

type notQuery struct{ a Query }

func (q notQuery) eval(ix *index.Index) []index.DocID {
	exclude := toSet(q.a.eval(ix))
	var out []index.DocID
	for id := range ix.DocIDs() {
		if _, ok := exclude[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toSet(ids []index.DocID) map[index.DocID]struct{} {
	set := make(map[index.DocID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func setToSortedSlice(set map[index.DocID]struct{}) []index.DocID {
	out := make([]index.DocID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toSortedSet(ids []index.DocID) []index.DocID {
	return setToSortedSlice(toSet(ids))
}

func dedupSorted(ids []index.DocID) []index.DocID {
	if len(ids) == 0 {
		return ids
	}
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
