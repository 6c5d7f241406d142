package boolean

import (
	"testing"

	"github.com/florimondmanca/cs-ir/bsbi"
	"github.com/florimondmanca/cs-ir/index"
	"github.com/stretchr/testify/assert"
)

// buildToyIndex produces postings={"a":[0,1,3], "b":[0,2]}, doc_ids={0,1,2,3}
// as described in SPEC_FULL.md scenario 3.
func buildToyIndex() *index.Index {
	return index.Build("toy", []bsbi.Entry{
		{Token: "a", DocID: 0},
		{Token: "a", DocID: 1},
		{Token: "a", DocID: 3},
		{Token: "b", DocID: 0},
		{Token: "b", DocID: 2},
	})
}

func TestBooleanAlgebra(t *testing.T) {
	ix := buildToyIndex()

	assert.Equal(t, []index.DocID{0, 1, 3}, Evaluate(Term("a"), ix))
	assert.Equal(t, []index.DocID{0}, Evaluate(And(Term("a"), Term("b")), ix))
	assert.Equal(t, []index.DocID{0, 1, 2, 3}, Evaluate(Or(Term("a"), Term("b")), ix))
	assert.Equal(t, []index.DocID{2}, Evaluate(Not(Term("a")), ix))
	assert.Equal(t, []index.DocID{0, 1, 3}, Evaluate(Not(Not(Term("a"))), ix))
	assert.Equal(t, []index.DocID{1, 3}, Evaluate(And(Term("a"), Not(Term("b"))), ix))
	assert.Equal(t, []index.DocID{2}, Evaluate(And(Or(Term("a"), Term("b")), Not(Term("a"))), ix))
}

func TestBooleanSetLaws(t *testing.T) {
	ix := buildToyIndex()
	a := Term("a")

	assert.Empty(t, Evaluate(And(a, Not(a)), ix))
	assert.Equal(t, ix.SortedDocIDs(), Evaluate(Or(a, Not(a)), ix))
}

func TestBooleanQueryIsReusable(t *testing.T) {
	ix1 := buildToyIndex()
	q := And(Term("a"), Term("b"))

	first := Evaluate(q, ix1)
	second := Evaluate(q, ix1)
	assert.Equal(t, first, second, "evaluating the same query twice must be idempotent")

	other := index.Build("other", []bsbi.Entry{
		{Token: "a", DocID: 5},
		{Token: "b", DocID: 5},
	})
	assert.Equal(t, []index.DocID{5}, Evaluate(q, other), "the same query value must be usable against a different index")
}

func TestUnknownTermIsEmptySet(t *testing.T) {
	ix := buildToyIndex()
	assert.Empty(t, Evaluate(Term("nonexistent"), ix))
	assert.Equal(t, ix.SortedDocIDs(), Evaluate(Not(Term("nonexistent")), ix))
}

func TestBooleanResultsHaveNoDuplicates(t *testing.T) {
	ix := index.Build("dup", []bsbi.Entry{
		{Token: "a", DocID: 1},
		{Token: "a", DocID: 1},
		{Token: "a", DocID: 2},
	})
	assert.Equal(t, []index.DocID{1, 2}, Evaluate(Term("a"), ix))
}
