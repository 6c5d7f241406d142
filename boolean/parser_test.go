package boolean

import (
	"testing"

	"github.com/florimondmanca/cs-ir/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleTerm(t *testing.T) {
	q, err := Parse("research")
	require.NoError(t, err)
	assert.Equal(t, Term("research"), q)
}

func TestParseAndOrNot(t *testing.T) {
	ix := buildToyIndex()

	cases := []struct {
		text string
		want []index.DocID
	}{
		{"a", []index.DocID{0, 1, 3}},
		{"a AND b", []index.DocID{0}},
		{"a OR b", []index.DocID{0, 1, 2, 3}},
		{"NOT a", []index.DocID{2}},
		{"NOT NOT a", []index.DocID{0, 1, 3}},
		{"a AND NOT b", []index.DocID{1, 3}},
		{"(a OR b) AND NOT a", []index.DocID{2}},
		{"a and not b", []index.DocID{1, 3}},
	}

	for _, c := range cases {
		q, err := Parse(c.text)
		require.NoError(t, err, c.text)
		assert.Equal(t, c.want, Evaluate(q, ix), c.text)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("a AND")
	assert.Error(t, err)

	_, err = Parse("(a OR b")
	assert.Error(t, err)

	_, err = Parse("a b")
	assert.Error(t, err)
}
