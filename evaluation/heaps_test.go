package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateHeapsMatchesFormula(t *testing.T) {
	k, b := EstimateHeaps(100, 1000, 150, 2000)
	assert.InDelta(t, 0.5849625007211563, b, 1e-9)
	assert.InDelta(t, 1.7583790381641844, k, 1e-9)
}

func TestHeapsModelVocabularySizeMatchesFittedSample(t *testing.T) {
	model := NewHeapsModel(100, 1000, 150, 2000)
	size := model.VocabularySize(1000)
	assert.InDelta(t, 100, size, 1e-6, "the model must reproduce its first fitting sample exactly")
}
