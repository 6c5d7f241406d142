package evaluation

import "math"

// EstimateHeaps solves for (k, b) in Heaps' law m = k*t^b given two
// (vocabulary size, collection size) samples (m1, t1) and (m2, t2),
// grounded on original_source/heaps.py's estimate function.
func EstimateHeaps(m1, t1, m2, t2 float64) (k, b float64) {
	b = math.Log(m1/m2) / math.Log(t1/t2)
	k = m1 / math.Pow(t1, b)
	return k, b
}

// HeapsModel extrapolates vocabulary size for a collection of t tokens
// given Heaps' law parameters (k, b).
type HeapsModel struct {
	K, B float64
}

// NewHeapsModel fits a HeapsModel from two (vocabulary size, collection
// size) samples.
func NewHeapsModel(m1, t1, m2, t2 float64) HeapsModel {
	k, b := EstimateHeaps(m1, t1, m2, t2)
	return HeapsModel{K: k, B: b}
}

// VocabularySize returns the model's estimate of vocabulary size for a
// collection of t tokens.
func (h HeapsModel) VocabularySize(t float64) float64 {
	return h.K * math.Pow(t, h.B)
}
