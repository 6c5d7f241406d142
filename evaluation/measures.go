// Package evaluation implements retrieval-quality measures (C9):
// precision/recall, interpolated precision-recall, F/E measures,
// R-precision, Heaps'-law vocabulary-growth estimation, and parsers for
// the CACM query and qrels file formats.
package evaluation

// PrecisionRecall computes micro-averaged precision and recall across a
// batch of queries: found[i] is the set of document IDs retrieved for
// query i, answers[i] is the set of known-relevant document IDs for that
// query. Numerators and denominators are summed across the whole batch
// before dividing, grounded on
// original_source/evaluation/evaluation.py's precision_recall.
func PrecisionRecall(found, answers []map[int]struct{}) (precision, recall float64) {
	var foundTotal, answersTotal, hitTotal int
	for i := range found {
		foundTotal += len(found[i])
		if i < len(answers) {
			answersTotal += len(answers[i])
			hitTotal += len(intersect(found[i], answers[i]))
		}
	}

	if foundTotal > 0 {
		precision = float64(hitTotal) / float64(foundTotal)
	}
	if answersTotal > 0 {
		recall = float64(hitTotal) / float64(answersTotal)
	}
	return precision, recall
}

func intersect(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// EMeasure combines precision and recall with weight alpha per van
// Rijsbergen's E-measure: 1 - 1/(alpha/P + (1-alpha)/R). Default alpha
// is 0.5 for the balanced case.
func EMeasure(precision, recall, alpha float64) float64 {
	return 1 - 1/(alpha/precision+(1-alpha)/recall)
}

// FMeasure is the complement of EMeasure: 1 - E(P, R, alpha). Default
// alpha is 0.5, giving the balanced F1 score.
func FMeasure(precision, recall, alpha float64) float64 {
	return 1 - EMeasure(precision, recall, alpha)
}

// RPrecision returns the fraction of the top-r ranked results (r is the
// number of known relevant documents for the query) that are relevant.
// Returns 0 if relevant is empty.
func RPrecision(ranked []int, relevant map[int]struct{}) float64 {
	r := len(relevant)
	if r == 0 {
		return 0
	}
	if r > len(ranked) {
		r = len(ranked)
	}

	hits := 0
	for _, docID := range ranked[:r] {
		if _, ok := relevant[docID]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

// RecallLevels are the 11 standard recall levels used by InterpolatedPrecision.
var RecallLevels = [11]float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

// InterpolatedPrecision interpolates precision at each of the 11
// standard recall levels from a set of (recall, precision) observations
// gathered while scanning a ranked result list: interpolated(r) =
// max(precision(r') for r' >= r), or 0 when no observation has recall >=
// r.
func InterpolatedPrecision(observations []RecallPrecision) [11]float64 {
	var out [11]float64
	for i, level := range RecallLevels {
		var best float64
		for _, obs := range observations {
			if obs.Recall >= level && obs.Precision > best {
				best = obs.Precision
			}
		}
		out[i] = best
	}
	return out
}

// RecallPrecision is one (recall, precision) pair observed while
// scanning a ranked result list against a relevance set.
type RecallPrecision struct {
	Recall    float64
	Precision float64
}

// ObservePrecisionRecallCurve walks ranked (a list of document IDs in
// descending relevance-score order) and returns the (recall, precision)
// pair observed after each relevant document is encountered, suitable
// input for InterpolatedPrecision.
func ObservePrecisionRecallCurve(ranked []int, relevant map[int]struct{}) []RecallPrecision {
	if len(relevant) == 0 {
		return nil
	}

	var observations []RecallPrecision
	var seenRelevant, seenTotal int
	for _, docID := range ranked {
		seenTotal++
		if _, ok := relevant[docID]; ok {
			seenRelevant++
			observations = append(observations, RecallPrecision{
				Recall:    float64(seenRelevant) / float64(len(relevant)),
				Precision: float64(seenRelevant) / float64(seenTotal),
			})
		}
	}
	return observations
}
