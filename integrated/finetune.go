package integrated

import (
	"github.com/grailbio/singlepp/classify"
	"github.com/grailbio/singlepp/subset"
)

// fineTune implements the §4.7 integrated fine-tuning loop: the
// reference counterpart of classify's per-label fine-tuning. Shrink
// the candidate reference set to those within threshold of the
// current best, rebuild the miniverse from the survivors' marker sets
// for their respective assigned labels, rescore, and repeat until the
// set stops shrinking.
//
// The final (best, delta) comes from the full candidate set's
// BestAndDelta if no round ever executes (the initial labels_in_use
// was already size 1 or the full reference count), or from the last
// executed round's scores otherwise — never from a stale pre-loop
// snapshot once a round has run.
func fineTune(
	r *subset.Remapper,
	testRanked subset.RankedVector,
	trained *Trained,
	assigned []int,
	initialScores []float64,
	quantile float64,
	threshold float64,
) (best int, delta float64, finalScores []float64) {
	numRefs := len(assigned)
	best, delta = bestAndDeltaOverAll(initialScores)
	finalScores = initialScores
	inUse := labelsWithinThreshold(finalScores, threshold)

	for len(inUse) > 1 && len(inUse) < numRefs {
		miniverse := unionMarkers(trained, assigned, inUse)
		if len(miniverse) == 0 {
			break
		}
		r.Clear()
		for _, u := range miniverse {
			r.Add(u)
		}

		round := scoreReferences(r, testRanked, trained, assigned, inUse, quantile)

		nextInUse := labelsWithinThreshold(round, threshold)
		abs := make([]int, len(nextInUse))
		for i, p := range nextInUse {
			abs[i] = inUse[p]
		}

		full := make([]float64, numRefs)
		for i, ref := range inUse {
			full[ref] = round[i]
		}
		finalScores = full
		best, delta = bestAndDeltaAmongRefs(full, abs)

		if len(abs) == len(inUse) {
			break
		}
		inUse = abs
	}

	return best, delta, finalScores
}

func labelsWithinThreshold(scores []float64, threshold float64) []int {
	best := scores[0]
	for _, s := range scores[1:] {
		if s > best {
			best = s
		}
	}
	bound := best - threshold

	var inUse []int
	for l, s := range scores {
		if s >= bound {
			inUse = append(inUse, l)
		}
	}
	return inUse
}

func bestAndDeltaOverAll(scores []float64) (int, float64) {
	all := make([]int, len(scores))
	for i := range all {
		all[i] = i
	}
	return bestAndDeltaAmongRefs(scores, all)
}

func bestAndDeltaAmongRefs(scores []float64, refs []int) (int, float64) {
	restricted := make([]float64, len(refs))
	for i, ref := range refs {
		restricted[i] = scores[ref]
	}
	best, delta := classify.BestAndDelta(restricted)
	if best < 0 {
		return -1, delta
	}
	return refs[best], delta
}
