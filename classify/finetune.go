package classify

import (
	"sort"

	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/rank"
	"github.com/grailbio/singlepp/reference"
	"github.com/grailbio/singlepp/subset"
)

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

// fineTuneWorkspace is the per-worker scratch a fine-tuning pass
// reuses across test cells, avoiding per-cell allocation churn.
type fineTuneWorkspace struct {
	remapper *subset.Remapper
}

func newFineTuneWorkspace(numMarkers int) *fineTuneWorkspace {
	return &fineTuneWorkspace{remapper: subset.NewRemapper(numMarkers)}
}

// fineTune implements the §4.5 fine-tuning loop: shrink the candidate
// label set to those within threshold of the current best, rebuild a
// SubsetRemapper over the union of pairwise markers among the
// survivors, remap and rescale both the cached test profile and every
// survivor's cached reference profiles, rescore via the same quantile
// plans, and repeat until the set stops shrinking.
func fineTune(
	ws *fineTuneWorkspace,
	testRanked subset.RankedVector,
	trained *reference.Trained,
	mk markers.Markers,
	plans []QuantilePlan,
	initialScores []float64,
	threshold float64,
) (best int, delta float64, finalScores []float64) {
	numLabels := len(trained.Labels)
	best, delta = BestAndDelta(initialScores)
	finalScores = initialScores
	inUse := labelsWithinThreshold(finalScores, threshold)

	for len(inUse) > 1 && len(inUse) < numLabels {
		ws.remapper.Clear()
		for _, a := range inUse {
			for _, b := range inUse {
				if b >= a {
					continue
				}
				addMarkerPositions(ws.remapper, mk[a][b])
				addMarkerPositions(ws.remapper, mk[b][a])
			}
		}
		if ws.remapper.Size() == 0 {
			break
		}

		query := remapAndScale(ws.remapper, testRanked)

		round := make([]float64, numLabels)
		for _, l := range inUse {
			round[l] = scoreLabelFineTune(&trained.Labels[l], ws.remapper, query, plans[l])
		}

		nextInUse := labelsWithinThreshold(selectScores(round, inUse), threshold)
		// Translate positions within the inUse-restricted score view back
		// to absolute label numbers.
		abs := make([]int, len(nextInUse))
		for i, p := range nextInUse {
			abs[i] = inUse[p]
		}

		finalScores = round
		best, delta = bestAndDeltaAmong(round, abs)
		if len(abs) == len(inUse) {
			// Set didn't shrink; stop with this round's scores.
			break
		}
		inUse = abs
	}

	return best, delta, finalScores
}

func selectScores(scores []float64, inUse []int) []float64 {
	out := make([]float64, len(inUse))
	for i, l := range inUse {
		out[i] = scores[l]
	}
	return out
}

func bestAndDeltaAmong(scores []float64, inUse []int) (int, float64) {
	restricted := selectScores(scores, inUse)
	best, delta := BestAndDelta(restricted)
	if best < 0 {
		return -1, delta
	}
	return inUse[best], delta
}

// addMarkerPositions adds every gene in genes to r. genes is already
// expressed in subset-position numbering (positions into
// trained.Subset, the same space as every cached profile's Ix), matching what
// markers.SubsetToMarkers/SubsetToMarkersIntersect produce: no further
// translation from reference-gene numbering is needed here.
func addMarkerPositions(r *subset.Remapper, genes []int) {
	for _, g := range genes {
		r.Add(g)
	}
}

func remapAndScale(r *subset.Remapper, ranked subset.RankedVector) []float64 {
	remapped := r.Remap(ranked)
	values := make([]float64, r.Size())
	for _, p := range remapped {
		values[p.Ix] = p.Value
	}
	return rank.Scale(values)
}

// scoreLabelFineTune recomputes a label's quantile score against a
// remapped, rescaled query by directly rescaling every one of the
// label's cached raw profiles through the same remapper — fine-tuning
// rounds operate over a small surviving label set, so an exact
// distance-to-every-profile pass replaces the KMKNN search used on
// the first pass.
func scoreLabelFineTune(li *reference.LabelIndex, r *subset.Remapper, query []float64, plan QuantilePlan) float64 {
	n := li.NumSamples()
	dists := make([]float64, n)

	var ranked []subset.RankedVector
	if li.Dense != nil {
		ranked = li.Dense.Ranked
	} else {
		ranked = li.Sparse.Ranked
	}
	for i := 0; i < n; i++ {
		profile := remapAndScale(r, ranked[i])
		dists[i] = rank.L2DenseDense(query, profile)
	}

	sort.Float64s(dists)
	return plan.Score(dists)
}
