package integrated

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/singlepp/classify"
	"github.com/grailbio/singlepp/rank"
	"github.com/grailbio/singlepp/refmatrix"
	"github.com/grailbio/singlepp/subset"
)

// Result is one test cell's integrated classification: a score per
// reference, the winning reference, and its margin over the
// runner-up.
type Result struct {
	Scores []float64
	Best   int
	Delta  float64
}

// workspace is the per-worker scratch Classify reuses across test
// cells.
type workspace struct {
	extractor *refmatrix.Extractor
	remapper  *subset.Remapper
}

// Classify scores every column of test against trained, given a label
// already assigned per reference per cell: assigned[r][c] is the
// label reference r assigned to test column c (typically produced by
// running classify.Single once per reference beforehand; see
// ClassifyAll). assigned must have one entry per reference in trained
// and one label per test column.
func Classify(test refmatrix.Matrix, assigned [][]int, trained *Trained, opts Options) ([]Result, error) {
	numRefs := len(trained.References)
	if len(assigned) != numRefs {
		return nil, errors.E(errors.Invalid, "integrated.Classify: assigned must have one entry per reference")
	}
	numCells := test.NumSamples()
	for r, a := range assigned {
		if len(a) != numCells {
			return nil, errors.E(errors.Invalid, "integrated.Classify: assigned[", r, "] must have one label per test column")
		}
	}

	results := make([]Result, numCells)
	nWorkers := opts.numWorkers(numCells)
	log.Printf("integrated.Classify: reconciling %d cells across %d references with %d workers", numCells, numRefs, nWorkers)
	workspaces := make([]*workspace, nWorkers)
	for i := range workspaces {
		workspaces[i] = &workspace{
			extractor: refmatrix.NewExtractor(test, trained.Universe),
			remapper:  subset.NewRemapper(len(trained.Universe)),
		}
	}

	err := traverse.Each(nWorkers, func(jobIdx int) error {
		start := (jobIdx * numCells) / nWorkers
		end := ((jobIdx + 1) * numCells) / nWorkers
		ws := workspaces[jobIdx]
		for c := start; c < end; c++ {
			cellAssigned := make([]int, numRefs)
			for r := range cellAssigned {
				cellAssigned[r] = assigned[r][c]
			}
			results[c] = classifyOne(ws, c, test, trained, cellAssigned, opts)
		}
		return nil
	})
	if err != nil {
		return nil, errors.E(err, "integrated.Classify: classification failed")
	}
	return results, nil
}

func classifyOne(ws *workspace, c int, test refmatrix.Matrix, trained *Trained, assigned []int, opts Options) Result {
	var testRanked subset.RankedVector
	if test.IsSparse() {
		testRanked = ws.extractor.ExtractRankedSparse(c)
	} else {
		testRanked = ws.extractor.ExtractRankedDense(c)
	}

	allRefs := make([]int, len(assigned))
	for i := range allRefs {
		allRefs[i] = i
	}

	miniverse := unionMarkers(trained, assigned, allRefs)
	ws.remapper.Clear()
	for _, u := range miniverse {
		ws.remapper.Add(u)
	}

	scores := scoreReferences(ws.remapper, testRanked, trained, assigned, allRefs, opts.Quantile)
	best, delta := classify.BestAndDelta(scores)

	if opts.FineTune && len(assigned) > 1 {
		best, delta, scores = fineTune(ws.remapper, testRanked, trained, assigned, scores, opts.Quantile, opts.FineTuneThreshold)
	}

	return Result{Scores: scores, Best: best, Delta: delta}
}

// unionMarkers gathers the sorted union of universe positions marking
// the cell's assigned label, across only the references listed in
// refs (indices into trained.References / assigned).
func unionMarkers(trained *Trained, assigned []int, refs []int) []int {
	set := make(map[int]struct{})
	for _, r := range refs {
		for _, u := range trained.References[r].Markers[assigned[r]] {
			set[u] = struct{}{}
		}
	}
	out := make([]int, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	sort.Ints(out)
	return out
}

// scoreReferences computes one quantile-aggregated correlation score
// per reference in refs (indices into trained.References / assigned),
// remapping the cached test and profile ranked vectors through r
// (already built over the current miniverse) and rescaling. The
// returned slice is parallel to refs, not to trained.References.
func scoreReferences(r *subset.Remapper, testRanked subset.RankedVector, trained *Trained, assigned []int, refs []int, quantile float64) []float64 {
	query := remapAndScale(r, testRanked)

	scores := make([]float64, len(refs))
	for i, ref := range refs {
		profiles := trained.References[ref].Profiles[assigned[ref]]
		plan := classify.PlanQuantile(len(profiles), quantile)
		dists := make([]float64, len(profiles))
		for j, p := range profiles {
			profile := remapAndScale(r, p)
			dists[j] = rank.L2DenseDense(query, profile)
		}
		sort.Float64s(dists)
		scores[i] = plan.Score(dists)
	}
	return scores
}

func remapAndScale(r *subset.Remapper, ranked subset.RankedVector) []float64 {
	remapped := r.Remap(ranked)
	values := make([]float64, r.Size())
	for _, p := range remapped {
		values[p.Ix] = p.Value
	}
	return rank.Scale(values)
}
