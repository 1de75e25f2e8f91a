package classify

import (
	"runtime"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/rank"
	"github.com/grailbio/singlepp/reference"
	"github.com/grailbio/singlepp/refmatrix"
	"github.com/grailbio/singlepp/subset"
)

// Options configures Single and SingleIntersect.
type Options struct {
	// Quantile selects how many of a label's nearest reference profiles
	// contribute to its score and how they're combined; see PlanQuantile.
	Quantile float64
	// FineTune enables the iterative marker-restriction refinement of
	// fineTune once the coarse top-K pass has produced a score per label.
	FineTune bool
	// FineTuneThreshold is the score margin below the current best that
	// still keeps a label in play during fine-tuning.
	FineTuneThreshold float64
	// NumThreads bounds worker count across test cells; <= 0 means full
	// parallelism.
	NumThreads int
}

func (o Options) numWorkers(n int) int {
	w := o.NumThreads
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Result is one test cell's classification: a score per label, the
// winning label, and its margin over the runner-up.
type Result struct {
	Scores []float64
	Best   int
	Delta  float64
}

// workspace is the per-worker scratch Single and SingleIntersect reuse
// across test cells: one Extractor (owns its own value buffer) and one
// fine-tuning workspace, allocated once before the parallel region and
// never touched by any other worker.
type workspace struct {
	extractor  *refmatrix.Extractor
	fineTuneWS *fineTuneWorkspace
	sparse     bool
}

// Single classifies every column of test against trained, one Result
// per column in input order.
func Single(test refmatrix.Matrix, trained *reference.Trained, mk markers.Markers, opts Options) ([]Result, error) {
	return classify(test, trained, mk, opts)
}

// SingleIntersect classifies test against a reference trained by
// TrainIntersect, whose gene subset was matched against a possibly
// different test gene universe: trained.TestSubset (not trained.Subset)
// gives the test-matrix positions to extract. When the intersection
// came up empty — trained.TestSubset has zero genes — every label's
// score is the convention of a perfect correlation (zero distance over
// zero shared genes) with a zero margin, per the reference's tie-break
// rule for a degenerate intersection.
func SingleIntersect(test refmatrix.Matrix, trained *reference.Trained, mk markers.Markers, opts Options) ([]Result, error) {
	if len(trained.TestSubset) == 0 {
		numLabels := len(trained.Labels)
		results := make([]Result, test.NumSamples())
		for c := range results {
			scores := make([]float64, numLabels)
			for l := range scores {
				scores[l] = 1
			}
			results[c] = Result{Scores: scores, Best: 0, Delta: 0}
		}
		return results, nil
	}
	return classify(test, trained, mk, opts)
}

func classify(test refmatrix.Matrix, trained *reference.Trained, mk markers.Markers, opts Options) ([]Result, error) {
	numLabels := len(trained.Labels)
	if numLabels == 0 {
		return nil, errors.E(errors.Invalid, "classify: trained reference has no labels")
	}

	plans := make([]QuantilePlan, numLabels)
	for l := range plans {
		plans[l] = PlanQuantile(trained.Labels[l].NumSamples(), opts.Quantile)
	}

	numCells := test.NumSamples()
	results := make([]Result, numCells)

	nWorkers := opts.numWorkers(numCells)
	log.Debug.Printf("classify: scoring %d cells against %d labels with %d workers", numCells, numLabels, nWorkers)
	workspaces := make([]*workspace, nWorkers)
	for i := range workspaces {
		workspaces[i] = &workspace{
			extractor:  refmatrix.NewExtractor(test, trained.TestSubset),
			fineTuneWS: newFineTuneWorkspace(trained.NumMarkers),
			sparse:     test.IsSparse(),
		}
	}

	err := traverse.Each(nWorkers, func(jobIdx int) error {
		start := (jobIdx * numCells) / nWorkers
		end := ((jobIdx + 1) * numCells) / nWorkers
		ws := workspaces[jobIdx]
		log.Debug.Printf("classify: worker %d scoring cells [%d, %d)", jobIdx, start, end)
		for c := start; c < end; c++ {
			results[c] = classifyOne(ws, c, trained, mk, plans, opts)
		}
		return nil
	})
	if err != nil {
		return nil, errors.E(err, "classify: classification failed")
	}
	return results, nil
}

func classifyOne(ws *workspace, c int, trained *reference.Trained, mk markers.Markers, plans []QuantilePlan, opts Options) Result {
	numLabels := len(trained.Labels)

	var testRanked subset.RankedVector
	if ws.sparse {
		testRanked = ws.extractor.ExtractRankedSparse(c)
	} else {
		testRanked = ws.extractor.ExtractRankedDense(c)
	}

	query := make([]float64, trained.NumMarkers)
	for _, p := range testRanked {
		query[p.Ix] = p.Value
	}
	query = rank.Scale(query)

	scores := make([]float64, numLabels)
	for l := range scores {
		dists := topKL2(&trained.Labels[l], query, plans[l].K)
		scores[l] = plans[l].Score(dists)
	}

	best, delta := BestAndDelta(scores)

	if opts.FineTune && numLabels > 1 {
		best, delta, scores = fineTune(ws.fineTuneWS, testRanked, trained, mk, plans, scores, opts.FineTuneThreshold)
	}

	return Result{Scores: scores, Best: best, Delta: delta}
}
