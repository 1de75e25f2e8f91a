package markers

import (
	"math"
	"runtime"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// RepresentativeSet is one reference's worth of representative
// expression profiles: one profile per label, e.g. the per-gene median
// expression across all samples assigned to that label. Multiple
// RepresentativeSets may be passed to ChooseClassicMarkers at once, in
// which case a label's marker score is the sum of its log-fold changes
// across every set that has both labels being compared.
type RepresentativeSet struct {
	// Profiles[c] is the representative profile for label Labels[c],
	// one value per gene. All profiles, across all sets, must have the
	// same length.
	Profiles [][]float64
	Labels   []int
}

// ChooseClassicMarkersOptions configures ChooseClassicMarkers.
type ChooseClassicMarkersOptions struct {
	// Number of top genes per pairwise comparison. -1 auto-selects via
	// NumberOfClassicMarkers.
	Number int
	// NumThreads bounds worker count; <= 0 means full parallelism.
	NumThreads int
}

// NumberOfClassicMarkers returns 500*(2/3)^log2(numLabels) rounded to
// the nearest integer, steadily decreasing the per-comparison marker
// count as the number of labels grows, to avoid an excessive total
// number of features.
func NumberOfClassicMarkers(numLabels int) int {
	return int(math.Round(500.0 * math.Pow(2.0/3.0, math.Log(float64(numLabels))/math.Log(2.0))))
}

type pairKey struct{ a, b int }

// ChooseClassicMarkers implements the classic SingleR marker-choosing
// method: for labels A and B, the marker set is the top genes with the
// largest positive difference of A's representative profile over B's
// (interpretable as log-fold change for log-expression inputs). Ties
// are broken in favor of earlier gene rows. When choosing markers for
// A vs B across multiple RepresentativeSets, only sets containing both
// labels contribute, and their per-gene differences are summed before
// ranking.
func ChooseClassicMarkers(reps []RepresentativeSet, opts ChooseClassicMarkersOptions) (Markers, error) {
	if len(reps) == 0 {
		return nil, errors.E(errors.Invalid, "choose_classic_markers: reps must contain at least one entry")
	}

	ngenes := -1
	for _, r := range reps {
		if len(r.Profiles) != len(r.Labels) {
			return nil, errors.E(errors.Invalid, "choose_classic_markers: Profiles and Labels length mismatch")
		}
		for _, p := range r.Profiles {
			if ngenes < 0 {
				ngenes = len(p)
			} else if len(p) != ngenes {
				return nil, errors.E(errors.Invalid, "choose_classic_markers: all profiles must have the same length")
			}
		}
	}
	if ngenes < 0 {
		return nil, errors.E(errors.Invalid, "choose_classic_markers: no profiles supplied")
	}

	nlabels := 0
	for _, r := range reps {
		for _, l := range r.Labels {
			if l+1 > nlabels {
				nlabels = l + 1
			}
		}
	}

	// labelToCol[r][label] = column index within reps[r], or -1 if absent.
	labelToCol := make([][]int, len(reps))
	for r, rep := range reps {
		col := make([]int, nlabels)
		for i := range col {
			col[i] = -1
		}
		for c, l := range rep.Labels {
			if col[l] != -1 {
				return nil, errors.E(errors.Invalid, "choose_classic_markers: a label appears twice in one reference")
			}
			col[l] = c
		}
		labelToCol[r] = col
	}

	actualNumber := opts.Number
	if actualNumber < 0 {
		actualNumber = NumberOfClassicMarkers(nlabels)
	}
	if actualNumber > ngenes {
		actualNumber = ngenes
	}

	output := make(Markers, nlabels)
	for i := range output {
		output[i] = make([][]int, nlabels)
	}

	seen := map[pairKey]bool{}
	var pairs []pairKey
	for _, rep := range reps {
		for _, l1 := range rep.Labels {
			for _, l2 := range rep.Labels {
				if l2 >= l1 {
					continue
				}
				k := pairKey{a: l1, b: l2}
				if !seen[k] {
					seen[k] = true
					pairs = append(pairs, k)
				}
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	type geneDiff struct {
		diff float64
		gene int
	}

	processPair := func(p int, sorter, working []geneDiff) {
		left, right := pairs[p].a, pairs[p].b
		for g := range sorter {
			sorter[g] = geneDiff{diff: 0, gene: g}
		}

		for r, rep := range reps {
			lcol := labelToCol[r][left]
			rcol := labelToCol[r][right]
			if lcol < 0 || rcol < 0 {
				continue
			}
			lprof, rprof := rep.Profiles[lcol], rep.Profiles[rcol]
			for g := 0; g < ngenes; g++ {
				sorter[g].diff += lprof[g] - rprof[g]
			}
		}

		for flip := 0; flip < 2; flip++ {
			copy(working, sorter)
			if flip == 1 {
				for i := range working {
					working[i].diff = -working[i].diff
				}
			}
			sort.SliceStable(working, func(i, j int) bool { return working[i].diff < working[j].diff })

			stuff := make([]int, 0, actualNumber)
			for g := 0; g < actualNumber && g < len(working) && working[g].diff < 0; g++ {
				stuff = append(stuff, working[g].gene)
			}

			if flip == 1 {
				output[left][right] = stuff
			} else {
				output[right][left] = stuff
			}
		}
	}

	if len(pairs) == 0 {
		return output, nil
	}

	// Shard pairs into opts.NumThreads (or runtime.NumCPU()) contiguous
	// ranges, one traverse.Each job per shard, matching how
	// pileupSNPMain shards its sample range across jobs.
	nWorkers := opts.NumThreads
	if nWorkers <= 0 {
		nWorkers = runtime.NumCPU()
	}
	if nWorkers > len(pairs) {
		nWorkers = len(pairs)
	}

	log.Printf("choose_classic_markers: ranking %d label pairs over %d genes with %d workers", len(pairs), ngenes, nWorkers)
	err := traverse.Each(nWorkers, func(jobIdx int) error {
		start := (jobIdx * len(pairs)) / nWorkers
		end := ((jobIdx + 1) * len(pairs)) / nWorkers
		sorter := make([]geneDiff, ngenes)
		working := make([]geneDiff, ngenes)
		log.Debug.Printf("choose_classic_markers: worker %d handling pairs [%d, %d)", jobIdx, start, end)
		for p := start; p < end; p++ {
			processPair(p, sorter, working)
		}
		return nil
	})
	if err != nil {
		return nil, errors.E(err, "choose_classic_markers: parallel comparison failed")
	}

	return output, nil
}
