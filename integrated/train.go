package integrated

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/singlepp/subset"
)

// ReferenceData is one reference's contribution to an integrated
// panel, rewritten into the shared "universe" gene coordinate space
// Trained.Universe defines.
type ReferenceData struct {
	// Markers[label] lists universe positions marking label among this
	// reference's own labels: the union, over every other label b this
	// reference distinguishes label from, of mk[label][b], translated
	// from subset positions to universe positions and with genes absent
	// from the universe dropped. Sorted ascending.
	Markers [][]int
	// Profiles[label] holds every one of this reference's profiles
	// assigned to label, as pre-scale ranked vectors already expressed
	// in universe-position coordinates.
	Profiles [][]subset.RankedVector
}

// Trained is C8's output: the shared gene universe (test-matrix gene
// indices, sorted unique) plus every reference's marker and profile
// data in that coordinate space.
type Trained struct {
	Universe   []int
	References []ReferenceData
}

// Train unions every reference's marker genes (each marker entry is a
// position into that reference's Trained.Subset, mapped to the shared
// test-matrix numbering via Trained.TestSubset) into one sorted gene
// universe, then
// rewrites every reference's markers and cached profile ranked vectors
// into that universe's coordinate space.
func Train(inputs []Input) (*Trained, error) {
	if len(inputs) == 0 {
		return nil, errors.E(errors.Invalid, "integrated.Train: at least one reference is required")
	}

	refGeneToTestGene := make([]map[int]int, len(inputs))
	universeSet := make(map[int]struct{})
	for r, in := range inputs {
		trained := in.Trained
		if len(trained.Subset) != len(trained.TestSubset) {
			return nil, errors.E(errors.Invalid, "integrated.Train: reference ", r, " has mismatched Subset/TestSubset")
		}
		m := make(map[int]int, len(trained.Subset))
		for k, refGene := range trained.Subset {
			m[refGene] = trained.TestSubset[k]
		}
		refGeneToTestGene[r] = m

		for _, row := range in.Markers {
			for _, list := range row {
				for _, g := range list {
					if g >= 0 && g < len(trained.TestSubset) {
						universeSet[trained.TestSubset[g]] = struct{}{}
					}
				}
			}
		}
	}

	universe := make([]int, 0, len(universeSet))
	for g := range universeSet {
		universe = append(universe, g)
	}
	sort.Ints(universe)

	maxTestGene := -1
	for _, g := range universe {
		if g > maxTestGene {
			maxTestGene = g
		}
	}
	universePos := make([]int, maxTestGene+1)
	for i := range universePos {
		universePos[i] = -1
	}
	for pos, g := range universe {
		universePos[g] = pos
	}

	refData := make([]ReferenceData, len(inputs))
	for r, in := range inputs {
		refData[r] = buildReferenceData(in, refGeneToTestGene[r], universePos)
	}

	result := &Trained{Universe: universe, References: refData}
	log.Debug.Printf("integrated.Train: checksum %x", result.Checksum())
	return result, nil
}

// buildReferenceData translates one reference's pairwise marker table
// and cached per-label profile ranked vectors (both expressed in
// subset-position numbering) into universe-position
// coordinates.
func buildReferenceData(in Input, refGeneToTestGene map[int]int, universePos []int) ReferenceData {
	trained := in.Trained
	mk := in.Markers

	// positionToUniverse[pos] gives the universe position of the
	// reference's pos'th subset marker (subset.RankedVector entries are
	// keyed by this same subset position), -1 if absent from the
	// universe.
	positionToUniverse := make([]int, trained.NumMarkers)
	for pos, refGene := range trained.Subset {
		testGene, ok := refGeneToTestGene[refGene]
		if !ok || testGene >= len(universePos) || universePos[testGene] < 0 {
			positionToUniverse[pos] = -1
			continue
		}
		positionToUniverse[pos] = universePos[testGene]
	}

	numLabels := mk.NumLabels()
	markerSets := make([]map[int]struct{}, numLabels)
	for l := range markerSets {
		markerSets[l] = make(map[int]struct{})
	}
	addGenes := func(label int, genes []int) {
		for _, g := range genes {
			if g < 0 || g >= len(trained.TestSubset) {
				continue
			}
			testGene := trained.TestSubset[g]
			if testGene >= len(universePos) {
				continue
			}
			if u := universePos[testGene]; u >= 0 {
				markerSets[label][u] = struct{}{}
			}
		}
	}
	for a, row := range mk {
		for b, list := range row {
			if a == b {
				continue
			}
			addGenes(a, list)
		}
	}

	labelMarkers := make([][]int, numLabels)
	for l, set := range markerSets {
		list := make([]int, 0, len(set))
		for u := range set {
			list = append(list, u)
		}
		sort.Ints(list)
		labelMarkers[l] = list
	}

	profiles := make([][]subset.RankedVector, numLabels)
	for l := 0; l < numLabels; l++ {
		li := &trained.Labels[l]
		var ranked []subset.RankedVector
		if li.Dense != nil {
			ranked = li.Dense.Ranked
		} else {
			ranked = li.Sparse.Ranked
		}
		out := make([]subset.RankedVector, len(ranked))
		for i, rv := range ranked {
			out[i] = remapRankedToUniverse(rv, positionToUniverse)
		}
		profiles[l] = out
	}

	return ReferenceData{Markers: labelMarkers, Profiles: profiles}
}

// remapRankedToUniverse translates a ranked vector keyed by
// reference-subset position into one keyed by shared universe
// position, dropping entries whose gene falls outside the universe.
func remapRankedToUniverse(ranked subset.RankedVector, positionToUniverse []int) subset.RankedVector {
	out := make(subset.RankedVector, 0, len(ranked))
	for _, p := range ranked {
		if u := positionToUniverse[p.Ix]; u >= 0 {
			out = append(out, subset.Pair{Value: p.Value, Ix: u})
		}
	}
	out.Sort()
	return out
}
