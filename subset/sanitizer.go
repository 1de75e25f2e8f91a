package subset

import "sort"

// Pair is a single (value, gene index) entry of a ranked vector, where
// the gene index refers to a position on some subset-of-interest (not
// necessarily the full gene universe).
type Pair struct {
	Value float64
	Ix    int
}

// RankedVector is a ranked vector: ascending by Value, Ix as tie-break,
// used to carry raw (unranked) values alongside the subset position
// they came from until scaling happens.
type RankedVector []Pair

func (v RankedVector) Len() int      { return len(v) }
func (v RankedVector) Swap(i, j int) { v[i], v[j] = v[j], v[i] }
func (v RankedVector) Less(i, j int) bool {
	if v[i].Value != v[j].Value {
		return v[i].Value < v[j].Value
	}
	return v[i].Ix < v[j].Ix
}

// Sort orders a RankedVector ascending by value, gene index as
// tie-break; FillRanks callers already return sorted output, but
// callers that build a RankedVector by other means (e.g. Remapper)
// should call this before treating it as a true ranked vector.
func (v RankedVector) Sort() { sort.Sort(v) }

// Sanitizer sanitizes a caller-provided, possibly unsorted gene subset
// into a sorted form suitable for driving a matrix extractor, while
// remembering how to map extracted values back onto the caller's
// original subset ordering. This matters because reference and test
// datasets are not guaranteed to agree on feature ordering, so the
// intersection of their gene universes is rarely already sorted.
type Sanitizer struct {
	sortedSubset []int
	permutation  []int // dense: sortedSubset[k] came from original position permutation[k]
	remapping    []int // sparse: remapping[geneIx-remapStart] = original subset position
	remapStart   int
	sparse       bool
}

// NewSanitizer builds a Sanitizer from sub, a set of unique (but not
// necessarily sorted) gene indices. sparse controls whether the
// sanitizer is used against sparse (indexed) or dense (positional)
// input via FillRanksSparse/FillRanksDense.
func NewSanitizer(sub []int, sparse bool) *Sanitizer {
	type posPair struct {
		geneIx int
		pos    int
	}
	store := make([]posPair, len(sub))
	for i, g := range sub {
		store[i] = posPair{geneIx: g, pos: i}
	}
	sort.Slice(store, func(i, j int) bool { return store[i].geneIx < store[j].geneIx })

	s := &Sanitizer{
		sortedSubset: make([]int, len(sub)),
		sparse:       sparse,
	}
	if sparse {
		if len(store) > 0 {
			s.remapStart = store[0].geneIx
			span := store[len(store)-1].geneIx - s.remapStart + 1
			s.remapping = make([]int, span)
		}
	} else {
		s.permutation = make([]int, len(sub))
	}
	for k, p := range store {
		s.sortedSubset[k] = p.geneIx
		if sparse {
			s.remapping[p.geneIx-s.remapStart] = p.pos
		} else {
			s.permutation[k] = p.pos
		}
	}
	return s
}

// ExtractionSubset is the sorted gene-index list to hand to a matrix
// extractor.
func (s *Sanitizer) ExtractionSubset() []int {
	return s.sortedSubset
}

// FillRanksDense builds a ranked vector from values already extracted
// in ExtractionSubset order (one value per entry of ExtractionSubset),
// with gene indices rewritten to the caller's original subset
// ordering, sorted ascending by value.
func (s *Sanitizer) FillRanksDense(values []float64) RankedVector {
	out := make(RankedVector, len(values))
	for k, v := range values {
		out[k] = Pair{Value: v, Ix: s.permutation[k]}
	}
	out.Sort()
	return out
}

// FillRanksSparse builds a ranked vector from a sparse extraction
// (geneIx, value pairs over the extraction subset), with gene indices
// rewritten to the caller's original subset ordering, sorted ascending
// by value.
func (s *Sanitizer) FillRanksSparse(geneIx []int, values []float64) RankedVector {
	out := make(RankedVector, len(values))
	for i, g := range geneIx {
		out[i] = Pair{Value: values[i], Ix: s.remapping[g-s.remapStart]}
	}
	out.Sort()
	return out
}
