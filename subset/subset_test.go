package subset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerDenseRoundTrip(t *testing.T) {
	// caller's subset, intentionally unsorted
	sub := []int{30, 10, 20}
	s := NewSanitizer(sub, false)
	assert.Equal(t, []int{10, 20, 30}, s.ExtractionSubset())

	// extractor returns values in sorted-subset order: gene 10 -> 5, gene 20 -> 1, gene 30 -> 9
	values := []float64{5, 1, 9}
	ranks := s.FillRanksDense(values)

	byIx := map[int]float64{}
	for _, p := range ranks {
		byIx[p.Ix] = p.Value
	}
	// Ix refers to position on the caller's original subset: sub[0]=30 -> value 9
	assert.Equal(t, 9.0, byIx[0])
	assert.Equal(t, 5.0, byIx[1])
	assert.Equal(t, 1.0, byIx[2])
}

func TestSanitizerSparseRoundTrip(t *testing.T) {
	sub := []int{30, 10, 20}
	s := NewSanitizer(sub, true)
	assert.Equal(t, []int{10, 20, 30}, s.ExtractionSubset())

	// sparse extraction only has gene 10 and gene 30 nonzero
	ranks := s.FillRanksSparse([]int{10, 30}, []float64{5, 9})
	byIx := map[int]float64{}
	for _, p := range ranks {
		byIx[p.Ix] = p.Value
	}
	assert.Equal(t, 5.0, byIx[1]) // gene 10 is caller position 1
	assert.Equal(t, 9.0, byIx[0]) // gene 30 is caller position 0
	assert.Len(t, ranks, 2)
}

func TestRemapperFiltersAndRenumbers(t *testing.T) {
	r := NewRemapper(10)
	r.Add(7)
	r.Add(2)
	r.Add(5)
	assert.Equal(t, 3, r.Size())

	input := RankedVector{{Value: 1, Ix: 2}, {Value: 2, Ix: 9}, {Value: 3, Ix: 5}, {Value: 4, Ix: 7}}
	out := r.Remap(input)
	assert.Len(t, out, 3) // ix 9 dropped, never Added

	want := map[int]float64{}
	for _, p := range out {
		want[p.Ix] = p.Value
	}
	assert.Equal(t, 1.0, want[1]) // 2 was Added second -> position 1
	assert.Equal(t, 3.0, want[2]) // 5 was Added third -> position 2
	assert.Equal(t, 4.0, want[0]) // 7 was Added first -> position 0
}

func TestRemapperClearIsReusable(t *testing.T) {
	r := NewRemapper(5)
	r.Add(1)
	r.Add(3)
	r.Clear()
	assert.Equal(t, 0, r.Size())

	out := r.Remap(RankedVector{{Value: 1, Ix: 1}})
	assert.Empty(t, out)

	r.Add(1)
	out = r.Remap(RankedVector{{Value: 1, Ix: 1}})
	assert.Len(t, out, 1)
}
