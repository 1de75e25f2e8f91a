package refmatrix

import (
	"testing"

	"github.com/grailbio/singlepp/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseExtractorMatchesDirectScale(t *testing.T) {
	// 5 genes, 2 samples.
	m := NewDense(5, [][]float64{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
	})
	genes := []int{4, 1, 3} // unsorted subset, caller order matters
	e := NewExtractor(m, genes)

	got := e.ScaleDense(0)
	// column 0 restricted to genes [4,1,3] in caller order -> values [5,2,4]
	want := rank.Scale([]float64{5, 2, 4})
	require.Len(t, got, 3)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestSparseExtractorMatchesDenseEquivalent(t *testing.T) {
	dense := NewDense(6, [][]float64{{0, 3, 0, -2, 0, 5}})
	sparse := NewSparse(6, [][]int{{1, 3, 5}}, [][]float64{{3, -2, 5}})

	genes := []int{0, 1, 2, 3, 4, 5}
	denseExtractor := NewExtractor(dense, genes)
	sparseExtractor := NewExtractor(sparse, genes)

	want := denseExtractor.ScaleDense(0)
	got := sparseExtractor.ScaleAuto(0)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
}
