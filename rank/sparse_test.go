package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleSparseMatchesDense(t *testing.T) {
	dense := []float64{0, 3, 0, -2, 0, 5, 0, 0}
	var values []float64
	var geneIx []int
	for i, v := range dense {
		if v != 0 {
			values = append(values, v)
			geneIx = append(geneIx, i)
		}
	}

	want := Scale(dense)
	got := ScaleSparse(values, geneIx, len(dense))

	buf := make([]float64, len(dense))
	DensifySparse(len(dense), got, buf)
	for i := range want {
		assert.InDelta(t, want[i], buf[i], 1e-9)
	}
}

func TestScaleSparseAllZero(t *testing.T) {
	total := 6
	got := ScaleSparse(nil, nil, total)
	assert.Empty(t, got.Indices)
	assert.InDelta(t, 0, got.Zero, 1e-9)
}

func TestScaleSparseWithTies(t *testing.T) {
	dense := []float64{0, 2, 2, 0, -1, 0}
	var values []float64
	var geneIx []int
	for i, v := range dense {
		if v != 0 {
			values = append(values, v)
			geneIx = append(geneIx, i)
		}
	}
	want := Scale(dense)
	got := ScaleSparse(values, geneIx, len(dense))
	buf := make([]float64, len(dense))
	DensifySparse(len(dense), got, buf)
	for i := range want {
		assert.InDelta(t, want[i], buf[i], 1e-9)
	}
}
