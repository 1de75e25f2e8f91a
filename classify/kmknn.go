package classify

import (
	"github.com/grailbio/singlepp/rank"
	"github.com/grailbio/singlepp/reference"
)

func anyNonzero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return true
		}
	}
	return false
}

// topKL2 returns the k smallest squared L2 distances between query (a
// densified scaled-rank vector, whether or not the test matrix is
// sparse) and a label's trained reference profiles, ascending.
func topKL2(li *reference.LabelIndex, query []float64, k int) []float64 {
	queryHasNonzero := anyNonzero(query)

	var computeDistance func(col int) float64
	if li.Dense != nil {
		computeDistance = func(col int) float64 {
			return rank.L2DenseDense(query, li.Dense.Columns[col])
		}
	} else {
		numMarkers := li.Sparse.NumMarkers
		computeDistance = func(col int) float64 {
			return rank.L2DenseSparse(numMarkers, query, queryHasNonzero, li.Sparse.Columns[col])
		}
	}

	_, dists := li.KNearest(k, computeDistance)
	return dists
}
