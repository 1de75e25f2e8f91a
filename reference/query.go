package reference

// KNearest returns the k physical columns of this label's store with
// the smallest squared L2 distance to a query, as measured by
// computeDistance(col) — which callers build from their own query
// vector and li.Dense/li.Sparse — along with those distances, both
// sorted ascending by distance. Column numbers index directly into
// li.Dense.Columns or li.Sparse.Columns.
func (li *LabelIndex) KNearest(k int, computeDistance func(col int) float64) (cols []int, dists []float64) {
	if k > li.NumSamples() {
		k = li.NumSamples()
	}
	if k <= 0 {
		return nil, nil
	}
	neighbors := findClosestNeighbors(k, li.kmknn, computeDistance)
	cols = make([]int, len(neighbors))
	dists = make([]float64, len(neighbors))
	for i, n := range neighbors {
		cols[i] = n.Col
		dists[i] = n.Dist
	}
	return cols, dists
}
