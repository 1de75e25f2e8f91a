package rank

// SparseScaled is a scaled-rank vector stored as a uniform "zero" value
// (shared by every gene not listed explicitly) plus a sparse list of
// deviating entries, in ascending gene-index order. This mirrors the
// observation that most genes in a scaled-rank vector carry the same
// rank value when the underlying profile is sparse (lots of zero
// counts map to one large tied rank block).
type SparseScaled struct {
	Zero    float64
	Indices []int
	Values  []float64
}

// HasNonzero reports whether the sparse vector carries any entry at
// all; used by the L2-to-correlation degeneracy rule (an all-zero
// scaled vector has no nonzero entries).
func (s SparseScaled) HasNonzero() bool {
	return len(s.Indices) > 0
}

// L2DenseDense computes the squared L2 distance between two dense
// scaled-rank vectors of equal length.
func L2DenseDense(a, b []float64) float64 {
	var l2 float64
	for i := range a {
		delta := a[i] - b[i]
		l2 += delta * delta
	}
	return l2
}

// L2DenseSparse computes the squared L2 distance between a dense
// scaled-rank vector query (length numMarkers) and a sparse scaled-rank
// vector ref, using the zero/nonzero decomposition so cost is
// proportional to the number of nonzero entries in ref rather than
// numMarkers.
func L2DenseSparse(numMarkers int, query []float64, queryHasNonzero bool, ref SparseScaled) float64 {
	var sum float64
	for i, ix := range ref.Indices {
		valRef := ref.Values[i]
		augmented := valRef - ref.Zero
		valQuery := query[ix]
		sum += augmented * (augmented - 2*valQuery)
	}
	base := 0.0
	if queryHasNonzero {
		base = 0.25
	}
	return base + sum - float64(numMarkers)*ref.Zero*ref.Zero
}

// L2SparseSparse computes the squared L2 distance between two sparse
// scaled-rank vectors sharing the same numMarkers gene universe, by
// densifying the smaller-complexity side (the query) into a scratch
// buffer and delegating to L2DenseSparse. buf must have length
// numMarkers; it is overwritten.
func L2SparseSparse(numMarkers int, query SparseScaled, ref SparseScaled, buf []float64) float64 {
	DensifySparse(numMarkers, query, buf)
	return L2DenseSparse(numMarkers, buf, query.HasNonzero(), ref)
}

// DensifySparse fills buf (which must have length numMarkers) with the
// dense representation of a sparse scaled-rank vector.
func DensifySparse(numMarkers int, vec SparseScaled, buf []float64) {
	for i := 0; i < numMarkers; i++ {
		buf[i] = vec.Zero
	}
	for i, ix := range vec.Indices {
		buf[ix] = vec.Values[i]
	}
}

// Correlation converts a squared L2 distance between two scaled-rank
// vectors into a Spearman correlation, 1 - 2*L2. When both sides are
// degenerate all-zero vectors (no variance, L2 == 0), this correctly
// returns 1: "confidently matched everything" for an empty comparison,
// rather than an undefined value.
func Correlation(l2 float64) float64 {
	return 1 - 2*l2
}
