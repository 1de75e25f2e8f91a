package refmatrix

import (
	"github.com/grailbio/singlepp/rank"
	"github.com/grailbio/singlepp/subset"
)

// Extractor pulls a single column of a Matrix restricted to a gene
// subset, producing a scaled-rank vector — dense or sparse depending
// on the matrix's native storage. The subset may be given in any
// order; Extractor sanitizes it once at construction so every
// per-column extraction reuses the sorted form the Matrix needs plus
// the permutation back to the caller's original subset order.
type Extractor struct {
	m         Matrix
	sanitizer *subset.Sanitizer
	denseBuf  []float64
}

// NewExtractor builds an Extractor over m restricted to genes (unique,
// any order).
func NewExtractor(m Matrix, genes []int) *Extractor {
	san := subset.NewSanitizer(genes, m.IsSparse())
	return &Extractor{
		m:         m,
		sanitizer: san,
		denseBuf:  make([]float64, len(genes)),
	}
}

// NumMarkers is the size of the gene subset this extractor was built
// over.
func (e *Extractor) NumMarkers() int {
	return len(e.denseBuf)
}

// ExtractRankedDense extracts column col as a dense raw RankedVector
// over the subset: one entry per marker, in the caller's original
// subset order. This is the pre-scale form cached for fine-tuning,
// which remaps and rescales a shrunk marker subset without
// re-extracting from the matrix.
func (e *Extractor) ExtractRankedDense(col int) subset.RankedVector {
	sorted := e.sanitizer.ExtractionSubset()
	e.m.DenseColumnSubset(col, sorted, e.denseBuf)
	return e.sanitizer.FillRanksDense(e.denseBuf)
}

// ExtractRankedSparse extracts column col as a sparse raw
// RankedVector over the subset: only the nonzero markers, in
// ascending subset-position order. Only meaningful when the backing
// Matrix is sparse.
func (e *Extractor) ExtractRankedSparse(col int) subset.RankedVector {
	sorted := e.sanitizer.ExtractionSubset()
	geneIx, values := e.m.SparseColumnSubset(col, sorted)
	return e.sanitizer.FillRanksSparse(geneIx, values)
}

// ScaleDense extracts column col and returns its dense scaled-rank
// vector over the subset, in the caller's original subset order.
func (e *Extractor) ScaleDense(col int) []float64 {
	ranked := e.ExtractRankedDense(col)
	values := make([]float64, len(ranked))
	for _, p := range ranked {
		values[p.Ix] = p.Value
	}
	return rank.Scale(values)
}

// ScaleSparse extracts column col and returns its sparse scaled-rank
// vector over the subset. Only meaningful when the backing Matrix is
// sparse; callers should check m.IsSparse() (or use ScaleAuto) before
// preferring this over ScaleDense.
func (e *Extractor) ScaleSparse(col int) rank.SparseScaled {
	ranked := e.ExtractRankedSparse(col)
	rawValues := make([]float64, len(ranked))
	subsetIx := make([]int, len(ranked))
	for i, p := range ranked {
		rawValues[i] = p.Value
		subsetIx[i] = p.Ix
	}
	return rank.ScaleSparse(rawValues, subsetIx, e.NumMarkers())
}

// ScaleAuto dispatches to ScaleDense or ScaleSparse based on the
// backing Matrix's native storage, returning the dense result
// densified when the matrix is sparse so callers that always want a
// dense vector (e.g. the query side of a KMKNN search) don't need to
// branch themselves.
func (e *Extractor) ScaleAuto(col int) []float64 {
	if !e.m.IsSparse() {
		return e.ScaleDense(col)
	}
	sparse := e.ScaleSparse(col)
	buf := make([]float64, e.NumMarkers())
	rank.DensifySparse(e.NumMarkers(), sparse, buf)
	return buf
}
