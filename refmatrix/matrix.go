package refmatrix

// Matrix is a gene-by-sample expression matrix, queried one sample
// (column) at a time. Implementations are either fully dense or
// column-sparse (CSC); Extractor branches on IsSparse to pick the
// cheaper extraction path.
type Matrix interface {
	NumGenes() int
	NumSamples() int
	IsSparse() bool

	// DenseColumnSubset fills buf (length len(genes)) with column col's
	// value at each gene in genes, which must be sorted ascending.
	DenseColumnSubset(col int, genes []int, buf []float64)

	// SparseColumnSubset returns the nonzero entries of column col
	// restricted to genes (sorted ascending), as parallel gene-index /
	// value slices in ascending gene-index order. Implementations of
	// dense matrices may simply return every entry in genes.
	SparseColumnSubset(col int, genes []int) (geneIx []int, values []float64)
}

// Dense is a fully dense, column-major Matrix.
type Dense struct {
	numGenes int
	columns  [][]float64 // columns[col][gene]
}

// NewDense builds a Dense matrix from one slice of length numGenes per
// sample.
func NewDense(numGenes int, columns [][]float64) *Dense {
	return &Dense{numGenes: numGenes, columns: columns}
}

func (d *Dense) NumGenes() int   { return d.numGenes }
func (d *Dense) NumSamples() int { return len(d.columns) }
func (d *Dense) IsSparse() bool  { return false }

func (d *Dense) DenseColumnSubset(col int, genes []int, buf []float64) {
	column := d.columns[col]
	for i, g := range genes {
		buf[i] = column[g]
	}
}

func (d *Dense) SparseColumnSubset(col int, genes []int) ([]int, []float64) {
	column := d.columns[col]
	geneIx := make([]int, 0, len(genes))
	values := make([]float64, 0, len(genes))
	for _, g := range genes {
		if v := column[g]; v != 0 {
			geneIx = append(geneIx, g)
			values = append(values, v)
		}
	}
	return geneIx, values
}

// Sparse is a column-major compressed-sparse-column Matrix: Indices[c]
// and Values[c] list the nonzero genes of sample c in ascending
// gene-index order.
type Sparse struct {
	numGenes int
	indices  [][]int
	values   [][]float64
}

// NewSparse builds a Sparse matrix. Each indices[c] must be sorted
// ascending and parallel to values[c].
func NewSparse(numGenes int, indices [][]int, values [][]float64) *Sparse {
	return &Sparse{numGenes: numGenes, indices: indices, values: values}
}

func (s *Sparse) NumGenes() int   { return s.numGenes }
func (s *Sparse) NumSamples() int { return len(s.indices) }
func (s *Sparse) IsSparse() bool  { return true }

func (s *Sparse) DenseColumnSubset(col int, genes []int, buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
	idx, vals := s.indices[col], s.values[col]
	gi, ii := 0, 0
	for gi < len(genes) && ii < len(idx) {
		switch {
		case genes[gi] == idx[ii]:
			buf[gi] = vals[ii]
			gi++
			ii++
		case genes[gi] < idx[ii]:
			gi++
		default:
			ii++
		}
	}
}

func (s *Sparse) SparseColumnSubset(col int, genes []int) ([]int, []float64) {
	idx, vals := s.indices[col], s.values[col]
	var outIx []int
	var outVal []float64
	gi, ii := 0, 0
	for gi < len(genes) && ii < len(idx) {
		switch {
		case genes[gi] == idx[ii]:
			outIx = append(outIx, genes[gi])
			outVal = append(outVal, vals[ii])
			gi++
			ii++
		case genes[gi] < idx[ii]:
			gi++
		default:
			ii++
		}
	}
	return outIx, outVal
}
