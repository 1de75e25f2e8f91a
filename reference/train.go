package reference

import (
	"runtime"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/singlepp/rank"
	"github.com/grailbio/singlepp/refmatrix"
	"github.com/grailbio/singlepp/subset"
)

// DenseStore holds one label's dense scaled-rank profiles, one per
// sample, physically reordered in place by KMKNN training. Ranked
// holds the same samples' pre-scale raw RankedVectors (one entry per
// marker), kept for fine-tuning: remapping and rescaling onto a
// shrinking marker subset without re-extracting from the original
// matrix.
type DenseStore struct {
	NumMarkers int
	Columns    [][]float64
	Ranked     []subset.RankedVector
}

func (d *DenseStore) NumSamples() int { return len(d.Columns) }

func (d *DenseStore) L2(i, j int) float64 {
	return rank.L2DenseDense(d.Columns[i], d.Columns[j])
}

func (d *DenseStore) Reorder(identities []int) {
	reorderedCols := make([][]float64, len(identities))
	reorderedRanked := make([]subset.RankedVector, len(identities))
	for k, orig := range identities {
		reorderedCols[k] = d.Columns[orig]
		reorderedRanked[k] = d.Ranked[orig]
	}
	d.Columns = reorderedCols
	d.Ranked = reorderedRanked
}

// SparseStore holds one label's sparse scaled-rank profiles, plus the
// pre-scale raw RankedVectors used for fine-tuning (see DenseStore.Ranked).
type SparseStore struct {
	NumMarkers int
	Columns    []rank.SparseScaled
	Ranked     []subset.RankedVector
}

func (s *SparseStore) NumSamples() int { return len(s.Columns) }

func (s *SparseStore) L2(i, j int) float64 {
	buf := make([]float64, s.NumMarkers)
	return rank.L2SparseSparse(s.NumMarkers, s.Columns[i], s.Columns[j], buf)
}

func (s *SparseStore) Reorder(identities []int) {
	reorderedCols := make([]rank.SparseScaled, len(identities))
	reorderedRanked := make([]subset.RankedVector, len(identities))
	for k, orig := range identities {
		reorderedCols[k] = s.Columns[orig]
		reorderedRanked[k] = s.Ranked[orig]
	}
	s.Columns = reorderedCols
	s.Ranked = reorderedRanked
}

// LabelIndex is one label's trained KMKNN index: exactly one of Dense
// or Sparse is populated, matching the Trained reference's storage
// kind.
type LabelIndex struct {
	Dense  *DenseStore
	Sparse *SparseStore
	kmknn  kmknnIndex
}

// NumSamples is the number of reference samples assigned to this
// label.
func (li *LabelIndex) NumSamples() int {
	if li.Dense != nil {
		return li.Dense.NumSamples()
	}
	return li.Sparse.NumSamples()
}

// Trained is an immutable, trained reference: a per-label KMKNN index
// built over a fixed marker gene subset. Train and TrainIntersect are
// the only constructors; nothing mutates a *Trained afterwards.
type Trained struct {
	// Subset holds reference-matrix gene indices, in the order every
	// cached profile's scaled-rank and raw-rank vectors are expressed.
	Subset []int
	// TestSubset holds the corresponding test-matrix gene indices, same
	// length and order as Subset. Train sets it equal to Subset (shared
	// gene numbering); TrainIntersect sets it to the matched test-side
	// indices, letting classify extract the test profile correctly even
	// though the two matrices don't share a gene numbering.
	TestSubset []int
	NumMarkers int
	Sparse     bool
	Labels     []LabelIndex
}

// Options configures Train and TrainIntersect.
type Options struct {
	// NumThreads bounds worker count for both extraction and per-label
	// index construction; <= 0 means full parallelism.
	NumThreads int
}

func (o Options) numWorkers(n int) int {
	w := o.NumThreads
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// countLabels validates labels (one per sample, non-negative, every
// label in [0, numLabels) assigned at least one sample) and returns
// its per-label sample count and per-sample within-label offset.
func countLabels(caller string, numSamples int, labels []int) (labelCount, labelOffset []int, err error) {
	if len(labels) != numSamples {
		return nil, nil, errors.E(errors.Invalid, caller, ": len(labels) must equal m.NumSamples()")
	}

	numLabels := 0
	for _, l := range labels {
		if l < 0 {
			return nil, nil, errors.E(errors.Invalid, caller, ": labels must be non-negative")
		}
		if l+1 > numLabels {
			numLabels = l + 1
		}
	}

	labelCount = make([]int, numLabels)
	labelOffset = make([]int, numSamples)
	for c, l := range labels {
		labelOffset[c] = labelCount[l]
		labelCount[l]++
	}
	for l, n := range labelCount {
		if n == 0 {
			return nil, nil, errors.E(errors.Invalid, caller, ": label ", l, " has no samples")
		}
	}
	return labelCount, labelOffset, nil
}

// Train builds a KMKNN index per label from m, restricted to
// geneSubset (any order, referring to m's own gene numbering).
// labels[c] gives the label of sample c and must cover every label in
// [0, numLabels) with at least one sample.
func Train(m refmatrix.Matrix, labels []int, geneSubset []int, opts Options) (*Trained, error) {
	numSamples := m.NumSamples()
	if len(geneSubset) == 0 {
		return nil, errors.E(errors.Invalid, "reference.Train: gene subset must be non-empty")
	}

	labelCount, labelOffset, err := countLabels("reference.Train", numSamples, labels)
	if err != nil {
		return nil, err
	}
	numLabels := len(labelCount)

	extractor := refmatrix.NewExtractor(m, geneSubset)
	numMarkers := extractor.NumMarkers()
	sparse := m.IsSparse()

	log.Printf("reference.Train: extracting %d samples across %d labels over %d marker genes", numSamples, numLabels, numMarkers)

	denseByLabel := make([][][]float64, numLabels)
	sparseByLabel := make([][]rank.SparseScaled, numLabels)
	rankedByLabel := make([][]subset.RankedVector, numLabels)
	for l, n := range labelCount {
		rankedByLabel[l] = make([]subset.RankedVector, n)
		if sparse {
			sparseByLabel[l] = make([]rank.SparseScaled, n)
		} else {
			denseByLabel[l] = make([][]float64, n)
		}
	}

	nWorkers := opts.numWorkers(numSamples)
	err = traverse.Each(nWorkers, func(jobIdx int) error {
		start := (jobIdx * numSamples) / nWorkers
		end := ((jobIdx + 1) * numSamples) / nWorkers
		for c := start; c < end; c++ {
			l := labels[c]
			pos := labelOffset[c]
			if sparse {
				ranked := extractor.ExtractRankedSparse(c)
				rankedByLabel[l][pos] = ranked
				rawValues := make([]float64, len(ranked))
				subsetIx := make([]int, len(ranked))
				for i, p := range ranked {
					rawValues[i] = p.Value
					subsetIx[i] = p.Ix
				}
				sparseByLabel[l][pos] = rank.ScaleSparse(rawValues, subsetIx, numMarkers)
			} else {
				ranked := extractor.ExtractRankedDense(c)
				rankedByLabel[l][pos] = ranked
				values := make([]float64, len(ranked))
				for _, p := range ranked {
					values[p.Ix] = p.Value
				}
				denseByLabel[l][pos] = rank.Scale(values)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.E(err, "reference.Train: rank extraction failed")
	}

	result := &Trained{
		Subset:     append([]int(nil), geneSubset...),
		TestSubset: append([]int(nil), geneSubset...),
		NumMarkers: numMarkers,
		Sparse:     sparse,
		Labels:     make([]LabelIndex, numLabels),
	}

	log.Printf("reference.Train: building per-label KMKNN indexes")
	lWorkers := opts.numWorkers(numLabels)
	err = traverse.Each(lWorkers, func(jobIdx int) error {
		start := (jobIdx * numLabels) / lWorkers
		end := ((jobIdx + 1) * numLabels) / lWorkers
		for l := start; l < end; l++ {
			var src sampleSource
			var li LabelIndex
			log.Debug.Printf("reference.Train: label %d: %d samples", l, labelCount[l])
			if sparse {
				st := &SparseStore{NumMarkers: numMarkers, Columns: sparseByLabel[l], Ranked: rankedByLabel[l]}
				li.Sparse = st
				src = st
			} else {
				// Copy this label's per-sample vectors into one
				// contiguous huge-page-backed arena so the all-pairs
				// distance passes below and later KMKNN queries stay
				// cache- and TLB-friendly instead of chasing n
				// independently heap-allocated slices.
				cols := denseByLabel[l]
				arena := newFloatArena(len(cols) * numMarkers)
				packed := make([][]float64, len(cols))
				for i, col := range cols {
					dst := arena[i*numMarkers : (i+1)*numMarkers]
					copy(dst, col)
					packed[i] = dst
				}
				st := &DenseStore{NumMarkers: numMarkers, Columns: packed, Ranked: rankedByLabel[l]}
				li.Dense = st
				src = st
			}

			identities, idx := selectSeeds(numMarkers, src.NumSamples(), src)
			src.Reorder(identities)
			li.kmknn = idx
			result.Labels[l] = li
		}
		return nil
	})
	if err != nil {
		return nil, errors.E(err, "reference.Train: index construction failed")
	}

	log.Debug.Printf("reference.Train: checksum %x", result.Checksum())
	return result, nil
}

// TrainIntersect behaves like Train but first intersects geneSubset
// against the gene identifiers a caller-supplied lookup resolves to,
// dropping markers absent from the reference matrix's own gene
// universe. refGeneAt(g) returns the shared identifier for reference
// gene g; geneSubset is expressed in test-gene numbering, with
// testGeneAt doing the equivalent lookup on the test side. The
// returned Trained's Subset is in reference-gene numbering, already
// intersected.
func TrainIntersect(m refmatrix.Matrix, labels []int, geneSubset []int, testGeneAt func(int) string, refGeneAt func(int) string, opts Options) (*Trained, error) {
	refIxByID := make(map[string]int, m.NumGenes())
	for g := 0; g < m.NumGenes(); g++ {
		id := refGeneAt(g)
		if _, ok := refIxByID[id]; !ok {
			refIxByID[id] = g
		}
	}

	intersected := make([]int, 0, len(geneSubset))
	testSide := make([]int, 0, len(geneSubset))
	for _, tg := range geneSubset {
		id := testGeneAt(tg)
		if rg, ok := refIxByID[id]; ok {
			intersected = append(intersected, rg)
			testSide = append(testSide, tg)
		}
	}
	if len(intersected) == 0 {
		// An empty intersection is not an error (spec.md §7): a test
		// panel and reference that share no gene still classify, with
		// classify.SingleIntersect's degenerate-intersection convention
		// (every label scores a perfect, zero-margin match). Build a
		// Trained with no markers and no index instead of calling Train,
		// which requires a non-empty subset.
		log.Printf("reference.TrainIntersect: empty gene intersection, skipping index construction")
		labelCount, _, err := countLabels("reference.TrainIntersect", m.NumSamples(), labels)
		if err != nil {
			return nil, err
		}
		return &Trained{
			Subset:     []int{},
			TestSubset: []int{},
			NumMarkers: 0,
			Sparse:     m.IsSparse(),
			Labels:     make([]LabelIndex, len(labelCount)),
		}, nil
	}

	trained, err := Train(m, labels, intersected, opts)
	if err != nil {
		return nil, err
	}
	trained.TestSubset = testSide
	return trained, nil
}
