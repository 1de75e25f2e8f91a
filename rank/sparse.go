package rank

import (
	"math"
	"sort"
)

// ScaleSparse is the sparse counterpart of Scale: given the nonzero
// entries of a value vector of length total (values[i] observed at
// geneIx[i], one entry per nonzero position, any order), it computes
// the same mean-centered, L2-normalized tied-rank vector Scale would,
// but returns it in SparseScaled form, exploiting the fact that every
// implicit zero entry shares one tied rank. geneIx values and total
// both refer to the same subset-local index space as whatever len(values)
// covers; callers are expected to have already restricted to a gene
// subset via subset.Sanitizer.
//
// This produces the same scaled values as calling Scale on the
// densified vector, up to floating-point summation order; the savings
// come entirely from doing
// O(nonzero log nonzero) work instead of O(total).
func ScaleSparse(values []float64, geneIx []int, total int) SparseScaled {
	type entry struct {
		val float64
		ix  int
	}
	var negs, poss []entry
	for i, v := range values {
		switch {
		case v < 0:
			negs = append(negs, entry{val: v, ix: geneIx[i]})
		case v > 0:
			poss = append(poss, entry{val: v, ix: geneIx[i]})
		}
		// v == 0 entries are not expected to be passed explicitly; they
		// behave identically to the implicit zero block below.
	}
	numZero := total - len(negs) - len(poss)

	sortEntries := func(e []entry) {
		sort.Slice(e, func(i, j int) bool {
			if e[i].val != e[j].val {
				return e[i].val < e[j].val
			}
			return e[i].ix < e[j].ix
		})
	}
	sortEntries(negs)
	sortEntries(poss)

	// meanTiedRanks assigns the mean tied rank (0-indexed, local to this
	// group) to every entry of a sorted-ascending group.
	meanTiedRanks := func(e []entry) []float64 {
		out := make([]float64, len(e))
		curRank := 0
		for i := 0; i < len(e); {
			j := i + 1
			accumulated := float64(curRank)
			curRank++
			for j < len(e) && e[j].val == e[i].val {
				accumulated += float64(curRank)
				curRank++
				j++
			}
			meanRank := accumulated / float64(j-i)
			for k := i; k < j; k++ {
				out[k] = meanRank
			}
			i = j
		}
		return out
	}

	negRanks := meanTiedRanks(negs)
	posRanksLocal := meanTiedRanks(poss)

	zeroOffset := len(negs)
	posOffset := float64(len(negs) + numZero)
	posRanks := make([]float64, len(poss))
	for i, r := range posRanksLocal {
		posRanks[i] = r + posOffset
	}

	var zeroRank float64
	if numZero > 0 {
		zeroRank = float64(zeroOffset) + float64(numZero-1)/2
	}

	centerRank := float64(total-1) / 2
	sumSquares := 0.0

	centeredZero := zeroRank - centerRank
	if numZero > 0 {
		sumSquares += float64(numZero) * centeredZero * centeredZero
	}

	centeredNeg := make([]float64, len(negs))
	for i, r := range negRanks {
		c := r - centerRank
		centeredNeg[i] = c
		sumSquares += c * c
	}
	centeredPos := make([]float64, len(poss))
	for i, r := range posRanks {
		c := r - centerRank
		centeredPos[i] = c
		sumSquares += c * c
	}

	if sumSquares < minSumSquares {
		sumSquares = minSumSquares
	}
	scale := math.Sqrt(sumSquares) * 2

	out := SparseScaled{Zero: centeredZero / scale}
	for i, e := range negs {
		out.Indices = append(out.Indices, e.ix)
		out.Values = append(out.Values, centeredNeg[i]/scale)
	}
	for i, e := range poss {
		out.Indices = append(out.Indices, e.ix)
		out.Values = append(out.Values, centeredPos[i]/scale)
	}

	// Sort the combined nonzero entries by gene index for deterministic
	// iteration order downstream (L2DenseSparse/L2SparseSparse don't
	// require it, but deterministic ordering makes checksums and tests
	// reproducible).
	order := make([]int, len(out.Indices))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return out.Indices[order[i]] < out.Indices[order[j]] })
	sortedIx := make([]int, len(order))
	sortedVal := make([]float64, len(order))
	for i, o := range order {
		sortedIx[i] = out.Indices[o]
		sortedVal[i] = out.Values[o]
	}
	out.Indices = sortedIx
	out.Values = sortedVal

	return out
}
