package rank

import (
	"math"
	"sort"
)

// minSumSquares is the epsilon floor applied to the sum of squared
// centered ranks before taking the square root, so that an all-tied
// (zero-variance) profile never divides by zero.
const minSumSquares = 1e-8

// indexedValue pairs an observed value with its original position, used
// to sort while keeping track of where each value came from.
type indexedValue struct {
	val float64
	pos int
}

// Scale converts values (over slen genes, in the subset's native order)
// into a mean-centered, L2-normalized tied-rank vector of length slen.
// Equal values receive the mean of their tied rank positions. The
// result has sum(v) == 0 and sum(v^2) == 0.25 for any non-degenerate
// input; a zero-variance input (all values tied) yields an all-zero
// vector.
func Scale(values []float64) []float64 {
	n := len(values)
	collected := make([]indexedValue, n)
	for i, v := range values {
		collected[i] = indexedValue{val: v, pos: i}
	}
	sort.Slice(collected, func(i, j int) bool {
		if collected[i].val != collected[j].val {
			return collected[i].val < collected[j].val
		}
		return collected[i].pos < collected[j].pos
	})

	out := make([]float64, n)
	curRank := 0
	for i := 0; i < n; {
		j := i + 1
		accumulated := float64(curRank)
		curRank++
		for j < n && collected[j].val == collected[i].val {
			accumulated += float64(curRank)
			curRank++
			j++
		}
		meanRank := accumulated / float64(j-i)
		for k := i; k < j; k++ {
			out[collected[k].pos] = meanRank
		}
		i = j
	}

	centerRank := float64(n-1) / 2
	sumSquares := 0.0
	for i, o := range out {
		o -= centerRank
		out[i] = o
		sumSquares += o * o
	}

	if sumSquares < minSumSquares {
		sumSquares = minSumSquares
	}
	scale := math.Sqrt(sumSquares) * 2
	for i := range out {
		out[i] /= scale
	}
	return out
}
