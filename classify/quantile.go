package classify

import (
	"math"

	"github.com/grailbio/singlepp/rank"
)

// QuantilePlan precomputes, for a label with n reference profiles and
// a configured quantile in (0, 1], how many of that label's nearest
// neighbors (by ascending squared L2 distance) a score needs and how
// to combine them. The plan depends only on (n, quantile), so it is
// computed once per label and reused across every test cell and every
// fine-tuning round for that label.
type QuantilePlan struct {
	// K is the number of ascending-distance neighbors a score needs.
	K int
	// Left and Right are 0-indexed positions into that ascending-distance
	// order; Right is always K-1.
	Left, Right int
	// Interpolate is true when Left != Right, meaning the score is a
	// linear blend of the correlations at Left and Right rather than a
	// single value.
	Interpolate bool
	// UpperProp is the weight given to the larger correlation (at Left)
	// when Interpolate is true.
	UpperProp float64
}

// PlanQuantile builds the QuantilePlan for a label with n profiles.
func PlanQuantile(n int, quantile float64) QuantilePlan {
	denom := float64(n - 1)
	prod := denom * (1 - quantile)
	left := int(math.Floor(prod))
	right := int(math.Ceil(prod))
	if left == right {
		return QuantilePlan{K: left + 1, Left: left, Right: right}
	}
	return QuantilePlan{
		K:           right + 1,
		Left:        left,
		Right:       right,
		Interpolate: true,
		UpperProp:   float64(right) - prod,
	}
}

// Score combines the first p.K entries of ascendingL2 (squared L2
// distances, ascending) into a single quantile score.
func (p QuantilePlan) Score(ascendingL2 []float64) float64 {
	lower := rank.Correlation(ascendingL2[p.Right])
	if !p.Interpolate {
		return lower
	}
	upper := rank.Correlation(ascendingL2[p.Left])
	return lower + (upper-lower)*p.UpperProp
}
