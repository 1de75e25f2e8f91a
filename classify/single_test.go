package classify

import (
	"testing"

	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/reference"
	"github.com/grailbio/singlepp/refmatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleRecoversOwnLabelAtQuantileOne(t *testing.T) {
	columns := [][]float64{
		{5, 1, 2, 3},
		{4, 1, 3, 2},
		{6, 2, 1, 4},
		{1, 5, 4, 2},
		{2, 4, 5, 1},
		{1, 6, 3, 2},
	}
	m := refmatrix.NewDense(4, columns)
	labels := []int{0, 0, 0, 1, 1, 1}
	subset := []int{0, 1, 2, 3}

	trained, err := reference.Train(m, labels, subset, reference.Options{NumThreads: 2})
	require.NoError(t, err)

	results, err := Single(m, trained, nil, Options{Quantile: 1, NumThreads: 2})
	require.NoError(t, err)
	require.Len(t, results, len(labels))

	for c, r := range results {
		assert.Equal(t, labels[c], r.Best, "cell %d", c)
		assert.Greater(t, r.Delta, 0.0, "cell %d", c)
		assert.InDelta(t, 1.0, r.Scores[labels[c]], 1e-9, "cell %d", c)
	}
}

func TestSingleFineTuneAgreesWithPlainWhenMarginExceedsThreshold(t *testing.T) {
	columns := [][]float64{
		{5, 1, 2, 3},
		{4, 1, 3, 2},
		{6, 2, 1, 4},
		{1, 5, 4, 2},
		{2, 4, 5, 1},
		{1, 6, 3, 2},
		{3, 3, 3, 9},
		{3, 9, 3, 3},
		{9, 3, 3, 3},
	}
	m := refmatrix.NewDense(4, columns)
	labels := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	subset := []int{0, 1, 2, 3}

	trained, err := reference.Train(m, labels, subset, reference.Options{})
	require.NoError(t, err)

	mk := markers.Markers{
		{{}, {0, 1}, {2, 3}},
		{{1, 0}, {}, {3, 2}},
		{{3, 2}, {2, 3}, {}},
	}

	plain, err := Single(m, trained, mk, Options{Quantile: 1, FineTune: false})
	require.NoError(t, err)
	tuned, err := Single(m, trained, mk, Options{Quantile: 1, FineTune: true, FineTuneThreshold: 0.05})
	require.NoError(t, err)

	for c := range labels {
		assert.Equal(t, plain[c].Best, tuned[c].Best, "cell %d", c)
	}
}

func TestSingleIntersectEmptyIntersectionYieldsUnitScores(t *testing.T) {
	columns := [][]float64{
		{5, 1, 2, 3},
		{1, 5, 4, 2},
	}
	m := refmatrix.NewDense(4, columns)
	labels := []int{0, 1}
	subset := []int{0, 1, 2, 3}

	trained, err := reference.Train(m, labels, subset, reference.Options{})
	require.NoError(t, err)
	trained.TestSubset = nil

	test := refmatrix.NewDense(4, [][]float64{{1, 2, 3, 4}})
	results, err := SingleIntersect(test, trained, nil, Options{Quantile: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Best)
	assert.Equal(t, 0.0, results[0].Delta)
	for _, s := range results[0].Scores {
		assert.Equal(t, 1.0, s)
	}
}
