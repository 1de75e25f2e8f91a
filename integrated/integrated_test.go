package integrated

import (
	"testing"

	"github.com/grailbio/singlepp/classify"
	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/reference"
	"github.com/grailbio/singlepp/refmatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainTwoLabelReference(t *testing.T) (*reference.Trained, markers.Markers) {
	t.Helper()
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

	trained, err := reference.Train(m, labels, subset, reference.Options{})
	require.NoError(t, err)

	mk := markers.Markers{
		{{}, {0, 1}},
		{{1, 0}, {}},
	}
	return trained, mk
}

func TestTrainBuildsSharedUniverseAcrossReferences(t *testing.T) {
	ref0, mk0 := trainTwoLabelReference(t)
	ref1, mk1 := trainTwoLabelReference(t)

	inputs, err := PrepareInput([]*reference.Trained{ref0, ref1}, []markers.Markers{mk0, mk1})
	require.NoError(t, err)

	trained, err := Train(inputs)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, trained.Universe)
	require.Len(t, trained.References, 2)
	for _, rd := range trained.References {
		require.Len(t, rd.Profiles, 2)
		assert.Len(t, rd.Profiles[0], 3)
		assert.Len(t, rd.Profiles[1], 3)
	}
}

func TestClassifyAllPicksAReferenceForEveryCell(t *testing.T) {
	ref0, mk0 := trainTwoLabelReference(t)
	ref1, mk1 := trainTwoLabelReference(t)

	inputs, err := PrepareInput([]*reference.Trained{ref0, ref1}, []markers.Markers{mk0, mk1})
	require.NoError(t, err)
	trained, err := Train(inputs)
	require.NoError(t, err)

	test := refmatrix.NewDense(4, [][]float64{
		{5, 1, 2, 3},
		{1, 6, 3, 2},
	})

	perRef, results, err := ClassifyAll(
		test,
		[]*reference.Trained{ref0, ref1},
		[]markers.Markers{mk0, mk1},
		classify.Options{Quantile: 1},
		trained,
		Options{Quantile: 1},
	)
	require.NoError(t, err)
	require.Len(t, perRef, 2)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Best == 0 || r.Best == 1)
		assert.Len(t, r.Scores, 2)
	}
}

func TestClassifyAllWithFineTuneAgreesOnBest(t *testing.T) {
	ref0, mk0 := trainTwoLabelReference(t)
	ref1, mk1 := trainTwoLabelReference(t)

	inputs, err := PrepareInput([]*reference.Trained{ref0, ref1}, []markers.Markers{mk0, mk1})
	require.NoError(t, err)
	trained, err := Train(inputs)
	require.NoError(t, err)

	test := refmatrix.NewDense(4, [][]float64{
		{5, 1, 2, 3},
	})

	_, plain, err := ClassifyAll(test, []*reference.Trained{ref0, ref1}, []markers.Markers{mk0, mk1},
		classify.Options{Quantile: 1}, trained, Options{Quantile: 1})
	require.NoError(t, err)

	_, tuned, err := ClassifyAll(test, []*reference.Trained{ref0, ref1}, []markers.Markers{mk0, mk1},
		classify.Options{Quantile: 1}, trained, Options{Quantile: 1, FineTune: true, FineTuneThreshold: 0.05})
	require.NoError(t, err)

	assert.Equal(t, plain[0].Best, tuned[0].Best)
}
