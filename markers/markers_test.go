package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectGenesFirstOccurrenceWins(t *testing.T) {
	test := []string{"A", "B", "C", "B"}
	ref := []string{"C", "A", "A"}
	in := IntersectGenes(test, ref)

	// test index 0 ("A") matches ref index 1 (first "A"); test index 2
	// ("C") matches ref index 0; "B" has no match; the repeated "B" at
	// test index 3 is moot since "B" never matched in the first place.
	require.Len(t, in, 2)
	assert.Equal(t, Pair{TestIx: 0, RefIx: 1}, in[0])
	assert.Equal(t, Pair{TestIx: 2, RefIx: 0}, in[1])
}

func TestSubsetToMarkersTruncatesAndRemaps(t *testing.T) {
	m := Markers{
		{nil, {5, 2, 8}},
		{{8, 1}, nil},
	}
	subset := SubsetToMarkers(m, 2)
	// genes 5,2 survive from row0->1 (top 2 of [5,2,8]); genes 8,1 survive from row1->0.
	assert.ElementsMatch(t, []int{1, 2, 5, 8}, subset)

	// indices have been rewritten to positions on subset.
	for _, row := range m {
		for _, list := range row {
			for _, g := range list {
				assert.True(t, g >= 0 && g < len(subset))
			}
		}
	}
}

func TestSubsetToMarkersIntersectRespectsAvailability(t *testing.T) {
	// marker list for 0->1 is gene 5 (best), 2, 8, in that preference order;
	// only genes 2 and 8 are in the intersection.
	m := Markers{
		{nil, {5, 2, 8}},
		{nil, nil},
	}
	intersection := Intersection{
		{TestIx: 0, RefIx: 2},
		{TestIx: 1, RefIx: 8},
	}
	subset := SubsetToMarkersIntersect(&intersection, m, 2)
	assert.Len(t, subset, 2)
	assert.Len(t, m[0][1], 2)
}

func TestChooseClassicMarkersPicksUpregulatedGene(t *testing.T) {
	reps := []RepresentativeSet{
		{
			Profiles: [][]float64{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
			},
			Labels: []int{0, 1, 2},
		},
	}
	out, err := ChooseClassicMarkers(reps, ChooseClassicMarkersOptions{Number: 2})
	require.NoError(t, err)
	require.Len(t, out, 3)
	// label 0's profile is high on gene 0; it should be a marker of 0 vs 1.
	assert.Contains(t, out[0][1], 0)
}

func TestNumberOfClassicMarkersDecreasesWithLabels(t *testing.T) {
	small := NumberOfClassicMarkers(2)
	big := NumberOfClassicMarkers(50)
	assert.Greater(t, small, big)
}
