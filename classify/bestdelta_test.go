package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestAndDeltaPicksArgmaxAndGap(t *testing.T) {
	best, delta := BestAndDelta([]float64{0.2, 0.9, 0.5})
	assert.Equal(t, 1, best)
	assert.InDelta(t, 0.4, delta, 1e-12)
}

func TestBestAndDeltaSingleScoreIsNaN(t *testing.T) {
	best, delta := BestAndDelta([]float64{0.7})
	assert.Equal(t, 0, best)
	assert.True(t, math.IsNaN(delta))
}

func TestBestAndDeltaEmptyIsNaN(t *testing.T) {
	best, delta := BestAndDelta(nil)
	assert.Equal(t, -1, best)
	assert.True(t, math.IsNaN(delta))
}

func TestBestAndDeltaTiesPickFirstMax(t *testing.T) {
	best, delta := BestAndDelta([]float64{0.5, 0.9, 0.9, 0.1})
	assert.Equal(t, 1, best)
	assert.InDelta(t, 0.0, delta, 1e-12)
}
