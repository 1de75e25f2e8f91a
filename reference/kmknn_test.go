package reference

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteStore is a trivial sampleSource over raw vectors, used only to
// exercise selectSeeds/findClosestNeighbors against a brute-force
// reference.
type bruteStore struct {
	cols [][]float64
}

func (b *bruteStore) NumSamples() int { return len(b.cols) }
func (b *bruteStore) L2(i, j int) float64 {
	var s float64
	for k := range b.cols[i] {
		d := b.cols[i][k] - b.cols[j][k]
		s += d * d
	}
	return s
}
func (b *bruteStore) Reorder(identities []int) {
	reordered := make([][]float64, len(identities))
	for k, orig := range identities {
		reordered[k] = b.cols[orig]
	}
	b.cols = reordered
}

func randomStore(n, d int, rng *rand.Rand) *bruteStore {
	cols := make([][]float64, n)
	for i := range cols {
		v := make([]float64, d)
		for j := range v {
			v[j] = rng.Float64()
		}
		cols[i] = v
	}
	return &bruteStore{cols: cols}
}

func bruteForceKNearest(store *bruteStore, query []float64, k int) []float64 {
	dists := make([]float64, len(store.cols))
	for i, col := range store.cols {
		var s float64
		for j := range col {
			d := col[j] - query[j]
			s += d * d
		}
		dists[i] = s
	}
	// selection sort the smallest k, good enough for small test sizes.
	out := append([]float64(nil), dists...)
	for i := 0; i < len(out); i++ {
		minIx := i
		for j := i + 1; j < len(out); j++ {
			if out[j] < out[minIx] {
				minIx = j
			}
		}
		out[i], out[minIx] = out[minIx], out[i]
	}
	if k > len(out) {
		k = len(out)
	}
	return out[:k]
}

func TestSelectSeedsReordersWithoutLosingSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	store := randomStore(40, 5, rng)
	before := make(map[float64]int)
	for _, c := range store.cols {
		before[c[0]]++
	}

	identities, idx := selectSeeds(5, store.NumSamples(), store)
	require.Len(t, identities, 40)
	store.Reorder(identities)

	after := make(map[float64]int)
	for _, c := range store.cols {
		after[c[0]]++
	}
	assert.Equal(t, before, after)

	numSeeds := len(idx.seedRanges)
	assert.Greater(t, numSeeds, 0)
	total := numSeeds
	for _, r := range idx.seedRanges {
		total += r[1]
	}
	assert.Equal(t, 40, total)
}

func TestFindClosestNeighborsMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	store := randomStore(60, 4, rng)

	identities, idx := selectSeeds(4, store.NumSamples(), store)
	store.Reorder(identities)

	query := make([]float64, 4)
	for i := range query {
		query[i] = rng.Float64()
	}
	computeDistance := func(col int) float64 {
		var s float64
		for j, v := range store.cols[col] {
			d := v - query[j]
			s += d * d
		}
		return s
	}

	const k = 5
	neighbors := findClosestNeighbors(k, idx, computeDistance)
	require.Len(t, neighbors, k)

	want := bruteForceKNearest(store, query, k)
	for i := range want {
		assert.InDelta(t, math.Sqrt(want[i]), math.Sqrt(neighbors[i].Dist), 1e-9)
	}
}
