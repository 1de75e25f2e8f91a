package reference

import (
	"container/heap"
	"math"
	"math/rand"
	"sort"

	"github.com/grailbio/singlepp/internal/seed"
)

// sampleSource abstracts over dense and sparse per-label storage so
// selectSeeds can be written once. L2 returns the squared L2 distance
// between two samples currently held at positions i and j; Reorder
// physically rearranges storage so that the sample now at position k
// was, before the call, at position identities[k].
type sampleSource interface {
	NumSamples() int
	L2(i, j int) float64
	Reorder(identities []int)
}

// kmknnIndex is the per-label KMKNN layout: after training, a label's
// samples have been physically reordered so that the first len(seedRanges)
// columns are the seeds (in selection order), and every subsequent
// column belongs to exactly one seed's cluster, grouped contiguously
// and sorted by ascending distance to that seed. distances holds the
// (non-squared) distance of every non-seed column to its seed, indexed
// by the SAME physical column number as the column itself — the first
// len(seedRanges) entries of distances are therefore unused filler,
// which is what lets seedRanges' offsets double as physical column
// offsets directly.
type kmknnIndex struct {
	distances  []float64
	seedRanges [][2]int // (start, count excluding the seed itself)
}

// selectSeeds runs a k-means++-style weighted seed selection over src
// (num_seeds = round(sqrt(numSamples))), seeded deterministically from
// (numMarkers, numSamples) so training is reproducible. It returns the
// physical reordering to apply (identities[k] = original position of
// the sample that should end up at position k) and the resulting
// kmknnIndex. Callers must apply src.Reorder(identities) themselves
// once they've also reordered any parallel per-sample metadata.
func selectSeeds(numMarkers, numSamples int, src sampleSource) ([]int, kmknnIndex) {
	numSeeds := int(math.Round(math.Sqrt(float64(numSamples))))
	if numSeeds < 1 {
		numSeeds = 1
	}
	if numSeeds > numSamples {
		numSeeds = numSamples
	}

	assignment := make([]int, numSamples)
	mindist := make([]float64, numSamples)
	for i := range mindist {
		mindist[i] = 1
	}
	cumulative := make([]float64, numSamples)

	identities := make([]int, 0, numSamples)
	rng := rand.New(rand.NewSource(int64(seed.ForTraining(numMarkers, numSamples))))

	actualSeeds := 0
	for se := 0; se < numSeeds; se++ {
		cumulative[0] = mindist[0]
		for s := 1; s < numSamples; s++ {
			cumulative[s] = cumulative[s-1] + mindist[s]
		}
		total := cumulative[numSamples-1]
		if total == 0 {
			break
		}

		var chosen int
		for {
			w := total * rng.Float64()
			chosen = sort.Search(numSamples, func(i int) bool { return cumulative[i] >= w })
			if chosen != numSamples && mindist[chosen] != 0 {
				break
			}
		}

		mindist[chosen] = 0
		assignment[chosen] = se
		identities = append(identities, chosen)
		actualSeeds++

		for sam := 0; sam < numSamples; sam++ {
			if mindist[sam] == 0 {
				continue
			}
			l2 := src.L2(chosen, sam)
			if se == 0 || l2 < mindist[sam] {
				mindist[sam] = l2
				assignment[sam] = se
			}
		}
	}

	type distIx struct {
		dist float64
		ix   int
	}
	grouping := make([][]distIx, actualSeeds)
	for sam := 0; sam < numSamples; sam++ {
		a := assignment[sam]
		grouping[a] = append(grouping[a], distIx{dist: mindist[sam], ix: sam})
	}

	distances := make([]float64, actualSeeds) // dead-zone filler, see doc comment
	seedRanges := make([][2]int, actualSeeds)

	for se := 0; se < actualSeeds; se++ {
		group := grouping[se]
		sort.Slice(group, func(i, j int) bool {
			if group[i].dist != group[j].dist {
				return group[i].dist < group[j].dist
			}
			return group[i].ix < group[j].ix
		})

		rangeStart := len(distances)
		seedRanges[se] = [2]int{rangeStart, len(group) - 1}

		seedOrig := identities[se]
		for _, x := range group {
			if x.ix != seedOrig {
				distances = append(distances, math.Sqrt(x.dist))
				identities = append(identities, x.ix)
			}
		}
	}

	return identities, kmknnIndex{distances: distances, seedRanges: seedRanges}
}

// neighbor is one entry of a k-nearest-neighbor result: the squared L2
// distance to the query, and the physical column this neighbor lives
// at (post-training reordering).
type neighbor struct {
	Dist float64
	Col  int
}

type neighborHeap []neighbor

func (h neighborHeap) Len() int            { return len(h) }
func (h neighborHeap) Less(i, j int) bool  { return h[i].Dist > h[j].Dist } // max-heap
func (h neighborHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) { *h = append(*h, x.(neighbor)) }
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// findClosestNeighbors returns the k samples (by physical column) with
// the smallest squared L2 distance to the query, as measured by
// computeDistance(col), exploiting the triangle inequality over idx's
// seed structure to avoid computing every distance.
func findClosestNeighbors(k int, idx kmknnIndex, computeDistance func(col int) float64) []neighbor {
	numSeeds := len(idx.seedRanges)
	seedDistances := make([]neighbor, numSeeds)
	for se := 0; se < numSeeds; se++ {
		seedDistances[se] = neighbor{Dist: computeDistance(se), Col: se}
	}
	sort.Slice(seedDistances, func(i, j int) bool { return seedDistances[i].Dist < seedDistances[j].Dist })

	h := &neighborHeap{}
	toAdd := k
	if toAdd > numSeeds {
		toAdd = numSeeds
	}
	for i := 0; i < toAdd; i++ {
		*h = append(*h, seedDistances[i])
	}
	heap.Init(h)

	threshold := math.Inf(1)
	if h.Len() >= k {
		threshold = (*h)[0].Dist
	}

	lowerBound := func(vals []float64, target float64) int {
		return sort.Search(len(vals), func(i int) bool { return vals[i] >= target })
	}
	upperBound := func(vals []float64, target float64) int {
		return sort.Search(len(vals), func(i int) bool { return vals[i] > target })
	}

	for _, sd := range seedDistances {
		se := sd.Col
		rng := idx.seedRanges[se]
		if rng[1] == 0 {
			continue
		}
		firstsubj, lastsubj := rng[0], rng[0]+rng[1]

		if !math.IsInf(threshold, 1) {
			thresholdSqrt := math.Sqrt(threshold)
			query2seed := math.Sqrt(sd.Dist)
			maxSubj2Seed := idx.distances[lastsubj-1]

			lowerBd := query2seed - thresholdSqrt
			if maxSubj2Seed < lowerBd {
				continue
			}
			firstsubj += lowerBound(idx.distances[firstsubj:lastsubj], lowerBd)

			upperBd := query2seed + thresholdSqrt
			if maxSubj2Seed > upperBd {
				lastsubj = firstsubj + upperBound(idx.distances[firstsubj:lastsubj], upperBd)
			}
		}

		for s := firstsubj; s < lastsubj; s++ {
			d := computeDistance(s)
			if d <= threshold {
				heap.Push(h, neighbor{Dist: d, Col: s})
				if h.Len() >= k {
					if h.Len() > k {
						heap.Pop(h)
					}
					threshold = (*h)[0].Dist
				}
			}
		}
	}

	out := make([]neighbor, len(*h))
	copy(out, *h)
	sort.Slice(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out
}
