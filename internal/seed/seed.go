// Package seed derives a deterministic PRNG seed for KMKNN training, so
// that training the same reference twice (same markers, same samples)
// always picks the same k-means++ seeds.
package seed

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
)

// ForTraining returns a seed for math/rand's source, deterministic in
// (numMarkers, numSamples). Hashing the pair rather than multiplying it
// (as a literal offset-plus-product scheme would) avoids seed collisions
// between very different marker/sample counts whose products are equal.
func ForTraining(numMarkers, numSamples int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(numMarkers))
	return farm.Hash64WithSeed(buf[:], uint64(numSamples))
}
