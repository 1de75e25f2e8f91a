package reference

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

var zeroKey [highwayhash.Size]byte

// Checksum returns a content hash of t: its marker subset, the label
// count, and every label's scaled-rank profiles in their final
// (post-training, physically reordered) column order. Two Trained
// references built from the same matrix, labels, and subset hash
// identically, which callers can use to confirm a serialized reference
// matches what they trained without re-running the KMKNN build.
func (t *Trained) Checksum() [highwayhash.Size]byte {
	var buf []byte
	appendInt := func(v int) {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		buf = append(buf, b[:]...)
	}
	appendFloat := func(v float64) {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(int64(v*1e9)))
		buf = append(buf, b[:]...)
	}

	appendInt(t.NumMarkers)
	for _, g := range t.Subset {
		appendInt(g)
	}
	appendInt(len(t.Labels))

	for _, li := range t.Labels {
		appendInt(li.NumSamples())
		if li.Dense != nil {
			for _, col := range li.Dense.Columns {
				for _, v := range col {
					appendFloat(v)
				}
			}
		} else {
			for _, col := range li.Sparse.Columns {
				appendFloat(col.Zero)
				for _, ix := range col.Indices {
					appendInt(ix)
				}
				for _, v := range col.Values {
					appendFloat(v)
				}
			}
		}
	}

	return highwayhash.Sum(buf, zeroKey[:])
}
