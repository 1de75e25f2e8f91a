package integrated

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

var zeroKey [highwayhash.Size]byte

// Checksum returns a content hash of t: its shared gene universe and
// every reference's translated markers and profiles, in the same
// spirit as reference.Trained.Checksum — a diagnostic fingerprint two
// integrated-training runs over the same inputs can compare without
// diffing the whole artifact.
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

	appendInt(len(t.Universe))
	for _, g := range t.Universe {
		appendInt(g)
	}

	appendInt(len(t.References))
	for _, ref := range t.References {
		appendInt(len(ref.Markers))
		for _, genes := range ref.Markers {
			appendInt(len(genes))
			for _, g := range genes {
				appendInt(g)
			}
		}
		for _, profiles := range ref.Profiles {
			appendInt(len(profiles))
			for _, rv := range profiles {
				appendInt(len(rv))
				for _, p := range rv {
					appendInt(p.Ix)
					appendFloat(p.Value)
				}
			}
		}
	}

	return highwayhash.Sum(buf, zeroKey[:])
}
