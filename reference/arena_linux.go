//go:build linux

package reference

import (
	"reflect"
	"unsafe"

	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"
)

// newFloatArena allocates an anonymous, huge-page-advised mapping large
// enough for n float64s and returns it as a slice. Large reference
// matrices keep every label's scaled-rank profiles in one such arena
// instead of many small Go-heap slices, cutting TLB pressure during
// KMKNN training's all-pairs distance passes. Falls back silently to
// a regular make() if the mapping fails (e.g. no permission, memory
// pressure), since correctness never depends on the arena succeeding.
func newFloatArena(n int) []float64 {
	if n <= 0 {
		return nil
	}
	const hugePageSize = 2 << 20
	byteLen := n * int(unsafe.Sizeof(float64(0)))
	data, err := unix.Mmap(-1, 0, byteLen+hugePageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		log.Debug.Printf("reference: huge-page arena mmap failed, falling back to heap: %v", err)
		return make([]float64, n)
	}
	if err := unix.Madvise(data, unix.MADV_HUGEPAGE); err != nil {
		log.Debug.Printf("reference: madvise(MADV_HUGEPAGE) failed, continuing without it: %v", err)
	}
	start := ((uintptr(unsafe.Pointer(&data[0]))-1)/hugePageSize + 1) * hugePageSize

	var out []float64
	dh := (*reflect.SliceHeader)(unsafe.Pointer(&out))
	dh.Data = start
	dh.Len = n
	dh.Cap = n
	return out
}
