package pool

import "sync"

// Pool of uint32 scratch slices. Rows are staged through uint32 slices twice:
// once at build time (copying caller rows before parallel encode) and once at
// read time (decode target before values are yielded), so reuse matters.
var uint32SlicePool = sync.Pool{
	New: func() any { return &[]uint32{} },
}

// GetUint32Slice retrieves and resizes a uint32 slice from the pool.
//
// The returned slice has exactly the requested length. If the pooled slice
// has insufficient capacity, a new slice is allocated. The caller must call
// the returned cleanup function to return the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []uint32: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	scratch, cleanup := pool.GetUint32Slice(rowLen)
//	defer cleanup()
//	// Decode into scratch...
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint32SlicePool.Put(ptr) }
}
