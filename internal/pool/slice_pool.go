package pool

import "sync"

// Slice pool for efficient reuse of transient int slices. The record
// encoder stages translated coordinate planes in these before they are
// copied into the output buffer.
var intSlicePool = sync.Pool{
	New: func() any { return &[]int{} },
}

// GetIntSlice retrieves and resizes an int slice from the pool.
//
// The returned slice has exactly the requested length; contents are
// unspecified and must be overwritten. The caller must call the returned
// cleanup function (typically with defer) to return the slice to the
// pool, and must not retain the slice past that call.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []int: A slice with length equal to size
//   - func(): Cleanup function returning the slice to the pool
//
// Example:
//
//	xs, cleanup := pool.GetIntSlice(len(points))
//	defer cleanup()
//	// Stage values in xs...
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { intSlicePool.Put(ptr) }
}
