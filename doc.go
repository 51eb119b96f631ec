// Package rawbuf provides a fixed-capacity typed buffer over raw memory.
//
// A Buffer owns one contiguous region sized for a fixed number of elements of
// a pointer-free type T. It offers bounds-checked bulk copies into and out of
// arbitrary offsets and releases its region exactly once.
//
// # Quick Start
//
//	buf, err := rawbuf.New[uint32](4)
//	if err != nil { ... }
//	defer buf.Close()
//
//	_ = buf.Write(0, []uint32{1, 2, 3, 4})
//	data, _ := buf.Read(0, 4) // [1 2 3 4]
//
// # Errors
//
// Nothing in the package panics on bad input except MustNew. Out-of-range
// accesses return a *BoundsError (errors.Is(err, ErrOutOfBounds)) and leave
// the buffer untouched; failed construction returns an *AllocationError
// (errors.Is(err, ErrAllocationFailed)).
//
// # Storage
//
// Regions come from an Allocator:
//
//   - HeapAllocator (default): Go heap, aligned to the element type or WithAlignment
//   - MmapAllocator: off-heap anonymous mappings, returned to the OS on Close
//
// A resource.Controller passed via WithMemoryController caps the bytes held by
// all buffers that share it.
//
// # Element Types
//
// T must not contain pointers, strings, slices, maps, channels, functions or
// interfaces, because the region is plain bytes the garbage collector does not
// scan. Fixed-size arrays and structs of numeric fields are fine. New returns
// ErrUnsupportedType otherwise.
//
// Slots that were never written hold unspecified values. Both bundled
// allocators happen to hand out zeroed memory, but callers must not rely on it.
//
// # Lifetime
//
// Close releases the region. If a Buffer becomes unreachable without Close, a
// runtime cleanup releases it instead and logs a warning. Only one of the two
// paths ever runs.
//
// # Concurrency
//
// Buffer is not safe for concurrent use. Wrap it in a Guarded to share it.
package rawbuf
