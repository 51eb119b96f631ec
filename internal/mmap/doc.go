// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// # Overview
//
// An anonymous mapping is a read-write region obtained directly from the
// operating system. It lives outside the Go heap: the garbage collector
// neither scans nor moves it, so it must only hold pointer-free data.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, released with munmap(2)
//   - Windows: VirtualAlloc(MEM_RESERVE|MEM_COMMIT), released with VirtualFree(MEM_RELEASE)
//   - Other platforms: MapAnon returns ErrUnsupported
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. However, callers
// must ensure no goroutines access Bytes() after Close() returns.
package mmap
