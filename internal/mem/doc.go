// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides Go-heap byte regions aligned to an arbitrary power of two, e.g. the
// natural alignment of an element type or 64 bytes for AVX-512 friendly layouts.
package mem
