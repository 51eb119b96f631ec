package mem

import (
	"errors"
	"fmt"
	"math/bits"
	"runtime"
	"unsafe"

	"github.com/hupe1980/rawbuf/internal/conv"
)

// ErrTooLarge is returned when a request cannot be represented as a Go slice.
var ErrTooLarge = errors.New("mem: allocation too large")

// CacheLineAlignment is the byte alignment required for AVX-512 (64 bytes).
const CacheLineAlignment = 64

// IsPowerOfTwo reports whether align is a valid alignment.
func IsPowerOfTwo(align int) bool {
	return align > 0 && bits.OnesCount(uint(align)) == 1
}

// AllocAligned allocates a byte slice of the given size whose first byte sits
// at an address divisible by align. align must be a power of two.
//
// Note: This function allocates up to align-1 extra bytes to find an aligned
// start. The underlying array is kept alive by the returned slice, whose
// capacity is clipped to size so appends can never reach the padding.
//
// Requests beyond the runtime's maximum slice size return ErrTooLarge. Heap
// exhaustion below that limit is still fatal to the process.
func AllocAligned(size, align int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	if align <= 1 {
		return makeBytes(size)
	}

	padded, err := conv.AddInt(size, align-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	buf, err := makeBytes(padded)
	if err != nil {
		return nil, err
	}

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	mask := uintptr(align - 1)
	offset := int((uintptr(align) - (addr & mask)) & mask)

	return buf[offset : offset+size : offset+size], nil
}

// makeBytes turns the runtime's "makeslice: len out of range" panic into
// ErrTooLarge.
func makeBytes(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			buf, err = nil, fmt.Errorf("%w: %d bytes: %v", ErrTooLarge, n, re)
		}
	}()
	return make([]byte, n), nil
}

// IsAligned reports whether the first byte of b is aligned to align.
func IsAligned(b []byte, align int) bool {
	if len(b) == 0 {
		return true
	}
	addr := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // unsafe is required for memory alignment
	return addr&uintptr(align-1) == 0
}
