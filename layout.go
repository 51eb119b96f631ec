package rawbuf

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/rawbuf/internal/conv"
	"github.com/hupe1980/rawbuf/internal/mem"
)

// CacheLineAlignment is a 64-byte alignment suitable for AVX-512 loads.
const CacheLineAlignment = mem.CacheLineAlignment

// Layout is the byte size and alignment of a memory region. A Block is
// released with the same Layout it was allocated with.
type Layout struct {
	Size  int
	Align int
}

// ArrayLayout returns the layout of n contiguous elements of T with T's
// natural alignment.
func ArrayLayout[T any](n int) (Layout, error) {
	var zero T

	if n < 0 {
		return Layout{}, fmt.Errorf("%w: negative capacity %d", ErrInvalidCapacity, n)
	}

	elemSize, err := conv.UintptrToInt(unsafe.Sizeof(zero))
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}

	size, err := conv.MulInt(n, elemSize)
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %d elements of %d bytes: %w", ErrInvalidCapacity, n, elemSize, err)
	}

	return Layout{Size: size, Align: int(unsafe.Alignof(zero))}, nil
}

// AlignTo returns l with its alignment raised to align. Smaller alignments
// leave l unchanged.
func (l Layout) AlignTo(align int) (Layout, error) {
	if !mem.IsPowerOfTwo(align) {
		return l, fmt.Errorf("%w: %d is not a power of two", ErrInvalidAlignment, align)
	}
	if align > l.Align {
		l.Align = align
	}
	return l, nil
}

func (l Layout) validate() error {
	if l.Size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidCapacity, l.Size)
	}
	if !mem.IsPowerOfTwo(l.Align) {
		return fmt.Errorf("%w: %d is not a power of two", ErrInvalidAlignment, l.Align)
	}
	return nil
}
