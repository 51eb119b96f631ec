package rawbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a read or write would touch elements
	// outside [0, capacity).
	ErrOutOfBounds = errors.New("rawbuf: access out of bounds")
	// ErrAllocationFailed is returned when storage for a buffer could not be obtained.
	ErrAllocationFailed = errors.New("rawbuf: allocation failed")
	// ErrClosed is returned when a buffer is used after Close.
	ErrClosed = errors.New("rawbuf: buffer is closed")
	// ErrInvalidCapacity is returned for negative capacities or capacities
	// whose byte size does not fit in an int.
	ErrInvalidCapacity = errors.New("rawbuf: invalid capacity")
	// ErrInvalidAlignment is returned when an alignment is not a power of two
	// or cannot be honoured by the allocator.
	ErrInvalidAlignment = errors.New("rawbuf: invalid alignment")
	// ErrUnsupportedType is returned when the element type holds pointers.
	ErrUnsupportedType = errors.New("rawbuf: unsupported element type")
)

// BoundsError describes a rejected access. The buffer is left untouched.
//
// errors.Is(err, ErrOutOfBounds) reports true for every BoundsError.
type BoundsError struct {
	Op       string
	Offset   int
	Length   int
	Capacity int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("rawbuf: %s out of bounds: offset %d + length %d exceeds capacity %d",
		e.Op, e.Offset, e.Length, e.Capacity)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// AllocationError indicates that storage for Layout could not be obtained.
//
// errors.Is(err, ErrAllocationFailed) reports true, and the underlying cause
// (e.g. resource.ErrMemoryLimitExceeded or an OS error) is reachable via
// errors.Is/errors.As as well.
type AllocationError struct {
	Layout Layout
	cause  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("rawbuf: allocation of %d bytes (align %d) failed: %v",
		e.Layout.Size, e.Layout.Align, e.cause)
}

func (e *AllocationError) Unwrap() []error { return []error{ErrAllocationFailed, e.cause} }
