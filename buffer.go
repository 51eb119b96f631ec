package rawbuf

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"time"
	"unsafe"

	"github.com/hupe1980/rawbuf/internal/mem"
	"github.com/hupe1980/rawbuf/resource"
)

const (
	opWrite = "write"
	opRead  = "read"
)

var (
	errShortBlock      = errors.New("allocator returned a block smaller than requested")
	errMisalignedBlock = errors.New("allocator returned a misaligned block")
	errLayoutMismatch  = errors.New("allocator returned a block with a different layout")
)

// Buffer is a fixed-capacity region holding elements of T.
//
// Storage is raw memory: T must be pointer-free, writes copy element bytes,
// and slots that were never written hold unspecified values. A Buffer is
// not safe for concurrent use; see Guarded.
//
// Buffers must not be copied. Use them through the *Buffer returned by New.
type Buffer[T any] struct {
	_ noCopy

	capacity int
	data     []T
	layout   Layout
	closed   bool

	rel     *releaser
	cleanup runtime.Cleanup

	logger  *Logger
	metrics MetricsCollector
}

// New allocates a buffer for capacity elements of T.
//
// It fails with ErrUnsupportedType if T holds pointers, ErrInvalidCapacity if
// capacity is negative or its byte size overflows, and an *AllocationError
// (matching ErrAllocationFailed) if the memory controller or the allocator
// cannot supply the region. The contents of the region are unspecified.
func New[T any](capacity int, opts ...Option) (*Buffer[T], error) {
	return newBuffer[T](capacity, opts, func(c *resource.Controller, n int64) error {
		if !c.TryAcquireMemory(n) {
			return resource.ErrMemoryLimitExceeded
		}
		return nil
	})
}

// NewContext is like New but waits for the memory controller to free enough
// budget until ctx is done, instead of failing immediately.
func NewContext[T any](ctx context.Context, capacity int, opts ...Option) (*Buffer[T], error) {
	return newBuffer[T](capacity, opts, func(c *resource.Controller, n int64) error {
		return c.AcquireMemory(ctx, n)
	})
}

// MustNew is like New but panics if the buffer cannot be created.
func MustNew[T any](capacity int, opts ...Option) *Buffer[T] {
	b, err := New[T](capacity, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func newBuffer[T any](capacity int, optFns []Option, acquire func(*resource.Controller, int64) error) (*Buffer[T], error) {
	o := applyOptions(optFns)
	logger := o.logger.WithElemType(reflect.TypeFor[T]().String()).WithCapacity(capacity)
	start := time.Now()

	layout, err := bufferLayout[T](capacity, o.alignment)
	if err != nil {
		logger.LogAllocate(layout, err)
		o.metricsCollector.RecordAllocate(layout.Size, time.Since(start), err)
		return nil, err
	}

	block, err := allocate(o, layout, acquire)
	if err != nil {
		logger.LogAllocate(layout, err)
		o.metricsCollector.RecordAllocate(layout.Size, time.Since(start), err)
		return nil, err
	}

	b := &Buffer[T]{
		capacity: capacity,
		data:     view[T](block.Bytes(), capacity),
		layout:   layout,
		rel: &releaser{
			block:      block,
			layout:     layout,
			controller: o.controller,
			logger:     logger,
			metrics:    o.metricsCollector,
		},
		logger:  logger,
		metrics: o.metricsCollector,
	}
	b.cleanup = runtime.AddCleanup(b, func(r *releaser) { _ = r.release(true) }, b.rel)

	logger.LogAllocate(layout, nil)
	o.metricsCollector.RecordAllocate(layout.Size, time.Since(start), nil)
	return b, nil
}

func bufferLayout[T any](capacity, alignment int) (Layout, error) {
	if err := checkPlain[T](); err != nil {
		return Layout{}, err
	}
	layout, err := ArrayLayout[T](capacity)
	if err != nil {
		return layout, err
	}
	if alignment != 0 {
		return layout.AlignTo(alignment)
	}
	return layout, nil
}

// allocate charges the controller, then obtains and verifies a block. The
// charge is returned on every failure path.
func allocate(o options, layout Layout, acquire func(*resource.Controller, int64) error) (Block, error) {
	n := int64(layout.Size)
	if err := acquire(o.controller, n); err != nil {
		return nil, &AllocationError{Layout: layout, cause: err}
	}

	block, err := o.allocator.Allocate(layout)
	if err == nil {
		err = verifyBlock(block, layout)
		if err != nil {
			_ = block.Release()
		}
	}
	if err != nil {
		o.controller.ReleaseMemory(n)
		if errors.Is(err, ErrInvalidAlignment) {
			return nil, err
		}
		return nil, &AllocationError{Layout: layout, cause: err}
	}
	return block, nil
}

func verifyBlock(block Block, layout Layout) error {
	if got := block.Layout(); got != layout {
		return fmt.Errorf("%w: got %+v, want %+v", errLayoutMismatch, got, layout)
	}
	data := block.Bytes()
	if len(data) < layout.Size {
		return fmt.Errorf("%w: got %d bytes, want %d", errShortBlock, len(data), layout.Size)
	}
	if layout.Size > 0 && !mem.IsAligned(data, layout.Align) {
		return fmt.Errorf("%w: want alignment %d", errMisalignedBlock, layout.Align)
	}
	return nil
}

// view reinterprets the first n*sizeof(T) bytes of b as n elements of T.
func view[T any](b []byte, n int) []T {
	if n == 0 {
		return nil
	}
	if len(b) == 0 {
		// Zero-sized T: no storage, but slots still exist.
		return make([]T, n)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n) //nolint:gosec // storage is aligned and sized for n elements of T
}

// Write copies data into the buffer starting at offset.
//
// The whole range is validated before anything is copied: on a *BoundsError
// (matching ErrOutOfBounds) the buffer is unchanged.
func (b *Buffer[T]) Write(offset int, data []T) error {
	dst, err := b.region(opWrite, offset, len(data))
	b.metrics.RecordWrite(len(data), err)
	if err != nil {
		return err
	}
	copy(dst, data)
	runtime.KeepAlive(b)
	return nil
}

// Read returns a new slice holding length elements starting at offset. The
// result never aliases the buffer.
func (b *Buffer[T]) Read(offset, length int) ([]T, error) {
	src, err := b.region(opRead, offset, length)
	b.metrics.RecordRead(length, err)
	if err != nil {
		return nil, err
	}
	out := make([]T, length)
	copy(out, src)
	runtime.KeepAlive(b)
	return out, nil
}

// ReadInto copies len(dst) elements starting at offset into dst without
// allocating.
func (b *Buffer[T]) ReadInto(offset int, dst []T) error {
	src, err := b.region(opRead, offset, len(dst))
	b.metrics.RecordRead(len(dst), err)
	if err != nil {
		return err
	}
	copy(dst, src)
	runtime.KeepAlive(b)
	return nil
}

// region validates [offset, offset+length) against the capacity and returns
// that window of storage. The check is overflow-safe.
func (b *Buffer[T]) region(op string, offset, length int) ([]T, error) {
	if b.closed {
		return nil, fmt.Errorf("%s: %w", op, ErrClosed)
	}
	if offset < 0 || length < 0 || offset > b.capacity || length > b.capacity-offset {
		err := &BoundsError{Op: op, Offset: offset, Length: length, Capacity: b.capacity}
		b.logger.LogAccess(op, offset, length, err)
		return nil, err
	}
	end := offset + length
	return b.data[offset:end:end], nil
}

// Cap returns the number of elements the buffer holds.
func (b *Buffer[T]) Cap() int { return b.capacity }

// SizeBytes returns the size of the storage region in bytes.
func (b *Buffer[T]) SizeBytes() int { return b.layout.Size }

// Layout returns the layout the storage was allocated with.
func (b *Buffer[T]) Layout() Layout { return b.layout }

// Closed reports whether Close has been called.
func (b *Buffer[T]) Closed() bool { return b.closed }

// Close releases the storage back to its allocator and the bytes back to the
// memory controller. It is idempotent; every other method fails with
// ErrClosed afterwards.
func (b *Buffer[T]) Close() error {
	if b == nil || b.closed {
		return nil
	}
	b.closed = true
	b.data = nil
	b.cleanup.Stop()
	return b.rel.release(false)
}

func (b *Buffer[T]) String() string {
	return fmt.Sprintf("Buffer[%s]{capacity: %d, bytes: %d, align: %d, closed: %t}",
		reflect.TypeFor[T](), b.capacity, b.layout.Size, b.layout.Align, b.closed)
}

// releaser owns everything needed to give storage back. It must not point
// at its Buffer so the cleanup can run once the Buffer is unreachable.
type releaser struct {
	block      Block
	layout     Layout
	controller *resource.Controller
	logger     *Logger
	metrics    MetricsCollector
	done       bool
}

func (r *releaser) release(leaked bool) error {
	if r.done {
		return nil
	}
	r.done = true

	err := r.block.Release()
	r.controller.ReleaseMemory(int64(r.layout.Size))
	r.metrics.RecordRelease(r.layout.Size)
	r.logger.LogRelease(r.layout, leaked, err)
	return err
}

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
