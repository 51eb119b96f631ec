package rawbuf

import (
	"fmt"

	"github.com/hupe1980/rawbuf/internal/mem"
	"github.com/hupe1980/rawbuf/internal/mmap"
)

// Block is a region obtained from an Allocator. It remembers the Layout it
// was allocated with and must be released exactly once.
type Block interface {
	// Bytes returns the region. Its length is at least Layout().Size and its
	// first byte is aligned to Layout().Align.
	Bytes() []byte
	Layout() Layout
	Release() error
}

// Allocator hands out Blocks.
type Allocator interface {
	Allocate(l Layout) (Block, error)
}

// DefaultAllocator is used when no allocator is configured.
var DefaultAllocator Allocator = HeapAllocator{}

var (
	_ Allocator = HeapAllocator{}
	_ Allocator = MmapAllocator{}
)

// HeapAllocator allocates from the Go heap. Regions are over-allocated and
// shifted to the requested alignment; Release drops the reference and leaves
// reclamation to the garbage collector.
//
// Requests larger than the runtime's maximum slice size fail with an error.
// Below that limit the Go runtime treats heap exhaustion as fatal, so pair a
// HeapAllocator with a resource.Controller to get a recoverable limit.
type HeapAllocator struct{}

// Allocate implements Allocator.
func (HeapAllocator) Allocate(l Layout) (Block, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	data, err := mem.AllocAligned(l.Size, l.Align)
	if err != nil {
		return nil, err
	}
	return &heapBlock{data: data, layout: l}, nil
}

type heapBlock struct {
	data   []byte
	layout Layout
}

func (b *heapBlock) Bytes() []byte  { return b.data }
func (b *heapBlock) Layout() Layout { return b.layout }

func (b *heapBlock) Release() error {
	b.data = nil
	return nil
}

// MmapAllocator allocates off-heap anonymous mappings. Regions are page
// aligned, invisible to the garbage collector, and returned to the OS on
// Release. OS failures such as ENOMEM are reported as errors.
type MmapAllocator struct{}

// Allocate implements Allocator.
func (MmapAllocator) Allocate(l Layout) (Block, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	if l.Align > mmap.PageSize() {
		return nil, fmt.Errorf("%w: %d exceeds page size %d", ErrInvalidAlignment, l.Align, mmap.PageSize())
	}

	m, err := mmap.MapAnon(l.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to map anonymous memory: %w", err)
	}
	return &mmapBlock{mapping: m, layout: l}, nil
}

type mmapBlock struct {
	mapping *mmap.Mapping
	layout  Layout
}

func (b *mmapBlock) Bytes() []byte  { return b.mapping.Bytes() }
func (b *mmapBlock) Layout() Layout { return b.layout }
func (b *mmapBlock) Release() error { return b.mapping.Close() }
