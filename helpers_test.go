package rawbuf_test

import "github.com/hupe1980/rawbuf"

type namedAllocator struct {
	name  string
	alloc rawbuf.Allocator
}

// testAllocators lists the allocators every buffer test runs against.
// Platform-specific files append to it.
var testAllocators = []namedAllocator{
	{name: "heap", alloc: rawbuf.HeapAllocator{}},
}
