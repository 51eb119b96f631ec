//go:build unix || windows

package rawbuf_test

import "github.com/hupe1980/rawbuf"

func init() {
	testAllocators = append(testAllocators, namedAllocator{name: "mmap", alloc: rawbuf.MmapAllocator{}})
}
