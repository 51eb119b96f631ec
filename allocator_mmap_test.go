//go:build unix || windows

package rawbuf

import (
	"testing"

	"github.com/hupe1980/rawbuf/internal/mem"
	"github.com/hupe1980/rawbuf/internal/mmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapAllocator(t *testing.T) {
	block, err := MmapAllocator{}.Allocate(Layout{Size: 3000, Align: 8})
	require.NoError(t, err)

	data := block.Bytes()
	assert.Len(t, data, 3000)
	assert.True(t, mem.IsAligned(data, mmap.PageSize()))

	data[0], data[2999] = 1, 2
	require.NoError(t, block.Release())
	assert.Nil(t, block.Bytes())

	// Releasing twice is harmless at the block level.
	require.NoError(t, block.Release())
}

func TestMmapAllocator_AlignmentAbovePage(t *testing.T) {
	_, err := MmapAllocator{}.Allocate(Layout{Size: 16, Align: 2 * mmap.PageSize()})
	assert.ErrorIs(t, err, ErrInvalidAlignment)

	// New surfaces it as a configuration error, not an allocation failure.
	_, err = New[uint8](16, WithAllocator(MmapAllocator{}), WithAlignment(2*mmap.PageSize()))
	assert.ErrorIs(t, err, ErrInvalidAlignment)
	assert.NotErrorIs(t, err, ErrAllocationFailed)
}

func TestMmapAllocator_ZeroSize(t *testing.T) {
	block, err := MmapAllocator{}.Allocate(Layout{Size: 0, Align: 1})
	require.NoError(t, err)
	assert.Empty(t, block.Bytes())
	require.NoError(t, block.Release())
}
