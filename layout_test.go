package rawbuf

import (
	"math"
	"testing"
	"unsafe"

	"github.com/hupe1980/rawbuf/internal/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayLayout(t *testing.T) {
	l, err := ArrayLayout[uint32](4)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 16, Align: 4}, l)

	l, err = ArrayLayout[complex128](3)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 48, Align: int(unsafe.Alignof(complex128(0)))}, l)

	l, err = ArrayLayout[[3]byte](5)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 15, Align: 1}, l)

	l, err = ArrayLayout[uint8](0)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 0, Align: 1}, l)

	_, err = ArrayLayout[uint8](-1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = ArrayLayout[uint16](math.MaxInt/2 + 1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	l, err = ArrayLayout[uint8](math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, l.Size)
}

func TestLayout_AlignTo(t *testing.T) {
	l := Layout{Size: 16, Align: 4}

	got, err := l.AlignTo(64)
	require.NoError(t, err)
	assert.Equal(t, Layout{Size: 16, Align: 64}, got)

	got, err = l.AlignTo(2)
	require.NoError(t, err)
	assert.Equal(t, l, got)

	_, err = l.AlignTo(0)
	assert.ErrorIs(t, err, ErrInvalidAlignment)
	_, err = l.AlignTo(48)
	assert.ErrorIs(t, err, ErrInvalidAlignment)
}

func TestLayout_Validate(t *testing.T) {
	assert.NoError(t, Layout{Size: 0, Align: 1}.validate())
	assert.ErrorIs(t, Layout{Size: -1, Align: 1}.validate(), ErrInvalidCapacity)
	assert.ErrorIs(t, Layout{Size: 8, Align: 0}.validate(), ErrInvalidAlignment)
}

func TestBuffer_StorageAlignment(t *testing.T) {
	for _, align := range []int{8, 16, mem.CacheLineAlignment, 256} {
		b, err := New[uint8](33, WithAlignment(align))
		require.NoError(t, err)

		addr := uintptr(unsafe.Pointer(&b.data[0]))
		assert.Equal(t, uintptr(0), addr%uintptr(align), "align=%d", align)
		require.NoError(t, b.Close())
	}

	b, err := New[float64](3)
	require.NoError(t, err)
	addr := uintptr(unsafe.Pointer(&b.data[0]))
	assert.Equal(t, uintptr(0), addr%unsafe.Alignof(float64(0)))
	require.NoError(t, b.Close())
}

func TestBuffer_CloseDropsStorage(t *testing.T) {
	b, err := New[uint32](4)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Nil(t, b.data)
}
