package rawbuf_test

import (
	"sync"
	"testing"

	"github.com/hupe1980/rawbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuarded_ConcurrentWriters(t *testing.T) {
	const (
		workers = 8
		stride  = 128
	)

	g := rawbuf.NewGuarded(rawbuf.MustNew[uint32](workers * stride))
	defer g.Close()
	assert.Equal(t, workers*stride, g.Cap())

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < stride; i++ {
				assert.NoError(t, g.Write(w*stride+i, []uint32{uint32(w)}))
				_, err := g.Read(w*stride, i+1)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		got := make([]uint32, stride)
		require.NoError(t, g.ReadInto(w*stride, got))
		for _, v := range got {
			assert.Equal(t, uint32(w), v)
		}
	}
}

func TestGuarded_DoReadModifyWrite(t *testing.T) {
	g := rawbuf.NewGuarded(rawbuf.MustNew[int64](1))
	defer g.Close()

	require.NoError(t, g.Write(0, []int64{0}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Do(func(b *rawbuf.Buffer[int64]) error {
				v, err := b.Read(0, 1)
				if err != nil {
					return err
				}
				return b.Write(0, []int64{v[0] + 1})
			}))
		}()
	}
	wg.Wait()

	got, err := g.Read(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{50}, got)
}

func TestGuarded_Close(t *testing.T) {
	g := rawbuf.NewGuarded(rawbuf.MustNew[uint8](4))

	require.NoError(t, g.Close())
	require.NoError(t, g.Close())
	assert.ErrorIs(t, g.Write(0, []uint8{1}), rawbuf.ErrClosed)
	_, err := g.Read(0, 1)
	assert.ErrorIs(t, err, rawbuf.ErrClosed)
}
