package rawbuf_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/hupe1980/rawbuf"
	"github.com/hupe1980/rawbuf/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLifecycle_ConstructCloseCycles verifies that repeated construct/close
// cycles return every byte to the controller and release every buffer once.
func TestLifecycle_ConstructCloseCycles(t *testing.T) {
	forEachAllocator(t, func(t *testing.T, alloc rawbuf.Allocator) {
		const iterations = 10_000

		rc := resource.NewController(resource.Config{MemoryLimitBytes: 4096})
		metrics := &rawbuf.BasicMetricsCollector{}

		for i := 0; i < iterations; i++ {
			buf, err := rawbuf.New[uint32](256,
				rawbuf.WithAllocator(alloc),
				rawbuf.WithMemoryController(rc),
				rawbuf.WithMetricsCollector(metrics),
			)
			require.NoError(t, err, "iteration %d", i)
			require.NoError(t, buf.Write(0, []uint32{uint32(i)}))
			require.NoError(t, buf.Close())
		}

		stats := metrics.GetStats()
		assert.Equal(t, int64(iterations), stats.AllocCount)
		assert.Equal(t, int64(iterations), stats.ReleaseCount)
		assert.Equal(t, int64(0), stats.LiveBuffers)
		assert.Equal(t, int64(0), stats.LiveBytes)
		assert.Equal(t, int64(0), rc.MemoryUsage())
	})
}

// TestLifecycle_HeapStaysBounded checks that the Go heap does not grow with
// the number of cycles.
func TestLifecycle_HeapStaysBounded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	cycle := func(n int) {
		for i := 0; i < n; i++ {
			buf := rawbuf.MustNew[uint64](1024)
			_ = buf.Write(0, []uint64{uint64(i)})
			_ = buf.Close()
		}
	}

	cycle(1000)
	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	cycle(10_000)
	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	// 10k buffers of 8 KiB would be ~80 MiB if any were retained.
	assert.Less(t, int64(after.HeapAlloc)-int64(before.HeapAlloc), int64(8<<20))
}

// TestLifecycle_CleanupReleasesUnclosed verifies that a buffer dropped
// without Close is released by the runtime cleanup exactly once.
func TestLifecycle_CleanupReleasesUnclosed(t *testing.T) {
	forEachAllocator(t, func(t *testing.T, alloc rawbuf.Allocator) {
		rc := resource.NewController(resource.Config{})
		metrics := &rawbuf.BasicMetricsCollector{}

		func() {
			buf, err := rawbuf.New[uint32](64,
				rawbuf.WithAllocator(alloc),
				rawbuf.WithMemoryController(rc),
				rawbuf.WithMetricsCollector(metrics),
			)
			require.NoError(t, err)
			require.NoError(t, buf.Write(0, []uint32{1}))
		}()
		assert.Equal(t, int64(256), rc.MemoryUsage())

		require.Eventually(t, func() bool {
			runtime.GC()
			return rc.MemoryUsage() == 0
		}, 5*time.Second, 10*time.Millisecond)

		stats := metrics.GetStats()
		assert.Equal(t, int64(1), stats.ReleaseCount)
		assert.Equal(t, int64(0), stats.LiveBuffers)
	})
}

// TestLifecycle_CloseCancelsCleanup verifies that an explicit Close is the
// only release when the buffer later becomes unreachable.
func TestLifecycle_CloseCancelsCleanup(t *testing.T) {
	metrics := &rawbuf.BasicMetricsCollector{}

	func() {
		buf := rawbuf.MustNew[uint32](16, rawbuf.WithMetricsCollector(metrics))
		require.NoError(t, buf.Close())
	}()

	for i := 0; i < 5; i++ {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}

	assert.Equal(t, int64(1), metrics.GetStats().ReleaseCount)
}
