package rawbuf

import (
	"log/slog"

	"github.com/hupe1980/rawbuf/resource"
)

type options struct {
	allocator        Allocator
	alignment        int
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures buffer construction.
type Option func(*options)

// WithAllocator configures where storage comes from.
//
// If nil is passed, DefaultAllocator is used.
//
// Example with off-heap storage:
//
//	buf, _ := rawbuf.New[float32](1<<20, rawbuf.WithAllocator(rawbuf.MmapAllocator{}))
//	defer buf.Close()
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a == nil {
			a = DefaultAllocator
		}
		o.allocator = a
	}
}

// WithAlignment raises the storage alignment above the element type's
// natural alignment, e.g. CacheLineAlignment for SIMD kernels.
// align must be a power of two; New reports ErrInvalidAlignment otherwise.
func WithAlignment(align int) Option {
	return func(o *options) {
		o.alignment = align
	}
}

// WithMemoryController charges every buffer's byte size against a shared
// budget. Construction fails with ErrAllocationFailed when the budget is
// exhausted; Close returns the bytes.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	buf, err := rawbuf.New[uint64](n, rawbuf.WithMemoryController(rc))
func WithMemoryController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &rawbuf.BasicMetricsCollector{}
//	buf, _ := rawbuf.New[uint32](4, rawbuf.WithMetricsCollector(metrics))
//	// ... use buf ...
//	stats := metrics.GetStats()
//	fmt.Printf("Live buffers: %d, live bytes: %d\n", stats.LiveBuffers, stats.LiveBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := rawbuf.NewJSONLogger(slog.LevelInfo)
//	buf, _ := rawbuf.New[uint32](4, rawbuf.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		allocator:        DefaultAllocator,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
