package rawbuf

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAllocate is called after each construction attempt.
	// bytes is the requested region size, err is nil if successful.
	RecordAllocate(bytes int, duration time.Duration, err error)

	// RecordRelease is called once per successfully constructed buffer when
	// its storage is released.
	RecordRelease(bytes int)

	// RecordWrite is called after each write with the number of elements requested.
	RecordWrite(elements int, err error)

	// RecordRead is called after each read with the number of elements requested.
	RecordRead(elements int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRelease(int)                        {}
func (NoopMetricsCollector) RecordWrite(int, error)                   {}
func (NoopMetricsCollector) RecordRead(int, error)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and leak detection without external dependencies.
type BasicMetricsCollector struct {
	AllocCount      atomic.Int64
	AllocErrors     atomic.Int64
	AllocTotalNanos atomic.Int64
	ReleaseCount    atomic.Int64
	LiveBuffers     atomic.Int64
	LiveBytes       atomic.Int64
	WriteCount      atomic.Int64
	WriteErrors     atomic.Int64
	WriteElements   atomic.Int64
	ReadCount       atomic.Int64
	ReadErrors      atomic.Int64
	ReadElements    atomic.Int64
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(bytes int, duration time.Duration, err error) {
	b.AllocCount.Add(1)
	b.AllocTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.LiveBuffers.Add(1)
	b.LiveBytes.Add(int64(bytes))
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(bytes int) {
	b.ReleaseCount.Add(1)
	b.LiveBuffers.Add(-1)
	b.LiveBytes.Add(-int64(bytes))
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(elements int, err error) {
	b.WriteCount.Add(1)
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.WriteElements.Add(int64(elements))
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(elements int, err error) {
	b.ReadCount.Add(1)
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadElements.Add(int64(elements))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocCount:    b.AllocCount.Load(),
		AllocErrors:   b.AllocErrors.Load(),
		AllocAvgNanos: b.getAvgAllocNanos(),
		ReleaseCount:  b.ReleaseCount.Load(),
		LiveBuffers:   b.LiveBuffers.Load(),
		LiveBytes:     b.LiveBytes.Load(),
		WriteCount:    b.WriteCount.Load(),
		WriteErrors:   b.WriteErrors.Load(),
		WriteElements: b.WriteElements.Load(),
		ReadCount:     b.ReadCount.Load(),
		ReadErrors:    b.ReadErrors.Load(),
		ReadElements:  b.ReadElements.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgAllocNanos() int64 {
	count := b.AllocCount.Load()
	if count == 0 {
		return 0
	}
	return b.AllocTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocCount    int64
	AllocErrors   int64
	AllocAvgNanos int64
	ReleaseCount  int64
	LiveBuffers   int64
	LiveBytes     int64
	WriteCount    int64
	WriteErrors   int64
	WriteElements int64
	ReadCount     int64
	ReadErrors    int64
	ReadElements  int64
}
