package rawbuf

import "sync"

// Guarded serialises access to a Buffer with a mutex so it can be shared
// between goroutines. The Buffer itself stays lock-free.
type Guarded[T any] struct {
	mu  sync.Mutex
	buf *Buffer[T]
}

// NewGuarded takes ownership of buf. Callers must not use buf directly
// afterwards.
func NewGuarded[T any](buf *Buffer[T]) *Guarded[T] {
	return &Guarded[T]{buf: buf}
}

// Write is Buffer.Write under the lock.
func (g *Guarded[T]) Write(offset int, data []T) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.Write(offset, data)
}

// Read is Buffer.Read under the lock.
func (g *Guarded[T]) Read(offset, length int) ([]T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.Read(offset, length)
}

// ReadInto is Buffer.ReadInto under the lock.
func (g *Guarded[T]) ReadInto(offset int, dst []T) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.ReadInto(offset, dst)
}

// Cap returns the capacity of the wrapped buffer.
func (g *Guarded[T]) Cap() int {
	return g.buf.Cap()
}

// Do runs fn with exclusive access to the buffer, e.g. for a
// read-modify-write sequence. fn must not retain the buffer.
func (g *Guarded[T]) Do(fn func(b *Buffer[T]) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.buf)
}

// Close closes the wrapped buffer.
func (g *Guarded[T]) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.Close()
}
