package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Span returns a random range [offset, offset+length) inside [0, capacity].
// Zero-length spans are possible.
func (r *RNG) Span(capacity int) (offset, length int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offset = r.rand.Intn(capacity + 1)
	length = r.rand.Intn(capacity - offset + 1)
	return offset, length
}

// Uint32s returns n pseudo-random uint32 values.
// Locks only once per call.
func (r *RNG) Uint32s(n int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.rand.Uint32()
	}
	return out
}
