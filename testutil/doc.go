// Package testutil provides testing utilities for rawbuf.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe RNG with helpers for generating
// element data and random in-bounds ranges.
//
//	rng := testutil.NewRNG(seed)
//	offset, length := rng.Span(capacity)
//	data := rng.Uint32s(length)
package testutil
