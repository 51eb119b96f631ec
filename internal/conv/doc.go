// Package conv provides safe integer conversion and arithmetic utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between signed/unsigned integer types or when computing
// byte sizes from element counts.
//
// Use cases:
//   - Computing capacity*elemSize without wrapping
//   - Converting between Go's int and the int64 used for memory accounting
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
