// Package resource implements a memory budget shared by many buffers.
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and an atomic
// counter for usage tracking. TryAcquireMemory is non-blocking and fails
// immediately if the limit would be exceeded; AcquireMemory waits until
// enough budget is released or the context is done:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if !rc.TryAcquireMemory(1024 * 1024) {
//	    // over budget - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(1024 * 1024)
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
