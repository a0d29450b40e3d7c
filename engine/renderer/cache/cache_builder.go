package cache

import "time"

type VertexBufferCacheBuilderOption func(*vertexBufferCacheImpl)

// WithRetention overrides the eviction window for unused buffers.
// Non-positive values are ignored.
//
// Parameters:
//   - retention: how long an unused buffer stays cached
//
// Returns:
//   - VertexBufferCacheBuilderOption: a function that sets the retention window
func WithRetention(retention time.Duration) VertexBufferCacheBuilderOption {
	return func(c *vertexBufferCacheImpl) {
		if retention > 0 {
			c.retention = retention
		}
	}
}
