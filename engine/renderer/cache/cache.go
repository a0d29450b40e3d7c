// Package cache deduplicates GPU vertex buffers by mesh content. Two
// objects with identical vertex bytes share one buffer, and buffers that
// go unused past a retention window are evicted to bound GPU memory.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/mosaic-go/engine/renderable"
)

// DefaultRetention is how long an unused buffer stays cached before
// CleanupOldEntries evicts it.
const DefaultRetention = 30 * time.Second

// BufferRef pairs a cached GPU vertex buffer with the number of vertices
// it holds. Handles are valid for the current frame only; the cache may
// evict the underlying buffer on a later CleanupOldEntries call.
type BufferRef struct {
	Buffer      *wgpu.Buffer
	VertexCount uint32
}

// CacheStats is a point-in-time snapshot of cache contents and
// effectiveness.
type CacheStats struct {
	Entries       int
	TotalVertices int
	Hits          uint64
	Misses        uint64
}

type cachedBuffer struct {
	buffer      *wgpu.Buffer
	vertexCount uint32
	lastUsed    time.Time
}

type vertexBufferCacheImpl struct {
	mu        *sync.Mutex
	device    *wgpu.Device
	entries   map[uint64]*cachedBuffer
	retention time.Duration
	hits      uint64
	misses    uint64
}

// VertexBufferCache hands out GPU vertex buffers keyed on mesh content.
// Lookups hash nothing themselves; they use the provider's precomputed
// MeshHash, so identical geometry collapses to one buffer regardless of
// which object requested it.
type VertexBufferCache interface {
	// GetOrCreateBuffer returns the cached buffer for the provider's mesh
	// content, refreshing its last-used time. On a miss it uploads the
	// vertex bytes into a new buffer and caches it.
	//
	// Parameters:
	//   - src: the vertex content to look up
	//
	// Returns:
	//   - *wgpu.Buffer: the shared vertex buffer
	//   - uint32: the number of vertices in the buffer
	//   - error: an error if buffer creation failed
	GetOrCreateBuffer(src renderable.VertexProvider) (*wgpu.Buffer, uint32, error)

	// GetOrCreateMixedBuffers is the batch form used when rendering
	// multiple shape types together. The result preserves input order,
	// one BufferRef per source.
	//
	// Parameters:
	//   - sources: the vertex contents to look up, in draw order
	//
	// Returns:
	//   - []BufferRef: buffer and vertex count per source, same order
	//   - error: an error if any buffer creation failed
	GetOrCreateMixedBuffers(sources []renderable.VertexProvider) ([]BufferRef, error)

	// CleanupOldEntries evicts and releases entries whose last use is
	// older than the retention window. Intended to be called once per
	// frame.
	CleanupOldEntries()

	// Stats reports entry count, total cached vertices, and lifetime
	// hit/miss counters.
	//
	// Returns:
	//   - CacheStats: the current snapshot
	Stats() CacheStats

	// Clear evicts and releases every entry immediately, regardless of
	// retention. The cache remains usable afterward.
	Clear()

	// Release frees every cached buffer and empties the cache.
	Release()
}

var _ VertexBufferCache = &vertexBufferCacheImpl{}

// NewVertexBufferCache creates a VertexBufferCache allocating through the
// given device, with the default 30 second retention window.
//
// Parameters:
//   - device: the GPU device used to create buffers, must not be nil
//   - options: functional options to configure the cache
//
// Returns:
//   - VertexBufferCache: the newly created cache
func NewVertexBufferCache(device *wgpu.Device, options ...VertexBufferCacheBuilderOption) VertexBufferCache {
	if device == nil {
		panic("cache: NewVertexBufferCache requires a non-nil device")
	}

	c := &vertexBufferCacheImpl{
		mu:        &sync.Mutex{},
		device:    device,
		entries:   make(map[uint64]*cachedBuffer),
		retention: DefaultRetention,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *vertexBufferCacheImpl) GetOrCreateBuffer(src renderable.VertexProvider) (*wgpu.Buffer, uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ref, err := c.getOrCreateLocked(src)
	if err != nil {
		return nil, 0, err
	}
	return ref.Buffer, ref.VertexCount, nil
}

func (c *vertexBufferCacheImpl) GetOrCreateMixedBuffers(sources []renderable.VertexProvider) ([]BufferRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	refs := make([]BufferRef, 0, len(sources))
	for i, src := range sources {
		ref, err := c.getOrCreateLocked(src)
		if err != nil {
			return nil, fmt.Errorf("cache: buffer %d of %d: %w", i, len(sources), err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// getOrCreateLocked performs one lookup-or-upload. Caller must hold the
// mutex.
func (c *vertexBufferCacheImpl) getOrCreateLocked(src renderable.VertexProvider) (BufferRef, error) {
	hash := src.MeshHash()
	if cached, ok := c.entries[hash]; ok {
		cached.lastUsed = time.Now()
		c.hits++
		return BufferRef{Buffer: cached.buffer, VertexCount: cached.vertexCount}, nil
	}

	buffer, err := c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Cached Vertex Buffer",
		Contents: src.BufferContents(),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return BufferRef{}, fmt.Errorf("failed to create vertex buffer: %w", err)
	}

	c.entries[hash] = &cachedBuffer{
		buffer:      buffer,
		vertexCount: src.VertexCount(),
		lastUsed:    time.Now(),
	}
	c.misses++
	return BufferRef{Buffer: buffer, VertexCount: src.VertexCount()}, nil
}

func (c *vertexBufferCacheImpl) CleanupOldEntries() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for hash, cached := range c.entries {
		if now.Sub(cached.lastUsed) >= c.retention {
			if cached.buffer != nil {
				cached.buffer.Release()
			}
			delete(c.entries, hash)
		}
	}
}

func (c *vertexBufferCacheImpl) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
	for _, cached := range c.entries {
		stats.TotalVertices += int(cached.vertexCount)
	}
	return stats
}

func (c *vertexBufferCacheImpl) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for hash, cached := range c.entries {
		if cached.buffer != nil {
			cached.buffer.Release()
		}
		delete(c.entries, hash)
	}
}

func (c *vertexBufferCacheImpl) Release() {
	c.Clear()
}
