package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/engine/geometry"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderable"
)

// stubProvider lets tests control the cache key and vertex count without
// touching a GPU device.
type stubProvider struct {
	hash  uint64
	count uint32
}

func (s stubProvider) Vertices() []geometry.Vertex { return nil }
func (s stubProvider) VertexCount() uint32         { return s.count }
func (s stubProvider) BufferContents() []byte      { return nil }
func (s stubProvider) MeshHash() uint64            { return s.hash }

// newTestCache builds a cache without a device. Tests seed entries
// directly, so only the hit, eviction, and stats paths run.
func newTestCache(retention time.Duration) *vertexBufferCacheImpl {
	return &vertexBufferCacheImpl{
		mu:        &sync.Mutex{},
		entries:   make(map[uint64]*cachedBuffer),
		retention: retention,
	}
}

func (c *vertexBufferCacheImpl) seed(hash uint64, count uint32, lastUsed time.Time) {
	c.entries[hash] = &cachedBuffer{vertexCount: count, lastUsed: lastUsed}
}

func TestHitRefreshesLastUsed(t *testing.T) {
	c := newTestCache(DefaultRetention)
	past := time.Now().Add(-20 * time.Second)
	c.seed(42, 36, past)

	_, count, err := c.GetOrCreateBuffer(stubProvider{hash: 42, count: 36})
	assert.NoError(t, err)
	assert.Equal(t, uint32(36), count)
	assert.True(t, c.entries[42].lastUsed.After(past))

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
}

func TestIdenticalGeometrySharesOneEntry(t *testing.T) {
	c := newTestCache(DefaultRetention)

	first := renderable.New(geometry.NewCube(1))
	second := renderable.New(geometry.NewCube(1))
	assert.Equal(t, first.MeshHash(), second.MeshHash())

	c.seed(first.MeshHash(), first.VertexCount(), time.Now())

	_, countA, errA := c.GetOrCreateBuffer(first)
	_, countB, errB := c.GetOrCreateBuffer(second)
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, countA, countB)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, uint64(2), stats.Hits)
}

func TestMixedBuffersPreserveOrder(t *testing.T) {
	c := newTestCache(DefaultRetention)
	c.seed(1, 111, time.Now())
	c.seed(2, 222, time.Now())

	refs, err := c.GetOrCreateMixedBuffers([]renderable.VertexProvider{
		stubProvider{hash: 2, count: 222},
		stubProvider{hash: 1, count: 111},
		stubProvider{hash: 2, count: 222},
	})
	assert.NoError(t, err)
	assert.Len(t, refs, 3)
	assert.Equal(t, uint32(222), refs[0].VertexCount)
	assert.Equal(t, uint32(111), refs[1].VertexCount)
	assert.Equal(t, uint32(222), refs[2].VertexCount)
}

func TestCleanupEvictsIdleEntries(t *testing.T) {
	c := newTestCache(DefaultRetention)
	c.seed(1, 3, time.Now().Add(-31*time.Second))
	c.seed(2, 6, time.Now().Add(-time.Second))

	c.CleanupOldEntries()

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 6, stats.TotalVertices)
	assert.NotNil(t, c.entries[2])
	assert.Nil(t, c.entries[1])
}

func TestCleanupKeepsRecentlyTouchedEntries(t *testing.T) {
	c := newTestCache(DefaultRetention)
	c.seed(1, 3, time.Now().Add(-31*time.Second))

	// A hit refreshes the timestamp, so the follow-up cleanup keeps it.
	_, _, err := c.GetOrCreateBuffer(stubProvider{hash: 1, count: 3})
	assert.NoError(t, err)

	c.CleanupOldEntries()
	assert.Equal(t, 1, c.Stats().Entries)
}

func TestCustomRetention(t *testing.T) {
	c := newTestCache(10 * time.Second)
	c.seed(1, 3, time.Now().Add(-11*time.Second))
	c.seed(2, 6, time.Now().Add(-9*time.Second))

	c.CleanupOldEntries()

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 6, stats.TotalVertices)
}

func TestStatsTotals(t *testing.T) {
	c := newTestCache(DefaultRetention)
	c.seed(1, 36, time.Now())
	c.seed(2, 3, time.Now())

	stats := c.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 39, stats.TotalVertices)
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
}

func TestReleaseEmptiesCache(t *testing.T) {
	c := newTestCache(DefaultRetention)
	c.seed(1, 36, time.Now())
	c.seed(2, 3, time.Now())

	c.Release()
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestClearEvictsFreshEntriesAndKeepsCacheUsable(t *testing.T) {
	c := newTestCache(DefaultRetention)
	c.seed(1, 36, time.Now())
	c.seed(2, 3, time.Now())

	c.Clear()
	assert.Equal(t, 0, c.Stats().Entries)

	c.seed(3, 9, time.Now())
	assert.Equal(t, 1, c.Stats().Entries)
	assert.Equal(t, 9, c.Stats().TotalVertices)
}

func TestNewPanicsWithoutDevice(t *testing.T) {
	assert.Panics(t, func() {
		NewVertexBufferCache(nil)
	})
}
