package profiler

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickBeforeIntervalLogsNothing(t *testing.T) {
	p := NewProfiler()

	assert.False(t, p.Tick())
	assert.Equal(t, 1, p.frameCount)
}

func TestTickAfterIntervalLogsAndResets(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	p := NewProfiler()
	p.lastTime = time.Now().Add(-2 * time.Second)
	p.frameCount = 119

	assert.True(t, p.Tick())
	assert.Equal(t, 0, p.frameCount)
	assert.Contains(t, buf.String(), "[Profiler] FPS:")
	assert.Contains(t, buf.String(), "Heap:")
}

func TestTickAppendsStatsSegment(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	p := NewProfiler()
	p.SetStatsFunc(func() string { return "Cache: 3 buffers (108 verts)" })
	p.lastTime = time.Now().Add(-2 * time.Second)

	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), "| Cache: 3 buffers (108 verts)")
}

func TestTickSkipsEmptyStatsSegment(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	p := NewProfiler()
	p.SetStatsFunc(func() string { return "" })
	p.lastTime = time.Now().Add(-2 * time.Second)

	assert.True(t, p.Tick())
	assert.NotContains(t, buf.String(), "| \n")
}
