package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval. An optional stats
// provider appends an extra segment to each line, which the engine uses for
// vertex buffer cache numbers.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	statsFunc      func() string
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetStatsFunc registers a provider whose result is appended to each log
// line. The provider runs on the frame loop; keep it cheap. Pass nil to
// remove it, and return "" to skip the segment for one line.
//
// Parameters:
//   - fn: provider returning the extra stats segment
func (p *Profiler) SetStatsFunc(fn func() string) {
	p.statsFunc = fn
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times,
// total memory, plus the registered stats segment.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	lastPauseUs, maxPauseUs := p.gcPauses(gcCount)

	line := fmt.Sprintf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
	if p.statsFunc != nil {
		if extra := p.statsFunc(); extra != "" {
			line += " | " + extra
		}
	}
	log.Print(line)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// gcPauses reports the most recent GC pause and the longest pause since the
// previous logged tick, both in microseconds.
func (p *Profiler) gcPauses(gcCount uint32) (lastUs, maxUs uint64) {
	if gcCount == 0 {
		return 0, 0
	}

	// PauseNs is a circular buffer of the last 256 GC pauses.
	lastUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		pause := p.memStats.PauseNs[i%256] / 1000
		if pause > maxUs {
			maxUs = pause
		}
	}
	return lastUs, maxUs
}
