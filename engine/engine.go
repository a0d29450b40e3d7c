package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/camera"
	"github.com/Carmen-Shannon/mosaic-go/engine/profiler"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderer"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
	"github.com/Carmen-Shannon/mosaic-go/engine/window"
)

// engine implements the Engine interface.
// Owns the window, the renderer and the scene, and drives all three from a
// single frame loop on the main thread.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameLimit time.Duration // minimum frame duration; 0 = uncapped

	updateCallback func(deltaTime float32)

	lastFrame      time.Time
	acquireRetried bool // one surface reconfigure already attempted this failure streak
	runErr         error

	// pending construction state, set by builder options and consumed once
	// by NewEngine.
	pendingWindowOptions   []window.WindowBuilderOption
	pendingRendererOptions []renderer.RendererBuilderOption
	pendingConfig          *common.RenderConfig
}

// Engine is the main entry point for the engine. It builds the window, the
// renderer and a scene, then runs the whole frame lifecycle from one loop on
// the calling goroutine: process window messages, advance animations, render,
// repeat. Nothing in the engine spawns goroutines, so scene and renderer
// access from the update callback needs no synchronization.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer driving the window surface.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Scene returns the scene rendered each frame.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// Camera returns the renderer's camera.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// SetUpdateCallback registers a function called once per frame, before
	// the scene animates and renders. Use it for input handling and game
	// logic; it runs on the frame loop so renderer and scene calls are safe.
	//
	// Parameters:
	//   - callback: function receiving the frame delta time in seconds
	SetUpdateCallback(callback func(deltaTime float32))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// Run drives the frame loop until the window closes, Quit is called, or
	// a fatal render error stops the loop. On exit it releases the renderer
	// and destroys the window, including windows supplied via WithWindow.
	//
	// Returns:
	//   - error: the error that stopped the loop, or nil after a clean close
	Run() error

	// Quit asks the frame loop to stop after the current iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options, building
// a window (unless one is supplied), a renderer for its surface, and an empty
// scene (unless one is supplied).
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if renderer construction fails
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	config := common.DefaultRenderConfig()
	if e.pendingConfig != nil {
		config = *e.pendingConfig
	}

	if e.window == nil {
		e.window = window.NewWindow(e.pendingWindowOptions...)
	}

	r, err := renderer.NewRenderer(e.window, config, e.pendingRendererOptions...)
	if err != nil {
		e.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	e.renderer = r

	if e.scene == nil {
		e.scene = scene.NewScene("main")
	}

	e.window.SetResizeCallback(func(width, height int) {
		// Minimized windows report zero dimensions; skip those rather than
		// reconfigure the surface to nothing.
		if width <= 0 || height <= 0 {
			return
		}
		if resizeErr := e.renderer.Resize(uint32(width), uint32(height)); resizeErr != nil {
			log.Printf("failed to resize renderer to %dx%d: %v", width, height, resizeErr)
		}
	})

	e.profiler.SetStatsFunc(func() string {
		stats := e.renderer.CacheStats()
		return fmt.Sprintf("Cache: %d buffers (%d verts) | Hits: %d | Misses: %d",
			stats.Entries, stats.TotalVertices, stats.Hits, stats.Misses)
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.renderer.Camera()
}

// SetUpdateCallback registers the per-frame callback.
func (e *engine) SetUpdateCallback(callback func(deltaTime float32)) {
	e.updateCallback = callback
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetFrameLimit(fps float64) {
	if fps <= 0 {
		e.frameLimit = 0
		return
	}
	e.frameLimit = time.Second / time.Duration(fps)
}

// Run installs the frame callback and blocks in the window message loop.
// The loop, the callback and all GPU work share the calling goroutine, which
// the window package has locked to the OS thread that initialized GLFW.
func (e *engine) Run() error {
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()

	e.renderer.Release()
	e.window.Close()
	return e.runErr
}

// Quit asks the frame loop to stop after the current iteration.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		e.window.RequestClose()
	})
}

// frame runs one iteration of the loop: delta time, user callback, scene
// animation, render, profiler tick, optional frame cap. Panics are contained
// here so a broken frame stops the loop instead of crashing the process.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		e.window.RequestClose()
		return
	default:
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine recovered from panic during frame: %v", r)
			e.fail(fmt.Errorf("frame panic: %v", r))
		}
	}()

	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if e.updateCallback != nil {
		e.updateCallback(dt)
	}
	e.scene.Update(dt)

	if err := e.renderer.RenderScene(e.scene); err != nil {
		e.handleRenderError(err)
	} else {
		e.acquireRetried = false
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.frameLimit > 0 {
		if remaining := e.frameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// handleRenderError decides whether a failed frame is survivable. A lost or
// outdated surface usually comes back after one reconfigure; device loss and
// allocation failures do not, and retrying them only hides the problem.
func (e *engine) handleRenderError(err error) {
	if errors.Is(err, renderer.ErrSurfaceAcquire) {
		if !e.acquireRetried {
			log.Printf("surface acquire failed, reconfiguring: %v", err)
			e.renderer.Reconfigure()
			e.acquireRetried = true
			return
		}
		log.Printf("surface acquire failed again after reconfigure, stopping: %v", err)
		e.fail(err)
		return
	}

	log.Printf("render failed, stopping: %v", err)
	e.fail(err)
}

// fail records the first fatal error and signals the loop to stop.
func (e *engine) fail(err error) {
	if e.runErr == nil {
		e.runErr = err
	}
	e.Quit()
}
