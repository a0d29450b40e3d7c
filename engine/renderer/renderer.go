package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/camera"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderer/cache"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
	"github.com/Carmen-Shannon/mosaic-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// rendererImpl is the implementation of the Renderer interface.
type rendererImpl struct {
	mu *sync.Mutex

	gpu  GPUContext
	core RenderCore

	// Pre-creation config collected from builder options.
	pendingPresentMode *wgpu.PresentMode
	pendingCoreOptions []RenderCoreBuilderOption
}

// Renderer defines the interface for the windowed rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer owns the GPU context for a window surface and a RenderCore that turns scene snapshots
// into draw commands; one RenderScene call produces one presented frame.
type Renderer interface {
	// RenderScene renders one frame of the given scene to the window surface
	// and presents it. Snapshotting, culling-mode grouping, vertex buffer
	// caching, matrix upload and pass encoding all happen inside this call.
	//
	// Parameters:
	//   - s: the scene to snapshot and render
	//
	// Returns:
	//   - error: an error if the frame could not be acquired, encoded or submitted
	RenderScene(s scene.Scene) error

	// Camera returns the camera used to frame every draw.
	//
	// Returns:
	//   - camera.Camera: the active camera
	Camera() camera.Camera

	// Resize reconfigures the surface and render targets for new window
	// dimensions and updates the camera aspect ratio. Zero dimensions are
	// ignored.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	//
	// Returns:
	//   - error: an error if the render targets could not be recreated
	Resize(width, height uint32) error

	// Reconfigure re-applies the current surface configuration. Call after a
	// failed frame acquisition to recover a lost or outdated surface.
	Reconfigure()

	// Config returns the active render configuration.
	//
	// Returns:
	//   - common.RenderConfig: the current configuration
	Config() common.RenderConfig

	// SetConfig replaces the render configuration and rebuilds the pipelines
	// that depend on it. The previous configuration stays active if the
	// rebuild fails.
	//
	// Parameters:
	//   - config: the new render configuration
	//
	// Returns:
	//   - error: an error if pipeline rebuilding fails
	SetConfig(config common.RenderConfig) error

	// SetAntialiasing updates only the antialiasing mode of the current
	// configuration.
	//
	// Parameters:
	//   - mode: the antialiasing mode to switch to
	//
	// Returns:
	//   - error: an error if pipeline rebuilding fails
	SetAntialiasing(mode common.AntialiasingMode) error

	// SetCullingMode updates only the default culling mode of the current
	// configuration.
	//
	// Parameters:
	//   - mode: the culling mode to switch to
	//
	// Returns:
	//   - error: an error if pipeline rebuilding fails
	SetCullingMode(mode common.CullingMode) error

	// SetAlphaBlending updates only the alpha blending flag of the current
	// configuration.
	//
	// Parameters:
	//   - enabled: whether fragments blend with the framebuffer
	//
	// Returns:
	//   - error: an error if pipeline rebuilding fails
	SetAlphaBlending(enabled bool) error

	// Set2DMode switches to the 2D preset: MSAA 4x, no culling, alpha
	// blending on.
	//
	// Returns:
	//   - error: an error if pipeline rebuilding fails
	Set2DMode() error

	// Set3DMode switches to the 3D preset: MSAA 4x, backface culling, alpha
	// blending off.
	//
	// Returns:
	//   - error: an error if pipeline rebuilding fails
	Set3DMode() error

	// SetPerformanceMode switches to the performance preset: no antialiasing,
	// backface culling, alpha blending off.
	//
	// Returns:
	//   - error: an error if pipeline rebuilding fails
	SetPerformanceMode() error

	// CacheStats reports vertex buffer cache statistics for profiling.
	//
	// Returns:
	//   - cache.CacheStats: entry count, cached vertex total, hits and misses
	CacheStats() cache.CacheStats

	// ClearCache evicts every cached vertex buffer immediately. Buffers are
	// recreated on demand by the next frame.
	ClearCache()

	// FrameCount returns the number of frames rendered by this renderer.
	//
	// Returns:
	//   - uint64: the frame counter
	FrameCount() uint64

	// Release frees the GPU resources owned by the renderer. The renderer
	// must not be used afterwards.
	Release()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates a windowed Renderer for the given window. It builds the
// GPU context from the window's native surface, then a RenderCore sized to
// the window and driven by the provided configuration.
//
// Parameters:
//   - win: the window to render into
//   - config: the initial render configuration
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the initialized renderer
//   - error: an error if GPU setup or pipeline creation fails
func NewRenderer(win window.Window, config common.RenderConfig, options ...RendererBuilderOption) (Renderer, error) {
	if win == nil {
		panic("renderer: NewRenderer requires a non-nil window")
	}

	r := &rendererImpl{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(r)
	}

	presentMode := wgpu.PresentModeFifo
	if r.pendingPresentMode != nil {
		presentMode = *r.pendingPresentMode
	}

	gpu, err := NewGPUContext(win, presentMode)
	if err != nil {
		return nil, err
	}
	r.gpu = gpu

	width, height := gpu.Size()
	core, err := NewRenderCore(gpu.Device(), gpu.Queue(), gpu.Format(), width, height, config, r.pendingCoreOptions...)
	if err != nil {
		gpu.Release()
		return nil, err
	}
	r.core = core

	return r, nil
}

func (r *rendererImpl) RenderScene(s scene.Scene) error {
	if s == nil {
		return fmt.Errorf("cannot render a nil scene")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := s.AllRenderables()

	view, err := r.gpu.AcquireFrame()
	if err != nil {
		return err
	}

	encoder, err := r.gpu.Device().CreateCommandEncoder(nil)
	if err != nil {
		r.gpu.DropFrame()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	if err := r.core.EncodeFrame(encoder, view, snapshot); err != nil {
		encoder.Release()
		r.gpu.DropFrame()
		return err
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		r.gpu.DropFrame()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}

	r.gpu.Queue().Submit(commandBuffer)

	commandBuffer.Release()
	encoder.Release()

	r.gpu.Present()

	return nil
}

func (r *rendererImpl) Camera() camera.Camera {
	return r.core.Camera()
}

func (r *rendererImpl) Resize(width, height uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gpu.Resize(width, height)
	return r.core.Resize(width, height)
}

func (r *rendererImpl) Reconfigure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gpu.Reconfigure()
}

func (r *rendererImpl) Config() common.RenderConfig {
	return r.core.Config()
}

func (r *rendererImpl) SetConfig(config common.RenderConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.core.SetConfig(config)
}

func (r *rendererImpl) SetAntialiasing(mode common.AntialiasingMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	config := r.core.Config()
	config.Antialiasing = mode
	return r.core.SetConfig(config)
}

func (r *rendererImpl) SetCullingMode(mode common.CullingMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	config := r.core.Config()
	config.Culling = mode
	return r.core.SetConfig(config)
}

func (r *rendererImpl) SetAlphaBlending(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	config := r.core.Config()
	config.AlphaBlending = enabled
	return r.core.SetConfig(config)
}

func (r *rendererImpl) Set2DMode() error {
	return r.SetConfig(common.RenderConfig2D())
}

func (r *rendererImpl) Set3DMode() error {
	return r.SetConfig(common.RenderConfig3D())
}

func (r *rendererImpl) SetPerformanceMode() error {
	return r.SetConfig(common.RenderConfigPerformance())
}

func (r *rendererImpl) CacheStats() cache.CacheStats {
	return r.core.CacheStats()
}

func (r *rendererImpl) ClearCache() {
	r.core.ClearCache()
}

func (r *rendererImpl) FrameCount() uint64 {
	return r.core.FrameCount()
}

func (r *rendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.core.Release()
	r.gpu.Release()
}
