package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/camera"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderer/cache"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// headlessFormat is the color format for headless render targets. Pixels read
// back from the target are RGBA in this encoding.
const headlessFormat = wgpu.TextureFormatRGBA8UnormSrgb

// headlessRendererImpl is the implementation of the HeadlessRenderer interface.
type headlessRendererImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	device   *wgpu.Device
	queue    *wgpu.Queue
	core     RenderCore

	width  uint32
	height uint32

	targetTexture *wgpu.Texture
	targetView    *wgpu.TextureView

	readbackBuffer    *wgpu.Buffer
	paddedBytesPerRow uint32

	// Pre-creation config collected from builder options.
	pendingCoreOptions []RenderCoreBuilderOption
}

// HeadlessRenderer renders scenes to an off-screen texture and returns the
// pixels, with no window system involved. It shares the RenderCore frame
// sequence with the windowed Renderer, so grouping, caching, antialiasing and
// depth behave identically on both paths.
type HeadlessRenderer interface {
	// RenderScene renders one frame of the given scene to the off-screen
	// target and reads the result back from the GPU.
	//
	// Parameters:
	//   - s: the scene to snapshot and render
	//
	// Returns:
	//   - []byte: tightly packed RGBA pixels, width*height*4 bytes
	//   - error: an error if encoding, submission or readback fails
	RenderScene(s scene.Scene) ([]byte, error)

	// Camera returns the camera used to frame every draw.
	//
	// Returns:
	//   - camera.Camera: the active camera
	Camera() camera.Camera

	// Resize recreates the render target and readback buffer for new
	// dimensions and updates the camera aspect ratio. Zero dimensions are
	// ignored.
	//
	// Parameters:
	//   - width: the new target width in pixels
	//   - height: the new target height in pixels
	//
	// Returns:
	//   - error: an error if target recreation fails
	Resize(width, height uint32) error

	// Dimensions returns the current render target size.
	//
	// Returns:
	//   - uint32: the target width in pixels
	//   - uint32: the target height in pixels
	Dimensions() (uint32, uint32)

	// Device returns the WebGPU device for capability queries.
	//
	// Returns:
	//   - *wgpu.Device: the device owned by this renderer
	Device() *wgpu.Device

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

var _ HeadlessRenderer = &headlessRendererImpl{}

// NewHeadlessRenderer creates a renderer that draws to an off-screen texture.
// The adapter is requested without a compatible surface, so this works on
// systems with no display at all.
//
// Parameters:
//   - width: the render target width in pixels
//   - height: the render target height in pixels
//   - config: the initial render configuration
//   - options: variadic list of HeadlessRendererBuilderOption functions to configure the renderer
//
// Returns:
//   - HeadlessRenderer: the initialized renderer
//   - error: an error if GPU setup, target creation or pipeline creation fails
func NewHeadlessRenderer(width, height uint32, config common.RenderConfig, options ...HeadlessRendererBuilderOption) (HeadlessRenderer, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("headless renderer requires non-zero dimensions, got %dx%d", width, height)
	}

	h := &headlessRendererImpl{
		mu:     &sync.Mutex{},
		width:  width,
		height: height,
	}
	for _, opt := range options {
		opt(h)
	}

	h.instance = wgpu.CreateInstance(nil)

	adapter, err := h.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: false,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdapterRequest, err)
	}

	limits := wgpu.DefaultLimits()
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Headless Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceRequest, err)
	}
	h.device = device
	h.queue = device.GetQueue()

	if err := h.createTargetLocked(); err != nil {
		return nil, err
	}

	core, err := NewRenderCore(device, h.queue, headlessFormat, width, height, config, h.pendingCoreOptions...)
	if err != nil {
		h.releaseTargetLocked()
		return nil, err
	}
	h.core = core

	return h, nil
}

func (h *headlessRendererImpl) RenderScene(s scene.Scene) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot render a nil scene")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	snapshot := s.AllRenderables()

	encoder, err := h.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create command encoder: %w", err)
	}

	if err := h.core.EncodeFrame(encoder, h.targetView, snapshot); err != nil {
		encoder.Release()
		return nil, err
	}

	if err := encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  h.targetTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: h.readbackBuffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  h.paddedBytesPerRow,
				RowsPerImage: h.height,
			},
		},
		&wgpu.Extent3D{
			Width:              h.width,
			Height:             h.height,
			DepthOrArrayLayers: 1,
		},
	); err != nil {
		encoder.Release()
		return nil, fmt.Errorf("failed to encode texture readback: %w", err)
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		return nil, fmt.Errorf("failed to finish command encoder: %w", err)
	}

	h.queue.Submit(commandBuffer)

	commandBuffer.Release()
	encoder.Release()

	return h.readPixelsLocked()
}

func (h *headlessRendererImpl) Camera() camera.Camera {
	return h.core.Camera()
}

func (h *headlessRendererImpl) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.width = width
	h.height = height
	if err := h.createTargetLocked(); err != nil {
		return err
	}
	return h.core.Resize(width, height)
}

func (h *headlessRendererImpl) Dimensions() (uint32, uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *headlessRendererImpl) Device() *wgpu.Device {
	return h.device
}

func (h *headlessRendererImpl) Config() common.RenderConfig {
	return h.core.Config()
}

func (h *headlessRendererImpl) SetConfig(config common.RenderConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.core.SetConfig(config)
}

func (h *headlessRendererImpl) SetAntialiasing(mode common.AntialiasingMode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	config := h.core.Config()
	config.Antialiasing = mode
	return h.core.SetConfig(config)
}

func (h *headlessRendererImpl) SetCullingMode(mode common.CullingMode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	config := h.core.Config()
	config.Culling = mode
	return h.core.SetConfig(config)
}

func (h *headlessRendererImpl) SetAlphaBlending(enabled bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	config := h.core.Config()
	config.AlphaBlending = enabled
	return h.core.SetConfig(config)
}

func (h *headlessRendererImpl) Set2DMode() error {
	return h.SetConfig(common.RenderConfig2D())
}

func (h *headlessRendererImpl) Set3DMode() error {
	return h.SetConfig(common.RenderConfig3D())
}

func (h *headlessRendererImpl) SetPerformanceMode() error {
	return h.SetConfig(common.RenderConfigPerformance())
}

func (h *headlessRendererImpl) CacheStats() cache.CacheStats {
	return h.core.CacheStats()
}

func (h *headlessRendererImpl) ClearCache() {
	h.core.ClearCache()
}

func (h *headlessRendererImpl) FrameCount() uint64 {
	return h.core.FrameCount()
}

func (h *headlessRendererImpl) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.core != nil {
		h.core.Release()
		h.core = nil
	}
	h.releaseTargetLocked()
}

// readPixelsLocked maps the readback buffer, strips the per-row padding
// required by the copy alignment rules, and returns tightly packed RGBA
// bytes. Caller must hold the mutex.
func (h *headlessRendererImpl) readPixelsLocked() ([]byte, error) {
	bufferSize := uint64(h.paddedBytesPerRow) * uint64(h.height)

	var status wgpu.BufferMapAsyncStatus
	if err := h.readbackBuffer.MapAsync(wgpu.MapModeRead, 0, bufferSize, func(s wgpu.BufferMapAsyncStatus) {
		status = s
	}); err != nil {
		return nil, fmt.Errorf("failed to map readback buffer: %w", err)
	}

	h.device.Poll(true, nil)

	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("failed to map readback buffer: status %v", status)
	}

	mapped := h.readbackBuffer.GetMappedRange(0, uint(bufferSize))

	rowBytes := int(h.width) * 4
	pixels := make([]byte, rowBytes*int(h.height))
	for y := 0; y < int(h.height); y++ {
		src := y * int(h.paddedBytesPerRow)
		copy(pixels[y*rowBytes:(y+1)*rowBytes], mapped[src:src+rowBytes])
	}

	h.readbackBuffer.Unmap()

	return pixels, nil
}

// createTargetLocked recreates the off-screen color target and the readback
// buffer for the current dimensions. Caller must hold the mutex.
func (h *headlessRendererImpl) createTargetLocked() error {
	h.releaseTargetLocked()

	texture, err := h.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Headless Render Texture",
		Size: wgpu.Extent3D{
			Width:              h.width,
			Height:             h.height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        headlessFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("failed to create headless render texture: %w", err)
	}
	h.targetTexture = texture

	view, err := texture.CreateView(nil)
	if err != nil {
		h.releaseTargetLocked()
		return fmt.Errorf("failed to create headless render texture view: %w", err)
	}
	h.targetView = view

	h.paddedBytesPerRow = uint32(common.AlignUp(uint64(h.width)*4, uint64(wgpu.CopyBytesPerRowAlignment)))

	buffer, err := h.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Headless Readback Buffer",
		Size:             uint64(h.paddedBytesPerRow) * uint64(h.height),
		Usage:            wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		h.releaseTargetLocked()
		return fmt.Errorf("failed to create headless readback buffer: %w", err)
	}
	h.readbackBuffer = buffer

	return nil
}

// releaseTargetLocked frees the color target and readback buffer if present.
// Caller must hold the mutex.
func (h *headlessRendererImpl) releaseTargetLocked() {
	if h.readbackBuffer != nil {
		h.readbackBuffer.Release()
		h.readbackBuffer = nil
	}
	if h.targetView != nil {
		h.targetView.Release()
		h.targetView = nil
	}
	if h.targetTexture != nil {
		h.targetTexture.Release()
		h.targetTexture = nil
	}
}
