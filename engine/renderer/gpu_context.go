package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/mosaic-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sentinel errors for GPU setup stages and per-frame surface acquisition.
// Callers match these with errors.Is; acquisition failures are the only
// recoverable kind.
var (
	ErrSurfaceCreation = errors.New("surface creation failed")
	ErrAdapterRequest  = errors.New("adapter request failed")
	ErrDeviceRequest   = errors.New("device request failed")
	ErrSurfaceAcquire  = errors.New("surface texture acquisition failed")
)

// gpuContextImpl is the implementation of the GPUContext interface.
type gpuContextImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format      wgpu.TextureFormat
	alphaMode   wgpu.CompositeAlphaMode
	presentMode wgpu.PresentMode
	width       uint32
	height      uint32

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// GPUContext owns the WebGPU instance, surface, adapter, device and queue for
// a windowed renderer, along with the surface configuration. It hands out one
// swapchain view per frame and presents it when the frame is done.
type GPUContext interface {
	// Device returns the WebGPU device owned by this context.
	//
	// Returns:
	//   - *wgpu.Device: the device used for all resource creation
	Device() *wgpu.Device

	// Queue returns the command queue owned by this context.
	//
	// Returns:
	//   - *wgpu.Queue: the queue used for buffer uploads and command submission
	Queue() *wgpu.Queue

	// Format returns the texture format the surface is configured with.
	//
	// Returns:
	//   - wgpu.TextureFormat: the swapchain color format
	Format() wgpu.TextureFormat

	// Size returns the dimensions the surface is currently configured with.
	//
	// Returns:
	//   - uint32: the surface width in pixels
	//   - uint32: the surface height in pixels
	Size() (uint32, uint32)

	// AcquireFrame acquires the next swapchain texture and returns a view of
	// it. The view stays valid until Present is called. Acquiring twice
	// without presenting is an error.
	//
	// Returns:
	//   - *wgpu.TextureView: the view to render this frame into
	//   - error: an error wrapping ErrSurfaceAcquire if acquisition fails
	AcquireFrame() (*wgpu.TextureView, error)

	// Present presents the currently acquired swapchain texture and releases
	// the per-frame view. It is a no-op when no frame is held.
	Present()

	// DropFrame releases an acquired swapchain texture without presenting
	// it, returning the image to the surface. Used when encoding fails so
	// the next acquisition starts clean. It is a no-op when no frame is
	// held.
	DropFrame()

	// Resize reconfigures the surface for new window dimensions. Zero
	// dimensions are ignored so minimized windows never produce an invalid
	// surface configuration.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height uint32)

	// Reconfigure re-applies the current surface configuration. Used to
	// recover from lost or outdated surfaces after a failed acquisition.
	Reconfigure()

	// Release frees any frame resources still held by the context. The
	// device, surface and instance are retained for the life of the process.
	Release()
}

var _ GPUContext = &gpuContextImpl{}

// NewGPUContext creates a windowed GPU context backed by the provided
// window's native surface.
//
// The adapter is requested against the window surface with the fallback
// adapter disabled, the device is created with default limits, and the
// surface is configured with an sRGB format when the adapter advertises one.
//
// Parameters:
//   - win: the window providing the native surface descriptor and initial dimensions
//   - presentMode: the presentation mode to configure the surface with
//
// Returns:
//   - GPUContext: the initialized GPU context
//   - error: a wrapped stage sentinel if any setup step fails
func NewGPUContext(win window.Window, presentMode wgpu.PresentMode) (GPUContext, error) {
	if win == nil {
		panic("renderer: NewGPUContext requires a non-nil window")
	}

	g := &gpuContextImpl{
		mu:          &sync.Mutex{},
		presentMode: presentMode,
		width:       uint32(win.Width()),
		height:      uint32(win.Height()),
	}

	surfaceDescriptor := win.SurfaceDescriptor()
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("%w: window provided no surface descriptor", ErrSurfaceCreation)
	}

	g.instance = wgpu.CreateInstance(nil)
	g.surface = g.instance.CreateSurface(surfaceDescriptor)
	if g.surface == nil {
		return nil, fmt.Errorf("%w: instance returned a nil surface", ErrSurfaceCreation)
	}

	adapter, err := g.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: false,
		CompatibleSurface:    g.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdapterRequest, err)
	}
	g.adapter = adapter

	limits := wgpu.DefaultLimits()
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceRequest, err)
	}
	g.device = device
	g.queue = device.GetQueue()

	caps := g.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return nil, fmt.Errorf("%w: surface reports no compatible texture formats", ErrSurfaceCreation)
	}
	g.format = preferredSurfaceFormat(caps.Formats)
	g.alphaMode = caps.AlphaModes[0]

	g.configureSurfaceLocked()

	return g, nil
}

func (g *gpuContextImpl) Device() *wgpu.Device {
	return g.device
}

func (g *gpuContextImpl) Queue() *wgpu.Queue {
	return g.queue
}

func (g *gpuContextImpl) Format() wgpu.TextureFormat {
	return g.format
}

func (g *gpuContextImpl) Size() (uint32, uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

func (g *gpuContextImpl) AcquireFrame() (*wgpu.TextureView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Holding the previous surface texture past its Present call trips
	// wgpu-native validation, so refuse overlapping acquisitions.
	if g.frameSurface != nil {
		return nil, fmt.Errorf("%w: previous frame surface not yet presented", ErrSurfaceAcquire)
	}

	surfaceTexture, err := g.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceAcquire, err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, fmt.Errorf("%w: %v", ErrSurfaceAcquire, err)
	}

	g.frameSurface = surfaceTexture
	g.frameView = view

	return view, nil
}

func (g *gpuContextImpl) Present() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frameSurface == nil {
		return
	}

	g.surface.Present()

	if g.frameView != nil {
		g.frameView.Release()
		g.frameView = nil
	}
	g.frameSurface.Release()
	g.frameSurface = nil
}

func (g *gpuContextImpl) DropFrame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frameView != nil {
		g.frameView.Release()
		g.frameView = nil
	}
	if g.frameSurface != nil {
		g.frameSurface.Release()
		g.frameSurface = nil
	}
}

func (g *gpuContextImpl) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.width = width
	g.height = height
	g.configureSurfaceLocked()
}

func (g *gpuContextImpl) Reconfigure() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configureSurfaceLocked()
}

func (g *gpuContextImpl) Release() {
	g.DropFrame()
}

// configureSurfaceLocked applies the current format, dimensions, alpha mode
// and present mode to the surface. Caller must hold the mutex.
func (g *gpuContextImpl) configureSurfaceLocked() {
	g.surface.Configure(g.adapter, g.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      g.format,
		Width:       g.width,
		Height:      g.height,
		PresentMode: g.presentMode,
		AlphaMode:   g.alphaMode,
	})
}

// preferredSurfaceFormat picks an sRGB swapchain format when the surface
// offers one, falling back to the first advertised format otherwise.
func preferredSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, format := range formats {
		if format == wgpu.TextureFormatBGRA8UnormSrgb || format == wgpu.TextureFormatRGBA8UnormSrgb {
			return format
		}
	}
	return formats[0]
}
