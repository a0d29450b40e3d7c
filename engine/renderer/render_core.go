package renderer

import (
	"fmt"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/camera"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderer/cache"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderer/uniforms"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
)

// clearColor is the background every frame starts from. Only the first render
// pass of a frame clears; later passes load the accumulated image.
var clearColor = wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// renderCoreImpl is the implementation of the RenderCore interface. It owns
// the per-target GPU resources shared by the windowed and headless paths:
// pipelines, the dynamic uniform buffer, the vertex buffer cache, the camera,
// and the depth and multisample textures.
type renderCoreImpl struct {
	mu *sync.Mutex

	device *wgpu.Device
	queue  *wgpu.Queue
	// format is the color target format every pipeline renders into
	format wgpu.TextureFormat
	width  uint32
	height uint32
	config common.RenderConfig

	camera        camera.Camera
	uniformBuffer uniforms.DynamicUniformBuffer
	vertexCache   cache.VertexBufferCache

	// primaryPipeline draws groups whose culling mode matches the config.
	primaryPipeline pipeline.Pipeline
	// cullingPipelines memoizes the secondary pipelines for groups whose
	// culling mode differs from the config. Entries live until the next
	// config change.
	cullingPipelines map[common.CullingMode]pipeline.Pipeline

	msaaTexture  *wgpu.Texture
	msaaView     *wgpu.TextureView
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	// frameCount counts frames that reached the draw stage.
	frameCount uint64

	// construction knobs consumed once by NewRenderCore.
	cacheRetention  time.Duration
	uniformCapacity int
}

// RenderCore encodes scene snapshots into render passes. It is shared by the
// windowed and headless renderers: both hand it a command encoder and a color
// target view, and it performs the grouping, matrix upload, pipeline
// selection, and draw encoding for one frame.
type RenderCore interface {
	// EncodeFrame encodes one frame of the given snapshot into the encoder,
	// targeting the given color view. Objects are grouped by culling mode
	// and drawn one render pass per group; the first pass clears the color
	// and depth targets, later passes load them. An empty snapshot encodes
	// nothing, leaving the target's previous contents intact.
	//
	// Parameters:
	//   - encoder: the command encoder for this frame
	//   - target: the color view the frame resolves into
	//   - snapshot: the objects to draw
	//
	// Returns:
	//   - error: an error if buffer or pipeline creation failed
	EncodeFrame(encoder *wgpu.CommandEncoder, target *wgpu.TextureView, snapshot scene.Renderables) error

	// Camera returns the camera whose view-projection matrix frames every
	// draw.
	//
	// Returns:
	//   - camera.Camera: the owned camera
	Camera() camera.Camera

	// Config returns the active rendering configuration.
	//
	// Returns:
	//   - common.RenderConfig: the current configuration
	Config() common.RenderConfig

	// SetConfig replaces the rendering configuration, rebuilding the primary
	// pipeline, dropping the memoized secondary pipelines, and recreating
	// the depth and multisample targets to match the new sample count.
	//
	// Parameters:
	//   - config: the configuration to apply
	//
	// Returns:
	//   - error: an error if pipeline or target creation failed; the old
	//     configuration stays active on failure
	SetConfig(config common.RenderConfig) error

	// Resize recreates the depth and multisample targets for new target
	// dimensions and updates the camera aspect ratio. Zero dimensions are
	// ignored.
	//
	// Parameters:
	//   - width: the new target width in pixels
	//   - height: the new target height in pixels
	//
	// Returns:
	//   - error: an error if target texture creation failed
	Resize(width, height uint32) error

	// CacheStats reports the vertex buffer cache statistics.
	//
	// Returns:
	//   - cache.CacheStats: entry count, cached vertices, hits, misses
	CacheStats() cache.CacheStats

	// ClearCache evicts every cached vertex buffer immediately.
	ClearCache()

	// FrameCount returns the number of frames that reached the draw stage.
	//
	// Returns:
	//   - uint64: the frame counter
	FrameCount() uint64

	// Release frees every GPU resource the core owns. The device and queue
	// are not released; they belong to the caller.
	Release()
}

var _ RenderCore = &renderCoreImpl{}

// NewRenderCore creates a RenderCore rendering into targets of the given
// format and dimensions.
//
// Parameters:
//   - device: the WebGPU device, must not be nil
//   - queue: the device queue, must not be nil
//   - format: the color target format
//   - width: the target width in pixels, must be non-zero
//   - height: the target height in pixels, must be non-zero
//   - config: the initial rendering configuration
//   - options: functional options to configure the core
//
// Returns:
//   - RenderCore: the newly created core
//   - error: an error if any GPU resource creation failed
func NewRenderCore(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, width, height uint32, config common.RenderConfig, options ...RenderCoreBuilderOption) (RenderCore, error) {
	if device == nil || queue == nil {
		panic("renderer: NewRenderCore requires a non-nil device and queue")
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("render core requires non-zero target dimensions, got %dx%d", width, height)
	}

	rc := &renderCoreImpl{
		mu:               &sync.Mutex{},
		device:           device,
		queue:            queue,
		format:           format,
		width:            width,
		height:           height,
		config:           config,
		cullingPipelines: make(map[common.CullingMode]pipeline.Pipeline),
	}
	for _, opt := range options {
		opt(rc)
	}

	var uniformOpts []uniforms.DynamicUniformBufferBuilderOption
	if rc.uniformCapacity > 0 {
		uniformOpts = append(uniformOpts, uniforms.WithCapacity(rc.uniformCapacity))
	}
	ub, err := uniforms.NewDynamicUniformBuffer(device, queue, wgpu.DefaultLimits().MinUniformBufferOffsetAlignment, uniformOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic uniform buffer: %w", err)
	}
	rc.uniformBuffer = ub

	var cacheOpts []cache.VertexBufferCacheBuilderOption
	if rc.cacheRetention > 0 {
		cacheOpts = append(cacheOpts, cache.WithRetention(rc.cacheRetention))
	}
	rc.vertexCache = cache.NewVertexBufferCache(device, cacheOpts...)

	if rc.camera == nil {
		rc.camera = camera.NewCamera(camera.WithAspect(float32(width) / float32(height)))
	}

	primary, err := pipeline.NewPipeline(device, ub.BindGroupLayout(), format, config, pipeline.WithLabel("Main Render Pipeline"))
	if err != nil {
		rc.uniformBuffer.Release()
		return nil, fmt.Errorf("failed to create render pipeline: %w", err)
	}
	rc.primaryPipeline = primary

	if err := rc.createTargetsLocked(width, height); err != nil {
		rc.primaryPipeline.Release()
		rc.uniformBuffer.Release()
		return nil, err
	}

	return rc, nil
}

func (rc *renderCoreImpl) EncodeFrame(encoder *wgpu.CommandEncoder, target *wgpu.TextureView, snapshot scene.Renderables) error {
	if encoder == nil || target == nil {
		return fmt.Errorf("encode frame requires a command encoder and a target view")
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	// An empty frame performs no passes at all, so the target keeps its
	// previous contents rather than being cleared.
	if snapshot.Count() == 0 {
		return nil
	}

	rc.uniformBuffer.ResetFrame()

	groups := groupByCullingMode(snapshot)
	objects, matrices := collectGroupMatrices(rc.camera.ViewProjectionMatrix(), groups)

	refs, err := rc.vertexCache.GetOrCreateMixedBuffers(vertexProviders(objects))
	if err != nil {
		return fmt.Errorf("failed to acquire vertex buffers: %w", err)
	}

	// Uploads may be shorter than matrices when the uniform buffer fills;
	// objects past the truncation point are silently dropped this frame.
	uploads := rc.uniformBuffer.UploadMatrices(matrices)

	needClear := true
	offset := 0
	for _, group := range groups {
		groupRefs := refs[offset : offset+len(group.objects)]
		var groupUploads []uniforms.Upload
		if offset < len(uploads) {
			end := offset + len(group.objects)
			if end > len(uploads) {
				end = len(uploads)
			}
			groupUploads = uploads[offset:end]
		}

		pl, err := rc.pipelineForLocked(group.mode)
		if err != nil {
			return err
		}
		if rc.encodePassLocked(encoder, target, pl, groupRefs, groupUploads, needClear) {
			needClear = false
		}
		offset += len(group.objects)
	}

	for i := range uploads {
		objects[i].MarkClean()
	}
	rc.frameCount++
	rc.vertexCache.CleanupOldEntries()

	return nil
}

// pipelineForLocked returns the pipeline for a culling mode: the primary
// pipeline when the mode matches the config, otherwise a memoized secondary
// pipeline built on first use. Caller must hold the mutex.
func (rc *renderCoreImpl) pipelineForLocked(mode common.CullingMode) (pipeline.Pipeline, error) {
	if mode == rc.config.Culling {
		return rc.primaryPipeline, nil
	}
	if pl, ok := rc.cullingPipelines[mode]; ok {
		return pl, nil
	}

	pl, err := pipeline.NewPipeline(rc.device, rc.uniformBuffer.BindGroupLayout(), rc.format, rc.config,
		pipeline.WithCullingOverride(mode),
		pipeline.WithLabel(fmt.Sprintf("Culling Pipeline (%s)", mode)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create culling pipeline for %s: %w", mode, err)
	}
	rc.cullingPipelines[mode] = pl
	return pl, nil
}

// encodePassLocked encodes one render pass drawing a culling group in
// lockstep over its vertex buffers and uniform uploads. Returns whether a
// pass was actually encoded. Caller must hold the mutex.
func (rc *renderCoreImpl) encodePassLocked(encoder *wgpu.CommandEncoder, target *wgpu.TextureView, pl pipeline.Pipeline, refs []cache.BufferRef, uploads []uniforms.Upload, clearTarget bool) bool {
	if len(refs) == 0 || len(uploads) == 0 {
		return false
	}

	// With antialiasing on, every pass draws into the multisample texture
	// and resolves into the frame target. The multisample contents must
	// survive between group passes, so the attachment stores rather than
	// discards.
	colorView := target
	var resolveTarget *wgpu.TextureView
	if rc.msaaView != nil {
		colorView = rc.msaaView
		resolveTarget = target
	}

	loadOp := wgpu.LoadOpLoad
	depthLoadOp := wgpu.LoadOpLoad
	if clearTarget {
		loadOp = wgpu.LoadOpClear
		depthLoadOp = wgpu.LoadOpClear
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Culling Group Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          colorView,
				ResolveTarget: resolveTarget,
				LoadOp:        loadOp,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue:    clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            rc.depthView,
			DepthLoadOp:     depthLoadOp,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	pass.SetPipeline(pl.RenderPipeline())
	for i, ref := range refs {
		if i >= len(uploads) {
			break
		}
		pass.SetVertexBuffer(0, ref.Buffer, 0, wgpu.WholeSize)
		pass.SetBindGroup(0, uploads[i].BindGroup, []uint32{uploads[i].Offset})
		pass.Draw(ref.VertexCount, 1, 0, 0)
	}
	pass.End()

	return true
}

// createTargetsLocked (re)creates the depth texture and, when antialiasing
// is on, the multisample color texture. Caller must hold the mutex.
func (rc *renderCoreImpl) createTargetsLocked(width, height uint32) error {
	rc.releaseTargetsLocked()

	samples := rc.config.Antialiasing.SampleCount()
	size := wgpu.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	if samples > 1 {
		msaaTexture, err := rc.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   samples,
			Dimension:     wgpu.TextureDimension2D,
			Format:        rc.format,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("failed to create MSAA texture: %w", err)
		}
		msaaView, err := msaaTexture.CreateView(nil)
		if err != nil {
			msaaTexture.Release()
			return fmt.Errorf("failed to create MSAA texture view: %w", err)
		}
		rc.msaaTexture = msaaTexture
		rc.msaaView = msaaView
	}

	// Depth sample count must match the color attachment.
	depthTexture, err := rc.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		rc.releaseTargetsLocked()
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		rc.releaseTargetsLocked()
		return fmt.Errorf("failed to create depth texture view: %w", err)
	}
	rc.depthTexture = depthTexture
	rc.depthView = depthView

	return nil
}

// releaseTargetsLocked frees the depth and multisample textures. Caller must
// hold the mutex.
func (rc *renderCoreImpl) releaseTargetsLocked() {
	if rc.msaaView != nil {
		rc.msaaView.Release()
		rc.msaaView = nil
	}
	if rc.msaaTexture != nil {
		rc.msaaTexture.Release()
		rc.msaaTexture = nil
	}
	if rc.depthView != nil {
		rc.depthView.Release()
		rc.depthView = nil
	}
	if rc.depthTexture != nil {
		rc.depthTexture.Release()
		rc.depthTexture = nil
	}
}

func (rc *renderCoreImpl) Camera() camera.Camera {
	return rc.camera
}

func (rc *renderCoreImpl) Config() common.RenderConfig {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.config
}

func (rc *renderCoreImpl) SetConfig(config common.RenderConfig) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	primary, err := pipeline.NewPipeline(rc.device, rc.uniformBuffer.BindGroupLayout(), rc.format, config, pipeline.WithLabel("Main Render Pipeline"))
	if err != nil {
		return fmt.Errorf("failed to rebuild render pipeline: %w", err)
	}

	// Targets depend on the config's sample count, so swap the config first
	// and put the old one back if target creation fails.
	oldConfig := rc.config
	rc.config = config
	if err := rc.createTargetsLocked(rc.width, rc.height); err != nil {
		primary.Release()
		rc.config = oldConfig
		if restoreErr := rc.createTargetsLocked(rc.width, rc.height); restoreErr != nil {
			return fmt.Errorf("failed to restore render targets after config change: %w", restoreErr)
		}
		return err
	}

	if rc.primaryPipeline != nil {
		rc.primaryPipeline.Release()
	}
	rc.primaryPipeline = primary
	for mode, pl := range rc.cullingPipelines {
		pl.Release()
		delete(rc.cullingPipelines, mode)
	}
	return nil
}

func (rc *renderCoreImpl) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.width = width
	rc.height = height
	if err := rc.createTargetsLocked(width, height); err != nil {
		return err
	}
	rc.camera.SetAspect(float32(width) / float32(height))
	return nil
}

func (rc *renderCoreImpl) CacheStats() cache.CacheStats {
	return rc.vertexCache.Stats()
}

func (rc *renderCoreImpl) ClearCache() {
	rc.vertexCache.Clear()
}

func (rc *renderCoreImpl) FrameCount() uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.frameCount
}

func (rc *renderCoreImpl) Release() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.primaryPipeline != nil {
		rc.primaryPipeline.Release()
		rc.primaryPipeline = nil
	}
	for mode, pl := range rc.cullingPipelines {
		pl.Release()
		delete(rc.cullingPipelines, mode)
	}
	if rc.uniformBuffer != nil {
		rc.uniformBuffer.Release()
		rc.uniformBuffer = nil
	}
	if rc.vertexCache != nil {
		rc.vertexCache.Release()
		rc.vertexCache = nil
	}
	rc.releaseTargetsLocked()
}
