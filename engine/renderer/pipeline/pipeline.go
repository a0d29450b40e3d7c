package pipeline

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/geometry"
)

//go:embed assets/basic.wgsl
var basicShaderSource string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// DepthFormat is the depth texture format every pipeline is compiled
// against. Render targets must attach a depth view of this format with a
// sample count matching the pipeline.
const DepthFormat = wgpu.TextureFormatDepth32Float

// pipelineImpl is the implementation of the Pipeline interface. It holds the
// resolved pipeline state derived from a RenderConfig plus the compiled
// WebGPU pipeline object.
type pipelineImpl struct {
	// label names the pipeline in GPU debugging tools
	label string
	// format is the color target format this pipeline renders into
	format wgpu.TextureFormat
	// cullingMode is the resolved cull mode, after any override
	cullingMode common.CullingMode
	// sampleCount is the multisample count, matching the render targets
	sampleCount uint32
	// blendEnabled selects alpha blending instead of replace blending
	blendEnabled bool

	topology   wgpu.PrimitiveTopology
	frontFace  wgpu.FrontFace
	writeMask  wgpu.ColorWriteMask
	blendState *wgpu.BlendState

	renderPipeline *wgpu.RenderPipeline
}

// Pipeline is a compiled render pipeline plus the configuration state it was
// built from. Pipelines are immutable once created; a configuration change
// means building a new one.
type Pipeline interface {
	// RenderPipeline returns the underlying WebGPU render pipeline.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline object
	RenderPipeline() *wgpu.RenderPipeline

	// Label returns the debug label this pipeline was created with.
	//
	// Returns:
	//   - string: the pipeline label
	Label() string

	// CullingMode returns the resolved cull mode for this pipeline, after
	// any per-group override applied at creation.
	//
	// Returns:
	//   - common.CullingMode: the cull mode this pipeline rasterizes with
	CullingMode() common.CullingMode

	// SampleCount returns the multisample count this pipeline was compiled
	// for. Render targets must match it.
	//
	// Returns:
	//   - uint32: the multisample count (1 when antialiasing is off)
	SampleCount() uint32

	// BlendEnabled returns whether alpha blending is enabled for this
	// pipeline.
	//
	// Returns:
	//   - bool: true if alpha blending is enabled, false for replace
	BlendEnabled() bool

	// Format returns the color target format this pipeline renders into.
	//
	// Returns:
	//   - wgpu.TextureFormat: the color target format
	Format() wgpu.TextureFormat

	// Release frees the underlying GPU pipeline object.
	Release()
}

var _ Pipeline = &pipelineImpl{}

// NewPipeline compiles a render pipeline for the given color target format
// and configuration. The uniform bind group layout is the dynamic-offset
// layout shared by every pipeline in a render core.
//
// Parameters:
//   - device: the WebGPU device used to create GPU objects
//   - uniformLayout: the dynamic uniform bind group layout at group 0
//   - format: the color target format the pipeline renders into
//   - config: the rendering configuration to compile against
//   - options: a variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the compiled pipeline
//   - error: an error if any GPU object creation fails
func NewPipeline(device *wgpu.Device, uniformLayout *wgpu.BindGroupLayout, format wgpu.TextureFormat, config common.RenderConfig, options ...PipelineBuilderOption) (Pipeline, error) {
	if device == nil || uniformLayout == nil {
		panic("pipeline: NewPipeline requires a non-nil device and uniform bind group layout")
	}

	p := newPipelineState(format, config, options...)
	if err := p.create(device, uniformLayout); err != nil {
		return nil, err
	}
	return p, nil
}

// newPipelineState resolves configuration and options into concrete pipeline
// state without touching the GPU.
func newPipelineState(format wgpu.TextureFormat, config common.RenderConfig, options ...PipelineBuilderOption) *pipelineImpl {
	p := &pipelineImpl{
		label:        "Render Pipeline",
		format:       format,
		cullingMode:  config.Culling,
		sampleCount:  config.Antialiasing.SampleCount(),
		blendEnabled: config.AlphaBlending,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// create compiles the WebGPU pipeline object from the resolved state.
func (p *pipelineImpl) create(device *wgpu.Device, uniformLayout *wgpu.BindGroupLayout) error {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Basic Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: basicShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shader module: %w", err)
	}
	defer module.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.label + " Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer layout.Release()

	created, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{geometry.VertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				func() wgpu.ColorTargetState {
					state := wgpu.ColorTargetState{
						Format:    p.format,
						WriteMask: p.writeMask,
					}
					if p.blendEnabled {
						state.Blend = p.blendState
					}
					return state
				}(),
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullingMode.ToWGPU(),
		},
		Multisample: wgpu.MultisampleState{
			Count: p.sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}

	p.renderPipeline = created
	return nil
}

func (p *pipelineImpl) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipelineImpl) Label() string {
	return p.label
}

func (p *pipelineImpl) CullingMode() common.CullingMode {
	return p.cullingMode
}

func (p *pipelineImpl) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipelineImpl) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipelineImpl) Format() wgpu.TextureFormat {
	return p.format
}

func (p *pipelineImpl) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
