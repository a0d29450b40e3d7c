package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/mosaic-go/common"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipelineImpl)

// WithLabel sets the debug label for this pipeline.
//
// Parameters:
//   - label: the label reported to GPU debugging tools
//
// Returns:
//   - PipelineBuilderOption: a function that sets the label for this pipeline
func WithLabel(label string) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		if label != "" {
			p.label = label
		}
	}
}

// WithCullingOverride replaces the configuration's cull mode for this
// pipeline. Used for the secondary pipelines that draw objects whose culling
// mode differs from the configured default.
//
// Parameters:
//   - mode: the cull mode this pipeline rasterizes with
//
// Returns:
//   - PipelineBuilderOption: a function that overrides the cull mode for this pipeline
func WithCullingOverride(mode common.CullingMode) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.cullingMode = mode
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology to use for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the primitive topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.topology = topology
	}
}

// WithFrontFace sets the front face winding order for this pipeline.
//
// Parameters:
//   - frontFace: the front face to use for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face for this pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.frontFace = frontFace
	}
}

// WithWriteMask sets the color write mask for this pipeline.
//
// Parameters:
//   - writeMask: the color write mask to use for this pipeline (e.g., wgpu.ColorWriteMaskAll)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the color write mask for this pipeline
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.writeMask = writeMask
	}
}

// WithBlendState sets a custom blend state for this pipeline. The blend
// state only takes effect when the configuration enables alpha blending.
//
// Parameters:
//   - blendState: the blend state to use when blending is enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend state for this pipeline
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		if blendState != nil {
			p.blendState = blendState
		}
	}
}
