package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*rendererImpl)

// WithPresentMode sets the surface present mode which controls how frames are
// delivered to the display. When not specified, the default is
// wgpu.PresentModeFifo, which caps presentation to the display refresh rate.
//
// Parameters:
//   - mode: the present mode to configure the surface with
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode wgpu.PresentMode) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.pendingPresentMode = &mode
	}
}

// WithCoreOptions forwards options to the RenderCore built by NewRenderer,
// for tuning the camera, cache retention or uniform capacity of a windowed
// renderer.
//
// Parameters:
//   - options: render core options to apply during core construction
//
// Returns:
//   - RendererBuilderOption: a function that applies the core options to a renderer
func WithCoreOptions(options ...RenderCoreBuilderOption) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.pendingCoreOptions = append(r.pendingCoreOptions, options...)
	}
}
