package renderer

// HeadlessRendererBuilderOption is a functional option applied to a headless renderer during construction.
type HeadlessRendererBuilderOption func(*headlessRendererImpl)

// WithHeadlessCoreOptions forwards options to the RenderCore built by
// NewHeadlessRenderer, for tuning the camera, cache retention or uniform
// capacity of a headless renderer.
//
// Parameters:
//   - options: render core options to apply during core construction
//
// Returns:
//   - HeadlessRendererBuilderOption: a function that applies the core options to a headless renderer
func WithHeadlessCoreOptions(options ...RenderCoreBuilderOption) HeadlessRendererBuilderOption {
	return func(h *headlessRendererImpl) {
		h.pendingCoreOptions = append(h.pendingCoreOptions, options...)
	}
}
