package engine

import (
	"time"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderer"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
	"github.com/Carmen-Shannon/mosaic-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindowOptions forwards options to the window the engine creates.
// Ignored when a pre-built window is supplied via WithWindow.
//
// Parameters:
//   - options: window options such as window.WithTitle and window.WithSize
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowOptions(options ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.pendingWindowOptions = append(e.pendingWindowOptions, options...)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally. The engine still destroys the window when Run exits.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the scene the engine renders each frame. Without this option
// the engine creates an empty scene named "main".
//
// Parameters:
//   - s: the Scene to render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRenderConfig sets the initial render configuration for the engine's
// renderer. Without this option the renderer starts from DefaultRenderConfig.
//
// Parameters:
//   - config: the starting render configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderConfig(config common.RenderConfig) EngineBuilderOption {
	return func(e *engine) {
		e.pendingConfig = &config
	}
}

// WithRendererOptions forwards options to the renderer the engine creates.
//
// Parameters:
//   - options: renderer options such as renderer.WithPresentMode
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.pendingRendererOptions = append(e.pendingRendererOptions, options...)
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Second / time.Duration(fps)
	}
}
