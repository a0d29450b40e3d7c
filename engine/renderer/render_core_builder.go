package renderer

import (
	"time"

	"github.com/Carmen-Shannon/mosaic-go/engine/camera"
)

// RenderCoreBuilderOption is a functional option used to configure a RenderCore during construction.
type RenderCoreBuilderOption func(*renderCoreImpl)

// WithCamera injects a camera instead of the default perspective camera. The
// core still drives its aspect ratio on resize.
//
// Parameters:
//   - cam: the camera to frame every draw with
//
// Returns:
//   - RenderCoreBuilderOption: a function that sets the camera for this core
func WithCamera(cam camera.Camera) RenderCoreBuilderOption {
	return func(rc *renderCoreImpl) {
		if cam != nil {
			rc.camera = cam
		}
	}
}

// WithCacheRetention sets the vertex buffer cache retention window.
// Non-positive values keep the cache default.
//
// Parameters:
//   - retention: how long an idle cached buffer survives
//
// Returns:
//   - RenderCoreBuilderOption: a function that sets the cache retention for this core
func WithCacheRetention(retention time.Duration) RenderCoreBuilderOption {
	return func(rc *renderCoreImpl) {
		rc.cacheRetention = retention
	}
}

// WithUniformCapacity sets the number of dynamic uniform slots available per
// frame. Values below one keep the uniform buffer default.
//
// Parameters:
//   - slots: the per-frame object budget
//
// Returns:
//   - RenderCoreBuilderOption: a function that sets the uniform capacity for this core
func WithUniformCapacity(slots int) RenderCoreBuilderOption {
	return func(rc *renderCoreImpl) {
		rc.uniformCapacity = slots
	}
}
