package camera

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's world position.
//
// Parameters:
//   - position: the world position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position math32.Vector3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithTarget sets the point the camera looks at.
//
// Parameters:
//   - target: the look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(target math32.Vector3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up math32.Vector3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithMode sets the projection mode.
//
// Parameters:
//   - mode: perspective or orthographic
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection mode
func WithMode(mode ProjectionMode) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.mode = mode
	}
}

// WithFov sets the vertical field of view in degrees. Only meaningful in
// perspective mode. Values are clamped to [1, 179].
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovDegrees = common.Clamp(degrees, minFovDegrees, maxFovDegrees)
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: a function that sets the aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithOrthoHeight sets the world-space height of the orthographic view
// volume. Only meaningful in orthographic mode.
//
// Parameters:
//   - height: the view volume height in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the orthographic height
func WithOrthoHeight(height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orthoHeight = height
	}
}
