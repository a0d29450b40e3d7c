package renderable

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

// RenderableBuilderOption is a function that modifies the renderable
// configuration during construction.
type RenderableBuilderOption func(*renderableImpl)

// WithTransform replaces the default identity transform.
//
// Parameters:
//   - t: the transform to adopt, ignored if nil
//
// Returns:
//   - RenderableBuilderOption: the option to apply
func WithTransform(t transform.Transform) RenderableBuilderOption {
	return func(r *renderableImpl) {
		if t != nil {
			r.transform = t
		}
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - position: the starting position
//
// Returns:
//   - RenderableBuilderOption: the option to apply
func WithPosition(position math32.Vector3) RenderableBuilderOption {
	return func(r *renderableImpl) {
		r.transform.SetPosition(position)
	}
}

// WithRotation sets the initial orientation.
//
// Parameters:
//   - rotation: the starting orientation quaternion
//
// Returns:
//   - RenderableBuilderOption: the option to apply
func WithRotation(rotation math32.Quat) RenderableBuilderOption {
	return func(r *renderableImpl) {
		r.transform.SetRotation(rotation)
	}
}

// WithEulerDegrees sets the initial orientation from euler angles in
// degrees.
//
// Parameters:
//   - x: rotation about X in degrees
//   - y: rotation about Y in degrees
//   - z: rotation about Z in degrees
//
// Returns:
//   - RenderableBuilderOption: the option to apply
func WithEulerDegrees(x, y, z float32) RenderableBuilderOption {
	return func(r *renderableImpl) {
		r.transform.SetRotation(math32.NewQuatEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor)))
	}
}

// WithScale sets the initial per-axis scale.
//
// Parameters:
//   - scale: the starting scale
//
// Returns:
//   - RenderableBuilderOption: the option to apply
func WithScale(scale math32.Vector3) RenderableBuilderOption {
	return func(r *renderableImpl) {
		r.transform.SetScale(scale)
	}
}

// WithUniformScale sets the same initial scale on all three axes.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - RenderableBuilderOption: the option to apply
func WithUniformScale(s float32) RenderableBuilderOption {
	return func(r *renderableImpl) {
		r.transform.SetScale(math32.Vec3(s, s, s))
	}
}

// WithCullingMode overrides the geometry's default culling mode.
//
// Parameters:
//   - mode: the culling mode for this object
//
// Returns:
//   - RenderableBuilderOption: the option to apply
func WithCullingMode(mode common.CullingMode) RenderableBuilderOption {
	return func(r *renderableImpl) {
		r.culling = mode
	}
}
