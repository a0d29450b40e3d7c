package transform

import (
	"cogentcore.org/core/math32"
)

type TransformBuilderOption func(*transformImpl)

// WithPosition sets the transform's initial position.
//
// Parameters:
//   - pos: the initial position
//
// Returns:
//   - TransformBuilderOption: a function that sets the position
func WithPosition(pos math32.Vector3) TransformBuilderOption {
	return func(t *transformImpl) {
		t.position = pos
	}
}

// WithRotation sets the transform's initial rotation quaternion.
//
// Parameters:
//   - rot: the initial rotation (expected to be a unit quaternion)
//
// Returns:
//   - TransformBuilderOption: a function that sets the rotation
func WithRotation(rot math32.Quat) TransformBuilderOption {
	return func(t *transformImpl) {
		t.rotation = rot
	}
}

// WithEulerDegrees sets the transform's initial rotation from Euler angles
// in degrees about the X, Y, and Z axes.
//
// Parameters:
//   - x, y, z: rotation angles in degrees
//
// Returns:
//   - TransformBuilderOption: a function that sets the rotation
func WithEulerDegrees(x, y, z float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.rotation = math32.NewQuatEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
	}
}

// WithScale sets the transform's initial scale factors.
//
// Parameters:
//   - scale: the initial scale
//
// Returns:
//   - TransformBuilderOption: a function that sets the scale
func WithScale(scale math32.Vector3) TransformBuilderOption {
	return func(t *transformImpl) {
		t.scale = scale
	}
}

// WithUniformScale sets the same initial scale factor on all three axes.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - TransformBuilderOption: a function that sets the scale
func WithUniformScale(s float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.scale = math32.Vec3(s, s, s)
	}
}
