package transform

import (
	"cogentcore.org/core/math32"
)

type transformImpl struct {
	position math32.Vector3
	rotation math32.Quat
	scale    math32.Vector3

	cached math32.Matrix4
	dirty  bool
}

// Transform holds an object's position, rotation (unit quaternion), and
// scale, and derives the 4x4 model matrix on demand. The matrix is cached
// behind a dirty bit: every mutator invalidates it, CachedMatrix refreshes
// it. The composed matrix is Translate * Rotate * Scale applied to column
// vectors, so scale applies first and translation last.
//
// A Transform is owned by exactly one renderable object and is not safe
// for concurrent use.
type Transform interface {
	// Position returns the current translation.
	//
	// Returns:
	//   - math32.Vector3: the position component
	Position() math32.Vector3

	// Rotation returns the current rotation quaternion.
	//
	// Returns:
	//   - math32.Quat: the rotation component
	Rotation() math32.Quat

	// Scale returns the current scale factors.
	//
	// Returns:
	//   - math32.Vector3: the scale component
	Scale() math32.Vector3

	// SetPosition replaces the translation and marks the matrix dirty.
	//
	// Parameters:
	//   - pos: the new position
	SetPosition(pos math32.Vector3)

	// SetRotation replaces the rotation and marks the matrix dirty.
	//
	// Parameters:
	//   - rot: the new rotation (expected to be a unit quaternion)
	SetRotation(rot math32.Quat)

	// SetScale replaces the scale factors and marks the matrix dirty.
	//
	// Parameters:
	//   - scale: the new scale
	SetScale(scale math32.Vector3)

	// Translate offsets the position by delta and marks the matrix dirty.
	//
	// Parameters:
	//   - delta: the translation offset
	Translate(delta math32.Vector3)

	// RotateDegrees composes an additional Euler rotation (degrees about
	// X, Y, Z) onto the current rotation and marks the matrix dirty.
	//
	// Parameters:
	//   - x, y, z: rotation increments in degrees about each axis
	RotateDegrees(x, y, z float32)

	// RotateOnAxis composes an additional rotation of the given angle
	// about the given axis onto the current rotation and marks the matrix
	// dirty. The axis is normalized internally.
	//
	// Parameters:
	//   - axis: the rotation axis
	//   - degrees: the rotation angle in degrees
	RotateOnAxis(axis math32.Vector3, degrees float32)

	// ScaleBy multiplies the scale componentwise by factor and marks the
	// matrix dirty.
	//
	// Parameters:
	//   - factor: per-axis scale multipliers
	ScaleBy(factor math32.Vector3)

	// Matrix returns the composed transform matrix. When the cache is
	// dirty the matrix is recomputed but NOT stored, so repeated calls on
	// a dirty transform repeat the work. Use CachedMatrix on hot paths.
	//
	// Returns:
	//   - math32.Matrix4: the composed Translate * Rotate * Scale matrix
	Matrix() math32.Matrix4

	// CachedMatrix returns the composed transform matrix, recomputing and
	// storing it if the cache is dirty. After this call IsDirty reports
	// false until the next mutation.
	//
	// Returns:
	//   - math32.Matrix4: the composed Translate * Rotate * Scale matrix
	CachedMatrix() math32.Matrix4

	// IsDirty reports whether the cached matrix is stale.
	//
	// Returns:
	//   - bool: true if a mutation happened since the last CachedMatrix
	IsDirty() bool
}

var _ Transform = &transformImpl{}

// NewTransform creates a Transform configured with the given options.
// Defaults are the identity: zero position, identity rotation, unit scale.
// The matrix cache starts populated and clean.
//
// Parameters:
//   - options: functional options to configure the transform
//
// Returns:
//   - Transform: the newly created transform
func NewTransform(options ...TransformBuilderOption) Transform {
	t := &transformImpl{
		rotation: math32.NewQuat(0, 0, 0, 1),
		scale:    math32.Vec3(1, 1, 1),
	}
	for _, option := range options {
		option(t)
	}
	t.cached.SetTransform(t.position, t.rotation, t.scale)
	t.dirty = false
	return t
}

func (t *transformImpl) Position() math32.Vector3 {
	return t.position
}

func (t *transformImpl) Rotation() math32.Quat {
	return t.rotation
}

func (t *transformImpl) Scale() math32.Vector3 {
	return t.scale
}

func (t *transformImpl) SetPosition(pos math32.Vector3) {
	t.position = pos
	t.dirty = true
}

func (t *transformImpl) SetRotation(rot math32.Quat) {
	t.rotation = rot
	t.dirty = true
}

func (t *transformImpl) SetScale(scale math32.Vector3) {
	t.scale = scale
	t.dirty = true
}

func (t *transformImpl) Translate(delta math32.Vector3) {
	t.position = t.position.Add(delta)
	t.dirty = true
}

func (t *transformImpl) RotateDegrees(x, y, z float32) {
	q := math32.NewQuatEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
	t.rotation.SetMul(q)
	t.dirty = true
}

func (t *transformImpl) RotateOnAxis(axis math32.Vector3, degrees float32) {
	q := math32.NewQuatAxisAngle(axis.Normal(), math32.DegToRad(degrees))
	t.rotation.SetMul(q)
	t.dirty = true
}

func (t *transformImpl) ScaleBy(factor math32.Vector3) {
	t.scale = t.scale.Mul(factor)
	t.dirty = true
}

func (t *transformImpl) Matrix() math32.Matrix4 {
	if !t.dirty {
		return t.cached
	}
	var m math32.Matrix4
	m.SetTransform(t.position, t.rotation, t.scale)
	return m
}

func (t *transformImpl) CachedMatrix() math32.Matrix4 {
	if t.dirty {
		t.cached.SetTransform(t.position, t.rotation, t.scale)
		t.dirty = false
	}
	return t.cached
}

func (t *transformImpl) IsDirty() bool {
	return t.dirty
}
