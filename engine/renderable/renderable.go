// package renderable ties a procedural geometry to a transform and the
// per-object render state the core consumes: culling mode, mesh content
// hash, and the advisory dirty flag.
package renderable

import (
	"hash/fnv"

	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/geometry"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

// VertexProvider is the subset of a renderable the GPU-facing layers
// consume: vertex content plus its precomputed content hash. The vertex
// buffer cache keys on MeshHash, so any two providers with identical
// vertex bytes share one GPU buffer.
type VertexProvider interface {
	// Vertices returns the geometry's vertex list. Read-only.
	//
	// Returns:
	//   - []geometry.Vertex: the shape's vertices
	Vertices() []geometry.Vertex

	// VertexCount returns the number of vertices to draw.
	//
	// Returns:
	//   - uint32: the vertex count
	VertexCount() uint32

	// BufferContents returns the raw vertex bytes for GPU upload.
	//
	// Returns:
	//   - []byte: the vertex data as bytes
	BufferContents() []byte

	// MeshHash returns the FNV-1a hash of the vertex bytes, computed once
	// at construction. Identical geometry yields identical hashes, which
	// is what lets the vertex buffer cache share GPU buffers.
	//
	// Returns:
	//   - uint64: the content hash
	MeshHash() uint64
}

// Renderable is a drawable scene object: one geometry, one transform, one
// culling mode. Transform mutations route through the wrapper methods so
// the object can track that its GPU state is stale.
//
// The dirty flag is advisory: the render core re-uploads every visible
// object's matrix each frame regardless, but the flag is maintained
// faithfully (set on any mutation, cleared by MarkClean after upload) for
// callers that want to skip redundant uploads themselves.
type Renderable interface {
	VertexProvider

	// Geometry returns the immutable mesh provider.
	//
	// Returns:
	//   - geometry.Geometry: the shape's geometry
	Geometry() geometry.Geometry

	// Transform returns the object's transform for direct manipulation.
	// Mutations made directly on the transform bypass the dirty flag.
	//
	// Returns:
	//   - transform.Transform: the owned transform
	Transform() transform.Transform

	// Matrix returns the current model matrix without mutating cached
	// state.
	//
	// Returns:
	//   - math32.Matrix4: the composed translate-rotate-scale matrix
	Matrix() math32.Matrix4

	// CachedMatrix returns the model matrix, refreshing the transform's
	// cache if stale.
	//
	// Returns:
	//   - math32.Matrix4: the composed translate-rotate-scale matrix
	CachedMatrix() math32.Matrix4

	// CullingMode returns the object's culling mode.
	//
	// Returns:
	//   - common.CullingMode: the active mode
	CullingMode() common.CullingMode

	// SetCullingMode overrides the geometry's default culling mode.
	//
	// Parameters:
	//   - mode: the culling mode to use for this object
	SetCullingMode(mode common.CullingMode)

	// IsDirty reports whether the object's GPU state is stale.
	//
	// Returns:
	//   - bool: true if a mutation occurred since the last MarkClean
	IsDirty() bool

	// SetDirty sets the dirty flag directly.
	//
	// Parameters:
	//   - dirty: the new flag value
	SetDirty(dirty bool)

	// MarkClean clears the dirty flag. The render core calls this after
	// uploading the object's state.
	MarkClean()

	// SetPosition sets the world position and marks the object dirty.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position math32.Vector3)

	// SetRotation sets the orientation and marks the object dirty.
	//
	// Parameters:
	//   - rotation: the new orientation quaternion
	SetRotation(rotation math32.Quat)

	// SetScale sets the scale and marks the object dirty.
	//
	// Parameters:
	//   - scale: the new per-axis scale
	SetScale(scale math32.Vector3)

	// Translate offsets the position and marks the object dirty.
	//
	// Parameters:
	//   - delta: the offset to add
	Translate(delta math32.Vector3)

	// RotateDegrees applies euler rotations in degrees and marks the
	// object dirty.
	//
	// Parameters:
	//   - x: rotation about X in degrees
	//   - y: rotation about Y in degrees
	//   - z: rotation about Z in degrees
	RotateDegrees(x, y, z float32)

	// RotateOnAxis rotates about an arbitrary axis and marks the object
	// dirty.
	//
	// Parameters:
	//   - axis: the rotation axis, normalized internally
	//   - degrees: the rotation angle in degrees
	RotateOnAxis(axis math32.Vector3, degrees float32)

	// ScaleBy multiplies the scale per-axis and marks the object dirty.
	//
	// Parameters:
	//   - factor: the per-axis scale factors
	ScaleBy(factor math32.Vector3)

	// Update advances the shape's animation rule by dt seconds and marks
	// the object dirty.
	//
	// Parameters:
	//   - dt: seconds since the last update
	Update(dt float32)
}

type renderableImpl struct {
	geometry  geometry.Geometry
	transform transform.Transform
	culling   common.CullingMode
	dirty     bool
	meshHash  uint64
	baseScale math32.Vector3
	elapsed   float32
}

var _ Renderable = &renderableImpl{}

// New creates a Renderable for the given geometry. The culling mode
// defaults to the geometry's shape-family default and the object starts
// dirty (never uploaded).
//
// Parameters:
//   - geo: the mesh provider, must not be nil
//   - options: optional builder options to override defaults
//
// Returns:
//   - Renderable: the new renderable
func New(geo geometry.Geometry, options ...RenderableBuilderOption) Renderable {
	if geo == nil {
		panic("renderable: New requires a non-nil geometry")
	}

	r := &renderableImpl{
		geometry:  geo,
		transform: transform.NewTransform(),
		culling:   geo.DefaultCullingMode(),
		dirty:     true,
		meshHash:  hashVertices(geo.BufferContents()),
	}

	for _, opt := range options {
		opt(r)
	}

	// animation rules that pulse do so around the construction-time scale
	r.baseScale = r.transform.Scale()

	return r
}

func hashVertices(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}

func (r *renderableImpl) Geometry() geometry.Geometry {
	return r.geometry
}

func (r *renderableImpl) Transform() transform.Transform {
	return r.transform
}

func (r *renderableImpl) Matrix() math32.Matrix4 {
	return r.transform.Matrix()
}

func (r *renderableImpl) CachedMatrix() math32.Matrix4 {
	return r.transform.CachedMatrix()
}

func (r *renderableImpl) Vertices() []geometry.Vertex {
	return r.geometry.Vertices()
}

func (r *renderableImpl) VertexCount() uint32 {
	return r.geometry.VertexCount()
}

func (r *renderableImpl) BufferContents() []byte {
	return r.geometry.BufferContents()
}

func (r *renderableImpl) MeshHash() uint64 {
	return r.meshHash
}

func (r *renderableImpl) CullingMode() common.CullingMode {
	return r.culling
}

func (r *renderableImpl) SetCullingMode(mode common.CullingMode) {
	r.culling = mode
}

func (r *renderableImpl) IsDirty() bool {
	return r.dirty
}

func (r *renderableImpl) SetDirty(dirty bool) {
	r.dirty = dirty
}

func (r *renderableImpl) MarkClean() {
	r.dirty = false
}

func (r *renderableImpl) SetPosition(position math32.Vector3) {
	r.transform.SetPosition(position)
	r.dirty = true
}

func (r *renderableImpl) SetRotation(rotation math32.Quat) {
	r.transform.SetRotation(rotation)
	r.dirty = true
}

func (r *renderableImpl) SetScale(scale math32.Vector3) {
	r.transform.SetScale(scale)
	r.dirty = true
}

func (r *renderableImpl) Translate(delta math32.Vector3) {
	r.transform.Translate(delta)
	r.dirty = true
}

func (r *renderableImpl) RotateDegrees(x, y, z float32) {
	r.transform.RotateDegrees(x, y, z)
	r.dirty = true
}

func (r *renderableImpl) RotateOnAxis(axis math32.Vector3, degrees float32) {
	r.transform.RotateOnAxis(axis, degrees)
	r.dirty = true
}

func (r *renderableImpl) ScaleBy(factor math32.Vector3) {
	r.transform.ScaleBy(factor)
	r.dirty = true
}

func (r *renderableImpl) Update(dt float32) {
	r.elapsed += dt
	r.geometry.Animate(r.transform, r.baseScale, r.elapsed, dt)
	r.dirty = true
}
