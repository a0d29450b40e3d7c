package renderable

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/geometry"
)

const tol = 1e-5

func allShapes() map[string]geometry.Geometry {
	return map[string]geometry.Geometry{
		"Triangle": geometry.NewTriangle(1),
		"Quad":     geometry.NewQuad(1, 1),
		"Cube":     geometry.NewCube(1),
		"Circle":   geometry.NewCircle(1, 16),
		"Cylinder": geometry.NewCylinder(1, 2, 16),
		"Cone":     geometry.NewCone(1, 2, 16),
		"Sphere":   geometry.NewSphere(1, 8, 12),
	}
}

func TestDefaultCullingFollowsShapeFamily(t *testing.T) {
	want := map[string]common.CullingMode{
		"Triangle": common.CullingNone,
		"Quad":     common.CullingNone,
		"Circle":   common.CullingNone,
		"Cube":     common.CullingBackface,
		"Cylinder": common.CullingBackface,
		"Cone":     common.CullingBackface,
		"Sphere":   common.CullingBackface,
	}
	for name, geo := range allShapes() {
		r := New(geo)
		assert.Equal(t, want[name], r.CullingMode(), name)
	}
}

func TestCullingModeOverride(t *testing.T) {
	r := New(geometry.NewCube(1), WithCullingMode(common.CullingFrontface))
	assert.Equal(t, common.CullingFrontface, r.CullingMode())

	r.SetCullingMode(common.CullingNone)
	assert.Equal(t, common.CullingNone, r.CullingMode())
}

func TestDirtyFlagProtocol(t *testing.T) {
	mutators := []struct {
		name   string
		mutate func(r Renderable)
	}{
		{"SetPosition", func(r Renderable) { r.SetPosition(math32.Vec3(1, 2, 3)) }},
		{"SetRotation", func(r Renderable) { r.SetRotation(math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), 1)) }},
		{"SetScale", func(r Renderable) { r.SetScale(math32.Vec3(2, 2, 2)) }},
		{"Translate", func(r Renderable) { r.Translate(math32.Vec3(0, 1, 0)) }},
		{"RotateDegrees", func(r Renderable) { r.RotateDegrees(0, 45, 0) }},
		{"RotateOnAxis", func(r Renderable) { r.RotateOnAxis(math32.Vec3(1, 0, 0), 30) }},
		{"ScaleBy", func(r Renderable) { r.ScaleBy(math32.Vec3(1.5, 1.5, 1.5)) }},
		{"Update", func(r Renderable) { r.Update(0.016) }},
	}

	for shape, geo := range allShapes() {
		t.Run(shape, func(t *testing.T) {
			for _, m := range mutators {
				t.Run(m.name, func(t *testing.T) {
					r := New(geo)
					assert.True(t, r.IsDirty(), "fresh objects start dirty")

					r.MarkClean()
					assert.False(t, r.IsDirty())

					m.mutate(r)
					assert.True(t, r.IsDirty(), "%s must mark dirty", m.name)

					r.MarkClean()
					assert.False(t, r.IsDirty())

					m.mutate(r)
					assert.True(t, r.IsDirty(), "%s must mark dirty again", m.name)
				})
			}
		})
	}
}

func TestSetDirtyDirect(t *testing.T) {
	r := New(geometry.NewTriangle(1))
	r.SetDirty(false)
	assert.False(t, r.IsDirty())
	r.SetDirty(true)
	assert.True(t, r.IsDirty())
}

func TestMeshHashSharedForIdenticalGeometry(t *testing.T) {
	a := New(geometry.NewCube(1))
	b := New(geometry.NewCube(1))
	c := New(geometry.NewCube(2))

	assert.Equal(t, a.MeshHash(), b.MeshHash(), "identical vertex data hashes equal")
	assert.NotEqual(t, a.MeshHash(), c.MeshHash(), "different sizes hash differently")
}

func TestMeshHashStableAcrossTransformMutation(t *testing.T) {
	r := New(geometry.NewSphere(1, 6, 8))
	before := r.MeshHash()
	r.SetPosition(math32.Vec3(5, 0, 0))
	r.Update(0.5)
	assert.Equal(t, before, r.MeshHash(), "hash covers vertex data only")
}

func TestUpdateAdvancesAnimation(t *testing.T) {
	r := New(geometry.NewTriangle(1))
	r.Update(1)

	m := r.CachedMatrix()
	p := math32.Vector4FromVector3(math32.Vec3(1, 0, 0), 1).MulMatrix4(&m)
	rad := 15 * math32.DegToRadFactor
	assert.InDelta(t, math32.Cos(rad), p.X, tol)
	assert.InDelta(t, math32.Sin(rad), p.Y, tol)
}

func TestCirclePulsesAroundConstructionScale(t *testing.T) {
	r := New(geometry.NewCircle(1, 8), WithUniformScale(3))

	// drive elapsed to the pulse peak
	r.Update(math32.Pi / 4)

	scale := r.Transform().Scale()
	assert.InDelta(t, 3*1.15, scale.X, 1e-3, "pulse is centered on the scale at construction")
}

func TestBuilderOptions(t *testing.T) {
	r := New(geometry.NewQuad(1, 1),
		WithPosition(math32.Vec3(1, 2, 3)),
		WithEulerDegrees(0, 0, 90),
		WithUniformScale(2),
	)

	pos := r.Transform().Position()
	assert.Equal(t, math32.Vec3(1, 2, 3), pos)

	m := r.CachedMatrix()
	p := math32.Vector4FromVector3(math32.Vec3(1, 0, 0), 1).MulMatrix4(&m)
	assert.InDelta(t, 1, p.X, tol)
	assert.InDelta(t, 4, p.Y, tol)
	assert.InDelta(t, 3, p.Z, tol)
}

func TestNewPanicsWithoutGeometry(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestGeometryPassThrough(t *testing.T) {
	geo := geometry.NewCone(1, 2, 12)
	r := New(geo)

	assert.Equal(t, geo.VertexCount(), r.VertexCount())
	assert.Len(t, r.Vertices(), int(geo.VertexCount()))
	assert.Len(t, r.BufferContents(), int(geo.VertexCount())*geometry.VertexSize)
	assert.Equal(t, geometry.KindCone, r.Geometry().Kind())
}
