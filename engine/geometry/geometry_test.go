package geometry

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

const tol = 1e-5

func TestVertexCounts(t *testing.T) {
	tests := []struct {
		name string
		geo  Geometry
		want uint32
	}{
		{"triangle", NewTriangle(1), 3},
		{"quad", NewQuad(1, 1), 6},
		{"cube", NewCube(1), 36},
		{"circle 16 segments", NewCircle(1, 16), 16 * 3},
		{"cylinder 24 segments", NewCylinder(1, 2, 24), 24 * 12},
		{"cone 24 segments", NewCone(1, 2, 24), 24 * 6},
		{"sphere 8x12", NewSphere(1, 8, 12), 8 * 12 * 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.geo.VertexCount())
			assert.Len(t, tt.geo.Vertices(), int(tt.want))
		})
	}
}

func TestSegmentFloorClamp(t *testing.T) {
	tests := []struct {
		name string
		geo  Geometry
		want uint32
	}{
		{"circle clamps to 3", NewCircle(1, 0), 3 * 3},
		{"cylinder clamps to 3", NewCylinder(1, 1, 2), 3 * 12},
		{"cone clamps to 3", NewCone(1, 1, 1), 3 * 6},
		{"sphere clamps both axes to 3", NewSphere(1, 1, 2), 3 * 3 * 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.geo.VertexCount())
		})
	}
}

func TestDefaultCullingModes(t *testing.T) {
	flat := []Geometry{NewTriangle(1), NewQuad(1, 1), NewCircle(1, 16)}
	for _, g := range flat {
		assert.Equal(t, common.CullingNone, g.DefaultCullingMode(), "%s is a flat shape", g.Kind())
	}

	closed := []Geometry{NewCube(1), NewCylinder(1, 2, 16), NewCone(1, 2, 16), NewSphere(1, 8, 12)}
	for _, g := range closed {
		assert.Equal(t, common.CullingBackface, g.DefaultCullingMode(), "%s is a closed shape", g.Kind())
	}
}

func TestTriangleVertices(t *testing.T) {
	geo := NewTriangle(2)
	verts := geo.Vertices()

	height := math32.Sqrt(3) / 2 * 2

	assert.InDelta(t, 0, verts[0].Position[0], tol)
	assert.InDelta(t, height*2/3, verts[0].Position[1], tol)
	assert.Equal(t, [3]float32{1, 0, 0}, verts[0].Color)

	assert.InDelta(t, -1, verts[1].Position[0], tol)
	assert.InDelta(t, -height/3, verts[1].Position[1], tol)
	assert.Equal(t, [3]float32{0, 1, 0}, verts[1].Color)

	assert.InDelta(t, 1, verts[2].Position[0], tol)
	assert.Equal(t, [3]float32{0, 0, 1}, verts[2].Color)

	bounds := geo.Bounds()
	assert.InDelta(t, -1, bounds.Min.X, tol)
	assert.InDelta(t, -height/3, bounds.Min.Y, tol)
	assert.InDelta(t, 1, bounds.Max.X, tol)
	assert.InDelta(t, height*2/3, bounds.Max.Y, tol)
}

func TestTriangleScaleRatio(t *testing.T) {
	small := NewTriangle(1).Vertices()
	big := NewTriangle(3).Vertices()
	for i := range small {
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, small[i].Position[axis]*3, big[i].Position[axis], tol)
		}
		assert.Equal(t, small[i].Color, big[i].Color)
	}
}

func TestQuadCorners(t *testing.T) {
	geo := NewQuad(4, 2)
	verts := geo.Vertices()

	assert.Equal(t, [3]float32{-2, 1, 0}, verts[0].Position)
	assert.Equal(t, [3]float32{-2, -1, 0}, verts[1].Position)
	assert.Equal(t, [3]float32{2, 1, 0}, verts[2].Position)
	assert.Equal(t, [3]float32{2, -1, 0}, verts[5].Position)
	assert.Equal(t, [3]float32{1, 1, 0}, verts[5].Color, "last corner is yellow")

	// shared edge vertices carry identical data in both triangles
	assert.Equal(t, verts[2], verts[3])
	assert.Equal(t, verts[1], verts[4])

	bounds := geo.Bounds()
	assert.Equal(t, math32.Vec3(-2, -1, 0), bounds.Min)
	assert.Equal(t, math32.Vec3(2, 1, 0), bounds.Max)
}

func TestCubeFaceColors(t *testing.T) {
	geo := NewCube(2)
	verts := geo.Vertices()
	assert.Len(t, verts, 36)

	faceColors := [][3]float32{
		{1, 0, 0}, // front
		{0, 1, 0}, // back
		{0, 0, 1}, // top
		{1, 1, 0}, // bottom
		{1, 0, 1}, // right
		{0, 1, 1}, // left
	}
	for face := 0; face < 6; face++ {
		for i := 0; i < 6; i++ {
			assert.Equal(t, faceColors[face], verts[face*6+i].Color, "face %d vertex %d", face, i)
		}
	}

	bounds := geo.Bounds()
	assert.Equal(t, math32.Vec3(-1, -1, -1), bounds.Min)
	assert.Equal(t, math32.Vec3(1, 1, 1), bounds.Max)
}

func TestCircleFan(t *testing.T) {
	geo := NewCircle(2, 8)
	verts := geo.Vertices()

	// every fan triangle starts at the white center
	for i := 0; i < 8; i++ {
		assert.Equal(t, [3]float32{0, 0, 0}, verts[i*3].Position)
		assert.Equal(t, [3]float32{1, 1, 1}, verts[i*3].Color)
	}

	// first rim vertex sits at angle zero on +X
	assert.InDelta(t, 2, verts[1].Position[0], tol)
	assert.InDelta(t, 0, verts[1].Position[1], tol)

	// last triangle wraps back around to the first rim vertex
	assert.Equal(t, verts[1], verts[7*3+2])

	bounds := geo.Bounds()
	assert.Equal(t, math32.Vec3(-2, -2, 0), bounds.Min)
	assert.Equal(t, math32.Vec3(2, 2, 0), bounds.Max)
}

func TestCylinderStructure(t *testing.T) {
	geo := NewCylinder(1, 2, 8)
	verts := geo.Vertices()
	assert.Len(t, verts, 8*12)

	// each per-segment block is two wall triangles then the two cap triangles
	assert.Equal(t, [3]float32{1, -1, 0}, verts[0].Position, "bottom ring at angle zero")
	assert.Equal(t, [3]float32{0, 1, 0}, verts[6].Position, "top cap center")
	assert.Equal(t, [3]float32{1.0, 0.8, 0.8}, verts[6].Color)
	assert.Equal(t, [3]float32{0, -1, 0}, verts[9].Position, "bottom cap center")
	assert.Equal(t, [3]float32{0.8, 0.8, 1.0}, verts[9].Color)
}

func TestConeApexAndBase(t *testing.T) {
	geo := NewCone(1, 2, 8)
	verts := geo.Vertices()
	assert.Len(t, verts, 8*6)

	assert.Equal(t, [3]float32{0, 1, 0}, verts[0].Position, "apex on +Y")
	assert.Equal(t, [3]float32{1, 1, 0}, verts[0].Color, "apex is yellow")
	assert.Equal(t, [3]float32{0, -1, 0}, verts[3].Position, "base cap center")
	assert.Equal(t, [3]float32{0.8, 0.8, 0.8}, verts[3].Color)

	bounds := geo.Bounds()
	assert.Equal(t, math32.Vec3(-1, -1, -1), bounds.Min)
	assert.Equal(t, math32.Vec3(1, 1, 1), bounds.Max)
}

func TestSphereRadiusAndColors(t *testing.T) {
	geo := NewSphere(2, 6, 8)
	for _, v := range geo.Vertices() {
		length := math32.Sqrt(v.Position[0]*v.Position[0] +
			v.Position[1]*v.Position[1] +
			v.Position[2]*v.Position[2])
		assert.InDelta(t, 2, length, tol, "every vertex lies on the sphere surface")
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, v.Color[axis], float32(0))
			assert.LessOrEqual(t, v.Color[axis], float32(1))
		}
	}

	bounds := geo.Bounds()
	assert.Equal(t, math32.Vec3(-2, -2, -2), bounds.Min)
	assert.Equal(t, math32.Vec3(2, 2, 2), bounds.Max)
}

func TestVerticesWithinBounds(t *testing.T) {
	shapes := []Geometry{
		NewTriangle(1.5),
		NewQuad(2, 1),
		NewCube(1),
		NewCircle(0.75, 12),
		NewCylinder(0.5, 1.5, 10),
		NewCone(0.5, 1, 10),
		NewSphere(0.6, 6, 8),
	}
	for _, g := range shapes {
		t.Run(g.Kind().String(), func(t *testing.T) {
			b := g.Bounds()
			for _, v := range g.Vertices() {
				assert.GreaterOrEqual(t, v.Position[0], b.Min.X-tol)
				assert.GreaterOrEqual(t, v.Position[1], b.Min.Y-tol)
				assert.GreaterOrEqual(t, v.Position[2], b.Min.Z-tol)
				assert.LessOrEqual(t, v.Position[0], b.Max.X+tol)
				assert.LessOrEqual(t, v.Position[1], b.Max.Y+tol)
				assert.LessOrEqual(t, v.Position[2], b.Max.Z+tol)
			}
		})
	}
}

func TestBufferContents(t *testing.T) {
	geo := NewCube(1)
	data := geo.BufferContents()
	assert.Len(t, data, 36*VertexSize)
	assert.Equal(t, 24, VertexSize)
}

func TestVertexBufferLayout(t *testing.T) {
	layout := VertexBufferLayout()
	assert.Equal(t, uint64(24), layout.ArrayStride)
	assert.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
}

func TestKinds(t *testing.T) {
	tests := []struct {
		geo  Geometry
		want Kind
		name string
	}{
		{NewTriangle(1), KindTriangle, "Triangle"},
		{NewQuad(1, 1), KindQuad, "Quad"},
		{NewCube(1), KindCube, "Cube"},
		{NewCircle(1, 8), KindCircle, "Circle"},
		{NewCylinder(1, 1, 8), KindCylinder, "Cylinder"},
		{NewCone(1, 1, 8), KindCone, "Cone"},
		{NewSphere(1, 4, 6), KindSphere, "Sphere"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.geo.Kind())
		assert.Equal(t, tt.name, tt.geo.Kind().String())
	}
	assert.Equal(t, KindCount, len(tests))
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float32
		want    [3]float32
	}{
		{"red", 0, 1, 1, [3]float32{1, 0, 0}},
		{"green", 1.0 / 3.0, 1, 1, [3]float32{0, 1, 0}},
		{"blue", 2.0 / 3.0, 1, 1, [3]float32{0, 0, 1}},
		{"cyan", 0.5, 1, 1, [3]float32{0, 1, 1}},
		{"gray from zero saturation", 0.25, 0, 0.5, [3]float32{0.5, 0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hsvToRGB(tt.h, tt.s, tt.v)
			for axis := 0; axis < 3; axis++ {
				assert.InDelta(t, tt.want[axis], got[axis], tol)
			}
		})
	}
}

func TestAnimateRotatesTriangle(t *testing.T) {
	tr := transform.NewTransform()
	geo := NewTriangle(1)

	geo.Animate(tr, math32.Vec3(1, 1, 1), 0, 1)

	m := tr.Matrix()
	p := math32.Vector4FromVector3(math32.Vec3(1, 0, 0), 1).MulMatrix4(&m)
	rad := 15 * math32.DegToRadFactor
	assert.InDelta(t, math32.Cos(rad), p.X, tol)
	assert.InDelta(t, math32.Sin(rad), p.Y, tol)
}

func TestAnimatePulsesCircle(t *testing.T) {
	tr := transform.NewTransform()
	geo := NewCircle(1, 8)
	base := math32.Vec3(2, 2, 2)

	// elapsed chosen so the pulse term peaks
	geo.Animate(tr, base, math32.Pi/4, 0.016)

	scale := tr.Scale()
	assert.InDelta(t, 2*1.15, scale.X, 1e-3)
	assert.InDelta(t, 2*1.15, scale.Y, 1e-3)
}
