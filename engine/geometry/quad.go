package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

type quadGeometry struct {
	meshData
	width  float32
	height float32
}

var _ Geometry = &quadGeometry{}

// NewQuad creates a rectangle in the XY plane, centered on the origin,
// built from two triangles with distinct corner colors.
//
// Parameters:
//   - width: the quad width along X
//   - height: the quad height along Y
//
// Returns:
//   - Geometry: the quad mesh provider
func NewQuad(width, height float32) Geometry {
	hw := width / 2
	hh := height / 2

	verts := []Vertex{
		{Position: [3]float32{-hw, hh, 0}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{-hw, -hh, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{hw, hh, 0}, Color: [3]float32{0, 0, 1}},

		{Position: [3]float32{hw, hh, 0}, Color: [3]float32{0, 0, 1}},
		{Position: [3]float32{-hw, -hh, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{hw, -hh, 0}, Color: [3]float32{1, 1, 0}},
	}

	return &quadGeometry{
		meshData: meshData{verts: verts},
		width:    width,
		height:   height,
	}
}

func (q *quadGeometry) Bounds() math32.Box3 {
	return math32.Box3{
		Min: math32.Vec3(-q.width/2, -q.height/2, 0),
		Max: math32.Vec3(q.width/2, q.height/2, 0),
	}
}

func (q *quadGeometry) DefaultCullingMode() common.CullingMode {
	return common.CullingNone
}

func (q *quadGeometry) Kind() Kind {
	return KindQuad
}

func (q *quadGeometry) Animate(tr transform.Transform, _ math32.Vector3, _, dt float32) {
	tr.RotateDegrees(0, 0, -10*dt)
}
