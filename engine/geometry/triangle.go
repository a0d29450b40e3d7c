package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

type triangleGeometry struct {
	meshData
	scale float32
}

var _ Geometry = &triangleGeometry{}

// NewTriangle creates an equilateral triangle in the XY plane, centered on
// the origin, with red, green, and blue corner colors.
//
// Parameters:
//   - scale: the edge length of the triangle
//
// Returns:
//   - Geometry: the triangle mesh provider
func NewTriangle(scale float32) Geometry {
	height := math32.Sqrt(3) / 2 * scale
	halfBase := scale / 2

	verts := []Vertex{
		{Position: [3]float32{0, height * 2 / 3, 0}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{-halfBase, -height / 3, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{halfBase, -height / 3, 0}, Color: [3]float32{0, 0, 1}},
	}

	return &triangleGeometry{
		meshData: meshData{verts: verts},
		scale:    scale,
	}
}

func (t *triangleGeometry) Bounds() math32.Box3 {
	height := math32.Sqrt(3) / 2 * t.scale
	return math32.Box3{
		Min: math32.Vec3(-t.scale/2, -height/3, 0),
		Max: math32.Vec3(t.scale/2, height*2/3, 0),
	}
}

func (t *triangleGeometry) DefaultCullingMode() common.CullingMode {
	return common.CullingNone
}

func (t *triangleGeometry) Kind() Kind {
	return KindTriangle
}

func (t *triangleGeometry) Animate(tr transform.Transform, _ math32.Vector3, _, dt float32) {
	tr.RotateDegrees(0, 0, 15*dt)
}
