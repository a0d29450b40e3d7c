package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

type coneGeometry struct {
	meshData
	radius   float32
	height   float32
	segments int
}

var _ Geometry = &coneGeometry{}

// NewCone creates a cone centered on the origin with a yellow apex on +Y, a
// hue wheel around the base rim, and a gray base cap. Segment counts below
// 3 are clamped to 3.
//
// Parameters:
//   - radius: the base radius
//   - height: the cone height along Y
//   - segments: the number of side segments around the axis
//
// Returns:
//   - Geometry: the cone mesh provider
func NewCone(radius, height float32, segments int) Geometry {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2

	apex := Vertex{Position: [3]float32{0, hh, 0}, Color: [3]float32{1, 1, 0}}
	baseCenter := Vertex{Position: [3]float32{0, -hh, 0}, Color: [3]float32{0.8, 0.8, 0.8}}

	base := make([]Vertex, segments)
	for i := 0; i < segments; i++ {
		angle := float32(i) / float32(segments) * 2 * math32.Pi
		hue := float32(i) / float32(segments)
		base[i] = Vertex{
			Position: [3]float32{radius * math32.Cos(angle), -hh, radius * math32.Sin(angle)},
			Color:    hsvToRGB(hue, 0.8, 0.9),
		}
	}

	verts := make([]Vertex, 0, segments*6)
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		verts = append(verts, apex, base[i], base[next])
		verts = append(verts, baseCenter, base[next], base[i])
	}

	return &coneGeometry{
		meshData: meshData{verts: verts},
		radius:   radius,
		height:   height,
		segments: segments,
	}
}

func (c *coneGeometry) Bounds() math32.Box3 {
	hh := c.height / 2
	return math32.Box3{
		Min: math32.Vec3(-c.radius, -hh, -c.radius),
		Max: math32.Vec3(c.radius, hh, c.radius),
	}
}

func (c *coneGeometry) DefaultCullingMode() common.CullingMode {
	return common.CullingBackface
}

func (c *coneGeometry) Kind() Kind {
	return KindCone
}

func (c *coneGeometry) Animate(tr transform.Transform, _ math32.Vector3, _, dt float32) {
	tr.RotateDegrees(0, -35*dt, 0)
}
