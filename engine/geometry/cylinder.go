package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

type cylinderGeometry struct {
	meshData
	radius   float32
	height   float32
	segments int
}

var _ Geometry = &cylinderGeometry{}

// NewCylinder creates a capped cylinder centered on the origin with its
// axis along Y. The side walls carry a hue wheel, brighter on the top ring
// than the bottom. Segment counts below 3 are clamped to 3.
//
// Parameters:
//   - radius: the cylinder radius
//   - height: the cylinder height along Y
//   - segments: the number of wall segments around the axis
//
// Returns:
//   - Geometry: the cylinder mesh provider
func NewCylinder(radius, height float32, segments int) Geometry {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2

	top := make([]Vertex, segments)
	bottom := make([]Vertex, segments)
	for i := 0; i < segments; i++ {
		angle := float32(i) / float32(segments) * 2 * math32.Pi
		hue := float32(i) / float32(segments)
		x := radius * math32.Cos(angle)
		z := radius * math32.Sin(angle)
		top[i] = Vertex{Position: [3]float32{x, hh, z}, Color: hsvToRGB(hue, 0.6, 1.0)}
		bottom[i] = Vertex{Position: [3]float32{x, -hh, z}, Color: hsvToRGB(hue, 0.6, 0.7)}
	}

	topCenter := Vertex{Position: [3]float32{0, hh, 0}, Color: [3]float32{1.0, 0.8, 0.8}}
	bottomCenter := Vertex{Position: [3]float32{0, -hh, 0}, Color: [3]float32{0.8, 0.8, 1.0}}

	verts := make([]Vertex, 0, segments*12)
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments

		// side wall
		verts = append(verts, bottom[i], top[next], top[i])
		verts = append(verts, bottom[i], bottom[next], top[next])

		// caps
		verts = append(verts, topCenter, top[i], top[next])
		verts = append(verts, bottomCenter, bottom[next], bottom[i])
	}

	return &cylinderGeometry{
		meshData: meshData{verts: verts},
		radius:   radius,
		height:   height,
		segments: segments,
	}
}

func (c *cylinderGeometry) Bounds() math32.Box3 {
	hh := c.height / 2
	return math32.Box3{
		Min: math32.Vec3(-c.radius, -hh, -c.radius),
		Max: math32.Vec3(c.radius, hh, c.radius),
	}
}

func (c *cylinderGeometry) DefaultCullingMode() common.CullingMode {
	return common.CullingBackface
}

func (c *cylinderGeometry) Kind() Kind {
	return KindCylinder
}

func (c *cylinderGeometry) Animate(tr transform.Transform, _ math32.Vector3, _, dt float32) {
	tr.RotateDegrees(0, 40*dt, 0)
}
