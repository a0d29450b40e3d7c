package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

type circleGeometry struct {
	meshData
	radius   float32
	segments int
}

var _ Geometry = &circleGeometry{}

// NewCircle creates a triangle fan disc in the XY plane with a white center
// and a hue wheel spread around the rim. Segment counts below 3 are clamped
// to 3.
//
// Parameters:
//   - radius: the disc radius
//   - segments: the number of rim segments
//
// Returns:
//   - Geometry: the circle mesh provider
func NewCircle(radius float32, segments int) Geometry {
	if segments < 3 {
		segments = 3
	}

	center := Vertex{Position: [3]float32{0, 0, 0}, Color: [3]float32{1, 1, 1}}
	rim := make([]Vertex, segments)
	for i := 0; i < segments; i++ {
		angle := float32(i) / float32(segments) * 2 * math32.Pi
		rim[i] = Vertex{
			Position: [3]float32{radius * math32.Cos(angle), radius * math32.Sin(angle), 0},
			Color:    hsvToRGB(angle/(2*math32.Pi), 0.8, 1.0),
		}
	}

	verts := make([]Vertex, 0, segments*3)
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		verts = append(verts, center, rim[i], rim[next])
	}

	return &circleGeometry{
		meshData: meshData{verts: verts},
		radius:   radius,
		segments: segments,
	}
}

func (c *circleGeometry) Bounds() math32.Box3 {
	return math32.Box3{
		Min: math32.Vec3(-c.radius, -c.radius, 0),
		Max: math32.Vec3(c.radius, c.radius, 0),
	}
}

func (c *circleGeometry) DefaultCullingMode() common.CullingMode {
	return common.CullingNone
}

func (c *circleGeometry) Kind() Kind {
	return KindCircle
}

func (c *circleGeometry) Animate(tr transform.Transform, baseScale math32.Vector3, elapsed, dt float32) {
	tr.RotateDegrees(0, 0, 25*dt)
	pulse := 1 + 0.15*math32.Sin(elapsed*2)
	tr.SetScale(baseScale.MulScalar(pulse))
}
