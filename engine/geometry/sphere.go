package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

type sphereGeometry struct {
	meshData
	radius      float32
	latSegments int
	lonSegments int
}

var _ Geometry = &sphereGeometry{}

// NewSphere creates a UV sphere centered on the origin, colored by mapping
// each unit normal into RGB space. Segment counts below 3 are clamped to 3.
//
// Parameters:
//   - radius: the sphere radius
//   - latSegments: the number of latitude bands pole to pole
//   - lonSegments: the number of longitude slices around the axis
//
// Returns:
//   - Geometry: the sphere mesh provider
func NewSphere(radius float32, latSegments, lonSegments int) Geometry {
	if latSegments < 3 {
		latSegments = 3
	}
	if lonSegments < 3 {
		lonSegments = 3
	}

	// grid of (latSegments+1) x (lonSegments+1) vertices, seam duplicated
	grid := make([]Vertex, 0, (latSegments+1)*(lonSegments+1))
	for lat := 0; lat <= latSegments; lat++ {
		theta := float32(lat) * math32.Pi / float32(latSegments)
		sinTheta := math32.Sin(theta)
		cosTheta := math32.Cos(theta)
		for lon := 0; lon <= lonSegments; lon++ {
			phi := float32(lon) * 2 * math32.Pi / float32(lonSegments)
			nx := sinTheta * math32.Cos(phi)
			ny := cosTheta
			nz := sinTheta * math32.Sin(phi)
			grid = append(grid, Vertex{
				Position: [3]float32{radius * nx, radius * ny, radius * nz},
				Color:    [3]float32{(nx + 1) / 2, (ny + 1) / 2, (nz + 1) / 2},
			})
		}
	}

	verts := make([]Vertex, 0, latSegments*lonSegments*6)
	for lat := 0; lat < latSegments; lat++ {
		for lon := 0; lon < lonSegments; lon++ {
			i0 := lat*(lonSegments+1) + lon
			i1 := i0 + 1
			i2 := (lat+1)*(lonSegments+1) + lon
			i3 := i2 + 1
			verts = append(verts, grid[i0], grid[i1], grid[i2])
			verts = append(verts, grid[i1], grid[i3], grid[i2])
		}
	}

	return &sphereGeometry{
		meshData:    meshData{verts: verts},
		radius:      radius,
		latSegments: latSegments,
		lonSegments: lonSegments,
	}
}

func (s *sphereGeometry) Bounds() math32.Box3 {
	return math32.Box3{
		Min: math32.Vec3(-s.radius, -s.radius, -s.radius),
		Max: math32.Vec3(s.radius, s.radius, s.radius),
	}
}

func (s *sphereGeometry) DefaultCullingMode() common.CullingMode {
	return common.CullingBackface
}

func (s *sphereGeometry) Kind() Kind {
	return KindSphere
}

func (s *sphereGeometry) Animate(tr transform.Transform, _ math32.Vector3, _, dt float32) {
	tr.RotateDegrees(10*dt, 30*dt, 0)
}
