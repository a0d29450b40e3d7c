package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

type cubeGeometry struct {
	meshData
	size float32
}

var _ Geometry = &cubeGeometry{}

// NewCube creates an axis-aligned cube centered on the origin with a
// distinct flat color per face, wound counter-clockwise for backface
// culling.
//
// Parameters:
//   - size: the cube edge length
//
// Returns:
//   - Geometry: the cube mesh provider
func NewCube(size float32) Geometry {
	hs := size / 2

	corners := [8][3]float32{
		{-hs, -hs, hs},  // 0: left  bottom front
		{hs, -hs, hs},   // 1: right bottom front
		{hs, hs, hs},    // 2: right top    front
		{-hs, hs, hs},   // 3: left  top    front
		{-hs, -hs, -hs}, // 4: left  bottom back
		{hs, -hs, -hs},  // 5: right bottom back
		{hs, hs, -hs},   // 6: right top    back
		{-hs, hs, -hs},  // 7: left  top    back
	}

	faces := []struct {
		indices [6]int
		color   [3]float32
	}{
		{[6]int{0, 1, 2, 0, 2, 3}, [3]float32{1, 0, 0}}, // front: red
		{[6]int{5, 4, 7, 5, 7, 6}, [3]float32{0, 1, 0}}, // back: green
		{[6]int{3, 2, 6, 3, 6, 7}, [3]float32{0, 0, 1}}, // top: blue
		{[6]int{4, 5, 1, 4, 1, 0}, [3]float32{1, 1, 0}}, // bottom: yellow
		{[6]int{1, 5, 6, 1, 6, 2}, [3]float32{1, 0, 1}}, // right: magenta
		{[6]int{4, 0, 3, 4, 3, 7}, [3]float32{0, 1, 1}}, // left: cyan
	}

	verts := make([]Vertex, 0, 36)
	for _, face := range faces {
		for _, idx := range face.indices {
			verts = append(verts, Vertex{Position: corners[idx], Color: face.color})
		}
	}

	return &cubeGeometry{
		meshData: meshData{verts: verts},
		size:     size,
	}
}

func (c *cubeGeometry) Bounds() math32.Box3 {
	hs := c.size / 2
	return math32.Box3{
		Min: math32.Vec3(-hs, -hs, -hs),
		Max: math32.Vec3(hs, hs, hs),
	}
}

func (c *cubeGeometry) DefaultCullingMode() common.CullingMode {
	return common.CullingBackface
}

func (c *cubeGeometry) Kind() Kind {
	return KindCube
}

func (c *cubeGeometry) Animate(tr transform.Transform, _ math32.Vector3, _, dt float32) {
	tr.RotateDegrees(20*dt, 30*dt, 0)
}
