// package geometry provides the procedural mesh providers for every
// primitive shape the engine can render. Each provider generates its vertex
// list once at construction; the data is immutable afterwards and suitable
// for content-addressed GPU buffer caching.
package geometry

import (
	"unsafe"

	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/transform"
)

// Vertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (24 bytes, two
// float32x3 attributes at shader locations 0 and 1).
type Vertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [3]float32 // offset 12: per-vertex RGB color (12 bytes)
}

// VertexSize is the byte size of one Vertex as uploaded to the GPU.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Default tessellation for the round shapes, used by creation helpers when
// the caller does not pick a segment count.
const (
	DefaultCircleSegments = 32
	DefaultSideSegments   = 24
	DefaultLatitudeBands  = 16
	DefaultLongitudeBands = 24
)

// VertexBufferLayout returns the wgpu vertex buffer layout matching Vertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: per-vertex stride and attribute descriptions
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(VertexSize),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         12,
				ShaderLocation: 1,
			},
		},
	}
}

// Kind identifies a primitive shape family. The constant order is the
// fixed iteration order used when scenes are flattened for drawing.
type Kind int

const (
	KindTriangle Kind = iota
	KindQuad
	KindCube
	KindCircle
	KindCylinder
	KindCone
	KindSphere
)

// KindCount is the number of shape families.
const KindCount = 7

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "Triangle"
	case KindQuad:
		return "Quad"
	case KindCube:
		return "Cube"
	case KindCircle:
		return "Circle"
	case KindCylinder:
		return "Cylinder"
	case KindCone:
		return "Cone"
	case KindSphere:
		return "Sphere"
	default:
		return "Unknown"
	}
}

// Geometry is the capability every renderable shape supplies: an immutable
// vertex list, its bounds, the shape's default culling policy, and the
// shape's hard-coded demo animation rule. Implementations are safe for
// concurrent reads after construction.
type Geometry interface {
	// Vertices returns the vertex list. The slice is shared and must be
	// treated as read-only.
	//
	// Returns:
	//   - []Vertex: the shape's vertices in draw order
	Vertices() []Vertex

	// VertexCount returns the number of vertices to draw.
	//
	// Returns:
	//   - uint32: the vertex count
	VertexCount() uint32

	// BufferContents returns the raw vertex bytes for GPU upload. The
	// slice is an unsafe view into the vertex data - do not modify.
	//
	// Returns:
	//   - []byte: the vertex data as bytes
	BufferContents() []byte

	// Bounds returns the axis-aligned bounding box of the untransformed
	// mesh.
	//
	// Returns:
	//   - math32.Box3: min and max corners
	Bounds() math32.Box3

	// DefaultCullingMode returns the culling policy for this shape kind:
	// none for flat shapes, backface for closed shapes.
	//
	// Returns:
	//   - common.CullingMode: the default culling mode
	DefaultCullingMode() common.CullingMode

	// Kind returns the shape family this geometry belongs to.
	//
	// Returns:
	//   - Kind: the shape family
	Kind() Kind

	// Animate advances this shape's demo animation rule by dt seconds.
	//
	// Parameters:
	//   - t: the transform to mutate
	//   - baseScale: the owning object's construction-time scale, for
	//     rules that pulse around it
	//   - elapsed: total seconds the object has been animating
	//   - dt: seconds since the last update
	Animate(t transform.Transform, baseScale math32.Vector3, elapsed, dt float32)
}

// meshData carries the immutable vertex list shared by every shape
// implementation.
type meshData struct {
	verts []Vertex
}

func (m *meshData) Vertices() []Vertex {
	return m.verts
}

func (m *meshData) VertexCount() uint32 {
	return uint32(len(m.verts))
}

func (m *meshData) BufferContents() []byte {
	return common.SliceToBytes(m.verts)
}

// hsvToRGB converts a hue (0..1), saturation, and value to RGB components.
// Used by the round shapes to spread a hue wheel across their segments.
func hsvToRGB(h, s, v float32) [3]float32 {
	c := v * s
	x := c * (1 - math32.Abs(math32.Mod(h*6, 2)-1))
	m := v - c

	var r, g, b float32
	switch {
	case h < 1.0/6.0:
		r, g, b = c, x, 0
	case h < 2.0/6.0:
		r, g, b = x, c, 0
	case h < 3.0/6.0:
		r, g, b = 0, c, x
	case h < 4.0/6.0:
		r, g, b = 0, x, c
	case h < 5.0/6.0:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return [3]float32{r + m, g + m, b + m}
}
