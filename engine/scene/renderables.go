package scene

import (
	"github.com/Carmen-Shannon/mosaic-go/engine/renderable"
)

// Renderables is a frame snapshot of every live object, partitioned by
// shape family. Every snapshot is freshly allocated, so callers never share
// iteration state with concurrent scene mutation.
type Renderables struct {
	Triangles []renderable.Renderable
	Quads     []renderable.Renderable
	Cubes     []renderable.Renderable
	Circles   []renderable.Renderable
	Cylinders []renderable.Renderable
	Cones     []renderable.Renderable
	Spheres   []renderable.Renderable
}

// All returns every object flattened in the canonical family order:
// triangles, quads, cubes, circles, cylinders, cones, spheres. Within a
// family, objects appear in insertion order.
//
// Returns:
//   - []renderable.Renderable: the flattened object list
func (r Renderables) All() []renderable.Renderable {
	out := make([]renderable.Renderable, 0, r.Count())
	out = append(out, r.Triangles...)
	out = append(out, r.Quads...)
	out = append(out, r.Cubes...)
	out = append(out, r.Circles...)
	out = append(out, r.Cylinders...)
	out = append(out, r.Cones...)
	out = append(out, r.Spheres...)
	return out
}

// Count returns the total number of objects across all families.
//
// Returns:
//   - int: the object count
func (r Renderables) Count() int {
	return len(r.Triangles) + len(r.Quads) + len(r.Cubes) + len(r.Circles) +
		len(r.Cylinders) + len(r.Cones) + len(r.Spheres)
}
