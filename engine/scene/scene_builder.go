package scene

import (
	"github.com/Carmen-Shannon/mosaic-go/engine/renderable"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene. Each is filed under its
// geometry's shape family and assigned an identifier in argument order.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...renderable.Renderable) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj == nil {
				continue
			}
			id := s.nextID
			s.nextID++
			kind := obj.Geometry().Kind()
			s.entries[id] = obj
			s.order[kind] = append(s.order[kind], id)
		}
	}
}

// WithBuildWorkers sets the number of worker goroutines used by
// PopulateBatch. Defaults to runtime.NumCPU()-1. Higher values speed up
// large batches of finely tessellated shapes; lower values reduce
// scheduling overhead for small batches.
//
// Parameters:
//   - n: the number of build workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBuildWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.buildWorkers = n
	}
}
