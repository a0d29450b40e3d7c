package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/mosaic-go/engine/geometry"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderable"
)

// Scene manages the live set of renderable objects, keyed by monotonically
// increasing identifiers and partitioned by shape family. It is the single
// collaborator the render core reads objects from, via AllRenderables.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Count returns the number of live objects across all shape families.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Add inserts an object into the scene, filing it under its geometry's
	// shape family.
	//
	// Parameters:
	//   - obj: the object to insert, must not be nil
	//
	// Returns:
	//   - uint32: the assigned identifier, unique for the scene's lifetime
	Add(obj renderable.Renderable) uint32

	// AddTriangle inserts a triangle object. Panics if the object's
	// geometry is not a triangle.
	//
	// Parameters:
	//   - obj: the triangle to insert
	//
	// Returns:
	//   - uint32: the assigned identifier
	AddTriangle(obj renderable.Renderable) uint32

	// AddQuad inserts a quad object. Panics if the object's geometry is
	// not a quad.
	//
	// Parameters:
	//   - obj: the quad to insert
	//
	// Returns:
	//   - uint32: the assigned identifier
	AddQuad(obj renderable.Renderable) uint32

	// AddCube inserts a cube object. Panics if the object's geometry is
	// not a cube.
	//
	// Parameters:
	//   - obj: the cube to insert
	//
	// Returns:
	//   - uint32: the assigned identifier
	AddCube(obj renderable.Renderable) uint32

	// AddCircle inserts a circle object. Panics if the object's geometry
	// is not a circle.
	//
	// Parameters:
	//   - obj: the circle to insert
	//
	// Returns:
	//   - uint32: the assigned identifier
	AddCircle(obj renderable.Renderable) uint32

	// AddCylinder inserts a cylinder object. Panics if the object's
	// geometry is not a cylinder.
	//
	// Parameters:
	//   - obj: the cylinder to insert
	//
	// Returns:
	//   - uint32: the assigned identifier
	AddCylinder(obj renderable.Renderable) uint32

	// AddCone inserts a cone object. Panics if the object's geometry is
	// not a cone.
	//
	// Parameters:
	//   - obj: the cone to insert
	//
	// Returns:
	//   - uint32: the assigned identifier
	AddCone(obj renderable.Renderable) uint32

	// AddSphere inserts a sphere object. Panics if the object's geometry
	// is not a sphere.
	//
	// Parameters:
	//   - obj: the sphere to insert
	//
	// Returns:
	//   - uint32: the assigned identifier
	AddSphere(obj renderable.Renderable) uint32

	// Get retrieves an object by identifier regardless of shape family.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the object, or nil if absent
	//   - bool: true if the object exists
	Get(id uint32) (renderable.Renderable, bool)

	// Triangle retrieves a triangle by identifier. Absence (or an
	// identifier belonging to another family) returns false.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the triangle, or nil if absent
	//   - bool: true if a triangle with this identifier exists
	Triangle(id uint32) (renderable.Renderable, bool)

	// Quad retrieves a quad by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the quad, or nil if absent
	//   - bool: true if a quad with this identifier exists
	Quad(id uint32) (renderable.Renderable, bool)

	// Cube retrieves a cube by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the cube, or nil if absent
	//   - bool: true if a cube with this identifier exists
	Cube(id uint32) (renderable.Renderable, bool)

	// Circle retrieves a circle by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the circle, or nil if absent
	//   - bool: true if a circle with this identifier exists
	Circle(id uint32) (renderable.Renderable, bool)

	// Cylinder retrieves a cylinder by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the cylinder, or nil if absent
	//   - bool: true if a cylinder with this identifier exists
	Cylinder(id uint32) (renderable.Renderable, bool)

	// Cone retrieves a cone by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the cone, or nil if absent
	//   - bool: true if a cone with this identifier exists
	Cone(id uint32) (renderable.Renderable, bool)

	// Sphere retrieves a sphere by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the sphere, or nil if absent
	//   - bool: true if a sphere with this identifier exists
	Sphere(id uint32) (renderable.Renderable, bool)

	// Remove removes an object by identifier regardless of shape family
	// and returns ownership to the caller.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed object, or nil if absent
	//   - bool: true if an object was removed
	Remove(id uint32) (renderable.Renderable, bool)

	// RemoveTriangle removes a triangle by identifier. An identifier
	// belonging to another family removes nothing.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed triangle, or nil
	//   - bool: true if a triangle was removed
	RemoveTriangle(id uint32) (renderable.Renderable, bool)

	// RemoveQuad removes a quad by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed quad, or nil
	//   - bool: true if a quad was removed
	RemoveQuad(id uint32) (renderable.Renderable, bool)

	// RemoveCube removes a cube by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed cube, or nil
	//   - bool: true if a cube was removed
	RemoveCube(id uint32) (renderable.Renderable, bool)

	// RemoveCircle removes a circle by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed circle, or nil
	//   - bool: true if a circle was removed
	RemoveCircle(id uint32) (renderable.Renderable, bool)

	// RemoveCylinder removes a cylinder by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed cylinder, or nil
	//   - bool: true if a cylinder was removed
	RemoveCylinder(id uint32) (renderable.Renderable, bool)

	// RemoveCone removes a cone by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed cone, or nil
	//   - bool: true if a cone was removed
	RemoveCone(id uint32) (renderable.Renderable, bool)

	// RemoveSphere removes a sphere by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - renderable.Renderable: the removed sphere, or nil
	//   - bool: true if a sphere was removed
	RemoveSphere(id uint32) (renderable.Renderable, bool)

	// Update advances every object's animation by deltaTime seconds,
	// iterating families in canonical order and objects in insertion
	// order. Objects do not interact, so callers must not depend on
	// cross-object ordering.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// AllRenderables returns a snapshot of every live object partitioned
	// by shape family, in insertion order within each family.
	//
	// Returns:
	//   - Renderables: the freshly allocated snapshot
	AllRenderables() Renderables

	// Clear removes all objects from the scene. Identifiers are not
	// reused.
	Clear()

	// CreateTriangle builds a triangle and inserts it in one call.
	//
	// Parameters:
	//   - scale: the triangle edge length
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateTriangle(scale float32) uint32

	// CreateTriangleAt builds a triangle at a position and inserts it.
	//
	// Parameters:
	//   - scale: the triangle edge length
	//   - position: the starting world position
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateTriangleAt(scale float32, position math32.Vector3) uint32

	// CreateTriangleWithTransform builds a triangle with a position and
	// euler orientation and inserts it.
	//
	// Parameters:
	//   - scale: the triangle edge length
	//   - position: the starting world position
	//   - eulerDegrees: the starting orientation in degrees per axis
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateTriangleWithTransform(scale float32, position, eulerDegrees math32.Vector3) uint32

	// CreateQuad builds a quad and inserts it in one call.
	//
	// Parameters:
	//   - width: the quad width
	//   - height: the quad height
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateQuad(width, height float32) uint32

	// CreateQuadAt builds a quad at a position and inserts it.
	//
	// Parameters:
	//   - width: the quad width
	//   - height: the quad height
	//   - position: the starting world position
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateQuadAt(width, height float32, position math32.Vector3) uint32

	// CreateQuadWithTransform builds a quad with a position and euler
	// orientation and inserts it.
	//
	// Parameters:
	//   - width: the quad width
	//   - height: the quad height
	//   - position: the starting world position
	//   - eulerDegrees: the starting orientation in degrees per axis
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateQuadWithTransform(width, height float32, position, eulerDegrees math32.Vector3) uint32

	// CreateCube builds a cube and inserts it in one call.
	//
	// Parameters:
	//   - size: the cube edge length
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateCube(size float32) uint32

	// CreateCubeAt builds a cube at a position and inserts it.
	//
	// Parameters:
	//   - size: the cube edge length
	//   - position: the starting world position
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateCubeAt(size float32, position math32.Vector3) uint32

	// CreateCubeWithTransform builds a cube with a position and euler
	// orientation and inserts it.
	//
	// Parameters:
	//   - size: the cube edge length
	//   - position: the starting world position
	//   - eulerDegrees: the starting orientation in degrees per axis
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateCubeWithTransform(size float32, position, eulerDegrees math32.Vector3) uint32

	// CreateCircle builds a circle at a position and inserts it. A
	// segment count of 0 selects the family default tessellation.
	//
	// Parameters:
	//   - radius: the disc radius
	//   - segments: rim segments, 0 for the default
	//   - position: the starting world position
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateCircle(radius float32, segments int, position math32.Vector3) uint32

	// CreateCylinder builds a cylinder at a position and inserts it. A
	// segment count of 0 selects the family default tessellation.
	//
	// Parameters:
	//   - radius: the cylinder radius
	//   - height: the cylinder height
	//   - segments: wall segments, 0 for the default
	//   - position: the starting world position
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateCylinder(radius, height float32, segments int, position math32.Vector3) uint32

	// CreateCone builds a cone at a position and inserts it. A segment
	// count of 0 selects the family default tessellation.
	//
	// Parameters:
	//   - radius: the base radius
	//   - height: the cone height
	//   - segments: side segments, 0 for the default
	//   - position: the starting world position
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateCone(radius, height float32, segments int, position math32.Vector3) uint32

	// CreateSphere builds a sphere at a position and inserts it. Band
	// counts of 0 select the family default tessellation.
	//
	// Parameters:
	//   - radius: the sphere radius
	//   - latBands: latitude bands, 0 for the default
	//   - lonBands: longitude bands, 0 for the default
	//   - position: the starting world position
	//
	// Returns:
	//   - uint32: the assigned identifier
	CreateSphere(radius float32, latBands, lonBands int, position math32.Vector3) uint32

	// PopulateBatch constructs n objects concurrently on the scene's
	// worker pool, then inserts them sequentially so identifier order
	// stays monotonic with batch index. Builders returning nil are
	// skipped. Not intended to run concurrently with rendering.
	//
	// Parameters:
	//   - n: the number of objects to build
	//   - build: called once per index from pool workers; must be safe
	//     for concurrent invocation
	//
	// Returns:
	//   - []uint32: the assigned identifiers in batch index order
	PopulateBatch(n int, build func(i int) renderable.Renderable) []uint32
}

type scene struct {
	mu *sync.RWMutex

	name string

	entries map[uint32]renderable.Renderable
	order   map[geometry.Kind][]uint32 // insertion-ordered ids per family
	nextID  uint32

	// buildPool manages a bounded set of reusable goroutines for batch
	// object construction. Workers persist across batches, avoiding
	// per-batch goroutine spawn/teardown overhead.
	buildPool    worker.DynamicWorkerPool
	buildWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:           &sync.RWMutex{},
		name:         name,
		entries:      make(map[uint32]renderable.Renderable),
		order:        make(map[geometry.Kind][]uint32),
		buildWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the build pool after options so WithBuildWorkers can override
	// the default. Queue size of 256 accommodates typical batch sizes with headroom.
	s.buildPool = worker.NewDynamicWorkerPool(s.buildWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *scene) Add(obj renderable.Renderable) uint32 {
	if obj == nil {
		panic("scene: cannot Add a nil Renderable")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	kind := obj.Geometry().Kind()
	s.entries[id] = obj
	s.order[kind] = append(s.order[kind], id)

	return id
}

// addKind inserts after asserting the object's shape family, for the typed
// Add methods.
func (s *scene) addKind(obj renderable.Renderable, kind geometry.Kind, op string) uint32 {
	if obj == nil {
		panic(fmt.Sprintf("scene: cannot %s a nil Renderable", op))
	}
	if got := obj.Geometry().Kind(); got != kind {
		panic(fmt.Sprintf("scene: %s requires %s geometry, got %s", op, kind, got))
	}
	return s.Add(obj)
}

func (s *scene) AddTriangle(obj renderable.Renderable) uint32 {
	return s.addKind(obj, geometry.KindTriangle, "AddTriangle")
}

func (s *scene) AddQuad(obj renderable.Renderable) uint32 {
	return s.addKind(obj, geometry.KindQuad, "AddQuad")
}

func (s *scene) AddCube(obj renderable.Renderable) uint32 {
	return s.addKind(obj, geometry.KindCube, "AddCube")
}

func (s *scene) AddCircle(obj renderable.Renderable) uint32 {
	return s.addKind(obj, geometry.KindCircle, "AddCircle")
}

func (s *scene) AddCylinder(obj renderable.Renderable) uint32 {
	return s.addKind(obj, geometry.KindCylinder, "AddCylinder")
}

func (s *scene) AddCone(obj renderable.Renderable) uint32 {
	return s.addKind(obj, geometry.KindCone, "AddCone")
}

func (s *scene) AddSphere(obj renderable.Renderable) uint32 {
	return s.addKind(obj, geometry.KindSphere, "AddSphere")
}

func (s *scene) Get(id uint32) (renderable.Renderable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.entries[id]
	return obj, ok
}

// getKind looks up an object and confirms its shape family.
func (s *scene) getKind(id uint32, kind geometry.Kind) (renderable.Renderable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.entries[id]
	if !ok || obj.Geometry().Kind() != kind {
		return nil, false
	}
	return obj, true
}

func (s *scene) Triangle(id uint32) (renderable.Renderable, bool) {
	return s.getKind(id, geometry.KindTriangle)
}

func (s *scene) Quad(id uint32) (renderable.Renderable, bool) {
	return s.getKind(id, geometry.KindQuad)
}

func (s *scene) Cube(id uint32) (renderable.Renderable, bool) {
	return s.getKind(id, geometry.KindCube)
}

func (s *scene) Circle(id uint32) (renderable.Renderable, bool) {
	return s.getKind(id, geometry.KindCircle)
}

func (s *scene) Cylinder(id uint32) (renderable.Renderable, bool) {
	return s.getKind(id, geometry.KindCylinder)
}

func (s *scene) Cone(id uint32) (renderable.Renderable, bool) {
	return s.getKind(id, geometry.KindCone)
}

func (s *scene) Sphere(id uint32) (renderable.Renderable, bool) {
	return s.getKind(id, geometry.KindSphere)
}

func (s *scene) Remove(id uint32) (renderable.Renderable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

// removeKind removes an object only if it belongs to the given family.
func (s *scene) removeKind(id uint32, kind geometry.Kind) (renderable.Renderable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.entries[id]
	if !ok || obj.Geometry().Kind() != kind {
		return nil, false
	}
	return s.removeLocked(id)
}

// removeLocked removes an entry and its ordering slot. Caller must hold the
// write lock.
func (s *scene) removeLocked(id uint32) (renderable.Renderable, bool) {
	obj, ok := s.entries[id]
	if !ok {
		return nil, false
	}

	delete(s.entries, id)

	kind := obj.Geometry().Kind()
	ids := s.order[kind]
	for i, existing := range ids {
		if existing == id {
			s.order[kind] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	return obj, true
}

func (s *scene) RemoveTriangle(id uint32) (renderable.Renderable, bool) {
	return s.removeKind(id, geometry.KindTriangle)
}

func (s *scene) RemoveQuad(id uint32) (renderable.Renderable, bool) {
	return s.removeKind(id, geometry.KindQuad)
}

func (s *scene) RemoveCube(id uint32) (renderable.Renderable, bool) {
	return s.removeKind(id, geometry.KindCube)
}

func (s *scene) RemoveCircle(id uint32) (renderable.Renderable, bool) {
	return s.removeKind(id, geometry.KindCircle)
}

func (s *scene) RemoveCylinder(id uint32) (renderable.Renderable, bool) {
	return s.removeKind(id, geometry.KindCylinder)
}

func (s *scene) RemoveCone(id uint32) (renderable.Renderable, bool) {
	return s.removeKind(id, geometry.KindCone)
}

func (s *scene) RemoveSphere(id uint32) (renderable.Renderable, bool) {
	return s.removeKind(id, geometry.KindSphere)
}

func (s *scene) Update(deltaTime float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for kind := geometry.KindTriangle; kind <= geometry.KindSphere; kind++ {
		for _, id := range s.order[kind] {
			s.entries[id].Update(deltaTime)
		}
	}
}

func (s *scene) AllRenderables() Renderables {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Renderables{
		Triangles: s.collectLocked(geometry.KindTriangle),
		Quads:     s.collectLocked(geometry.KindQuad),
		Cubes:     s.collectLocked(geometry.KindCube),
		Circles:   s.collectLocked(geometry.KindCircle),
		Cylinders: s.collectLocked(geometry.KindCylinder),
		Cones:     s.collectLocked(geometry.KindCone),
		Spheres:   s.collectLocked(geometry.KindSphere),
	}
}

// collectLocked copies one family's objects in insertion order. Caller must
// hold at least the read lock.
func (s *scene) collectLocked(kind geometry.Kind) []renderable.Renderable {
	ids := s.order[kind]
	if len(ids) == 0 {
		return nil
	}
	out := make([]renderable.Renderable, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.entries[id])
	}
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[uint32]renderable.Renderable)
	s.order = make(map[geometry.Kind][]uint32)
}

func (s *scene) CreateTriangle(scale float32) uint32 {
	return s.Add(renderable.New(geometry.NewTriangle(scale)))
}

func (s *scene) CreateTriangleAt(scale float32, position math32.Vector3) uint32 {
	return s.Add(renderable.New(geometry.NewTriangle(scale), renderable.WithPosition(position)))
}

func (s *scene) CreateTriangleWithTransform(scale float32, position, eulerDegrees math32.Vector3) uint32 {
	return s.Add(renderable.New(geometry.NewTriangle(scale),
		renderable.WithPosition(position),
		renderable.WithEulerDegrees(eulerDegrees.X, eulerDegrees.Y, eulerDegrees.Z),
	))
}

func (s *scene) CreateQuad(width, height float32) uint32 {
	return s.Add(renderable.New(geometry.NewQuad(width, height)))
}

func (s *scene) CreateQuadAt(width, height float32, position math32.Vector3) uint32 {
	return s.Add(renderable.New(geometry.NewQuad(width, height), renderable.WithPosition(position)))
}

func (s *scene) CreateQuadWithTransform(width, height float32, position, eulerDegrees math32.Vector3) uint32 {
	return s.Add(renderable.New(geometry.NewQuad(width, height),
		renderable.WithPosition(position),
		renderable.WithEulerDegrees(eulerDegrees.X, eulerDegrees.Y, eulerDegrees.Z),
	))
}

func (s *scene) CreateCube(size float32) uint32 {
	return s.Add(renderable.New(geometry.NewCube(size)))
}

func (s *scene) CreateCubeAt(size float32, position math32.Vector3) uint32 {
	return s.Add(renderable.New(geometry.NewCube(size), renderable.WithPosition(position)))
}

func (s *scene) CreateCubeWithTransform(size float32, position, eulerDegrees math32.Vector3) uint32 {
	return s.Add(renderable.New(geometry.NewCube(size),
		renderable.WithPosition(position),
		renderable.WithEulerDegrees(eulerDegrees.X, eulerDegrees.Y, eulerDegrees.Z),
	))
}

func (s *scene) CreateCircle(radius float32, segments int, position math32.Vector3) uint32 {
	if segments == 0 {
		segments = geometry.DefaultCircleSegments
	}
	return s.Add(renderable.New(geometry.NewCircle(radius, segments), renderable.WithPosition(position)))
}

func (s *scene) CreateCylinder(radius, height float32, segments int, position math32.Vector3) uint32 {
	if segments == 0 {
		segments = geometry.DefaultSideSegments
	}
	return s.Add(renderable.New(geometry.NewCylinder(radius, height, segments), renderable.WithPosition(position)))
}

func (s *scene) CreateCone(radius, height float32, segments int, position math32.Vector3) uint32 {
	if segments == 0 {
		segments = geometry.DefaultSideSegments
	}
	return s.Add(renderable.New(geometry.NewCone(radius, height, segments), renderable.WithPosition(position)))
}

func (s *scene) CreateSphere(radius float32, latBands, lonBands int, position math32.Vector3) uint32 {
	if latBands == 0 {
		latBands = geometry.DefaultLatitudeBands
	}
	if lonBands == 0 {
		lonBands = geometry.DefaultLongitudeBands
	}
	return s.Add(renderable.New(geometry.NewSphere(radius, latBands, lonBands), renderable.WithPosition(position)))
}

func (s *scene) PopulateBatch(n int, build func(i int) renderable.Renderable) []uint32 {
	if n <= 0 || build == nil {
		return nil
	}

	// Phase 1: parallel construction, since mesh generation is the expensive
	// part. Workers are reused across batches. A WaitGroup provides the barrier
	// since pool.Wait() blocks until workers idle-exit.
	built := make([]renderable.Renderable, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		idx := i // capture for closure
		s.buildPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				built[idx] = build(idx)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: sequential insertion keeps identifiers monotonic with batch index.
	ids := make([]uint32, 0, n)
	for _, obj := range built {
		if obj == nil {
			continue
		}
		ids = append(ids, s.Add(obj))
	}
	return ids
}
