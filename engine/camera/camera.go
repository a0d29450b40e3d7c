package camera

import (
	"sync"

	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
)

// ProjectionMode selects how the camera maps view space to clip space.
type ProjectionMode int

const (
	// ProjectionPerspective applies a perspective divide based on field of view.
	ProjectionPerspective ProjectionMode = iota
	// ProjectionOrthographic applies a parallel projection sized by the
	// orthographic height and the aspect ratio.
	ProjectionOrthographic
)

// Field of view bounds; values at or past 0 and 180 degrees degenerate the
// perspective projection matrix.
const (
	minFovDegrees float32 = 1
	maxFovDegrees float32 = 179
)

func (m ProjectionMode) String() string {
	switch m {
	case ProjectionPerspective:
		return "Perspective"
	case ProjectionOrthographic:
		return "Orthographic"
	default:
		return "Unknown"
	}
}

type cameraImpl struct {
	mu *sync.Mutex

	position math32.Vector3
	target   math32.Vector3
	up       math32.Vector3

	mode        ProjectionMode
	fovDegrees  float32
	aspect      float32
	near        float32
	far         float32
	orthoHeight float32 // world-space height of the orthographic view volume

	viewMatrix           math32.Matrix4
	projectionMatrix     math32.Matrix4
	viewProjectionMatrix math32.Matrix4
}

// Camera holds the view and projection state and derives the combined
// view-projection matrix the render core consumes. Every setter recomputes
// the matrices eagerly, so getters are always consistent.
type Camera interface {
	// Position returns the camera's world position.
	//
	// Returns:
	//   - math32.Vector3: the position
	Position() math32.Vector3

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - math32.Vector3: the look-at target
	Target() math32.Vector3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - math32.Vector3: the up vector
	Up() math32.Vector3

	// Mode returns the active projection mode.
	//
	// Returns:
	//   - ProjectionMode: perspective or orthographic
	Mode() ProjectionMode

	// Fov returns the vertical field of view in degrees. Only meaningful
	// in perspective mode.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - math32.Matrix4: the view matrix
	ViewMatrix() math32.Matrix4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - math32.Matrix4: the projection matrix
	ProjectionMatrix() math32.Matrix4

	// ViewProjectionMatrix returns projection times view, the single
	// matrix consumed per frame by the render core.
	//
	// Returns:
	//   - math32.Matrix4: the combined view-projection matrix
	ViewProjectionMatrix() math32.Matrix4

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - position: the new world position
	SetPosition(position math32.Vector3)

	// SetTarget changes the look-at point and recomputes matrices. A
	// target equal to the position is nudged along -Z to keep the view
	// basis well defined.
	//
	// Parameters:
	//   - target: the new look-at point
	SetTarget(target math32.Vector3)

	// SetUp sets the camera's up vector and recomputes matrices.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up math32.Vector3)

	// SetMode switches the projection mode and recomputes matrices. The
	// camera snaps to the mode's default viewing distance and clip
	// planes: (0, 0, 3) with 0.1..100 for perspective, (0, 0, 1) with
	// -10..10 for orthographic.
	//
	// Parameters:
	//   - mode: perspective or orthographic
	SetMode(mode ProjectionMode)

	// SetFov sets the vertical field of view in degrees and recomputes
	// matrices. Values are clamped to [1, 179].
	//
	// Parameters:
	//   - degrees: field of view in degrees
	SetFov(degrees float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes
	// matrices. Called by the windowing layer on resize.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes
	// matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective Camera looking from (0, 0, 3) at the
// origin with a 60 degree field of view and 0.1..100 clip planes.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		position:    math32.Vec3(0, 0, 3),
		target:      math32.Vec3(0, 0, 0),
		up:          math32.Vec3(0, 1, 0),
		mode:        ProjectionPerspective,
		fovDegrees:  60,
		aspect:      1,
		near:        0.1,
		far:         100,
		orthoHeight: 2,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

// NewCamera2D creates an orthographic Camera for flat scenes: positioned at
// (0, 0, 1) looking at the origin, with a view volume spanning -aspect..aspect
// horizontally, -1..1 vertically, and -10..10 in depth.
//
// Parameters:
//   - aspect: the aspect ratio (width / height)
//
// Returns:
//   - Camera: the newly created camera
func NewCamera2D(aspect float32) Camera {
	return NewCamera(
		WithPosition(math32.Vec3(0, 0, 1)),
		WithMode(ProjectionOrthographic),
		WithAspect(aspect),
		WithClipPlanes(-10, 10),
	)
}

func (c *cameraImpl) Position() math32.Vector3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() math32.Vector3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() math32.Vector3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Mode() ProjectionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovDegrees
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() math32.Matrix4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() math32.Matrix4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() math32.Matrix4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetPosition(position math32.Vector3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(target math32.Vector3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up math32.Vector3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetMode(mode ProjectionMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	switch mode {
	case ProjectionOrthographic:
		c.position = math32.Vec3(0, 0, 1)
		c.near, c.far = -10, 10
	default:
		c.position = math32.Vec3(0, 0, 3)
		c.near, c.far = 0.1, 100
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(degrees float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fovDegrees = common.Clamp(degrees, minFovDegrees, maxFovDegrees)
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, and view-projection
// matrices. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	target := c.target
	if target == c.position {
		// a zero look direction has no valid basis; look down -Z instead
		target.Z -= 1
	}

	rot := math32.NewLookAt(c.position, target, c.up)
	var q math32.Quat
	q.SetFromRotationMatrix(rot)
	var pose math32.Matrix4
	pose.SetTransform(c.position, q, math32.Vec3(1, 1, 1))
	if view, err := pose.Inverse(); err == nil {
		c.viewMatrix = *view
	}

	switch c.mode {
	case ProjectionOrthographic:
		c.projectionMatrix.SetOrthographic(c.orthoHeight*c.aspect, c.orthoHeight, c.near, c.far)
	default:
		c.projectionMatrix.SetPerspective(c.fovDegrees, c.aspect, c.near, c.far)
	}

	c.viewProjectionMatrix.MulMatrices(&c.projectionMatrix, &c.viewMatrix)
}
