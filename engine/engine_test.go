package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/engine/renderer"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
	"github.com/Carmen-Shannon/mosaic-go/engine/window"
)

// stubWindow satisfies window.Window for frame loop tests. Only the methods
// the loop touches are implemented; anything else would nil-panic and fail
// the test loudly.
type stubWindow struct {
	window.Window
	closeRequests int
}

func (w *stubWindow) RequestClose() {
	w.closeRequests++
}

// stubRenderer satisfies renderer.Renderer and returns the queued errors from
// RenderScene in order, then nil.
type stubRenderer struct {
	renderer.Renderer
	renderErrs   []error
	rendered     int
	reconfigured int
}

func (r *stubRenderer) RenderScene(scene.Scene) error {
	r.rendered++
	if len(r.renderErrs) == 0 {
		return nil
	}
	err := r.renderErrs[0]
	r.renderErrs = r.renderErrs[1:]
	return err
}

func (r *stubRenderer) Reconfigure() {
	r.reconfigured++
}

func newTestEngine(r *stubRenderer, w *stubWindow) *engine {
	return &engine{
		quitChannel: make(chan struct{}),
		window:      w,
		renderer:    r,
		scene:       scene.NewScene("test"),
		lastFrame:   time.Now(),
	}
}

func quitSignaled(e *engine) bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

func TestFrameInvokesUpdateCallbackAndRenders(t *testing.T) {
	r := &stubRenderer{}
	w := &stubWindow{}
	e := newTestEngine(r, w)

	updates := 0
	e.SetUpdateCallback(func(dt float32) {
		updates++
		assert.GreaterOrEqual(t, dt, float32(0))
	})

	e.frame()

	assert.Equal(t, 1, updates)
	assert.Equal(t, 1, r.rendered)
	assert.NoError(t, e.runErr)
	assert.False(t, quitSignaled(e))
}

func TestFrameReconfiguresOnceOnAcquireFailure(t *testing.T) {
	acquireErr := fmt.Errorf("%w: previous frame surface not yet presented", renderer.ErrSurfaceAcquire)
	r := &stubRenderer{renderErrs: []error{acquireErr}}
	w := &stubWindow{}
	e := newTestEngine(r, w)

	e.frame()

	assert.Equal(t, 1, r.reconfigured)
	assert.True(t, e.acquireRetried)
	assert.NoError(t, e.runErr)
	assert.False(t, quitSignaled(e))

	// The next successful frame clears the retry state.
	e.frame()
	assert.False(t, e.acquireRetried)
	assert.Equal(t, 2, r.rendered)
}

func TestFrameStopsAfterSecondConsecutiveAcquireFailure(t *testing.T) {
	acquireErr := fmt.Errorf("%w: timeout", renderer.ErrSurfaceAcquire)
	r := &stubRenderer{renderErrs: []error{acquireErr, acquireErr}}
	w := &stubWindow{}
	e := newTestEngine(r, w)

	e.frame()
	e.frame()

	assert.Equal(t, 1, r.reconfigured)
	assert.ErrorIs(t, e.runErr, renderer.ErrSurfaceAcquire)
	assert.True(t, quitSignaled(e))
	assert.GreaterOrEqual(t, w.closeRequests, 1)
}

func TestFrameStopsOnFatalRenderError(t *testing.T) {
	fatal := errors.New("device lost")
	r := &stubRenderer{renderErrs: []error{fatal}}
	w := &stubWindow{}
	e := newTestEngine(r, w)

	e.frame()

	assert.Zero(t, r.reconfigured)
	assert.ErrorIs(t, e.runErr, fatal)
	assert.True(t, quitSignaled(e))
}

func TestFrameSkipsWorkAfterQuit(t *testing.T) {
	r := &stubRenderer{}
	w := &stubWindow{}
	e := newTestEngine(r, w)

	e.Quit()
	e.frame()

	assert.Zero(t, r.rendered)
	assert.GreaterOrEqual(t, w.closeRequests, 1)
}

func TestFrameRecoversPanicAndStops(t *testing.T) {
	r := &stubRenderer{}
	w := &stubWindow{}
	e := newTestEngine(r, w)
	e.SetUpdateCallback(func(float32) {
		panic("boom")
	})

	assert.NotPanics(t, e.frame)
	assert.Error(t, e.runErr)
	assert.Contains(t, e.runErr.Error(), "frame panic")
	assert.True(t, quitSignaled(e))
	assert.Zero(t, r.rendered)
}

func TestQuitIsIdempotent(t *testing.T) {
	e := newTestEngine(&stubRenderer{}, &stubWindow{})

	assert.NotPanics(t, func() {
		e.Quit()
		e.Quit()
	})
	assert.True(t, quitSignaled(e))
}

func TestFailKeepsFirstError(t *testing.T) {
	e := newTestEngine(&stubRenderer{}, &stubWindow{})
	first := errors.New("first")
	second := errors.New("second")

	e.fail(first)
	e.fail(second)

	assert.ErrorIs(t, e.runErr, first)
}

func TestSetFrameLimit(t *testing.T) {
	e := newTestEngine(&stubRenderer{}, &stubWindow{})

	e.SetFrameLimit(60)
	assert.Equal(t, time.Second/60, e.frameLimit)

	e.SetFrameLimit(0)
	assert.Equal(t, time.Duration(0), e.frameLimit)

	e.SetFrameLimit(-5)
	assert.Equal(t, time.Duration(0), e.frameLimit)
}
