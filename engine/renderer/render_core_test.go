package renderer

import (
	"sync"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
)

func TestNewRenderCoreRequiresDeviceAndQueue(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewRenderCore(nil, nil, wgpu.TextureFormatRGBA8UnormSrgb, 640, 480, common.DefaultRenderConfig())
	})
}

func TestEncodeFrameRequiresEncoderAndTarget(t *testing.T) {
	rc := &renderCoreImpl{mu: &sync.Mutex{}}

	err := rc.EncodeFrame(nil, nil, scene.Renderables{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "command encoder")
}

func TestEncodeFrameEmptySnapshotEncodesNothing(t *testing.T) {
	// An empty frame returns before touching the device, so zero-value
	// handles are enough to cover the early exit.
	rc := &renderCoreImpl{mu: &sync.Mutex{}}

	err := rc.EncodeFrame(&wgpu.CommandEncoder{}, &wgpu.TextureView{}, scene.Renderables{})
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), rc.FrameCount())
}

func TestResizeIgnoresZeroDimensions(t *testing.T) {
	rc := &renderCoreImpl{mu: &sync.Mutex{}, width: 800, height: 600}

	assert.NoError(t, rc.Resize(0, 600))
	assert.NoError(t, rc.Resize(800, 0))
	assert.Equal(t, uint32(800), rc.width)
	assert.Equal(t, uint32(600), rc.height)
}

func TestConfigReflectsCurrentConfiguration(t *testing.T) {
	rc := &renderCoreImpl{mu: &sync.Mutex{}, config: common.RenderConfig2D()}

	got := rc.Config()
	assert.Equal(t, common.AntialiasingMSAA4x, got.Antialiasing)
	assert.Equal(t, common.CullingNone, got.Culling)
	assert.True(t, got.AlphaBlending)
}
