package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfigPresets(t *testing.T) {
	def := DefaultRenderConfig()
	assert.Equal(t, AntialiasingMSAA4x, def.Antialiasing)
	assert.Equal(t, CullingBackface, def.Culling)
	assert.False(t, def.AlphaBlending)

	cfg2d := RenderConfig2D()
	assert.Equal(t, CullingNone, cfg2d.Culling)
	assert.True(t, cfg2d.AlphaBlending)
	assert.Equal(t, AntialiasingMSAA4x, cfg2d.Antialiasing)

	cfg3d := RenderConfig3D()
	assert.Equal(t, CullingBackface, cfg3d.Culling)
	assert.False(t, cfg3d.AlphaBlending)

	perf := RenderConfigPerformance()
	assert.Equal(t, AntialiasingNone, perf.Antialiasing)
	assert.Equal(t, uint32(1), perf.Antialiasing.SampleCount())
	assert.False(t, perf.Antialiasing.IsMultisampled())
}

func TestAntialiasingSampleCounts(t *testing.T) {
	tests := []struct {
		mode  AntialiasingMode
		count uint32
		multi bool
	}{
		{AntialiasingNone, 1, false},
		{AntialiasingMSAA2x, 2, true},
		{AntialiasingMSAA4x, 4, true},
		{AntialiasingMSAA8x, 8, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.count, tc.mode.SampleCount(), tc.mode.String())
		assert.Equal(t, tc.multi, tc.mode.IsMultisampled(), tc.mode.String())
	}
}

func TestCullingModeToWGPU(t *testing.T) {
	assert.Equal(t, wgpu.CullModeNone, CullingNone.ToWGPU())
	assert.Equal(t, wgpu.CullModeBack, CullingBackface.ToWGPU())
	assert.Equal(t, wgpu.CullModeFront, CullingFrontface.ToWGPU())
}

func TestLoadRenderConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	src := "antialiasing = \"msaa2x\"\nculling = \"frontface\"\nalpha_blending = true\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := LoadRenderConfig(path)
	require.NoError(t, err)
	assert.Equal(t, AntialiasingMSAA2x, cfg.Antialiasing)
	assert.Equal(t, CullingFrontface, cfg.Culling)
	assert.True(t, cfg.AlphaBlending)
}

func TestLoadRenderConfigRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte("culling = \"sideways\"\n"), 0o644))

	_, err := LoadRenderConfig(path)
	assert.Error(t, err)
}

func TestSaveRenderConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	want := RenderConfig2D()
	require.NoError(t, SaveRenderConfig(path, want))

	got, err := LoadRenderConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRenderConfigMissingFile(t *testing.T) {
	_, err := LoadRenderConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
