package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/common"
)

func TestPipelineStateFromDefaultConfig(t *testing.T) {
	p := newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, common.DefaultRenderConfig())

	assert.Equal(t, "Render Pipeline", p.label)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, p.format)
	assert.Equal(t, common.CullingBackface, p.cullingMode)
	assert.Equal(t, uint32(4), p.sampleCount)
	assert.False(t, p.blendEnabled)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.topology)
	assert.Equal(t, wgpu.FrontFaceCCW, p.frontFace)
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.writeMask)
}

func TestPipelineStateFrom2DConfig(t *testing.T) {
	p := newPipelineState(wgpu.TextureFormatRGBA8UnormSrgb, common.RenderConfig2D())

	assert.Equal(t, common.CullingNone, p.cullingMode)
	assert.True(t, p.blendEnabled)
	assert.Equal(t, uint32(4), p.sampleCount)
}

func TestPipelineStateFromPerformanceConfig(t *testing.T) {
	p := newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, common.RenderConfigPerformance())

	assert.Equal(t, common.CullingBackface, p.cullingMode)
	assert.Equal(t, uint32(1), p.sampleCount)
	assert.False(t, p.blendEnabled)
}

func TestCullingOverrideReplacesConfiguredMode(t *testing.T) {
	cfg := common.DefaultRenderConfig()

	tests := []struct {
		name     string
		override common.CullingMode
	}{
		{name: "none", override: common.CullingNone},
		{name: "frontface", override: common.CullingFrontface},
		{name: "backface", override: common.CullingBackface},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, cfg, WithCullingOverride(tt.override))
			assert.Equal(t, tt.override, p.cullingMode)
			// Only the cull mode changes; everything else still follows the config.
			assert.Equal(t, cfg.Antialiasing.SampleCount(), p.sampleCount)
			assert.Equal(t, cfg.AlphaBlending, p.blendEnabled)
		})
	}
}

func TestSampleCountTracksAntialiasingMode(t *testing.T) {
	tests := []struct {
		mode common.AntialiasingMode
		want uint32
	}{
		{mode: common.AntialiasingNone, want: 1},
		{mode: common.AntialiasingMSAA2x, want: 2},
		{mode: common.AntialiasingMSAA4x, want: 4},
		{mode: common.AntialiasingMSAA8x, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := common.DefaultRenderConfig()
			cfg.Antialiasing = tt.mode
			p := newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, cfg)
			assert.Equal(t, tt.want, p.sampleCount)
		})
	}
}

func TestDefaultBlendStateIsAlphaComposite(t *testing.T) {
	p := newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, common.RenderConfig2D())

	assert.NotNil(t, p.blendState)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.blendState.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, p.blendState.Color.DstFactor)
	assert.Equal(t, wgpu.BlendOperationAdd, p.blendState.Color.Operation)
	assert.Equal(t, wgpu.BlendFactorOne, p.blendState.Alpha.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, p.blendState.Alpha.DstFactor)
}

func TestWithLabelIgnoresEmpty(t *testing.T) {
	p := newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, common.DefaultRenderConfig(), WithLabel(""))
	assert.Equal(t, "Render Pipeline", p.label)

	p = newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, common.DefaultRenderConfig(), WithLabel("Culling Pipeline (None)"))
	assert.Equal(t, "Culling Pipeline (None)", p.label)
}

func TestWithBlendStateIgnoresNil(t *testing.T) {
	p := newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, common.RenderConfig2D(), WithBlendState(nil))
	assert.NotNil(t, p.blendState)

	custom := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorZero,
			Operation: wgpu.BlendOperationAdd,
		},
	}
	p = newPipelineState(wgpu.TextureFormatBGRA8UnormSrgb, common.RenderConfig2D(), WithBlendState(custom))
	assert.Equal(t, wgpu.BlendFactorZero, p.blendState.Color.DstFactor)
}

func TestAccessorsReflectState(t *testing.T) {
	p := newPipelineState(wgpu.TextureFormatRGBA8UnormSrgb, common.RenderConfig2D(), WithCullingOverride(common.CullingFrontface))

	assert.Equal(t, common.CullingFrontface, p.CullingMode())
	assert.Equal(t, uint32(4), p.SampleCount())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, p.Format())
	assert.Nil(t, p.RenderPipeline())
}

func TestShaderSourceEmbedsEntryPoints(t *testing.T) {
	assert.Contains(t, basicShaderSource, "fn "+vertexEntryPoint)
	assert.Contains(t, basicShaderSource, "fn "+fragmentEntryPoint)
	assert.Contains(t, basicShaderSource, "mat4x4<f32>")
}
