// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"
)

// CullingMode selects which triangle winding-order faces the GPU discards
// before rasterization. Grouping renderables by this value is what decides
// how many render passes a frame needs.
type CullingMode int

const (
	// CullingNone renders both faces. The default for flat shapes
	// (triangles, quads, circles) so they stay visible from behind.
	CullingNone CullingMode = iota
	// CullingBackface discards faces wound away from the camera. The
	// default for closed shapes (cubes, cylinders, cones, spheres).
	CullingBackface
	// CullingFrontface discards faces wound toward the camera.
	CullingFrontface
)

// String returns the lowercase name of the culling mode.
func (c CullingMode) String() string {
	switch c {
	case CullingNone:
		return "none"
	case CullingBackface:
		return "backface"
	case CullingFrontface:
		return "frontface"
	default:
		return fmt.Sprintf("CullingMode(%d)", int(c))
	}
}

// ToWGPU converts the culling mode to its wgpu pipeline equivalent.
//
// Returns:
//   - wgpu.CullMode: the cull mode to set on a render pipeline's primitive state
func (c CullingMode) ToWGPU() wgpu.CullMode {
	switch c {
	case CullingBackface:
		return wgpu.CullModeBack
	case CullingFrontface:
		return wgpu.CullModeFront
	default:
		return wgpu.CullModeNone
	}
}

// MarshalText implements encoding.TextMarshaler so the mode serializes as
// its name in config files.
func (c CullingMode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the names
// produced by String.
func (c *CullingMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*c = CullingNone
	case "backface":
		*c = CullingBackface
	case "frontface":
		*c = CullingFrontface
	default:
		return fmt.Errorf("common: unknown culling mode %q", string(text))
	}
	return nil
}

// AntialiasingMode selects the multisample antialiasing level used by
// render pipelines and frame targets.
type AntialiasingMode int

const (
	// AntialiasingNone disables multisampling (sample count 1).
	AntialiasingNone AntialiasingMode = iota
	// AntialiasingMSAA2x renders with 2 samples per pixel.
	AntialiasingMSAA2x
	// AntialiasingMSAA4x renders with 4 samples per pixel.
	AntialiasingMSAA4x
	// AntialiasingMSAA8x renders with 8 samples per pixel.
	AntialiasingMSAA8x
)

// SampleCount returns the per-pixel sample count for the mode.
//
// Returns:
//   - uint32: 1, 2, 4, or 8
func (a AntialiasingMode) SampleCount() uint32 {
	switch a {
	case AntialiasingMSAA2x:
		return 2
	case AntialiasingMSAA4x:
		return 4
	case AntialiasingMSAA8x:
		return 8
	default:
		return 1
	}
}

// IsMultisampled reports whether the mode needs a multisampled intermediate
// target and a resolve step.
func (a AntialiasingMode) IsMultisampled() bool {
	return a.SampleCount() > 1
}

// String returns the lowercase name of the antialiasing mode.
func (a AntialiasingMode) String() string {
	switch a {
	case AntialiasingNone:
		return "none"
	case AntialiasingMSAA2x:
		return "msaa2x"
	case AntialiasingMSAA4x:
		return "msaa4x"
	case AntialiasingMSAA8x:
		return "msaa8x"
	default:
		return fmt.Sprintf("AntialiasingMode(%d)", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler so the mode serializes as
// its name in config files.
func (a AntialiasingMode) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the names
// produced by String.
func (a *AntialiasingMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*a = AntialiasingNone
	case "msaa2x":
		*a = AntialiasingMSAA2x
	case "msaa4x":
		*a = AntialiasingMSAA4x
	case "msaa8x":
		*a = AntialiasingMSAA8x
	default:
		return fmt.Errorf("common: unknown antialiasing mode %q", string(text))
	}
	return nil
}

// RenderConfig holds the pipeline-state knobs the renderer recognizes.
// It is plain data: applying a config is the renderer's job.
type RenderConfig struct {
	// Antialiasing selects the multisample level for pipelines and targets.
	Antialiasing AntialiasingMode `toml:"antialiasing"`
	// Culling is the default cull mode for the primary pipeline. Objects
	// carrying a different mode are drawn through secondary pipelines.
	Culling CullingMode `toml:"culling"`
	// AlphaBlending selects alpha blending instead of replace blending on
	// the color target.
	AlphaBlending bool `toml:"alpha_blending"`
}

// DefaultRenderConfig returns the standard configuration: 4x MSAA, backface
// culling, no alpha blending.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Antialiasing: AntialiasingMSAA4x,
		Culling:      CullingBackface,
	}
}

// RenderConfig2D returns the preset for flat scenes: no culling so both
// faces of flat shapes render, alpha blending on.
func RenderConfig2D() RenderConfig {
	return RenderConfig{
		Antialiasing:  AntialiasingMSAA4x,
		Culling:       CullingNone,
		AlphaBlending: true,
	}
}

// RenderConfig3D returns the preset for solid scenes: backface culling,
// alpha blending off.
func RenderConfig3D() RenderConfig {
	return RenderConfig{
		Antialiasing: AntialiasingMSAA4x,
		Culling:      CullingBackface,
	}
}

// RenderConfigPerformance returns the preset that trades quality for speed:
// antialiasing off (sample count 1), backface culling.
func RenderConfigPerformance() RenderConfig {
	return RenderConfig{
		Antialiasing: AntialiasingNone,
		Culling:      CullingBackface,
	}
}

// LoadRenderConfig reads a RenderConfig from a TOML file.
//
// Parameters:
//   - path: filesystem path of the config file
//
// Returns:
//   - RenderConfig: the parsed configuration
//   - error: wrapped read or parse failure
func LoadRenderConfig(path string) (RenderConfig, error) {
	cfg := DefaultRenderConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("common: reading render config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("common: parsing render config %q: %w", path, err)
	}
	return cfg, nil
}

// SaveRenderConfig writes a RenderConfig to a TOML file, creating or
// truncating it.
//
// Parameters:
//   - path: filesystem path of the config file
//   - cfg: the configuration to write
//
// Returns:
//   - error: wrapped marshal or write failure
func SaveRenderConfig(path string, cfg RenderConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("common: encoding render config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("common: writing render config %q: %w", path, err)
	}
	return nil
}
