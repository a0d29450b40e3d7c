package uniforms

import (
	"encoding/binary"
	"math"
	"unsafe"

	"cogentcore.org/core/math32"
)

// GPUObjectUniform is the GPU-aligned representation of one uniform slot.
// Matches the WGSL ObjectUniform struct layout exactly: a single
// column-major mat4x4<f32>, 64 bytes.
type GPUObjectUniform struct {
	MVP [16]float32 // offset 0: combined view-projection * model matrix (mat4x4<f32>)
}

// NewGPUObjectUniform wraps a matrix in its GPU slot representation.
//
// Parameters:
//   - m: the combined matrix for one object
//
// Returns:
//   - GPUObjectUniform: the slot value
func NewGPUObjectUniform(m math32.Matrix4) GPUObjectUniform {
	return GPUObjectUniform{MVP: [16]float32(m)}
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.MVP[i]))
	}
	return buf
}
