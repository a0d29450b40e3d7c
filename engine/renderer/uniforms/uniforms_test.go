package uniforms

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/common"
)

// newTestBuffer builds an impl without GPU resources. Only the slot
// cursor and overflow paths run; anything that writes needs a device.
func newTestBuffer(stride uint32, capacity int) *dynamicUniformBufferImpl {
	return &dynamicUniformBufferImpl{
		mu:       &sync.Mutex{},
		stride:   stride,
		capacity: capacity,
	}
}

func identity() math32.Matrix4 {
	var m math32.Matrix4
	m.SetIdentity()
	return m
}

func TestStrideRoundsUpToAlignment(t *testing.T) {
	var u GPUObjectUniform
	matrixSize := uint64(u.Size())

	tests := []struct {
		name      string
		alignment uint64
		want      uint64
	}{
		{"spec default 256", 256, 256},
		{"tight 64", 64, 64},
		{"odd 96", 96, 96},
		{"large 512", 512, 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, common.AlignUp(matrixSize, tt.alignment))
		})
	}
}

func TestNextSlotAdvancesByStride(t *testing.T) {
	d := newTestBuffer(256, 4)

	wantOffsets := []uint32{0, 256, 512, 768}
	for _, want := range wantOffsets {
		offset, ok := d.nextSlot()
		assert.True(t, ok)
		assert.Equal(t, want, offset)
	}

	_, ok := d.nextSlot()
	assert.False(t, ok)
}

func TestResetFrameRewindsCursor(t *testing.T) {
	d := newTestBuffer(256, 2)
	d.nextSlot()
	d.nextSlot()
	d.warned = true

	d.ResetFrame()

	assert.Equal(t, 0, d.cursor)
	assert.False(t, d.warned)

	offset, ok := d.nextSlot()
	assert.True(t, ok)
	assert.Equal(t, uint32(0), offset)
}

func TestUploadMatrixRejectsWhenFull(t *testing.T) {
	d := newTestBuffer(256, 1)
	d.cursor = d.capacity

	// The overflow path never touches the queue, so no device is needed.
	u, ok := d.UploadMatrix(identity())
	assert.False(t, ok)
	assert.Nil(t, u.BindGroup)
	assert.True(t, d.warned)
}

func TestUploadMatricesReturnsEmptyWhenFull(t *testing.T) {
	d := newTestBuffer(256, 2)
	d.cursor = d.capacity

	uploads := d.UploadMatrices([]math32.Matrix4{identity(), identity()})
	assert.NotNil(t, uploads)
	assert.Len(t, uploads, 0)
}

func TestCapacityDefaultsAndAccessors(t *testing.T) {
	d := newTestBuffer(256, MaxObjectsPerBatch)
	assert.Equal(t, 64, d.Capacity())
	assert.Equal(t, uint32(256), d.Stride())
}

func TestGPUObjectUniformSize(t *testing.T) {
	var u GPUObjectUniform
	assert.Equal(t, 64, u.Size())
}

func TestGPUObjectUniformMarshal(t *testing.T) {
	var m math32.Matrix4
	m.SetIdentity()
	m[12], m[13], m[14] = 2, 3, 4 // translation column

	buf := NewGPUObjectUniform(m).Marshal()
	assert.Len(t, buf, 64)

	at := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	// Diagonal ones survive, column-major translation lands at 12..14.
	assert.Equal(t, float32(1), at(0))
	assert.Equal(t, float32(1), at(5))
	assert.Equal(t, float32(1), at(10))
	assert.Equal(t, float32(1), at(15))
	assert.Equal(t, float32(2), at(12))
	assert.Equal(t, float32(3), at(13))
	assert.Equal(t, float32(4), at(14))
}
