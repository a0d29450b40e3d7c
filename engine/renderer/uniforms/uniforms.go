// Package uniforms manages the per-object dynamic uniform buffer: one GPU
// buffer holding a fixed number of aligned matrix slots, shared by every
// draw call in a frame through a single bind group and per-object dynamic
// offsets.
package uniforms

import (
	"fmt"
	"log"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/mosaic-go/common"
)

// MaxObjectsPerBatch is the default number of uniform slots per frame.
// Objects beyond the slot capacity are dropped with a logged warning; the
// fixed bound keeps buffer memory predictable instead of resizing.
const MaxObjectsPerBatch = 64

// Upload addresses one uploaded matrix at draw time: the shared bind
// group plus the dynamic offset selecting the object's slot.
type Upload struct {
	BindGroup *wgpu.BindGroup
	Offset    uint32
}

type dynamicUniformBufferImpl struct {
	mu *sync.Mutex

	queue     *wgpu.Queue
	buffer    *wgpu.Buffer
	layout    *wgpu.BindGroupLayout
	bindGroup *wgpu.BindGroup

	stride   uint32
	capacity int
	cursor   int
	warned   bool
}

// DynamicUniformBuffer hands out uniform slots for one frame at a time.
// ResetFrame must be called once at the start of each frame before any
// uploads.
type DynamicUniformBuffer interface {
	// ResetFrame rewinds the slot cursor to zero and re-arms the capacity
	// warning.
	ResetFrame()

	// UploadMatrix writes one matrix into the next free slot and returns
	// the addressing info for its draw call. Returns false when every
	// slot is taken; the first rejection per frame logs a warning.
	//
	// Parameters:
	//   - m: the matrix to upload
	//
	// Returns:
	//   - Upload: bind group and dynamic offset for the slot
	//   - bool: false if the buffer is full
	UploadMatrix(m math32.Matrix4) (Upload, bool)

	// UploadMatrices uploads a batch in order, stopping early when
	// capacity runs out. The result holds one Upload per matrix written;
	// a short result means the tail was dropped.
	//
	// Parameters:
	//   - ms: the matrices to upload, in draw order
	//
	// Returns:
	//   - []Upload: addressing info per written matrix, same order
	UploadMatrices(ms []math32.Matrix4) []Upload

	// BindGroupLayout returns the layout render pipelines must use for
	// the uniform bind group.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the shared layout
	BindGroupLayout() *wgpu.BindGroupLayout

	// Stride returns the aligned byte distance between slots.
	//
	// Returns:
	//   - uint32: the per-slot stride in bytes
	Stride() uint32

	// Capacity returns the number of slots per frame.
	//
	// Returns:
	//   - int: the slot count
	Capacity() int

	// Release frees the GPU buffer, layout, and bind group.
	Release()
}

var _ DynamicUniformBuffer = &dynamicUniformBufferImpl{}

// NewDynamicUniformBuffer allocates the slot buffer, its bind group
// layout, and the single bind group all slots share. The stride is the
// matrix size rounded up to the device's uniform offset alignment.
//
// Parameters:
//   - device: the GPU device, must not be nil
//   - queue: the queue used for slot writes, must not be nil
//   - alignment: the device's MinUniformBufferOffsetAlignment
//   - options: functional options to configure the buffer
//
// Returns:
//   - DynamicUniformBuffer: the newly created buffer
//   - error: an error if any GPU resource could not be created
func NewDynamicUniformBuffer(device *wgpu.Device, queue *wgpu.Queue, alignment uint32, options ...DynamicUniformBufferBuilderOption) (DynamicUniformBuffer, error) {
	if device == nil || queue == nil {
		panic("uniforms: NewDynamicUniformBuffer requires a device and queue")
	}

	var probe GPUObjectUniform
	matrixSize := uint64(probe.Size())

	d := &dynamicUniformBufferImpl{
		mu:       &sync.Mutex{},
		queue:    queue,
		stride:   uint32(common.AlignUp(matrixSize, uint64(alignment))),
		capacity: MaxObjectsPerBatch,
	}
	for _, option := range options {
		option(d)
	}

	buffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Dynamic Uniform Buffer",
		Size:  uint64(d.stride) * uint64(d.capacity),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic uniform buffer: %w", err)
	}
	d.buffer = buffer

	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Dynamic Uniform Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   matrixSize,
				},
			},
		},
	})
	if err != nil {
		buffer.Release()
		return nil, fmt.Errorf("failed to create dynamic uniform bind group layout: %w", err)
	}
	d.layout = layout

	// One bind group serves every slot; draw calls select their slot
	// with a dynamic offset instead of switching bind groups.
	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Dynamic Uniform Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Offset:  0,
				Size:    matrixSize,
			},
		},
	})
	if err != nil {
		layout.Release()
		buffer.Release()
		return nil, fmt.Errorf("failed to create dynamic uniform bind group: %w", err)
	}
	d.bindGroup = bindGroup

	return d, nil
}

func (d *dynamicUniformBufferImpl) ResetFrame() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = 0
	d.warned = false
}

func (d *dynamicUniformBufferImpl) UploadMatrix(m math32.Matrix4) (Upload, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.uploadLocked(m)
}

func (d *dynamicUniformBufferImpl) UploadMatrices(ms []math32.Matrix4) []Upload {
	d.mu.Lock()
	defer d.mu.Unlock()

	uploads := make([]Upload, 0, len(ms))
	for _, m := range ms {
		u, ok := d.uploadLocked(m)
		if !ok {
			break
		}
		uploads = append(uploads, u)
	}
	return uploads
}

// uploadLocked writes one matrix into the cursor's slot. Caller must hold
// the mutex.
func (d *dynamicUniformBufferImpl) uploadLocked(m math32.Matrix4) (Upload, bool) {
	offset, ok := d.nextSlot()
	if !ok {
		if !d.warned {
			log.Printf("dynamic uniform buffer full: objects beyond %d will not render this frame", d.capacity)
			d.warned = true
		}
		return Upload{}, false
	}

	u := NewGPUObjectUniform(m)
	d.queue.WriteBuffer(d.buffer, uint64(offset), u.Marshal())

	return Upload{BindGroup: d.bindGroup, Offset: offset}, true
}

// nextSlot reserves the next slot, returning its byte offset, or false
// when the capacity is exhausted. Caller must hold the mutex.
func (d *dynamicUniformBufferImpl) nextSlot() (uint32, bool) {
	if d.cursor >= d.capacity {
		return 0, false
	}
	offset := uint32(d.cursor) * d.stride
	d.cursor++
	return offset, true
}

func (d *dynamicUniformBufferImpl) BindGroupLayout() *wgpu.BindGroupLayout {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.layout
}

func (d *dynamicUniformBufferImpl) Stride() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stride
}

func (d *dynamicUniformBufferImpl) Capacity() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capacity
}

func (d *dynamicUniformBufferImpl) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bindGroup != nil {
		d.bindGroup.Release()
		d.bindGroup = nil
	}
	if d.layout != nil {
		d.layout.Release()
		d.layout = nil
	}
	if d.buffer != nil {
		d.buffer.Release()
		d.buffer = nil
	}
}
