package uniforms

type DynamicUniformBufferBuilderOption func(*dynamicUniformBufferImpl)

// WithCapacity overrides the number of uniform slots per frame. Values
// below 1 are ignored.
//
// Parameters:
//   - slots: the slot count to allocate
//
// Returns:
//   - DynamicUniformBufferBuilderOption: a function that sets the capacity
func WithCapacity(slots int) DynamicUniformBufferBuilderOption {
	return func(d *dynamicUniformBufferImpl) {
		if slots > 0 {
			d.capacity = slots
		}
	}
}
