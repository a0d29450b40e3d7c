package common

import (
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// AlignUp rounds size up to the nearest multiple of align. GPU buffer
// offsets and row pitches must respect device alignment requirements
// (uniform-buffer offset alignment, texture copy row alignment), which are
// always powers of two but are not assumed to be here.
//
// Parameters:
//   - size: the value to round up, in bytes
//   - align: the alignment boundary, in bytes (must be > 0)
//
// Returns:
//   - uint64: the smallest multiple of align that is >= size
func AlignUp(size, align uint64) uint64 {
	if align == 0 {
		return size
	}
	rem := size % align
	if rem == 0 {
		return size
	}
	return size + align - rem
}
