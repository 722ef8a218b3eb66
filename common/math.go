package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
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

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// ComposeTRS builds a model matrix from a position, a Y-axis heading in radians,
// additional per-axis Euler rotation, and a scale vector. Rotation order matches
// the original asset convention: heading first, then X/Y/Z corrections.
//
// Parameters:
//   - pos: world-space translation
//   - heading: rotation around the Y axis in radians
//   - extraRot: additional Euler rotation (radians) applied after the heading
//   - scale: per-axis scale factors
//
// Returns:
//   - mgl32.Mat4: the composed model matrix
func ComposeTRS(pos mgl32.Vec3, heading float32, extraRot, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	m = m.Mul4(mgl32.HomogRotate3DY(heading))
	if extraRot.X() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(extraRot.X()))
	}
	if extraRot.Y() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(extraRot.Y()))
	}
	if extraRot.Z() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(extraRot.Z()))
	}
	return m.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}
