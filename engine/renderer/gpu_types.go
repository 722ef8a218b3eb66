package renderer

import (
	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameUniforms is the per-frame uniform block shared by every draw call.
// Field order and padding must match the WGSL FrameUniforms struct.
type FrameUniforms struct {
	// ViewProjection is the combined projection * view matrix.
	ViewProjection mgl32.Mat4

	// CameraPosition is the world-space camera position. The w component is
	// padding for 16-byte alignment.
	CameraPosition mgl32.Vec4
}

// Bytes returns the raw byte representation for GPU upload.
//
// Returns:
//   - []byte: the struct contents viewed as bytes
func (f *FrameUniforms) Bytes() []byte {
	return common.StructToBytes(f)
}

// ObjectUniforms is the per-object uniform block. Field order and padding
// must match the WGSL ObjectUniforms struct.
type ObjectUniforms struct {
	// Model is the object's world transform.
	Model mgl32.Mat4

	// BaseColor is the flat surface color used in place of textures.
	BaseColor mgl32.Vec4
}

// Bytes returns the raw byte representation for GPU upload.
//
// Returns:
//   - []byte: the struct contents viewed as bytes
func (o *ObjectUniforms) Bytes() []byte {
	return common.StructToBytes(o)
}
