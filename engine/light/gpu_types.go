package light

import (
	"unsafe"

	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxGPULights caps how many lights fit in the per-frame light buffer.
const MaxGPULights = 16

// GPULight is the GPU-aligned representation of a single light source.
// Size: 96 bytes, std430 aligned: vec3 fields pack a trailing scalar into
// their fourth lane.
type GPULight struct {
	Position mgl32.Vec3 // offset  0: position (point/spot)
	K0       float32    // offset 12: constant attenuation factor
	Direction mgl32.Vec3 // offset 16: direction (directional/spot)
	K1        float32    // offset 28: linear attenuation factor
	Ambient  mgl32.Vec4 // offset 32: ambient color
	Diffuse  mgl32.Vec4 // offset 48: diffuse color
	Specular mgl32.Vec4 // offset 64: specular color
	K2          float32 // offset 80: quadratic attenuation factor
	LightType   uint32  // offset 84: 0 directional, 1 point, 2 spot
	CutOff      float32 // offset 88: cos(inner cone angle)
	OuterCutOff float32 // offset 92: cos(outer cone angle)
}

// GPULightBuffer is the fixed-size light array uploaded each frame.
type GPULightBuffer struct {
	Lights [MaxGPULights]GPULight
	Count  uint32
	_pad   [3]uint32
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// PackLights fills a GPULightBuffer from the scene's light list, truncating
// at the GPU budget.
//
// Parameters:
//   - lights: the scene lights to pack
//
// Returns:
//   - GPULightBuffer: the packed, upload-ready buffer
func PackLights(lights []Light) GPULightBuffer {
	var buf GPULightBuffer
	for _, l := range lights {
		if buf.Count >= MaxGPULights {
			break
		}
		buf.Lights[buf.Count] = l.GPU()
		buf.Count++
	}
	return buf
}

// Bytes returns the buffer's raw byte view for GPU upload.
//
// Returns:
//   - []byte: byte view of the buffer; shares memory with the receiver
func (b *GPULightBuffer) Bytes() []byte {
	return common.StructToBytes(b)
}
