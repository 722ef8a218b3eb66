package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a
	// position, attenuated as 1 / (k0 + k1*d + k2*d^2).
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position
	// along a direction, with inner/outer cutoff angles and distance
	// attenuation.
	LightTypeSpot
)

// Attenuation holds the distance falloff coefficients of a point or spot
// light: 1 / (K0 + K1*d + K2*d^2).
type Attenuation struct {
	K0 float32
	K1 float32
	K2 float32
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	direction mgl32.Vec3

	attenuation Attenuation

	ambient  mgl32.Vec4
	diffuse  mgl32.Vec4
	specular mgl32.Vec4

	// cutOff/outerCutOff are stored as cos(angle) the way the shader
	// consumes them.
	cutOff      float32
	outerCutOff float32
}

// Light is one scene light source in the Phong model: ambient, diffuse and
// specular colors, with type-specific position, direction, attenuation and
// cone parameters. Type-specific accessors return zero values when they do
// not apply.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: directional, point, or spot
	Type() LightType

	// Position returns the light's world-space position. Meaningless for
	// directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the light.
	//
	// Parameters:
	//   - pos: the new world-space position
	SetPosition(pos mgl32.Vec3)

	// Direction returns the light's normalized direction. Meaningless for
	// point lights.
	//
	// Returns:
	//   - mgl32.Vec3: the direction
	Direction() mgl32.Vec3

	// Attenuation returns the distance falloff coefficients. Zero for
	// directional lights.
	//
	// Returns:
	//   - Attenuation: the falloff coefficients
	Attenuation() Attenuation

	// Ambient returns the ambient color component.
	//
	// Returns:
	//   - mgl32.Vec4: RGBA ambient color
	Ambient() mgl32.Vec4

	// Diffuse returns the diffuse color component.
	//
	// Returns:
	//   - mgl32.Vec4: RGBA diffuse color
	Diffuse() mgl32.Vec4

	// Specular returns the specular color component.
	//
	// Returns:
	//   - mgl32.Vec4: RGBA specular color
	Specular() mgl32.Vec4

	// Cones returns the spot cutoff cosines (inner, outer). Zero for other
	// light types.
	//
	// Returns:
	//   - float32: cos of the inner cone angle
	//   - float32: cos of the outer cone angle
	Cones() (float32, float32)

	// GPU returns the light packed into its GPU-aligned layout.
	//
	// Returns:
	//   - GPULight: the packed light
	GPU() GPULight
}

var _ Light = &lightImpl{}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) SetPosition(pos mgl32.Vec3) {
	l.position = pos
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Attenuation() Attenuation {
	return l.attenuation
}

func (l *lightImpl) Ambient() mgl32.Vec4 {
	return l.ambient
}

func (l *lightImpl) Diffuse() mgl32.Vec4 {
	return l.diffuse
}

func (l *lightImpl) Specular() mgl32.Vec4 {
	return l.specular
}

func (l *lightImpl) Cones() (float32, float32) {
	return l.cutOff, l.outerCutOff
}

func (l *lightImpl) GPU() GPULight {
	return GPULight{
		Position:    l.position,
		K0:          l.attenuation.K0,
		Direction:   l.direction,
		K1:          l.attenuation.K1,
		Ambient:     l.ambient,
		Diffuse:     l.diffuse,
		Specular:    l.specular,
		K2:          l.attenuation.K2,
		LightType:   uint32(l.lightType),
		CutOff:      l.cutOff,
		OuterCutOff: l.outerCutOff,
	}
}
