package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func cosDeg(degrees float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(degrees))))
}

// LightBuilderOption is a functional option for configuring a Light during
// construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the light's position.
//
// Parameters:
//   - pos: the world-space position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option
func WithPosition(pos mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = pos
	}
}

// WithDirection is an option builder that sets the light's direction,
// normalized.
//
// Parameters:
//   - dir: the direction vector
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option
func WithDirection(dir mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		if dir.Len() > 0 {
			dir = dir.Normalize()
		}
		l.direction = dir
	}
}

// WithAttenuation is an option builder that sets the distance falloff
// coefficients.
//
// Parameters:
//   - k0: constant factor
//   - k1: linear factor
//   - k2: quadratic factor
//
// Returns:
//   - LightBuilderOption: a function that applies the attenuation option
func WithAttenuation(k0, k1, k2 float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.attenuation = Attenuation{K0: k0, K1: k1, K2: k2}
	}
}

// WithColors is an option builder that sets the Phong color components.
//
// Parameters:
//   - ambient: RGBA ambient color
//   - diffuse: RGBA diffuse color
//   - specular: RGBA specular color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option
func WithColors(ambient, diffuse, specular mgl32.Vec4) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = ambient
		l.diffuse = diffuse
		l.specular = specular
	}
}

// WithCones is an option builder that sets the spot cone angles.
//
// Parameters:
//   - innerDegrees: inner cone half-angle in degrees
//   - outerDegrees: outer cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the cone option
func WithCones(innerDegrees, outerDegrees float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.cutOff = cosDeg(innerDegrees)
		l.outerCutOff = cosDeg(outerDegrees)
	}
}

// NewDirectional creates a directional light.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Light: the configured light
func NewDirectional(opts ...LightBuilderOption) Light {
	return newLight(LightTypeDirectional, opts)
}

// NewPoint creates a point light with bulb-like default attenuation.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Light: the configured light
func NewPoint(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   LightTypePoint,
		attenuation: Attenuation{K0: 1.0, K1: 0.09, K2: 0.032},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewSpot creates a spot light.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Light: the configured light
func NewSpot(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   LightTypeSpot,
		attenuation: Attenuation{K0: 1.0, K1: 0.09, K2: 0.032},
		cutOff:      cosDeg(12.5),
		outerCutOff: cosDeg(17.5),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newLight(t LightType, opts []LightBuilderOption) Light {
	l := &lightImpl{lightType: t}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
