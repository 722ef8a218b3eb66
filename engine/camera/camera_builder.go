package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a Camera during
// construction.
type CameraBuilderOption func(*cameraImpl)

// WithPerspective is an option builder that sets the projection parameters.
//
// Parameters:
//   - fovDegrees: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width / height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the projection option
func WithPerspective(fovDegrees, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
	}
}

// WithPlacement is an option builder that sets the starting position and
// look target.
//
// Parameters:
//   - pos: the starting position
//   - target: the initial look target
//   - up: the world up vector
//
// Returns:
//   - CameraBuilderOption: a function that applies the placement option
func WithPlacement(pos, target, up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = pos
		c.up = up
		c.orientation = mgl32.QuatLookAtV(pos, target, up)
	}
}

// WithTuning is an option builder that sets the movement model constants.
//
// Parameters:
//   - acceleration: acceleration factor applied to input direction
//   - damping: slowdown factor when no input is held
//   - maxSpeed: speed limit
//   - fastCoef: acceleration multiplier while the fast key is held
//   - mouseSensitivity: cursor-delta to rotation factor
//
// Returns:
//   - CameraBuilderOption: a function that applies the tuning option
func WithTuning(acceleration, damping, maxSpeed, fastCoef, mouseSensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.acceleration = acceleration
		c.damping = damping
		c.maxSpeed = maxSpeed
		c.fastCoef = fastCoef
		c.mouseSensitivity = mouseSensitivity
	}
}

// NewCamera creates a new Camera with the provided options applied.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Camera: the configured camera
func NewCamera(opts ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position:    mgl32.Vec3{0, 0, 5},
		up:          mgl32.Vec3{0, 1, 0},
		orientation: mgl32.QuatIdent(),
		projection:  mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 1000),

		mouseSensitivity: 4.0,
		acceleration:     150.0,
		damping:          5.0,
		maxSpeed:         10.0,
		fastCoef:         3.0,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
