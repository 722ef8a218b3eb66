package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement holds the keyboard movement flags the input layer sets each frame.
type Movement struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	Up          bool
	Down        bool
	Fast        bool
}

// MouseState holds the cursor position used for mouse-look.
type MouseState struct {
	// Pos is the cursor position in normalized coordinates.
	Pos mgl32.Vec2

	// ButtonPressed reports whether the look button is held.
	ButtonPressed bool
}

// MoveAllowedFunc decides whether the camera may occupy a candidate
// position. The scene supplies one backed by its collision checks.
type MoveAllowedFunc func(pos mgl32.Vec3) bool

type cameraImpl struct {
	mu sync.Mutex

	position    mgl32.Vec3
	orientation mgl32.Quat
	up          mgl32.Vec3
	projection  mgl32.Mat4

	velocity    mgl32.Vec3
	oldMousePos mgl32.Vec2
	mouseState  MouseState
	movement    Movement

	mouseSensitivity float32
	acceleration     float32
	damping          float32
	maxSpeed         float32
	fastCoef         float32
}

// Camera is a quaternion free-fly camera with an acceleration/damping
// movement model. The scene also drives it directly (SetPosition + LookAt)
// for follow and first-person modes.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition places the camera without changing its orientation.
	//
	// Parameters:
	//   - pos: the new world-space position
	SetPosition(pos mgl32.Vec3)

	// Front returns the normalized view direction.
	//
	// Returns:
	//   - mgl32.Vec3: the forward vector
	Front() mgl32.Vec3

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// LookAt re-orients the camera towards a target.
	//
	// Parameters:
	//   - target: the point to look at
	//   - up: the world up vector
	LookAt(target, up mgl32.Vec3)

	// SetPerspective rebuilds the projection matrix. Call when the window
	// aspect ratio changes.
	//
	// Parameters:
	//   - fovDegrees: vertical field of view in degrees
	//   - aspect: width / height
	//   - near: near clip plane distance
	//   - far: far clip plane distance
	SetPerspective(fovDegrees, aspect, near, far float32)

	// SetMouseState hands the camera the current cursor state.
	//
	// Parameters:
	//   - state: the cursor state for this frame
	SetMouseState(state MouseState)

	// SetMovement hands the camera the current keyboard movement flags.
	//
	// Parameters:
	//   - m: the movement flags for this frame
	SetMovement(m Movement)

	// Update advances orientation and position without collision checks.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// UpdateWithCollision advances like Update but tests the candidate
	// position first. A rejected move keeps the old position and damps the
	// velocity hard so the camera doesn't jitter against the obstacle.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	//   - allowed: position test; nil behaves like Update
	UpdateWithCollision(dt float32, allowed MoveAllowedFunc)
}

var _ Camera = &cameraImpl{}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(pos mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection.Mul4(c.viewMatrix())
}

func (c *cameraImpl) LookAt(target, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = mgl32.QuatLookAtV(c.position, target, up)
	c.up = up
}

func (c *cameraImpl) SetPerspective(fovDegrees, aspect, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}

func (c *cameraImpl) SetMouseState(state MouseState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mouseState = state
}

func (c *cameraImpl) SetMovement(m Movement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movement = m
}

func (c *cameraImpl) Update(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.applyMouseLook()
	c.updateVelocity(dt)
	c.position = c.position.Add(c.velocity.Mul(dt))
}

func (c *cameraImpl) UpdateWithCollision(dt float32, allowed MoveAllowedFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.applyMouseLook()
	c.updateVelocity(dt)

	newPos := c.position.Add(c.velocity.Mul(dt))
	if allowed == nil || allowed(newPos) {
		c.position = newPos
		return
	}
	// Hard damping on rejection keeps the camera from jittering against
	// the obstacle.
	c.velocity = c.velocity.Mul(0.1)
}

// --- internal helpers, caller holds the mutex ---

func (c *cameraImpl) viewMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
	return c.orientation.Mat4().Mul4(translation)
}

func (c *cameraImpl) front() mgl32.Vec3 {
	v := c.orientation.Mat4()
	return mgl32.Vec3{-v.At(2, 0), -v.At(2, 1), -v.At(2, 2)}.Normalize()
}

// applyMouseLook rotates the orientation by the cursor delta since the last
// frame, then rebuilds it against the world up so the horizon stays level.
func (c *cameraImpl) applyMouseLook() {
	delta := c.mouseState.Pos.Sub(c.oldMousePos)
	c.oldMousePos = c.mouseState.Pos

	if delta.X() != 0 || delta.Y() != 0 {
		deltaQuat := mgl32.AnglesToQuat(
			c.mouseSensitivity*delta.Y(),
			c.mouseSensitivity*delta.X(),
			0,
			mgl32.XYZ,
		)
		c.orientation = deltaQuat.Mul(c.orientation).Normalize()
	}

	// Re-derive the orientation from the current forward direction and the
	// world up to cancel accumulated roll.
	view := c.viewMatrix()
	backward := mgl32.Vec3{view.At(2, 0), view.At(2, 1), view.At(2, 2)}
	c.orientation = mgl32.QuatLookAtV(c.position, c.position.Sub(backward), c.up)
}

// updateVelocity integrates the movement flags: accelerate towards the input
// direction, damp towards zero without input, clamp to the speed limit.
func (c *cameraImpl) updateVelocity(dt float32) {
	accel := c.inputAcceleration()

	if accel == (mgl32.Vec3{}) {
		f := dt * c.damping
		if f > 1 {
			f = 1
		}
		c.velocity = c.velocity.Sub(c.velocity.Mul(f))
	} else {
		c.velocity = accel.Mul(c.acceleration * dt)
	}

	if c.velocity.Len() >= c.maxSpeed {
		c.velocity = c.velocity.Normalize().Mul(c.maxSpeed)
	}
}

func (c *cameraImpl) inputAcceleration() mgl32.Vec3 {
	v := c.orientation.Mat4()
	right := mgl32.Vec3{v.At(0, 0), v.At(0, 1), v.At(0, 2)}
	forward := mgl32.Vec3{-v.At(2, 0), -v.At(2, 1), -v.At(2, 2)}
	up := right.Cross(forward)

	var accel mgl32.Vec3
	if c.movement.Forward {
		accel = accel.Add(forward)
	}
	if c.movement.Backward {
		accel = accel.Sub(forward)
	}
	if c.movement.StrafeRight {
		accel = accel.Add(right)
	}
	if c.movement.StrafeLeft {
		accel = accel.Sub(right)
	}
	if c.movement.Up {
		accel = accel.Add(up)
	}
	if c.movement.Down {
		accel = accel.Sub(up)
	}
	if c.movement.Fast {
		accel = accel.Mul(c.fastCoef)
	}
	return accel
}
