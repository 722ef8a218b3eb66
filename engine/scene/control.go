package scene

import (
	"math"

	"github.com/Carmen-Shannon/cow-world/engine/animation"
	"github.com/Carmen-Shannon/cow-world/engine/camera"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// handleInput processes one frame of input: camera cycling and one-shot
// animation triggers from edge-triggered presses, then cow movement and
// camera movement from held keys.
func (s *scene) handleInput() {
	for _, key := range s.in.ConsumePresses() {
		switch glfw.Key(key) {
		case glfw.KeyTab:
			s.NextCamera()
		case glfw.Key1:
			s.requestLayerClip(animation.LayerHead, s.cfg.Scene.HeadUp)
		case glfw.Key2:
			s.requestLayerClip(animation.LayerHead, s.cfg.Scene.HeadDown)
		case glfw.Key3:
			s.requestLayerClip(animation.LayerHead, s.cfg.Scene.HeadLeft)
		case glfw.Key4:
			s.requestLayerClip(animation.LayerHead, s.cfg.Scene.HeadRight)
		case glfw.KeyZ:
			s.requestLayerClip(animation.LayerTail, s.cfg.Scene.TailUp)
		case glfw.KeyX:
			s.requestLayerClip(animation.LayerTail, s.cfg.Scene.TailLeft)
		case glfw.KeyC:
			s.requestLayerClip(animation.LayerTail, s.cfg.Scene.TailRight)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateCameraControls()
	s.moveCow()
	s.updateCameraPositions()
}

// updateCameraControls feeds the active camera this frame's movement flags
// and cursor position. Only the free camera flies; the follow and
// first-person cameras are positioned from the cow but still mouse-look.
func (s *scene) updateCameraControls() {
	cam := s.cameras[s.activeCamera]

	var movement camera.Movement
	if s.activeCamera == cameraFree {
		movement = camera.Movement{
			Forward:     s.keyDown(glfw.KeyW),
			Backward:    s.keyDown(glfw.KeyS),
			StrafeLeft:  s.keyDown(glfw.KeyA),
			StrafeRight: s.keyDown(glfw.KeyD),
			Up:          s.keyDown(glfw.KeyE),
			Down:        s.keyDown(glfw.KeyQ),
			Fast:        s.keyDown(glfw.KeyF),
		}
	}
	cam.SetMovement(movement)

	// Cursor position normalized by the framebuffer size keeps mouse-look
	// sensitivity independent of resolution.
	cursor := s.in.CursorPos()
	width := float32(s.win.Width())
	height := float32(s.win.Height())
	if width > 0 && height > 0 {
		cam.SetMouseState(camera.MouseState{
			Pos: mgl32.Vec2{cursor.X() / width, cursor.Y() / height},
		})
	}
}

// moveCow applies held movement keys to the cow with collision checks and
// switches the primary animation between idle and walk.
//
// With the free or follow camera the arrow keys move the cow on the world
// axes and turn it to face its travel direction. In first-person the cow
// walks along the camera's view direction while the move key is held.
func (s *scene) moveCow() {
	if s.cow == nil {
		return
	}

	moving := false
	speed := s.cfg.Cow.MovementSpeed

	switch s.activeCamera {
	case cameraFree, cameraFollow:
		var delta mgl32.Vec3
		if s.keyDown(glfw.KeyUp) {
			delta = delta.Add(mgl32.Vec3{0, 0, -speed})
		}
		if s.keyDown(glfw.KeyDown) {
			delta = delta.Add(mgl32.Vec3{0, 0, speed})
		}
		if s.keyDown(glfw.KeyLeft) {
			delta = delta.Add(mgl32.Vec3{-speed, 0, 0})
		}
		if s.keyDown(glfw.KeyRight) {
			delta = delta.Add(mgl32.Vec3{speed, 0, 0})
		}

		if delta.Len() > 0 {
			newPos := s.cow.position.Add(delta)
			newPos[1] = s.cfg.Cow.GroundLevel

			if s.collider.CowMoveAllowed(s.cow.worldBoundsAt(newPos)) {
				s.cow.position = newPos
				s.cow.heading = float32(math.Atan2(float64(delta.X()), float64(delta.Z())))
				moving = true
			}
		}

	case cameraPOV:
		if s.keyDown(glfw.KeySpace) {
			forward := s.cameras[cameraPOV].Front().Normalize()
			newPos := s.cow.position.Add(forward.Mul(speed))
			newPos[1] = s.cfg.Cow.GroundLevel

			if s.collider.CowMoveAllowed(s.cow.worldBoundsAt(newPos)) {
				s.cow.position = newPos
				moving = true
			}
		}
	}

	s.cow.moving = moving
	target := s.cow.idle
	if moving && s.cow.walk != nil {
		target = s.cow.walk
	}
	if target != nil {
		// Reassigning the already-playing clip is a no-op, so this is safe
		// to call every frame.
		s.cow.animator.PlayPrimary(target)
	}
}

// updateCameraPositions re-anchors the follow and first-person cameras to
// the cow after it moves.
func (s *scene) updateCameraPositions() {
	if s.cow == nil {
		return
	}

	center := s.cow.center()
	up := mgl32.Vec3{0, 1, 0}

	follow := s.cameras[cameraFollow]
	follow.SetPosition(center.Add(vec3(s.cfg.Camera.FollowOffset)))
	follow.LookAt(center, up)

	pov := s.cameras[cameraPOV]
	pov.SetPosition(center.Add(vec3(s.cfg.Camera.PovEyeOffset)))
}

func (s *scene) keyDown(key glfw.Key) bool {
	return s.in.IsDown(uint32(key))
}
