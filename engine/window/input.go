package window

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Input tracks keyboard and cursor state fed by window callbacks. Held keys
// are level-triggered; presses are edge-triggered and consumed once, for
// toggle actions like camera switching and one-shot animations.
type Input struct {
	mu      sync.Mutex
	down    map[uint32]bool
	pressed []uint32
	cursor  mgl32.Vec2
}

// NewInput creates an empty input tracker.
//
// Returns:
//   - *Input: the tracker
func NewInput() *Input {
	return &Input{down: make(map[uint32]bool)}
}

// Attach wires the tracker to a window's input callbacks.
//
// Parameters:
//   - w: the window to receive events from
func (in *Input) Attach(w Window) {
	w.SetKeyDownCallback(in.KeyDown)
	w.SetKeyUpCallback(in.KeyUp)
	w.SetMouseMoveCallback(in.MouseMove)
}

// KeyDown records a key press.
//
// Parameters:
//   - keyCode: the GLFW key code
func (in *Input) KeyDown(keyCode uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.down[keyCode] {
		in.pressed = append(in.pressed, keyCode)
	}
	in.down[keyCode] = true
}

// KeyUp records a key release.
//
// Parameters:
//   - keyCode: the GLFW key code
func (in *Input) KeyUp(keyCode uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.down, keyCode)
}

// MouseMove records the cursor position.
//
// Parameters:
//   - x: cursor x in pixels
//   - y: cursor y in pixels
func (in *Input) MouseMove(x, y float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.cursor = mgl32.Vec2{x, y}
}

// IsDown reports whether a key is currently held.
//
// Parameters:
//   - keyCode: the GLFW key code
//
// Returns:
//   - bool: true while the key is held
func (in *Input) IsDown(keyCode uint32) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.down[keyCode]
}

// ConsumePresses returns the keys newly pressed since the last call and
// clears the press list.
//
// Returns:
//   - []uint32: key codes in press order
func (in *Input) ConsumePresses() []uint32 {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.pressed
	in.pressed = nil
	return out
}

// CursorPos returns the last recorded cursor position.
//
// Returns:
//   - mgl32.Vec2: cursor position in pixels
func (in *Input) CursorPos() mgl32.Vec2 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cursor
}
