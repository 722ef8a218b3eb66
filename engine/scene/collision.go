package scene

import (
	"sync"

	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Collider holds the world-space obstacle boxes and answers the two movement
// questions the scene asks each frame: may the cow occupy a candidate
// bounding box, and may the camera occupy a candidate position.
type Collider struct {
	mu        sync.Mutex
	obstacles []common.AABB

	cowMargin      float32
	cameraMargin   float32
	cameraRadius   float32
	minHeight      float32
	minCowDistance float32
}

// NewCollider creates a Collider with the given tuning.
//
// Parameters:
//   - cowMargin: extra clearance around obstacles for cow movement
//   - cameraMargin: extra clearance around obstacles for camera movement
//   - cameraRadius: the camera's collision sphere radius
//   - minHeight: the lowest Y the camera may reach
//   - minCowDistance: the closest the camera may approach the cow
//
// Returns:
//   - *Collider: the collider
func NewCollider(cowMargin, cameraMargin, cameraRadius, minHeight, minCowDistance float32) *Collider {
	return &Collider{
		cowMargin:      cowMargin,
		cameraMargin:   cameraMargin,
		cameraRadius:   cameraRadius,
		minHeight:      minHeight,
		minCowDistance: minCowDistance,
	}
}

// AddObstacle registers a world-space obstacle box.
//
// Parameters:
//   - box: the obstacle bounds
func (c *Collider) AddObstacle(box common.AABB) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.obstacles = append(c.obstacles, box)
}

// CowMoveAllowed reports whether the cow's candidate bounding box clears
// every obstacle with the configured margin.
//
// Parameters:
//   - bounds: the cow's world-space bounds at the candidate position
//
// Returns:
//   - bool: true when the move is allowed
func (c *Collider) CowMoveAllowed(bounds common.AABB) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, box := range c.obstacles {
		if bounds.Intersects(box.Expanded(c.cowMargin)) {
			return false
		}
	}
	return true
}

// CameraMoveAllowed reports whether the camera may occupy a candidate
// position: above the minimum height, outside the cow's personal space, and
// clear of every obstacle by the collision radius plus margin.
//
// Parameters:
//   - pos: the candidate camera position
//   - cowPos: the cow's current position
//
// Returns:
//   - bool: true when the move is allowed
func (c *Collider) CameraMoveAllowed(pos, cowPos mgl32.Vec3) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pos.Y() < c.minHeight {
		return false
	}
	if pos.Sub(cowPos).Len() < c.minCowDistance {
		return false
	}
	clearance := c.cameraRadius + c.cameraMargin
	for _, box := range c.obstacles {
		if box.ContainsPoint(pos, clearance) {
			return false
		}
	}
	return true
}
