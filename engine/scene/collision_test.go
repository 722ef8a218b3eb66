package scene

import (
	"testing"

	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/go-gl/mathgl/mgl32"
)

func testCollider() *Collider {
	c := NewCollider(0.2, 0.05, 0.2, 0.5, 2.0)
	c.AddObstacle(common.NewAABB(mgl32.Vec3{-5, 0, -12}, mgl32.Vec3{5, 8, -8}))
	return c
}

func TestCowMoveBlockedByBuilding(t *testing.T) {
	c := testCollider()

	inside := common.NewAABB(mgl32.Vec3{-1, 0, -10}, mgl32.Vec3{1, 1.5, -9})
	if c.CowMoveAllowed(inside) {
		t.Error("move into building should be blocked")
	}

	clear := common.NewAABB(mgl32.Vec3{-1, 0, 3}, mgl32.Vec3{1, 1.5, 5})
	if !c.CowMoveAllowed(clear) {
		t.Error("move in open field should be allowed")
	}
}

func TestCowMoveMarginExtendsObstacle(t *testing.T) {
	c := testCollider()

	// Box just outside the obstacle but inside its 0.2 margin.
	grazing := common.NewAABB(mgl32.Vec3{-1, 0, -7.95}, mgl32.Vec3{1, 1.5, -7.2})
	if c.CowMoveAllowed(grazing) {
		t.Error("move within the margin should be blocked")
	}
}

func TestCameraMinHeight(t *testing.T) {
	c := testCollider()

	if c.CameraMoveAllowed(mgl32.Vec3{20, 0.4, 20}, mgl32.Vec3{0, 0, 0}) {
		t.Error("camera below min height should be blocked")
	}
	if !c.CameraMoveAllowed(mgl32.Vec3{20, 0.6, 20}, mgl32.Vec3{0, 0, 0}) {
		t.Error("camera above min height in the open should be allowed")
	}
}

func TestCameraMinCowDistance(t *testing.T) {
	c := testCollider()

	if c.CameraMoveAllowed(mgl32.Vec3{1, 1, 10}, mgl32.Vec3{0, 1, 10}) {
		t.Error("camera within the cow's personal space should be blocked")
	}
	if !c.CameraMoveAllowed(mgl32.Vec3{3, 1, 10}, mgl32.Vec3{0, 1, 10}) {
		t.Error("camera outside the cow's personal space should be allowed")
	}
}

func TestCameraBlockedInsideBuilding(t *testing.T) {
	c := testCollider()

	if c.CameraMoveAllowed(mgl32.Vec3{0, 2, -10}, mgl32.Vec3{30, 0, 30}) {
		t.Error("camera inside building should be blocked")
	}
	// Just outside the building but within radius + margin.
	if c.CameraMoveAllowed(mgl32.Vec3{0, 2, -7.8}, mgl32.Vec3{30, 0, 30}) {
		t.Error("camera within clearance of building should be blocked")
	}
	if !c.CameraMoveAllowed(mgl32.Vec3{0, 2, -7}, mgl32.Vec3{30, 0, 30}) {
		t.Error("camera clear of building should be allowed")
	}
}
