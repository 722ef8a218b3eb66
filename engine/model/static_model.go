package model

import (
	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/go-gl/mathgl/mgl32"
)

// StaticModel is a non-animated scenery model. It carries its local-space
// bounds so the scene can run collision tests against placed instances.
type StaticModel struct {
	// Name is the model's identifier.
	Name string

	// Meshes are the model's meshes.
	Meshes []Mesh

	// Bounds is the model's bounding box in local space.
	Bounds common.AABB
}

// WorldBounds returns the model's bounding box transformed into world space.
//
// Parameters:
//   - modelMatrix: the instance's model matrix
//
// Returns:
//   - common.AABB: the world-space box
func (m *StaticModel) WorldBounds(modelMatrix mgl32.Mat4) common.AABB {
	return m.Bounds.Transformed(modelMatrix)
}
