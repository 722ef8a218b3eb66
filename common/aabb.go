package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box used for scene collision tests.
// Center and Radius are derived values kept alongside Min/Max so sphere
// pre-checks don't recompute them every frame.
type AABB struct {
	Min    mgl32.Vec3
	Max    mgl32.Vec3
	Center mgl32.Vec3
	Radius float32
}

// NewAABB constructs an AABB from min/max corners and fills in the derived
// center point and bounding-sphere radius.
//
// Parameters:
//   - min: minimum corner
//   - max: maximum corner
//
// Returns:
//   - AABB: the constructed box
func NewAABB(min, max mgl32.Vec3) AABB {
	center := min.Add(max).Mul(0.5)
	return AABB{
		Min:    min,
		Max:    max,
		Center: center,
		Radius: max.Sub(center).Len(),
	}
}

// Transformed returns the AABB of this box after applying a model matrix.
// All eight corners are transformed and re-enclosed, so the result stays
// axis-aligned even under rotation.
//
// Parameters:
//   - m: the model matrix to apply
//
// Returns:
//   - AABB: the transformed, re-enclosed box
func (b AABB) Transformed(m mgl32.Mat4) AABB {
	corners := [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}

	first := mgl32.TransformCoordinate(corners[0], m)
	min, max := first, first
	for _, c := range corners[1:] {
		p := mgl32.TransformCoordinate(c, m)
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return NewAABB(min, max)
}

// Expanded returns a copy of the box grown by margin on every side.
//
// Parameters:
//   - margin: distance to grow along each axis (negative shrinks)
//
// Returns:
//   - AABB: the expanded box
func (b AABB) Expanded(margin float32) AABB {
	d := mgl32.Vec3{margin, margin, margin}
	return NewAABB(b.Min.Sub(d), b.Max.Add(d))
}

// Intersects reports whether two boxes overlap on all three axes.
//
// Parameters:
//   - other: the box to test against
//
// Returns:
//   - bool: true if the boxes overlap
func (b AABB) Intersects(other AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < other.Min[i] || b.Min[i] > other.Max[i] {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether a point lies inside the box, with an optional
// margin applied to every face. Used for camera-vs-world collision where the
// camera is treated as a small sphere.
//
// Parameters:
//   - p: the point to test
//   - margin: extra distance added to every face
//
// Returns:
//   - bool: true if the point is inside the expanded box
func (b AABB) ContainsPoint(p mgl32.Vec3, margin float32) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-margin || p[i] > b.Max[i]+margin {
			return false
		}
	}
	return true
}
