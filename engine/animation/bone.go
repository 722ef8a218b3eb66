package animation

import (
	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Bone holds the keyframe tracks animating one skeletal joint and produces
// its interpolated local transform for an arbitrary query time. Bones are
// built once at clip load and read-only afterwards.
type Bone struct {
	// Name is the joint's name, matching a hierarchy node.
	Name string

	// ID is the joint's stable index into the final matrix array.
	ID int

	positionKeys []model.VectorKeyframe
	rotationKeys []model.QuaternionKeyframe
	scaleKeys    []model.VectorKeyframe
}

// NewBone constructs a bone from one animation channel.
//
// Parameters:
//   - name: the joint's name
//   - id: the joint's matrix-array index from the shared bone table
//   - channel: the keyframe tracks for this joint
//
// Returns:
//   - *Bone: the constructed bone
func NewBone(name string, id int, channel model.AnimationChannel) *Bone {
	return &Bone{
		Name:         name,
		ID:           id,
		positionKeys: channel.PositionKeys,
		rotationKeys: channel.RotationKeys,
		scaleKeys:    channel.ScaleKeys,
	}
}

// LocalTransform interpolates the three tracks at time t (in ticks) and
// composes them as translation * rotation * scale. Defined for every t given
// at least one sample per track.
//
// Parameters:
//   - t: the query time in animation ticks
//
// Returns:
//   - mgl32.Mat4: the joint's local transform at t
func (b *Bone) LocalTransform(t float32) mgl32.Mat4 {
	p := sampleVec3(b.positionKeys, t)
	r := sampleQuat(b.rotationKeys, t)
	s := sampleVec3(b.scaleKeys, t)

	m := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	m = m.Mul4(r.Mat4())
	return m.Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}
