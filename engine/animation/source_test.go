package animation

import (
	"fmt"

	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeSource is an in-memory Source for tests.
type fakeSource struct {
	root  *model.HierarchyNode
	anims []fakeAnimation
}

type fakeAnimation struct {
	info     model.ClipInfo
	channels []model.AnimationChannel
}

func (s *fakeSource) Hierarchy() *model.HierarchyNode { return s.root }

func (s *fakeSource) AnimationCount() int { return len(s.anims) }

func (s *fakeSource) AnimationInfo(i int) (model.ClipInfo, error) {
	if i < 0 || i >= len(s.anims) {
		return model.ClipInfo{}, fmt.Errorf("animation %d out of range", i)
	}
	return s.anims[i].info, nil
}

func (s *fakeSource) AnimationChannels(i int) ([]model.AnimationChannel, error) {
	if i < 0 || i >= len(s.anims) {
		return nil, fmt.Errorf("animation %d out of range", i)
	}
	return s.anims[i].channels, nil
}

// staticChannel animates a node with one sample per track, pinning it to a
// fixed local transform.
func staticChannel(name string, pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) model.AnimationChannel {
	return model.AnimationChannel{
		NodeName:     name,
		PositionKeys: []model.VectorKeyframe{{Value: pos, Timestamp: 0}},
		RotationKeys: []model.QuaternionKeyframe{{Value: rot, Timestamp: 0}},
		ScaleKeys:    []model.VectorKeyframe{{Value: scale, Timestamp: 0}},
	}
}

func identityChannel(name string) model.AnimationChannel {
	return staticChannel(name, mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func mat4Near(a, b mgl32.Mat4, eps float32) bool {
	for i := 0; i < 16; i++ {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

func vec3Near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}
