package animation

import (
	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// blendFactor returns the unclamped interpolation factor of t between two
// timestamps. Out-of-range t extrapolates linearly.
func blendFactor(t, start, end float32) float32 {
	return (t - start) / (end - start)
}

// vectorBracket locates the lower index of the keyframe pair bracketing time
// t, scanning forward from 0 so an arbitrary t (including one that just
// wrapped back to 0) resolves correctly. When t is at or past the last
// timestamp the final pair is used. Channel lengths are small, so the linear
// scan beats bookkeeping a cached cursor.
func vectorBracket(keys []model.VectorKeyframe, t float32) int {
	for i := 0; i < len(keys)-1; i++ {
		if t < keys[i+1].Timestamp {
			return i
		}
	}
	return len(keys) - 2
}

func quaternionBracket(keys []model.QuaternionKeyframe, t float32) int {
	for i := 0; i < len(keys)-1; i++ {
		if t < keys[i+1].Timestamp {
			return i
		}
	}
	return len(keys) - 2
}

// sampleVec3 interpolates a translation or scale track at time t. A track
// with a single sample returns that sample for every t.
func sampleVec3(keys []model.VectorKeyframe, t float32) mgl32.Vec3 {
	if len(keys) == 1 {
		return keys[0].Value
	}
	i := vectorBracket(keys, t)
	f := blendFactor(t, keys[i].Timestamp, keys[i+1].Timestamp)
	a, b := keys[i].Value, keys[i+1].Value
	return a.Add(b.Sub(a).Mul(f))
}

// sampleQuat interpolates a rotation track at time t. The slerp result is
// re-normalized to absorb floating point drift.
func sampleQuat(keys []model.QuaternionKeyframe, t float32) mgl32.Quat {
	if len(keys) == 1 {
		return keys[0].Value.Normalize()
	}
	i := quaternionBracket(keys, t)
	f := blendFactor(t, keys[i].Timestamp, keys[i+1].Timestamp)
	return mgl32.QuatSlerp(keys[i].Value, keys[i+1].Value, f).Normalize()
}
