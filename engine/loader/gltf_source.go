package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/cow-world/engine/animation"
	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfSource adapts a parsed glTF document to the animation.Source interface.
// glTF timestamps are seconds; the source rescales them to ticks at the
// configured rate and reports a tick rate of zero, leaving the substitution
// of the playback default to the animation core. Metadata reads use accessor
// bounds only; keyframe payloads decode lazily per clip load.
type gltfSource struct {
	doc      *gltf.Document
	tickRate float32
	root     *model.HierarchyNode
}

var _ animation.Source = &gltfSource{}

func newGltfSource(doc *gltf.Document, tickRate float32) *gltfSource {
	return &gltfSource{
		doc:      doc,
		tickRate: tickRate,
		root:     buildHierarchy(doc),
	}
}

func (s *gltfSource) Hierarchy() *model.HierarchyNode {
	return s.root
}

func (s *gltfSource) AnimationCount() int {
	return len(s.doc.Animations)
}

func (s *gltfSource) AnimationInfo(i int) (model.ClipInfo, error) {
	if i < 0 || i >= len(s.doc.Animations) {
		return model.ClipInfo{}, fmt.Errorf("animation %d out of range [0,%d)", i, len(s.doc.Animations))
	}
	anim := s.doc.Animations[i]

	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", i)
	}

	end, err := s.animationEndSeconds(anim)
	if err != nil {
		return model.ClipInfo{}, fmt.Errorf("animation %q: %w", name, err)
	}

	return model.ClipInfo{
		Name:           name,
		Duration:       end * s.tickRate,
		TicksPerSecond: 0,
	}, nil
}

func (s *gltfSource) AnimationChannels(i int) ([]model.AnimationChannel, error) {
	if i < 0 || i >= len(s.doc.Animations) {
		return nil, fmt.Errorf("animation %d out of range [0,%d)", i, len(s.doc.Animations))
	}
	anim := s.doc.Animations[i]

	// Group the flat glTF channel list into one channel per target node,
	// preserving first-appearance order.
	byNode := make(map[uint32]*model.AnimationChannel)
	var order []uint32

	for _, ch := range anim.Channels {
		if ch.Sampler == nil || ch.Target.Node == nil {
			continue
		}
		nodeIdx := *ch.Target.Node
		sampler := anim.Samplers[*ch.Sampler]

		out, ok := byNode[nodeIdx]
		if !ok {
			out = &model.AnimationChannel{NodeName: nodeName(s.doc, nodeIdx)}
			byNode[nodeIdx] = out
			order = append(order, nodeIdx)
		}

		times, err := s.readTimes(sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", out.NodeName, err)
		}

		switch ch.Target.Path {
		case gltf.TRSTranslation:
			values, err := s.readVec3(sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("channel %q translation: %w", out.NodeName, err)
			}
			out.PositionKeys = vectorKeys(values, times, s.tickRate)
		case gltf.TRSRotation:
			values, err := s.readQuat(sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("channel %q rotation: %w", out.NodeName, err)
			}
			out.RotationKeys = quaternionKeys(values, times, s.tickRate)
		case gltf.TRSScale:
			values, err := s.readVec3(sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("channel %q scale: %w", out.NodeName, err)
			}
			out.ScaleKeys = vectorKeys(values, times, s.tickRate)
		}
	}

	channels := make([]model.AnimationChannel, 0, len(order))
	for _, nodeIdx := range order {
		ch := byNode[nodeIdx]
		fillMissingTracks(ch, s.doc.Nodes[nodeIdx])
		channels = append(channels, *ch)
	}
	return channels, nil
}

// animationEndSeconds finds the latest input timestamp across the
// animation's samplers, preferring accessor bounds over payload decode.
func (s *gltfSource) animationEndSeconds(anim *gltf.Animation) (float32, error) {
	var end float32
	for _, sampler := range anim.Samplers {
		if sampler.Input == nil {
			continue
		}
		acc := s.doc.Accessors[*sampler.Input]
		if len(acc.Max) > 0 {
			if acc.Max[0] > end {
				end = acc.Max[0]
			}
			continue
		}
		times, err := s.readTimes(sampler.Input)
		if err != nil {
			return 0, err
		}
		if len(times) > 0 && times[len(times)-1] > end {
			end = times[len(times)-1]
		}
	}
	return end, nil
}

func (s *gltfSource) readTimes(accIdx *uint32) ([]float32, error) {
	if accIdx == nil {
		return nil, fmt.Errorf("sampler has no input accessor")
	}
	data, err := modeler.ReadAccessor(s.doc, s.doc.Accessors[*accIdx], nil)
	if err != nil {
		return nil, err
	}
	times, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected input accessor type %T", data)
	}
	return times, nil
}

func (s *gltfSource) readVec3(accIdx *uint32) ([][3]float32, error) {
	if accIdx == nil {
		return nil, fmt.Errorf("sampler has no output accessor")
	}
	data, err := modeler.ReadAccessor(s.doc, s.doc.Accessors[*accIdx], nil)
	if err != nil {
		return nil, err
	}
	values, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected output accessor type %T", data)
	}
	return values, nil
}

func (s *gltfSource) readQuat(accIdx *uint32) ([][4]float32, error) {
	if accIdx == nil {
		return nil, fmt.Errorf("sampler has no output accessor")
	}
	data, err := modeler.ReadAccessor(s.doc, s.doc.Accessors[*accIdx], nil)
	if err != nil {
		return nil, err
	}
	values, ok := data.([][4]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected output accessor type %T", data)
	}
	return values, nil
}

func vectorKeys(values [][3]float32, times []float32, tickRate float32) []model.VectorKeyframe {
	n := len(values)
	if len(times) < n {
		n = len(times)
	}
	keys := make([]model.VectorKeyframe, n)
	for i := 0; i < n; i++ {
		keys[i] = model.VectorKeyframe{
			Value:     mgl32.Vec3{values[i][0], values[i][1], values[i][2]},
			Timestamp: times[i] * tickRate,
		}
	}
	return keys
}

func quaternionKeys(values [][4]float32, times []float32, tickRate float32) []model.QuaternionKeyframe {
	n := len(values)
	if len(times) < n {
		n = len(times)
	}
	keys := make([]model.QuaternionKeyframe, n)
	for i := 0; i < n; i++ {
		keys[i] = model.QuaternionKeyframe{
			Value:     quatFromGltf(values[i]),
			Timestamp: times[i] * tickRate,
		}
	}
	return keys
}

// fillMissingTracks pins any track the asset left out to the node's bind
// pose, so every bone channel has at least one sample per track. The
// OrDefault accessors supply the glTF defaults for fields the node omits.
func fillMissingTracks(ch *model.AnimationChannel, n *gltf.Node) {
	if len(ch.PositionKeys) == 0 {
		translation := n.TranslationOrDefault()
		ch.PositionKeys = []model.VectorKeyframe{{
			Value: mgl32.Vec3{translation[0], translation[1], translation[2]},
		}}
	}
	if len(ch.RotationKeys) == 0 {
		ch.RotationKeys = []model.QuaternionKeyframe{{
			Value: quatFromGltf(n.RotationOrDefault()),
		}}
	}
	if len(ch.ScaleKeys) == 0 {
		scale := n.ScaleOrDefault()
		ch.ScaleKeys = []model.VectorKeyframe{{
			Value: mgl32.Vec3{scale[0], scale[1], scale[2]},
		}}
	}
}
