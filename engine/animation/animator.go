package animation

import (
	"math"

	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// LayerKey identifies a named secondary playback layer.
type LayerKey string

const (
	// LayerHead is the secondary layer allowed to write head-classified bones.
	LayerHead LayerKey = "head"

	// LayerTail is the secondary layer allowed to write tail-classified bones.
	LayerTail LayerKey = "tail"
)

// defaultMaxBones is the initial matrix allocation before a clip is active.
const defaultMaxBones = 100

// Animator advances layered animation playback and produces the flat bone
// matrix array the renderer uploads for GPU skinning. One primary layer is
// always treated as looping; named secondary layers run looping or one-shot
// clips over the bones their class owns.
//
// The animator holds non-owning references to clips: the caller keeps each
// clip alive while it may be active on any layer. All methods must be called
// from the single update thread; the animator does no locking.
type Animator interface {
	// PlayPrimary assigns a clip to the primary layer. Assigning the clip
	// already playing is a no-op, so per-frame "ensure playing" calls don't
	// restart the animation. Assigning a different clip resets the layer
	// time to 0 and resizes the output array to the clip's bone count.
	// A nil clip stops the layer.
	//
	// Parameters:
	//   - clip: the clip to play, or nil to stop
	PlayPrimary(clip *Clip)

	// PrimaryClip returns the clip active on the primary layer.
	//
	// Returns:
	//   - *Clip: the active clip, or nil when the layer is idle
	PrimaryClip() *Clip

	// PlaySecondary assigns a clip to a named secondary layer. Unlike the
	// primary layer there is no same-clip de-duplication: every call resets
	// the layer time and reactivates it, so repeated one-shot triggers
	// replay from the start. A nil clip stops the layer.
	//
	// Parameters:
	//   - key: the layer to assign
	//   - clip: the clip to play, or nil to stop
	//   - looping: true to loop, false for a one-shot that deactivates on
	//     completion
	PlaySecondary(key LayerKey, clip *Clip, looping bool)

	// SecondaryActive reports whether a named layer is currently playing.
	//
	// Parameters:
	//   - key: the layer to query
	//
	// Returns:
	//   - bool: true if the layer has an active clip
	SecondaryActive(key LayerKey) bool

	// StopLayer deactivates a secondary layer and clears its clip reference.
	//
	// Parameters:
	//   - key: the layer to stop
	StopLayer(key LayerKey)

	// SetBoneOverride registers a manual transform pre-multiplied onto the
	// named bone's local transform during the primary-layer walk. IDs are
	// not validated; an override for an unknown ID is never consulted.
	//
	// Parameters:
	//   - boneID: the bone's matrix-array index
	//   - transform: the override transform
	SetBoneOverride(boneID int, transform mgl32.Mat4)

	// ClearBoneOverride removes a manual override.
	//
	// Parameters:
	//   - boneID: the bone's matrix-array index
	ClearBoneOverride(boneID int)

	// UpdateAnimation advances every active layer by dt and recomputes the
	// final bone matrix array. It never fails: it only operates on clips
	// that already loaded successfully.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous tick
	UpdateAnimation(dt float32)

	// FinalBoneMatrices returns the flat matrix array, indexed by bone ID,
	// recomputed by the last UpdateAnimation call.
	//
	// Returns:
	//   - []mgl32.Mat4: the matrix array; callers must not retain it across
	//     ticks
	FinalBoneMatrices() []mgl32.Mat4
}

type layerState struct {
	clip        *Clip
	currentTime float32
	active      bool
	looping     bool
}

func (l *layerState) assign(clip *Clip, looping bool) {
	l.clip = clip
	l.currentTime = 0
	l.active = clip != nil
	l.looping = looping
}

func (l *layerState) stop() {
	l.clip = nil
	l.currentTime = 0
	l.active = false
}

// advance moves the layer's clock by dt seconds. A looping layer wraps via
// modulo; a one-shot deactivates once its clock reaches the clip duration.
func (l *layerState) advance(dt float32) {
	if !l.active || l.clip == nil {
		return
	}
	l.currentTime += l.clip.TicksPerSecond * dt
	if l.looping {
		l.currentTime = float32(math.Mod(float64(l.currentTime), float64(l.clip.Duration)))
		return
	}
	if l.currentTime >= l.clip.Duration {
		l.stop()
	}
}

type animator struct {
	classifier *Classifier

	primary    layerState
	secondary  map[LayerKey]*layerState
	layerOrder []LayerKey

	finalBoneMatrices []mgl32.Mat4
	scratch           []mgl32.Mat4
	overrides         map[int]mgl32.Mat4
}

var _ Animator = &animator{}

// AnimatorBuilderOption is a functional option for configuring an Animator
// during construction.
type AnimatorBuilderOption func(*animator)

// WithClassifier is an option builder that sets the bone classifier used for
// secondary-layer writes.
//
// Parameters:
//   - c: the classifier to use
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the classifier option
func WithClassifier(c *Classifier) AnimatorBuilderOption {
	return func(a *animator) {
		a.classifier = c
	}
}

// WithMaxBones is an option builder that sets the initial matrix allocation
// used before a primary clip establishes the real bone count.
//
// Parameters:
//   - maxBones: the number of identity matrices to pre-allocate
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the allocation option
func WithMaxBones(maxBones int) AnimatorBuilderOption {
	return func(a *animator) {
		a.finalBoneMatrices = identityMatrices(maxBones)
	}
}

// NewAnimator creates a new Animator with the provided options applied.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Animator: the configured animator
func NewAnimator(opts ...AnimatorBuilderOption) Animator {
	a := &animator{
		classifier:        NewClassifier(nil, nil),
		secondary:         make(map[LayerKey]*layerState),
		finalBoneMatrices: identityMatrices(defaultMaxBones),
		overrides:         make(map[int]mgl32.Mat4),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func identityMatrices(n int) []mgl32.Mat4 {
	out := make([]mgl32.Mat4, n)
	for i := range out {
		out[i] = mgl32.Ident4()
	}
	return out
}

func (a *animator) PlayPrimary(clip *Clip) {
	if clip == nil {
		a.primary.stop()
		return
	}
	if a.primary.active && a.primary.clip == clip {
		return
	}
	a.primary.assign(clip, true)
	a.finalBoneMatrices = identityMatrices(clip.BoneCount())
}

func (a *animator) PrimaryClip() *Clip {
	return a.primary.clip
}

func (a *animator) PlaySecondary(key LayerKey, clip *Clip, looping bool) {
	layer, ok := a.secondary[key]
	if !ok {
		layer = &layerState{}
		a.secondary[key] = layer
		a.layerOrder = append(a.layerOrder, key)
	}
	if clip == nil {
		layer.stop()
		return
	}
	layer.assign(clip, looping)
}

func (a *animator) SecondaryActive(key LayerKey) bool {
	layer, ok := a.secondary[key]
	return ok && layer.active
}

func (a *animator) StopLayer(key LayerKey) {
	if layer, ok := a.secondary[key]; ok {
		layer.stop()
	}
}

func (a *animator) SetBoneOverride(boneID int, transform mgl32.Mat4) {
	a.overrides[boneID] = transform
}

func (a *animator) ClearBoneOverride(boneID int) {
	delete(a.overrides, boneID)
}

func (a *animator) UpdateAnimation(dt float32) {
	a.primary.advance(dt)
	for _, key := range a.layerOrder {
		a.secondary[key].advance(dt)
	}

	for i := range a.finalBoneMatrices {
		a.finalBoneMatrices[i] = mgl32.Ident4()
	}

	if a.primary.active && a.primary.clip != nil {
		a.walk(a.primary.clip.Root(), mgl32.Ident4(), a.primary.clip, a.primary.currentTime, a.finalBoneMatrices, true)
	}

	// Each secondary layer recomputes a full walk into the scratch array,
	// then writes back only the bone IDs its class owns. Layers run in the
	// order they were first assigned, so a classification collision resolves
	// deterministically.
	for _, key := range a.layerOrder {
		layer := a.secondary[key]
		if !layer.active || layer.clip == nil {
			continue
		}
		a.applySecondary(key, layer)
	}
}

func (a *animator) FinalBoneMatrices() []mgl32.Mat4 {
	return a.finalBoneMatrices
}

func (a *animator) applySecondary(key LayerKey, layer *layerState) {
	if cap(a.scratch) < len(a.finalBoneMatrices) {
		a.scratch = make([]mgl32.Mat4, len(a.finalBoneMatrices))
	}
	a.scratch = a.scratch[:len(a.finalBoneMatrices)]
	for i := range a.scratch {
		a.scratch[i] = mgl32.Ident4()
	}

	a.walk(layer.clip.Root(), mgl32.Ident4(), layer.clip, layer.currentTime, a.scratch, false)

	class := classForLayer(key)
	for name, info := range layer.clip.BoneInfos() {
		if a.classifier.Classify(name) != class {
			continue
		}
		if info.ID < 0 || info.ID >= len(a.finalBoneMatrices) {
			continue
		}
		a.finalBoneMatrices[info.ID] = a.scratch[info.ID]
	}
}

// walk accumulates transforms down the hierarchy. Nodes the clip does not
// animate keep their static bind transform so non-animated structural joints
// still propagate to descendants. Manual overrides apply on the primary walk
// only.
func (a *animator) walk(node *model.HierarchyNode, parent mgl32.Mat4, clip *Clip, t float32, out []mgl32.Mat4, applyOverrides bool) {
	local := node.Transformation
	if bone := clip.FindBone(node.Name); bone != nil {
		local = bone.LocalTransform(t)
	}

	info, known := clip.BoneInfos()[node.Name]
	if applyOverrides && known {
		if override, ok := a.overrides[info.ID]; ok {
			local = override.Mul4(local)
		}
	}

	global := parent.Mul4(local)
	if known && info.ID >= 0 && info.ID < len(out) {
		out[info.ID] = global.Mul4(info.Offset)
	}

	for _, child := range node.Children {
		a.walk(child, global, clip, t, out, applyOverrides)
	}
}

func classForLayer(key LayerKey) BoneClass {
	switch key {
	case LayerHead:
		return ClassHead
	case LayerTail:
		return ClassTail
	default:
		return ClassLocomotion
	}
}
