package animation

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/cow-world/engine/model"
)

var (
	// ErrNoAnimations is returned when a source asset contains no animation
	// tracks at all.
	ErrNoAnimations = errors.New("source contains no animations")

	// ErrAnimationNotFound is returned by catalog name lookups that match no
	// entry.
	ErrAnimationNotFound = errors.New("animation not found")
)

// Source supplies everything clip loading needs from an imported asset: the
// node hierarchy and per-animation metadata and channel data. Metadata reads
// are cheap; channel reads may decode keyframe payloads.
type Source interface {
	// Hierarchy returns the root of the asset's node tree.
	//
	// Returns:
	//   - *model.HierarchyNode: the root node, or nil if the asset has none
	Hierarchy() *model.HierarchyNode

	// AnimationCount returns how many animations the asset contains.
	//
	// Returns:
	//   - int: the animation count
	AnimationCount() int

	// AnimationInfo returns the metadata of the animation at index i.
	//
	// Parameters:
	//   - i: the animation index
	//
	// Returns:
	//   - model.ClipInfo: name, duration and tick rate
	//   - error: error if i is out of range or metadata cannot be read
	AnimationInfo(i int) (model.ClipInfo, error)

	// AnimationChannels returns the keyframe channels of the animation at
	// index i.
	//
	// Parameters:
	//   - i: the animation index
	//
	// Returns:
	//   - []model.AnimationChannel: one channel per animated node
	//   - error: error if i is out of range or the payload cannot be decoded
	AnimationChannels(i int) ([]model.AnimationChannel, error)
}

// Clip is one loaded animation: its bones, its own copy of the node
// hierarchy, and a snapshot of the bone table taken at load completion.
// Immutable after construction.
type Clip struct {
	// Name is the animation's identifier as authored in the asset.
	Name string

	// Duration is the animation length in ticks.
	Duration float32

	// TicksPerSecond is the playback tick rate; never zero after loading.
	TicksPerSecond float32

	root      *model.HierarchyNode
	bones     map[string]*Bone
	boneInfos map[string]model.BoneInfo
}

// Root returns the clip's private copy of the node hierarchy.
//
// Returns:
//   - *model.HierarchyNode: the root node
func (c *Clip) Root() *model.HierarchyNode {
	return c.root
}

// FindBone returns the bone animating the named node, if the clip has one.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - *Bone: the bone, or nil if this clip does not animate the node
func (c *Clip) FindBone(name string) *Bone {
	return c.bones[name]
}

// BoneInfos returns the clip's snapshot of the bone table. Registrations made
// by clips loaded later do not appear here.
//
// Returns:
//   - map[string]model.BoneInfo: the snapshot, keyed by bone name
func (c *Clip) BoneInfos() map[string]model.BoneInfo {
	return c.boneInfos
}

// BoneCount returns the number of bones in the clip's snapshot.
//
// Returns:
//   - int: the snapshot size
func (c *Clip) BoneCount() int {
	return len(c.boneInfos)
}

// LoadClip builds one clip from the animation at the given source index,
// registering any bones the shared table has not seen (identity offset, next
// dense ID). Loading is all-or-nothing: any failure returns a nil clip.
//
// Parameters:
//   - src: the imported asset
//   - index: which animation in the source to load
//   - defaultTPS: tick rate substituted when the source reports zero
//   - table: the skeletal model's shared bone registry
//
// Returns:
//   - *Clip: the loaded clip
//   - error: error if the source has no animations, the index is out of
//     range, or channel data cannot be read
func LoadClip(src Source, index int, defaultTPS float32, table *model.BoneInfoTable) (*Clip, error) {
	if src.AnimationCount() == 0 {
		return nil, ErrNoAnimations
	}
	if index < 0 || index >= src.AnimationCount() {
		return nil, fmt.Errorf("animation index %d out of range [0,%d)", index, src.AnimationCount())
	}

	info, err := src.AnimationInfo(index)
	if err != nil {
		return nil, fmt.Errorf("reading animation %d metadata: %w", index, err)
	}

	root := src.Hierarchy()
	if root == nil {
		return nil, fmt.Errorf("loading animation %q: source has no node hierarchy", info.Name)
	}

	channels, err := src.AnimationChannels(index)
	if err != nil {
		return nil, fmt.Errorf("reading animation %q channels: %w", info.Name, err)
	}

	tps := info.TicksPerSecond
	if tps == 0 {
		tps = defaultTPS
	}

	clip := &Clip{
		Name:           info.Name,
		Duration:       info.Duration,
		TicksPerSecond: tps,
		root:           root.Clone(),
		bones:          make(map[string]*Bone, len(channels)),
	}

	for _, ch := range channels {
		boneInfo, ok := table.Lookup(ch.NodeName)
		if !ok {
			// Animation-only bone: moves children but has no skinning data.
			boneInfo = table.Ensure(ch.NodeName)
		}
		clip.bones[ch.NodeName] = NewBone(ch.NodeName, boneInfo.ID, ch)
	}

	// Snapshot exactly once, at load completion, so later loads can't
	// retroactively change this clip's view of the table.
	clip.boneInfos = table.Snapshot()
	return clip, nil
}
