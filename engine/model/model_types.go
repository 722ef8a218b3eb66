package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// --- Hierarchy Types ---

// HierarchyNode is one node of an imported model's node tree. The animation
// system walks this tree every tick, so clips keep their own deep copy of it.
type HierarchyNode struct {
	// Name is the node's identifier, matched against animation channel targets.
	Name string

	// Transformation is the node's bind-pose transform relative to its parent.
	Transformation mgl32.Mat4

	// Children are the node's child nodes, in source order.
	Children []*HierarchyNode
}

// Clone returns a deep copy of the subtree rooted at this node. Child order
// is preserved.
//
// Returns:
//   - *HierarchyNode: the copied subtree, or nil if the receiver is nil
func (n *HierarchyNode) Clone() *HierarchyNode {
	if n == nil {
		return nil
	}
	out := &HierarchyNode{
		Name:           n.Name,
		Transformation: n.Transformation,
	}
	if len(n.Children) > 0 {
		out.Children = make([]*HierarchyNode, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// --- Keyframe & Channel Types ---

// VectorKeyframe is a single translation or scale sample.
type VectorKeyframe struct {
	// Value is the sampled vector.
	Value mgl32.Vec3

	// Timestamp is the sample time in animation ticks.
	Timestamp float32
}

// QuaternionKeyframe is a single rotation sample.
type QuaternionKeyframe struct {
	// Value is the sampled orientation.
	Value mgl32.Quat

	// Timestamp is the sample time in animation ticks.
	Timestamp float32
}

// AnimationChannel holds the keyframe tracks animating a single named node.
type AnimationChannel struct {
	// NodeName is the hierarchy node this channel animates.
	NodeName string

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation.
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe
}

// ClipInfo is the metadata of one animation in a source, cheap to read
// without decoding keyframe payloads.
type ClipInfo struct {
	// Name is the animation's identifier as authored in the asset.
	Name string

	// Duration is the animation length in ticks.
	Duration float32

	// TicksPerSecond is the animation's tick rate; 0 means the asset did
	// not specify one and a default applies.
	TicksPerSecond float32
}

// --- Bone Types ---

// BoneInfo associates a bone with its dense matrix-array slot and its
// offset (inverse bind) matrix.
type BoneInfo struct {
	// ID is the bone's index into the final matrix array.
	ID int

	// Offset transforms from model space to bone space at bind pose.
	Offset mgl32.Mat4
}

// --- Mesh Types ---

// Vertex is one skinned vertex. BoneIDs/Weights hold up to MaxBoneInfluence
// influences; unused slots carry ID -1 and weight 0.
type Vertex struct {
	// Position is the vertex position in model space.
	Position mgl32.Vec3

	// Normal is the vertex normal in model space.
	Normal mgl32.Vec3

	// TexCoords are the texture coordinates.
	TexCoords mgl32.Vec2

	// BoneIDs are indices into the bone matrix array.
	BoneIDs [4]int32

	// Weights are the per-bone skinning weights.
	Weights [4]float32
}

// Mesh is one drawable chunk of a model.
type Mesh struct {
	// Name is the mesh's identifier from the asset.
	Name string

	// Vertices is the vertex array.
	Vertices []Vertex

	// Indices is the triangle index array.
	Indices []uint32
}
