package model

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// BoneInfoTable is the shared registry of bones for one skeletal model.
// IDs are dense and stable: each new name gets the next index and names are
// never re-numbered, so matrix-array slots stay valid across clip loads.
// Clip loading may run on a worker, so the table guards itself.
type BoneInfoTable struct {
	mu    sync.Mutex
	infos map[string]BoneInfo
	count int
}

// NewBoneInfoTable returns an empty bone registry.
//
// Returns:
//   - *BoneInfoTable: the new table
func NewBoneInfoTable() *BoneInfoTable {
	return &BoneInfoTable{infos: make(map[string]BoneInfo)}
}

// Lookup returns the registered info for a bone name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - BoneInfo: the bone's ID and offset matrix
//   - bool: true if the bone is registered
func (t *BoneInfoTable) Lookup(name string) (BoneInfo, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	info, ok := t.infos[name]
	return info, ok
}

// Register records a bone with the given offset matrix, assigning the next
// dense ID. If the name is already registered the existing entry is returned
// unchanged.
//
// Parameters:
//   - name: the bone name
//   - offset: the bone's inverse bind matrix
//
// Returns:
//   - BoneInfo: the registered entry
func (t *BoneInfoTable) Register(name string, offset mgl32.Mat4) BoneInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	if info, ok := t.infos[name]; ok {
		return info
	}
	info := BoneInfo{ID: t.count, Offset: offset}
	t.infos[name] = info
	t.count++
	return info
}

// Ensure registers a bone that exists only in animation data, with an
// identity offset. Such bones move children but contribute no skinning
// deformation of their own.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - BoneInfo: the registered entry
func (t *BoneInfoTable) Ensure(name string) BoneInfo {
	return t.Register(name, mgl32.Ident4())
}

// Count returns the number of registered bones.
//
// Returns:
//   - int: the bone count
func (t *BoneInfoTable) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Snapshot returns a by-value copy of the table's current contents. Later
// registrations do not appear in the copy.
//
// Returns:
//   - map[string]BoneInfo: an independent copy of the registry
func (t *BoneInfoTable) Snapshot() map[string]BoneInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]BoneInfo, len(t.infos))
	for name, info := range t.infos {
		out[name] = info
	}
	return out
}

// SkeletalModel is an animated model: skinned meshes, the node hierarchy the
// animation system walks, and the bone registry shared with every clip
// loaded for this model.
type SkeletalModel struct {
	// Name is the model's identifier.
	Name string

	// Meshes are the model's skinned meshes.
	Meshes []Mesh

	// Hierarchy is the root of the imported node tree.
	Hierarchy *HierarchyNode

	boneTable *BoneInfoTable
}

// NewSkeletalModel constructs a skeletal model with an empty bone registry.
//
// Parameters:
//   - name: the model's identifier
//
// Returns:
//   - *SkeletalModel: the new model
func NewSkeletalModel(name string) *SkeletalModel {
	return &SkeletalModel{
		Name:      name,
		boneTable: NewBoneInfoTable(),
	}
}

// BoneTable returns the model's shared bone registry.
//
// Returns:
//   - *BoneInfoTable: the registry
func (m *SkeletalModel) BoneTable() *BoneInfoTable {
	return m.boneTable
}

// AddBoneInfluence writes a bone ID and weight into the vertex's first free
// influence slot. Influences past the slot capacity are dropped.
//
// Parameters:
//   - id: the bone's matrix-array index
//   - weight: the skinning weight
func (v *Vertex) AddBoneInfluence(id int32, weight float32) {
	for i := range v.BoneIDs {
		if v.BoneIDs[i] < 0 {
			v.BoneIDs[i] = id
			v.Weights[i] = weight
			return
		}
	}
}

// ClearBoneInfluences resets every influence slot to the empty marker.
func (v *Vertex) ClearBoneInfluences() {
	for i := range v.BoneIDs {
		v.BoneIDs[i] = -1
		v.Weights[i] = 0
	}
}
