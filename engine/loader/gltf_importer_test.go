package loader

import (
	"testing"

	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

func TestBuildHierarchySingleRoot(t *testing.T) {
	doc := &gltf.Document{
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []uint32{0}}},
		Nodes: []*gltf.Node{
			{Name: "Armature", Children: []uint32{1, 2}},
			{Name: "DEF-spine"},
			{}, // unnamed
		},
	}

	root := buildHierarchy(doc)
	if root == nil {
		t.Fatal("buildHierarchy returned nil")
	}
	if root.Name != "Armature" {
		t.Errorf("root name = %q, want Armature", root.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children))
	}
	if root.Children[0].Name != "DEF-spine" {
		t.Errorf("child 0 = %q", root.Children[0].Name)
	}
	if root.Children[1].Name != "node_2" {
		t.Errorf("unnamed node = %q, want synthesized node_2", root.Children[1].Name)
	}
	// Decoded nodes carry zero-valued TRS fields; the hierarchy must treat
	// them as identity, not as a zero transform.
	if root.Transformation != mgl32.Ident4() {
		t.Errorf("bare node transform = %v, want identity", root.Transformation)
	}
}

func TestBuildHierarchyMultipleRootsGetSyntheticParent(t *testing.T) {
	doc := &gltf.Document{
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []uint32{0, 1}}},
		Nodes: []*gltf.Node{
			{Name: "a"},
			{Name: "b"},
		},
	}

	root := buildHierarchy(doc)
	if root.Name != "RootNode" {
		t.Fatalf("root name = %q, want RootNode", root.Name)
	}
	if root.Transformation != mgl32.Ident4() {
		t.Error("synthetic root transform is not identity")
	}
	if len(root.Children) != 2 {
		t.Errorf("children = %d, want 2", len(root.Children))
	}
}

func TestNodeLocalTransformAbsentFieldsAreDefaults(t *testing.T) {
	tests := []struct {
		name string
		node *gltf.Node
		want mgl32.Mat4
	}{
		{
			name: "bare node",
			node: &gltf.Node{},
			want: mgl32.Ident4(),
		},
		{
			name: "translation only",
			node: &gltf.Node{Translation: [3]float32{1, 2, 3}},
			want: mgl32.Translate3D(1, 2, 3),
		},
		{
			name: "rotation only",
			node: &gltf.Node{Rotation: [4]float32{0, 0.70710678, 0, 0.70710678}},
			want: mgl32.HomogRotate3DY(mgl32.DegToRad(90)),
		},
		{
			name: "scale only",
			node: &gltf.Node{Scale: [3]float32{2, 3, 4}},
			want: mgl32.Scale3D(2, 3, 4),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nodeLocalTransform(tc.node)
			if !got.ApproxEqualThreshold(tc.want, 1e-6) {
				t.Errorf("nodeLocalTransform = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNodeLocalTransformComposesTRS(t *testing.T) {
	n := &gltf.Node{
		Translation: [3]float32{1, 2, 3},
		Scale:       [3]float32{2, 2, 2},
	}
	got := nodeLocalTransform(n)
	want := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	if got != want {
		t.Errorf("nodeLocalTransform = %v, want %v", got, want)
	}
}

func TestNodeLocalTransformPrefersExplicitMatrix(t *testing.T) {
	tm := mgl32.Translate3D(5, 0, 0)
	var m [16]float32
	copy(m[:], tm[:])
	n := &gltf.Node{Matrix: m}
	if got := nodeLocalTransform(n); got != tm {
		t.Errorf("nodeLocalTransform = %v, want explicit matrix", got)
	}
}

func TestFillMissingTracksUsesNodeDefaults(t *testing.T) {
	// A node with only a translation: the synthesized rotation and scale
	// samples must be the identity quaternion and unit scale.
	ch := &model.AnimationChannel{NodeName: "DEF-spine"}
	fillMissingTracks(ch, &gltf.Node{Translation: [3]float32{1, 2, 3}})

	if len(ch.PositionKeys) != 1 || ch.PositionKeys[0].Value != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("position keys = %v, want the node translation", ch.PositionKeys)
	}
	if len(ch.RotationKeys) != 1 || ch.RotationKeys[0].Value != mgl32.QuatIdent() {
		t.Errorf("rotation keys = %v, want the identity quaternion", ch.RotationKeys)
	}
	if len(ch.ScaleKeys) != 1 || ch.ScaleKeys[0].Value != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("scale keys = %v, want unit scale", ch.ScaleKeys)
	}
}

func TestFillMissingTracksKeepsExistingKeys(t *testing.T) {
	ch := &model.AnimationChannel{
		NodeName:     "DEF-tail",
		PositionKeys: []model.VectorKeyframe{{Value: mgl32.Vec3{9, 9, 9}, Timestamp: 5}},
	}
	fillMissingTracks(ch, &gltf.Node{})

	if len(ch.PositionKeys) != 1 || ch.PositionKeys[0].Value != (mgl32.Vec3{9, 9, 9}) {
		t.Errorf("existing position keys were replaced: %v", ch.PositionKeys)
	}
	if len(ch.RotationKeys) != 1 || len(ch.ScaleKeys) != 1 {
		t.Errorf("missing tracks not filled: R=%d S=%d", len(ch.RotationKeys), len(ch.ScaleKeys))
	}
}

func TestQuatFromGltfOrder(t *testing.T) {
	// glTF stores (x, y, z, w).
	q := quatFromGltf([4]float32{0.1, 0.2, 0.3, 0.9})
	if q.W != 0.9 || q.V != (mgl32.Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("quatFromGltf = %+v", q)
	}
}

func TestMat4FromColumns(t *testing.T) {
	// Column-major translation by (7, 8, 9): translation lives in column 3.
	cols := [4][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{7, 8, 9, 1},
	}
	if got := mat4FromColumns(cols); got != mgl32.Translate3D(7, 8, 9) {
		t.Errorf("mat4FromColumns = %v, want translation", got)
	}
}

func TestOpenDocumentRejectsUnknownExtensions(t *testing.T) {
	if _, err := openDocument("model.obj"); err == nil {
		t.Error("openDocument accepted .obj")
	}
	if _, err := openDocument("missing.gltf"); err == nil {
		t.Error("openDocument succeeded on a missing file")
	}
}

func TestModelName(t *testing.T) {
	if got := modelName("assets/models/tractor/scene.gltf"); got != "scene" {
		t.Errorf("modelName = %q, want scene", got)
	}
}
