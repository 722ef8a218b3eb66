package animation

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

func twoBoneSource() *fakeSource {
	return &fakeSource{
		root: &model.HierarchyNode{
			Name:           "root",
			Transformation: mgl32.Ident4(),
			Children: []*model.HierarchyNode{
				{Name: "DEF-head", Transformation: mgl32.Ident4()},
			},
		},
		anims: []fakeAnimation{
			{
				info: model.ClipInfo{Name: "Idle", Duration: 40, TicksPerSecond: 25},
				channels: []model.AnimationChannel{
					identityChannel("root"),
					identityChannel("DEF-head"),
				},
			},
			{
				info: model.ClipInfo{Name: "LookUp", Duration: 10, TicksPerSecond: 0},
				channels: []model.AnimationChannel{
					identityChannel("DEF-head"),
				},
			},
		},
	}
}

func TestLoadClipSubstitutesDefaultTickRate(t *testing.T) {
	src := twoBoneSource()
	table := model.NewBoneInfoTable()

	clip, err := LoadClip(src, 1, 25, table)
	if err != nil {
		t.Fatalf("LoadClip failed: %v", err)
	}
	if clip.TicksPerSecond != 25 {
		t.Errorf("TicksPerSecond = %v, want default 25", clip.TicksPerSecond)
	}

	clip, err = LoadClip(src, 0, 60, table)
	if err != nil {
		t.Fatalf("LoadClip failed: %v", err)
	}
	if clip.TicksPerSecond != 25 {
		t.Errorf("TicksPerSecond = %v, want source value 25", clip.TicksPerSecond)
	}
}

func TestLoadClipRegistersUnknownBonesWithIdentityOffset(t *testing.T) {
	src := twoBoneSource()
	table := model.NewBoneInfoTable()
	table.Register("root", mgl32.Translate3D(0, 1, 0))

	clip, err := LoadClip(src, 0, 25, table)
	if err != nil {
		t.Fatalf("LoadClip failed: %v", err)
	}

	head, ok := clip.BoneInfos()["DEF-head"]
	if !ok {
		t.Fatal("DEF-head missing from clip snapshot")
	}
	if head.Offset != mgl32.Ident4() {
		t.Error("animation-only bone did not get an identity offset")
	}
	if head.ID != 1 {
		t.Errorf("DEF-head ID = %d, want next dense ID 1", head.ID)
	}
	if clip.FindBone("DEF-head") == nil {
		t.Error("FindBone returned nil for an animated node")
	}
	if clip.FindBone("no-such-node") != nil {
		t.Error("FindBone returned a bone for an unknown node")
	}
}

func TestBoneIDStableAcrossClips(t *testing.T) {
	src := twoBoneSource()
	table := model.NewBoneInfoTable()

	idle, err := LoadClip(src, 0, 25, table)
	if err != nil {
		t.Fatalf("loading Idle: %v", err)
	}
	lookUp, err := LoadClip(src, 1, 25, table)
	if err != nil {
		t.Fatalf("loading LookUp: %v", err)
	}

	a := idle.BoneInfos()["DEF-head"]
	b := lookUp.BoneInfos()["DEF-head"]
	if a.ID != b.ID {
		t.Errorf("DEF-head ID differs across clips: %d vs %d", a.ID, b.ID)
	}
}

func TestSnapshotUnaffectedByLaterLoads(t *testing.T) {
	src := twoBoneSource()
	table := model.NewBoneInfoTable()

	lookUp, err := LoadClip(src, 1, 25, table)
	if err != nil {
		t.Fatalf("loading LookUp: %v", err)
	}
	if lookUp.BoneCount() != 1 {
		t.Fatalf("LookUp snapshot size = %d, want 1", lookUp.BoneCount())
	}

	// Idle registers "root" as a new bone; LookUp's snapshot must not grow.
	if _, err := LoadClip(src, 0, 25, table); err != nil {
		t.Fatalf("loading Idle: %v", err)
	}
	if lookUp.BoneCount() != 1 {
		t.Errorf("earlier clip's snapshot grew to %d after a later load", lookUp.BoneCount())
	}
	if table.Count() != 2 {
		t.Errorf("table Count = %d, want 2", table.Count())
	}
}

func TestClipHierarchyIsAPrivateCopy(t *testing.T) {
	src := twoBoneSource()
	table := model.NewBoneInfoTable()

	clip, err := LoadClip(src, 0, 25, table)
	if err != nil {
		t.Fatalf("LoadClip failed: %v", err)
	}

	src.root.Children[0].Name = "mutated"
	if clip.Root().Children[0].Name != "DEF-head" {
		t.Error("source mutation leaked into the clip's hierarchy")
	}
}

func TestLoadClipFailures(t *testing.T) {
	table := model.NewBoneInfoTable()

	empty := &fakeSource{root: &model.HierarchyNode{Name: "root", Transformation: mgl32.Ident4()}}
	if _, err := LoadClip(empty, 0, 25, table); !errors.Is(err, ErrNoAnimations) {
		t.Errorf("empty source: err = %v, want ErrNoAnimations", err)
	}

	src := twoBoneSource()
	if _, err := LoadClip(src, 5, 25, table); err == nil {
		t.Error("out-of-range index did not fail")
	}
	if _, err := LoadClip(src, -1, 25, table); err == nil {
		t.Error("negative index did not fail")
	}

	noTree := &fakeSource{anims: twoBoneSource().anims}
	if _, err := LoadClip(noTree, 0, 25, table); err == nil {
		t.Error("source without a hierarchy did not fail")
	}
	if table.Count() != 0 {
		t.Errorf("failed loads registered %d bones, want 0", table.Count())
	}
}

func TestCatalogLoadsByExactName(t *testing.T) {
	src := twoBoneSource()
	table := model.NewBoneInfoTable()

	cat, err := NewCatalog(src, table, 25)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	if len(cat.Entries()) != 2 {
		t.Fatalf("Entries = %d, want 2", len(cat.Entries()))
	}

	clip, err := cat.Load("LookUp")
	if err != nil {
		t.Fatalf("Load(LookUp) failed: %v", err)
	}
	if clip.Name != "LookUp" {
		t.Errorf("loaded clip name = %q", clip.Name)
	}

	if _, err := cat.Load("lookup"); !errors.Is(err, ErrAnimationNotFound) {
		t.Errorf("case-mismatched lookup: err = %v, want ErrAnimationNotFound", err)
	}
	if _, err := cat.Load("Gallop"); !errors.Is(err, ErrAnimationNotFound) {
		t.Errorf("unknown name: err = %v, want ErrAnimationNotFound", err)
	}
}

func TestCatalogFirstMatchWinsOnDuplicateNames(t *testing.T) {
	src := twoBoneSource()
	src.anims[1].info.Name = "Idle" // duplicate of index 0
	table := model.NewBoneInfoTable()

	cat, err := NewCatalog(src, table, 25)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	clip, err := cat.Load("Idle")
	if err != nil {
		t.Fatalf("Load(Idle) failed: %v", err)
	}
	if clip.Duration != 40 {
		t.Errorf("Duration = %v, want 40 (first entry)", clip.Duration)
	}
}

func TestCatalogRejectsEmptySource(t *testing.T) {
	empty := &fakeSource{root: &model.HierarchyNode{Name: "root", Transformation: mgl32.Ident4()}}
	if _, err := NewCatalog(empty, model.NewBoneInfoTable(), 25); !errors.Is(err, ErrNoAnimations) {
		t.Errorf("err = %v, want ErrNoAnimations", err)
	}
}
