package animation

import (
	"testing"

	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

var cowFilters = struct{ head, tail []string }{
	head: []string{"DEF-head", "DEF-neck"},
	tail: []string{"DEF-tail"},
}

// cowSource builds a three-bone skeleton (Torso -> DEF-head, DEF-tail) with
// a locomotion clip animating all bones, a head one-shot, and a tail
// one-shot.
func cowSource() *fakeSource {
	return &fakeSource{
		root: &model.HierarchyNode{
			Name:           "Torso",
			Transformation: mgl32.Ident4(),
			Children: []*model.HierarchyNode{
				{Name: "DEF-head", Transformation: mgl32.Ident4()},
				{Name: "DEF-tail", Transformation: mgl32.Ident4()},
			},
		},
		anims: []fakeAnimation{
			{
				info: model.ClipInfo{Name: "Walk", Duration: 40, TicksPerSecond: 25},
				channels: []model.AnimationChannel{
					staticChannel("Torso", mgl32.Vec3{0, 1, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}),
					staticChannel("DEF-head", mgl32.Vec3{0, 0, 1}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}),
					staticChannel("DEF-tail", mgl32.Vec3{0, 0, -1}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}),
				},
			},
			{
				info: model.ClipInfo{Name: "LookUp", Duration: 10, TicksPerSecond: 25},
				channels: []model.AnimationChannel{
					staticChannel("DEF-head", mgl32.Vec3{0, 2, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}),
				},
			},
			{
				info: model.ClipInfo{Name: "TailUp", Duration: 10, TicksPerSecond: 25},
				channels: []model.AnimationChannel{
					staticChannel("DEF-tail", mgl32.Vec3{0, 3, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}),
				},
			},
		},
	}
}

func newCowAnimator() *animator {
	return NewAnimator(
		WithClassifier(NewClassifier(cowFilters.head, cowFilters.tail)),
		WithMaxBones(16),
	).(*animator)
}

func loadAll(t *testing.T) (*animator, map[string]*Clip, *model.BoneInfoTable) {
	t.Helper()
	src := cowSource()
	table := model.NewBoneInfoTable()

	clips := make(map[string]*Clip)
	for i, name := range []string{"Walk", "LookUp", "TailUp"} {
		clip, err := LoadClip(src, i, 25, table)
		if err != nil {
			t.Fatalf("loading %s: %v", name, err)
		}
		clips[name] = clip
	}
	return newCowAnimator(), clips, table
}

func TestLoopingPrimaryWrapsExactly(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])

	// Duration 40 at 25 ticks/s: dt=0.8s advances 20 ticks.
	a.UpdateAnimation(0.8)
	if mgl32.Abs(a.primary.currentTime-20) > 1e-4 {
		t.Errorf("after first tick: currentTime = %v, want 20", a.primary.currentTime)
	}
	a.UpdateAnimation(0.8)
	if mgl32.Abs(a.primary.currentTime) > 1e-4 {
		t.Errorf("after wrap: currentTime = %v, want 0", a.primary.currentTime)
	}
	if !a.primary.active {
		t.Error("looping primary layer deactivated itself")
	}
}

func TestOneShotTerminatesAndClears(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])
	a.PlaySecondary(LayerHead, clips["LookUp"], false)

	if !a.SecondaryActive(LayerHead) {
		t.Fatal("head layer not active after assignment")
	}

	// Duration 10 at 25 ticks/s = 0.4s. Two ticks of 0.25s cross it.
	a.UpdateAnimation(0.25)
	if !a.SecondaryActive(LayerHead) {
		t.Fatal("head layer finished early")
	}
	a.UpdateAnimation(0.25)
	if a.SecondaryActive(LayerHead) {
		t.Error("head layer still active past clip duration")
	}
	if a.secondary[LayerHead].clip != nil {
		t.Error("completed one-shot kept its clip reference")
	}
}

func TestPrimaryReassignmentIdempotent(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])
	a.UpdateAnimation(0.4) // currentTime = 10

	a.PlayPrimary(clips["Walk"])
	if mgl32.Abs(a.primary.currentTime-10) > 1e-4 {
		t.Errorf("same-clip re-assignment reset time to %v", a.primary.currentTime)
	}

	a.PlayPrimary(clips["LookUp"])
	if a.primary.currentTime != 0 {
		t.Errorf("different-clip assignment kept time %v, want 0", a.primary.currentTime)
	}
}

func TestSecondaryAssignmentAlwaysResets(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlaySecondary(LayerHead, clips["LookUp"], false)
	a.UpdateAnimation(0.2) // currentTime = 5

	a.PlaySecondary(LayerHead, clips["LookUp"], false)
	if a.secondary[LayerHead].currentTime != 0 {
		t.Errorf("re-trigger kept time %v, want 0", a.secondary[LayerHead].currentTime)
	}
	if !a.SecondaryActive(LayerHead) {
		t.Error("re-trigger left the layer inactive")
	}
}

func TestMatricesSizedToPrimaryClip(t *testing.T) {
	a, clips, _ := loadAll(t)
	if len(a.FinalBoneMatrices()) != 16 {
		t.Fatalf("pre-clip allocation = %d, want the configured hint 16", len(a.FinalBoneMatrices()))
	}
	a.PlayPrimary(clips["Walk"])
	if len(a.FinalBoneMatrices()) != clips["Walk"].BoneCount() {
		t.Errorf("matrix count = %d, want %d", len(a.FinalBoneMatrices()), clips["Walk"].BoneCount())
	}
}

func TestLayerIsolation(t *testing.T) {
	// Two animators at the same time: one with only the primary layer, one
	// with a head one-shot on top. Only head-classified IDs may differ.
	base, baseClips, baseTable := loadAll(t)
	layered, layeredClips, _ := loadAll(t)

	base.PlayPrimary(baseClips["Walk"])
	layered.PlayPrimary(layeredClips["Walk"])
	layered.PlaySecondary(LayerHead, layeredClips["LookUp"], false)

	base.UpdateAnimation(0.1)
	layered.UpdateAnimation(0.1)

	snapshot := baseClips["Walk"].BoneInfos()
	if len(snapshot) != baseTable.Count() {
		t.Fatalf("snapshot size %d != table count %d", len(snapshot), baseTable.Count())
	}
	classifier := NewClassifier(cowFilters.head, cowFilters.tail)
	for name, info := range snapshot {
		same := mat4Near(base.FinalBoneMatrices()[info.ID], layered.FinalBoneMatrices()[info.ID], 1e-5)
		if classifier.Classify(name) == ClassHead {
			if same {
				t.Errorf("head bone %q unchanged by the head layer", name)
			}
		} else if !same {
			t.Errorf("non-head bone %q was touched by the head layer", name)
		}
	}
}

func TestSecondaryLayerWritesItsOwnClass(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])
	a.PlaySecondary(LayerTail, clips["TailUp"], false)
	a.UpdateAnimation(0.1)

	tailID := clips["Walk"].BoneInfos()["DEF-tail"].ID
	// TailUp pins DEF-tail to translation {0,3,0}; the walk's torso motion
	// does not apply because the tail layer's own walk uses its clip only.
	want := mgl32.Translate3D(0, 3, 0)
	if !mat4Near(a.FinalBoneMatrices()[tailID], want, 1e-5) {
		t.Errorf("tail matrix = %v, want %v", a.FinalBoneMatrices()[tailID], want)
	}

	headID := clips["Walk"].BoneInfos()["DEF-head"].ID
	// Head stays as the primary walk computed it: torso {0,1,0} then head
	// {0,0,1}.
	wantHead := mgl32.Translate3D(0, 1, 0).Mul4(mgl32.Translate3D(0, 0, 1))
	if !mat4Near(a.FinalBoneMatrices()[headID], wantHead, 1e-5) {
		t.Errorf("head matrix = %v, want %v", a.FinalBoneMatrices()[headID], wantHead)
	}
}

func TestParentRotationPropagatesToUnanimatedChild(t *testing.T) {
	rot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	src := &fakeSource{
		root: &model.HierarchyNode{
			Name:           "root",
			Transformation: mgl32.Ident4(),
			Children: []*model.HierarchyNode{
				{Name: "child", Transformation: mgl32.Ident4()},
			},
		},
		anims: []fakeAnimation{
			{
				info: model.ClipInfo{Name: "Spin", Duration: 10, TicksPerSecond: 25},
				channels: []model.AnimationChannel{
					staticChannel("root", mgl32.Vec3{}, rot, mgl32.Vec3{1, 1, 1}),
				},
			},
		},
	}

	table := model.NewBoneInfoTable()
	table.Register("child", mgl32.Ident4()) // skinned bone with no animation data
	clip, err := LoadClip(src, 0, 25, table)
	if err != nil {
		t.Fatalf("LoadClip failed: %v", err)
	}

	a := newCowAnimator()
	a.PlayPrimary(clip)
	a.UpdateAnimation(0.1)

	childID := clip.BoneInfos()["child"].ID
	want := rot.Mat4() // root rotation composed with the child's identity bind
	if !mat4Near(a.FinalBoneMatrices()[childID], want, 1e-5) {
		t.Errorf("child matrix = %v, want parent rotation %v", a.FinalBoneMatrices()[childID], want)
	}
}

func TestOverridePreMultipliesPrimaryWalk(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])
	a.UpdateAnimation(0.1)

	torso := clips["Walk"].BoneInfos()["Torso"]
	plain := a.FinalBoneMatrices()[torso.ID]

	override := mgl32.Translate3D(2, 0, 0)
	a.SetBoneOverride(torso.ID, override)
	// Same time value: dt=0 re-walks without advancing the clock.
	a.UpdateAnimation(0)

	want := override.Mul4(plain)
	if !mat4Near(a.FinalBoneMatrices()[torso.ID], want, 1e-5) {
		t.Errorf("overridden matrix = %v, want %v", a.FinalBoneMatrices()[torso.ID], want)
	}

	a.ClearBoneOverride(torso.ID)
	a.UpdateAnimation(0)
	if !mat4Near(a.FinalBoneMatrices()[torso.ID], plain, 1e-5) {
		t.Errorf("cleared override did not restore the plain result")
	}
}

func TestOverrideIgnoredOnSecondaryWalk(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])
	a.PlaySecondary(LayerTail, clips["TailUp"], false)

	tailID := clips["Walk"].BoneInfos()["DEF-tail"].ID
	a.SetBoneOverride(tailID, mgl32.Translate3D(9, 9, 9))
	a.UpdateAnimation(0.1)

	// The tail layer's write is computed without overrides, so the final
	// value is TailUp's pose alone.
	want := mgl32.Translate3D(0, 3, 0)
	if !mat4Near(a.FinalBoneMatrices()[tailID], want, 1e-5) {
		t.Errorf("tail matrix = %v, want override-free %v", a.FinalBoneMatrices()[tailID], want)
	}
}

func TestStopPrimaryResetsOutputToIdentity(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])
	a.UpdateAnimation(0.1)
	a.PlayPrimary(nil)
	a.UpdateAnimation(0.1)

	for i, m := range a.FinalBoneMatrices() {
		if m != mgl32.Ident4() {
			t.Errorf("matrix %d = %v after stop, want identity", i, m)
		}
	}
	if a.PrimaryClip() != nil {
		t.Error("PrimaryClip not nil after stop")
	}
}

func TestOverrideForUnknownIDIsInert(t *testing.T) {
	a, clips, _ := loadAll(t)
	a.PlayPrimary(clips["Walk"])
	a.SetBoneOverride(500, mgl32.Translate3D(1, 1, 1))
	a.UpdateAnimation(0.1) // must not panic or disturb any real bone

	torsoID := clips["Walk"].BoneInfos()["Torso"].ID
	want := mgl32.Translate3D(0, 1, 0)
	if !mat4Near(a.FinalBoneMatrices()[torsoID], want, 1e-5) {
		t.Errorf("unknown-ID override disturbed the torso: %v", a.FinalBoneMatrices()[torsoID])
	}
}
