package light

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGPULightLayout(t *testing.T) {
	var g GPULight
	if size := unsafe.Sizeof(g); size != 96 {
		t.Errorf("GPULight size = %d, want 96", size)
	}
	if off := unsafe.Offsetof(g.Direction); off != 16 {
		t.Errorf("Direction offset = %d, want 16", off)
	}
	if off := unsafe.Offsetof(g.Ambient); off != 32 {
		t.Errorf("Ambient offset = %d, want 32", off)
	}
	if off := unsafe.Offsetof(g.K2); off != 80 {
		t.Errorf("K2 offset = %d, want 80", off)
	}
}

func TestDirectionalLightNormalizesDirection(t *testing.T) {
	l := NewDirectional(
		WithDirection(mgl32.Vec3{0, -2, 0}),
		WithColors(
			mgl32.Vec4{0.2, 0.2, 0.2, 1},
			mgl32.Vec4{0.8, 0.8, 0.7, 1},
			mgl32.Vec4{1, 1, 0.9, 1},
		),
	)

	if l.Type() != LightTypeDirectional {
		t.Errorf("Type = %v", l.Type())
	}
	if got := l.Direction(); got != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("Direction = %v, want normalized {0 -1 0}", got)
	}
	if l.Attenuation() != (Attenuation{}) {
		t.Errorf("directional light has attenuation %+v", l.Attenuation())
	}
}

func TestPointLightGPURoundTrip(t *testing.T) {
	l := NewPoint(
		WithPosition(mgl32.Vec3{-3, 5.5, -7}),
		WithAttenuation(0.7, 0.08, 0.02),
		WithColors(
			mgl32.Vec4{0.08, 0.06, 0.04, 1},
			mgl32.Vec4{1.2, 1.0, 0.6, 1},
			mgl32.Vec4{0.8, 0.6, 0.4, 1},
		),
	)

	g := l.GPU()
	if g.LightType != uint32(LightTypePoint) {
		t.Errorf("LightType = %d", g.LightType)
	}
	if g.Position != (mgl32.Vec3{-3, 5.5, -7}) {
		t.Errorf("Position = %v", g.Position)
	}
	if g.K0 != 0.7 || g.K1 != 0.08 || g.K2 != 0.02 {
		t.Errorf("attenuation = %v %v %v", g.K0, g.K1, g.K2)
	}
	if g.Diffuse != (mgl32.Vec4{1.2, 1.0, 0.6, 1}) {
		t.Errorf("Diffuse = %v", g.Diffuse)
	}
}

func TestSpotConeCosines(t *testing.T) {
	l := NewSpot(WithCones(30, 45))
	inner, outer := l.Cones()
	if mgl32.Abs(inner-0.8660254) > 1e-5 {
		t.Errorf("inner = %v, want cos(30°)", inner)
	}
	if mgl32.Abs(outer-0.70710678) > 1e-5 {
		t.Errorf("outer = %v, want cos(45°)", outer)
	}
}

func TestPackLightsTruncatesAtBudget(t *testing.T) {
	lights := make([]Light, MaxGPULights+4)
	for i := range lights {
		lights[i] = NewPoint(WithPosition(mgl32.Vec3{float32(i), 0, 0}))
	}

	buf := PackLights(lights)
	if buf.Count != MaxGPULights {
		t.Errorf("Count = %d, want %d", buf.Count, MaxGPULights)
	}
	if buf.Lights[0].Position.X() != 0 || buf.Lights[MaxGPULights-1].Position.X() != MaxGPULights-1 {
		t.Error("packed lights out of order")
	}
	if len(buf.Bytes()) != int(unsafe.Sizeof(buf)) {
		t.Errorf("Bytes len = %d, want %d", len(buf.Bytes()), unsafe.Sizeof(buf))
	}
}
