package renderer

import (
	"testing"
	"unsafe"

	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

func TestFrameUniformsLayout(t *testing.T) {
	var f FrameUniforms
	if size := unsafe.Sizeof(f); size != 80 {
		t.Errorf("FrameUniforms size = %d, want 80", size)
	}
	if off := unsafe.Offsetof(f.CameraPosition); off != 64 {
		t.Errorf("CameraPosition offset = %d, want 64", off)
	}
}

func TestObjectUniformsLayout(t *testing.T) {
	var o ObjectUniforms
	if size := unsafe.Sizeof(o); size != 80 {
		t.Errorf("ObjectUniforms size = %d, want 80", size)
	}
	if off := unsafe.Offsetof(o.BaseColor); off != 64 {
		t.Errorf("BaseColor offset = %d, want 64", off)
	}
}

func TestVertexLayoutMatchesVertexStruct(t *testing.T) {
	layout := vertexBufferLayout()
	if layout.ArrayStride != uint64(unsafe.Sizeof(model.Vertex{})) {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, unsafe.Sizeof(model.Vertex{}))
	}
	if len(layout.Attributes) != 5 {
		t.Fatalf("attribute count = %d, want 5", len(layout.Attributes))
	}

	var v model.Vertex
	wantOffsets := []uint64{
		uint64(unsafe.Offsetof(v.Position)),
		uint64(unsafe.Offsetof(v.Normal)),
		uint64(unsafe.Offsetof(v.TexCoords)),
		uint64(unsafe.Offsetof(v.BoneIDs)),
		uint64(unsafe.Offsetof(v.Weights)),
	}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d shader location = %d", i, attr.ShaderLocation)
		}
	}
}

func TestFrameUniformsBytesLength(t *testing.T) {
	f := FrameUniforms{
		ViewProjection: mgl32.Ident4(),
		CameraPosition: mgl32.Vec4{1, 2, 3, 1},
	}
	if got := len(f.Bytes()); got != 80 {
		t.Errorf("Bytes len = %d, want 80", got)
	}
}
