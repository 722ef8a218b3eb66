package renderer

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a handle to GPU vertex and index buffers uploaded via UploadMesh.
type Mesh interface {
	// IndexCount returns the number of indices used by draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

// Object is a handle to the per-draw GPU state of one scene entity.
type Object interface {
	// Skinned reports whether the object draws through the skinned pipeline.
	//
	// Returns:
	//   - bool: true for skeletal objects
	Skinned() bool

	// SetModelMatrix uploads the object's world transform.
	//
	// Parameters:
	//   - m: the model matrix
	SetModelMatrix(m mgl32.Mat4)

	// SetBaseColor uploads the object's flat surface color.
	//
	// Parameters:
	//   - c: the RGBA color
	SetBaseColor(c mgl32.Vec4)

	// SetBoneMatrices uploads the bone matrix palette sampled by the skinned
	// vertex shader. No-op for static objects. Matrices past the renderer's
	// bone capacity are dropped.
	//
	// Parameters:
	//   - matrices: the flat bone matrices in bone ID order
	SetBoneMatrices(matrices []mgl32.Mat4)
}

type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

var _ Mesh = &gpuMesh{}

func (m *gpuMesh) IndexCount() int {
	return m.indexCount
}

type renderObject struct {
	r       *renderer
	skinned bool

	uniforms ObjectUniforms

	uniformBuffer *wgpu.Buffer
	boneBuffer    *wgpu.Buffer
	bindGroup     *wgpu.BindGroup
}

var _ Object = &renderObject{}

func (o *renderObject) Skinned() bool {
	return o.skinned
}

func (o *renderObject) SetModelMatrix(m mgl32.Mat4) {
	o.r.mu.Lock()
	defer o.r.mu.Unlock()
	o.uniforms.Model = m
	o.r.queue.WriteBuffer(o.uniformBuffer, 0, o.uniforms.Bytes())
}

func (o *renderObject) SetBaseColor(c mgl32.Vec4) {
	o.r.mu.Lock()
	defer o.r.mu.Unlock()
	o.uniforms.BaseColor = c
	o.r.queue.WriteBuffer(o.uniformBuffer, 0, o.uniforms.Bytes())
}

func (o *renderObject) SetBoneMatrices(matrices []mgl32.Mat4) {
	if !o.skinned || o.boneBuffer == nil {
		return
	}
	o.r.mu.Lock()
	defer o.r.mu.Unlock()
	if len(matrices) > o.r.maxBones {
		matrices = matrices[:o.r.maxBones]
	}
	o.r.queue.WriteBuffer(o.boneBuffer, 0, common.SliceToBytes(matrices))
}

func (r *renderer) UploadMesh(label string, vertexData, indexData []byte, indexCount int) (Mesh, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := &gpuMesh{indexCount: indexCount}

	if len(vertexData) == 0 || len(indexData) == 0 {
		return nil, fmt.Errorf("mesh %q has no vertex or index data", label)
	}

	vbuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	r.queue.WriteBuffer(vbuf, 0, vertexData)
	m.vertexBuffer = vbuf

	ibuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	r.queue.WriteBuffer(ibuf, 0, indexData)
	m.indexBuffer = ibuf

	return m, nil
}

func (r *renderer) CreateSkinnedObject(label string) (Object, error) {
	return r.createObject(label, true)
}

func (r *renderer) CreateStaticObject(label string) (Object, error) {
	return r.createObject(label, false)
}

func (r *renderer) createObject(label string, skinned bool) (Object, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := &renderObject{
		r:       r,
		skinned: skinned,
		uniforms: ObjectUniforms{
			Model:     mgl32.Ident4(),
			BaseColor: mgl32.Vec4{1, 1, 1, 1},
		},
	}

	uniformBuffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Object Uniform Buffer",
		Size:  uint64(unsafe.Sizeof(ObjectUniforms{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	o.uniformBuffer = uniformBuffer
	r.queue.WriteBuffer(uniformBuffer, 0, o.uniforms.Bytes())

	entries := []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
	}
	layout := r.staticLayout

	if skinned {
		boneBuffer, berr := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label + " Bone Matrix Buffer",
			Size:  uint64(r.maxBones) * uint64(unsafe.Sizeof(mgl32.Mat4{})),
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if berr != nil {
			return nil, berr
		}
		o.boneBuffer = boneBuffer

		// Fill with identity so an object drawn before its first animation
		// update renders in bind pose.
		identities := make([]mgl32.Mat4, r.maxBones)
		for i := range identities {
			identities[i] = mgl32.Ident4()
		}
		r.queue.WriteBuffer(boneBuffer, 0, common.SliceToBytes(identities))

		entries = append(entries, wgpu.BindGroupEntry{
			Binding: 1, Buffer: boneBuffer, Offset: 0, Size: wgpu.WholeSize,
		})
		layout = r.skinnedLayout
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label + " Object Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	o.bindGroup = bindGroup

	return o, nil
}
