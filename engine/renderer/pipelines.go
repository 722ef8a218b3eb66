package renderer

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/cow-world/engine/light"
	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// vertexBufferLayout describes model.Vertex as seen by the vertex shaders.
// The static pipeline ignores the bone attributes but shares the layout, so
// skinned and static meshes upload through the same path.
func vertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(model.Vertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(model.Vertex{}.Position)), ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(model.Vertex{}.Normal)), ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(model.Vertex{}.TexCoords)), ShaderLocation: 2},
			{Format: wgpu.VertexFormatSint32x4, Offset: uint64(unsafe.Offsetof(model.Vertex{}.BoneIDs)), ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(model.Vertex{}.Weights)), ShaderLocation: 4},
		},
	}
}

// createPipelines builds the bind group layouts and the skinned and static
// render pipelines. Called once during construction, after the surface
// format is known.
func (r *renderer) createPipelines() error {
	var err error

	r.frameLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(FrameUniforms{})),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(light.GPULightBuffer{})),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create frame bind group layout: %w", err)
	}

	objectEntry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: uint64(unsafe.Sizeof(ObjectUniforms{})),
		},
	}

	r.staticLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Static Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{objectEntry},
	})
	if err != nil {
		return fmt.Errorf("failed to create static object bind group layout: %w", err)
	}

	r.skinnedLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Skinned Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			objectEntry,
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: 64, // one mat4x4<f32> element
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create skinned object bind group layout: %w", err)
	}

	r.staticPipeline, err = r.createScenePipeline("Static", staticShaderSource, r.staticLayout)
	if err != nil {
		return err
	}
	r.skinnedPipeline, err = r.createScenePipeline("Skinned", skinnedShaderSource, r.skinnedLayout)
	if err != nil {
		return err
	}

	return nil
}

// createScenePipeline compiles a WGSL module holding vs_main and fs_main and
// builds a render pipeline against the shared frame layout plus the given
// object layout.
func (r *renderer) createScenePipeline(label, source string, objectLayout *wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s shader module: %w", label, err)
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.frameLayout, objectLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s pipeline layout: %w", label, err)
	}

	created, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(r.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s render pipeline: %w", label, err)
	}

	return created, nil
}

// createFrameBindGroup allocates the per-frame uniform buffers and binds
// them under group 0.
func (r *renderer) createFrameBindGroup() error {
	var err error

	r.frameBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  uint64(unsafe.Sizeof(FrameUniforms{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create frame uniform buffer: %w", err)
	}

	r.lightBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Light Uniform Buffer",
		Size:  uint64(unsafe.Sizeof(light.GPULightBuffer{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create light uniform buffer: %w", err)
	}

	r.frameBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: r.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.frameBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: r.lightBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create frame bind group: %w", err)
	}

	return nil
}
