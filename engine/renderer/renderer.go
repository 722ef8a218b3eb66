package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/cow-world/engine/light"
	"github.com/Carmen-Shannon/cow-world/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting,
	// capping frame rate to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for
	// vertical blank. May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample
// anti-aliasing. WebGPU guarantees support for 1 (off) and 4; higher values
// are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color
	maxBones    int

	frameLayout   *wgpu.BindGroupLayout
	staticLayout  *wgpu.BindGroupLayout
	skinnedLayout *wgpu.BindGroupLayout

	staticPipeline  *wgpu.RenderPipeline
	skinnedPipeline *wgpu.RenderPipeline

	frameBuffer    *wgpu.Buffer
	lightBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup

	// Frame state for batched rendering across multiple draw calls.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	forceFallbackAdapter bool
}

// Renderer draws skinned and static meshes into the window surface.
//
// The renderer owns two fixed pipelines sharing a per-frame bind group
// (camera and lights). Each drawable object carries its own bind group with
// a model matrix uniform and, for skinned objects, the bone matrix palette
// sampled by the vertex shader.
type Renderer interface {
	// Resize reconfigures the surface and recreates size-dependent textures.
	// Call when the window framebuffer size changes.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. A call to Resize is
	// required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// UploadMesh creates GPU vertex and index buffers from raw byte data.
	//
	// Parameters:
	//   - label: debug label for the GPU buffers
	//   - vertexData: the raw vertex data bytes to upload
	//   - indexData: the raw index data bytes to upload
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - Mesh: the uploaded mesh handle
	//   - error: error if buffer creation fails
	UploadMesh(label string, vertexData, indexData []byte, indexCount int) (Mesh, error)

	// CreateSkinnedObject creates the per-draw GPU state for a skeletal
	// entity: a model matrix uniform and a bone matrix storage buffer.
	//
	// Parameters:
	//   - label: debug label for the GPU resources
	//
	// Returns:
	//   - Object: the drawable object handle
	//   - error: error if resource creation fails
	CreateSkinnedObject(label string) (Object, error)

	// CreateStaticObject creates the per-draw GPU state for a static entity.
	//
	// Parameters:
	//   - label: debug label for the GPU resources
	//
	// Returns:
	//   - Object: the drawable object handle
	//   - error: error if resource creation fails
	CreateStaticObject(label string) (Object, error)

	// UpdateFrame uploads the per-frame uniforms shared by every draw call.
	// Call once per frame before BeginFrame.
	//
	// Parameters:
	//   - viewProjection: the combined projection * view matrix
	//   - cameraPosition: the world-space camera position
	//   - lights: the packed light buffer for this frame
	UpdateFrame(viewProjection mgl32.Mat4, cameraPosition mgl32.Vec3, lights light.GPULightBuffer)

	// BeginFrame acquires the swapchain texture and begins the main render
	// pass. Must be paired with EndFrame after all Draw invocations.
	//
	// Returns:
	//   - error: error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes a single draw command within the current render pass.
	// The pipeline is selected by the object's kind.
	//
	// Parameters:
	//   - obj: the drawable object holding per-draw bind groups
	//   - mesh: the mesh holding vertex and index buffers
	//
	// Returns:
	//   - error: error if obj or mesh was not created by this renderer
	Draw(obj Object, mesh Mesh) error

	// EndFrame ends the render pass and submits the command buffer to the
	// GPU. Call Present afterwards to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the
	// swapchain texture. Must be called once per frame after EndFrame.
	Present()

	// Release destroys the GPU device and surface resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer targeting the given window's surface and
// builds the skinned and static pipelines.
//
// Parameters:
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the configured renderer
//   - error: error if adapter, device, or pipeline creation fails
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		sampleCount: MSAA4x,
		clearColor:  wgpu.Color{R: 0.53, G: 0.81, B: 0.92, A: 1.0},
		maxBones:    100,
	}
	for _, opt := range options {
		opt(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(win.SurfaceDescriptor())

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request GPU adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Cow World Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request GPU device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	r.configureSurface(win.Width(), win.Height())

	if err := r.createPipelines(); err != nil {
		return nil, err
	}
	if err := r.createFrameBindGroup(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		r.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		r.presentMode = wgpu.PresentModeImmediate
	}
}

// configureSurface reconfigures the swapchain and recreates the MSAA and
// depth attachments for the new size. Caller must hold r.mu or be in
// single-threaded setup.
func (r *renderer) configureSurface(width, height int) {
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = &capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(r.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result
		// lands in the swapchain view set per-frame as ResolveTarget.
		msaaTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *r.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		r.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	} else {
		r.msaaTextureView = nil
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          r.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue:    r.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (r *renderer) UpdateFrame(viewProjection mgl32.Mat4, cameraPosition mgl32.Vec3, lights light.GPULightBuffer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame := FrameUniforms{
		ViewProjection: viewProjection,
		CameraPosition: cameraPosition.Vec4(1),
	}
	r.queue.WriteBuffer(r.frameBuffer, 0, frame.Bytes())
	r.queue.WriteBuffer(r.lightBuffer, 0, lights.Bytes())
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A held surface texture means the previous frame was never presented.
	if r.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if r.sampleCount > 1 {
		r.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		r.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)

	r.frameEncoder = encoder
	r.framePass = pass
	r.frameSurface = surfaceTexture
	r.frameView = view

	return nil
}

func (r *renderer) Draw(obj Object, mesh Mesh) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := obj.(*renderObject)
	if !ok {
		return fmt.Errorf("object was not created by this renderer")
	}
	m, ok := mesh.(*gpuMesh)
	if !ok {
		return fmt.Errorf("mesh was not created by this renderer")
	}

	if o.skinned {
		r.framePass.SetPipeline(r.skinnedPipeline)
	} else {
		r.framePass.SetPipeline(r.staticPipeline)
	}
	r.framePass.SetBindGroup(0, r.frameBindGroup, nil)
	r.framePass.SetBindGroup(1, o.bindGroup, nil)
	r.framePass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)
	r.framePass.SetIndexBuffer(m.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	r.framePass.DrawIndexed(uint32(m.indexCount), 1, 0, 0, 0)

	return nil
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.framePass.End()

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.frameEncoder.Release()
		r.frameView.Release()
		r.frameSurface.Release()
		r.frameEncoder = nil
		r.framePass = nil
		r.frameSurface = nil
		r.frameView = nil
		return
	}

	r.queue.Submit(commandBuffer)

	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil
	r.framePass = nil
}

func (r *renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface == nil {
		return
	}

	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}
