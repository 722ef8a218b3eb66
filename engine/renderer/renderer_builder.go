package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a functional option applied to a renderer during
// construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames
// are delivered to the display. The default is VSync.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		switch mode {
		case PresentModeVSync:
			r.presentMode = wgpu.PresentModeFifo
		case PresentModeUncapped:
			fallthrough
		default:
			r.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff or MSAA4x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.sampleCount = count
	}
}

// WithClearColor sets the background color used when clearing the surface
// each frame.
//
// Parameters:
//   - red: red channel in [0, 1]
//   - green: green channel in [0, 1]
//   - blue: blue channel in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(red, green, blue float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: 1.0}
	}
}

// WithMaxBones sets the bone matrix capacity allocated per skinned object.
// When not specified, the default is 100.
//
// Parameters:
//   - maxBones: the maximum number of bone matrices
//
// Returns:
//   - RendererBuilderOption: a function that applies the max bones option to a renderer
func WithMaxBones(maxBones int) RendererBuilderOption {
	return func(r *renderer) {
		if maxBones > 0 {
			r.maxBones = maxBones
		}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback
// adapter instead of hardware GPU acceleration. This requires a software
// Vulkan ICD to be installed on the system (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
