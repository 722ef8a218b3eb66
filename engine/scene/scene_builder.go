package scene

// SceneBuilderOption is a functional option for configuring a Scene during
// construction. Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithClipWorkers sets the number of worker goroutines used for
// off-tick animation clip loading. Defaults to 2.
//
// Parameters:
//   - n: the number of clip loading workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClipWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.clipWorkers = n
	}
}

// WithActiveCamera sets the camera slot active at startup. Out-of-range
// values are ignored.
//
// Parameters:
//   - index: 0 free, 1 follow, 2 first-person
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActiveCamera(index int) SceneBuilderOption {
	return func(s *scene) {
		if index >= 0 && index < cameraCount {
			s.activeCamera = index
		}
	}
}
