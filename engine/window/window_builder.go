package window

// WindowBuilderOption is a functional option for configuring a Window during
// construction.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// NewWindow creates the platform window with the provided options applied.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Window: the created window
//   - error: error if platform window creation fails
func NewWindow(opts ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "Cow World",
		width:  1280,
		height: 720,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}
