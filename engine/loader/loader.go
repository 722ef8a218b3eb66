package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/cow-world/engine/animation"
	"github.com/Carmen-Shannon/cow-world/engine/model"

	"github.com/qmuntal/gltf"
)

// ErrUnsupportedFormat is returned for file extensions the loader has no
// backend for.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	ticksPerSecond float32

	skeletalCache map[string]*model.SkeletalModel
	staticCache   map[string]*model.StaticModel
}

// Loader defines the public-facing interface for importing 3D assets.
// It abstracts the file format (glTF/GLB) and caches previously imported
// models by path.
type Loader interface {
	// LoadSkeletal imports an animated model: skinned meshes, the node
	// hierarchy, and the bone registry populated from the asset's skin.
	// Results are cached by path.
	//
	// Parameters:
	//   - path: the model file path (.gltf or .glb)
	//
	// Returns:
	//   - *model.SkeletalModel: the imported model
	//   - error: error if the file cannot be read or parsed
	LoadSkeletal(path string) (*model.SkeletalModel, error)

	// LoadStatic imports a non-animated model with its bounding box.
	// Results are cached by path.
	//
	// Parameters:
	//   - path: the model file path (.gltf or .glb)
	//
	// Returns:
	//   - *model.StaticModel: the imported model
	//   - error: error if the file cannot be read or parsed
	LoadStatic(path string) (*model.StaticModel, error)

	// OpenSource opens an asset as an animation source for catalog scans
	// and clip loads. Sources are not cached; clip data is decoded lazily
	// per load.
	//
	// Parameters:
	//   - path: the model file path (.gltf or .glb)
	//
	// Returns:
	//   - animation.Source: the opened source
	//   - error: error if the file cannot be read or parsed
	OpenSource(path string) (animation.Source, error)
}

var _ Loader = &loader{}

// LoaderBuilderOption is a functional option for configuring a Loader during
// construction.
type LoaderBuilderOption func(*loader)

// WithTicksPerSecond is an option builder that sets the tick rate animation
// timestamps are converted to at import. Assets carry timestamps in seconds;
// the importer rescales them so the animation core works in ticks.
//
// Parameters:
//   - tps: ticks per second
//
// Returns:
//   - LoaderBuilderOption: a function that applies the tick rate option
func WithTicksPerSecond(tps float32) LoaderBuilderOption {
	return func(l *loader) {
		l.ticksPerSecond = tps
	}
}

// NewLoader creates a new Loader with the provided options applied.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Loader: the configured loader
func NewLoader(opts ...LoaderBuilderOption) Loader {
	l := &loader{
		ticksPerSecond: 25,
		skeletalCache:  make(map[string]*model.SkeletalModel),
		staticCache:    make(map[string]*model.StaticModel),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *loader) LoadSkeletal(path string) (*model.SkeletalModel, error) {
	l.mu.RLock()
	if m, ok := l.skeletalCache[path]; ok {
		l.mu.RUnlock()
		return m, nil
	}
	l.mu.RUnlock()

	doc, err := openDocument(path)
	if err != nil {
		return nil, err
	}
	m, err := importSkeletal(doc, path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.skeletalCache[path] = m
	l.mu.Unlock()
	return m, nil
}

func (l *loader) LoadStatic(path string) (*model.StaticModel, error) {
	l.mu.RLock()
	if m, ok := l.staticCache[path]; ok {
		l.mu.RUnlock()
		return m, nil
	}
	l.mu.RUnlock()

	doc, err := openDocument(path)
	if err != nil {
		return nil, err
	}
	m, err := importStatic(doc, path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.staticCache[path] = m
	l.mu.Unlock()
	return m, nil
}

func (l *loader) OpenSource(path string) (animation.Source, error) {
	doc, err := openDocument(path)
	if err != nil {
		return nil, err
	}
	return newGltfSource(doc, l.ticksPerSecond), nil
}

func openDocument(path string) (*gltf.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
