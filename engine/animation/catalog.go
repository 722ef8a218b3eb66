package animation

import (
	"fmt"

	"github.com/Carmen-Shannon/cow-world/engine/model"
)

// Catalog indexes every animation in a source asset by metadata alone, and
// loads full clips by name on demand. The metadata list is immutable after
// construction.
type Catalog struct {
	src        Source
	table      *model.BoneInfoTable
	defaultTPS float32
	entries    []model.ClipInfo
}

// NewCatalog scans the source once and records each animation's metadata.
//
// Parameters:
//   - src: the imported asset
//   - table: the skeletal model's shared bone registry, used by every load
//   - defaultTPS: tick rate substituted when an animation reports zero
//
// Returns:
//   - *Catalog: the constructed catalog
//   - error: error if the source contains no animations or metadata cannot
//     be read
func NewCatalog(src Source, table *model.BoneInfoTable, defaultTPS float32) (*Catalog, error) {
	n := src.AnimationCount()
	if n == 0 {
		return nil, ErrNoAnimations
	}

	entries := make([]model.ClipInfo, 0, n)
	for i := 0; i < n; i++ {
		info, err := src.AnimationInfo(i)
		if err != nil {
			return nil, fmt.Errorf("scanning animation %d: %w", i, err)
		}
		entries = append(entries, info)
	}

	return &Catalog{
		src:        src,
		table:      table,
		defaultTPS: defaultTPS,
		entries:    entries,
	}, nil
}

// Entries returns the metadata of every indexed animation, in source order.
//
// Returns:
//   - []model.ClipInfo: the metadata list; callers must not modify it
func (c *Catalog) Entries() []model.ClipInfo {
	return c.entries
}

// Load finds an animation by exact name and performs a full clip load.
// Lookup is case-sensitive and first-match: when the source contains
// duplicate names only the first is reachable. A failed lookup or load is an
// ordinary error for the caller to handle, never fatal.
//
// Parameters:
//   - name: the animation name as authored in the asset
//
// Returns:
//   - *Clip: the loaded clip
//   - error: ErrAnimationNotFound if no entry matches, or the load error
func (c *Catalog) Load(name string) (*Clip, error) {
	for i, e := range c.entries {
		if e.Name == name {
			return LoadClip(c.src, i, c.defaultTPS, c.table)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
}
