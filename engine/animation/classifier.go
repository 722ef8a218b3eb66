package animation

import (
	"strings"
)

// BoneClass is the body region a bone belongs to for layered playback.
type BoneClass int

const (
	// ClassLocomotion covers every bone not claimed by a filter list; the
	// primary layer owns these.
	ClassLocomotion BoneClass = iota

	// ClassHead covers bones matched by the head filter list.
	ClassHead

	// ClassTail covers bones matched by the tail filter list.
	ClassTail
)

// Classifier assigns each bone name to exactly one BoneClass by substring
// matching against two configured name-fragment lists. Head fragments are
// checked before tail fragments; a name matching neither is Locomotion.
type Classifier struct {
	headFilters []string
	tailFilters []string
}

// NewClassifier constructs a classifier from the configured fragment lists.
//
// Parameters:
//   - headFilters: name fragments marking head bones
//   - tailFilters: name fragments marking tail bones
//
// Returns:
//   - *Classifier: the classifier
func NewClassifier(headFilters, tailFilters []string) *Classifier {
	return &Classifier{
		headFilters: headFilters,
		tailFilters: tailFilters,
	}
}

// Classify returns the class of a bone name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - BoneClass: ClassHead, ClassTail, or ClassLocomotion
func (c *Classifier) Classify(name string) BoneClass {
	for _, f := range c.headFilters {
		if strings.Contains(name, f) {
			return ClassHead
		}
	}
	for _, f := range c.tailFilters {
		if strings.Contains(name, f) {
			return ClassTail
		}
	}
	return ClassLocomotion
}
