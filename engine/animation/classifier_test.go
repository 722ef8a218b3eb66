package animation

import "testing"

func TestClassifyBoneNames(t *testing.T) {
	c := NewClassifier(
		[]string{"DEF-head", "DEF-skull", "DEF-neck", "DEF-ear"},
		[]string{"DEF-tail"},
	)

	cases := []struct {
		name string
		want BoneClass
	}{
		{"DEF-head", ClassHead},
		{"DEF-head.001", ClassHead},
		{"DEF-ear.L", ClassHead},
		{"DEF-tail", ClassTail},
		{"DEF-tail.003", ClassTail},
		{"DEF-spine", ClassLocomotion},
		{"Torso", ClassLocomotion},
		{"", ClassLocomotion},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.name); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHeadFiltersCheckedBeforeTail(t *testing.T) {
	// A name matching both lists classifies as head.
	c := NewClassifier([]string{"DEF-"}, []string{"DEF-tail"})
	if got := c.Classify("DEF-tail"); got != ClassHead {
		t.Errorf("Classify = %v, want ClassHead when both lists match", got)
	}
}

func TestEmptyFiltersDefaultToLocomotion(t *testing.T) {
	c := NewClassifier(nil, nil)
	if got := c.Classify("DEF-head"); got != ClassLocomotion {
		t.Errorf("Classify = %v, want ClassLocomotion with no filters", got)
	}
}
