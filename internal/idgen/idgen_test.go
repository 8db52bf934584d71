// internal/idgen/idgen_test.go
package idgen

import (
	"strings"
	"testing"
)

func TestPrefixed(t *testing.T) {
	gen := Prefixed("beat_")

	a := gen()
	b := gen()

	if !strings.HasPrefix(a, "beat_") {
		t.Errorf("id %q missing prefix", a)
	}
	if a == b {
		t.Error("consecutive ids should differ")
	}
}

func TestGenerators(t *testing.T) {
	cases := map[string]struct {
		gen    Generator
		prefix string
	}{
		"character": {NewCharacterID, "char_"},
		"location":  {NewLocationID, "loc_"},
		"beat":      {NewBeatID, "beat_"},
		"story":     {NewStoryID, "story_"},
	}

	for name, tc := range cases {
		if id := tc.gen(); !strings.HasPrefix(id, tc.prefix) {
			t.Errorf("%s id %q missing prefix %q", name, id, tc.prefix)
		}
	}
}
