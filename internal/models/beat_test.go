// internal/models/beat_test.go
package models

import "testing"

func TestBeatLabel(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "0A"},
		{27, "0B"},
		{51, "0Z"},
		{52, "1A"},
		{77, "1Z"},
		{78, "2A"},
	}

	for _, tc := range cases {
		if got := BeatLabel(tc.index); got != tc.want {
			t.Errorf("BeatLabel(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

func TestBeatLabelNegativeIndex(t *testing.T) {
	if got := BeatLabel(-1); got != "" {
		t.Errorf("BeatLabel(-1) = %q, want empty", got)
	}
}
