package naming

import (
	"fmt"
	"testing"
)

func TestUniquify_FirstRequestUnchanged(t *testing.T) {
	u := NewUniquifier()
	if got := u.Uniquify("icon.png"); got != "icon.png" {
		t.Errorf("got %q, want icon.png", got)
	}
}

func TestUniquify_Duplicates(t *testing.T) {
	u := NewUniquifier()
	requests := []string{"icon.png", "icon.png", "icon.png", "logo", "logo"}
	want := []string{"icon.png", "icon_1.png", "icon_2.png", "logo", "logo_1"}

	for i, req := range requests {
		if got := u.Uniquify(req); got != want[i] {
			t.Errorf("request %d (%q): got %q, want %q", i, req, got, want[i])
		}
	}
}

func TestUniquify_SuffixCollision(t *testing.T) {
	// A literal "icon_1.png" claimed first forces the duplicate of
	// "icon.png" to skip to _2.
	u := NewUniquifier()
	u.Uniquify("icon_1.png")
	u.Uniquify("icon.png")
	if got := u.Uniquify("icon.png"); got != "icon_2.png" {
		t.Errorf("got %q, want icon_2.png", got)
	}
}

func TestUniquify_Deterministic(t *testing.T) {
	requests := []string{"a.png", "b.png", "a.png", "a.png", "b.png", "c"}

	run := func() []string {
		u := NewUniquifier()
		out := make([]string, len(requests))
		for i, r := range requests {
			out[i] = u.Uniquify(r)
		}
		return out
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("request %d: run1 %q != run2 %q", i, first[i], second[i])
		}
	}
}

func TestUniquify_GlobalUniqueness(t *testing.T) {
	u := NewUniquifier()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		name := fmt.Sprintf("asset%d.png", i%7)
		got := u.Uniquify(name)
		if seen[got] {
			t.Fatalf("duplicate filename handed out: %q", got)
		}
		seen[got] = true
	}
}

func TestCleanName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"icon", "icon"},
		{"toolbar/save", "toolbar-save"},
		{"  spaced   name  ", "spaced name"},
		{"--edge--", "edge"},
		{"", "unnamed"},
		{"back\\slash", "back-slash"},
	}
	for _, tc := range cases {
		if got := CleanName(tc.in); got != tc.want {
			t.Errorf("CleanName(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestImageFilename(t *testing.T) {
	cases := []struct {
		name, state string
		scale       int
		want        string
	}{
		{"icon", "", 1, "icon.png"},
		{"icon", "", 2, "icon@2x.png"},
		{"icon", "selected", 3, "icon-selected@3x.png"},
		{"tool/brush", "", 1, "tool-brush.png"},
	}
	for _, tc := range cases {
		if got := ImageFilename(tc.name, tc.state, tc.scale); got != tc.want {
			t.Errorf("ImageFilename(%q,%q,%d): got %q, want %q", tc.name, tc.state, tc.scale, got, tc.want)
		}
	}
}

func TestVectorFilename(t *testing.T) {
	got := VectorFilename("glyph", "bold", 24, "template")
	if got != "glyph-bold-24-template.pdf" {
		t.Errorf("got %q", got)
	}
	if got := VectorFilename("glyph", "", 0, ""); got != "glyph.pdf" {
		t.Errorf("plain: got %q", got)
	}
}

func TestIsPackedAsset(t *testing.T) {
	if !IsPackedAsset("ZZZZPackedAsset-1.0-gamut0.png") {
		t.Error("packed asset not detected")
	}
	if IsPackedAsset("icon.png") {
		t.Error("regular asset misdetected as packed")
	}
}
