package resource

import (
	"path/filepath"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{".", ""},
		{"styles", "styles"},
		{"/styles", "styles"},
		{"styles/", "styles"},
		{"styles//icons", "styles/icons"},
		{"styles/./icons", "styles/icons"},
		{"styles/../workspaces", "workspaces"},
		{"..", ""},
		{"../../etc", "etc"},
		{"styles\\icons", "styles/icons"},
	}

	for _, tt := range tests {
		got := Clean(tt.in)
		if got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParentBase(t *testing.T) {
	tests := []struct {
		in     string
		parent string
		base   string
	}{
		{"", "", ""},
		{"styles", "", "styles"},
		{"styles/icons/city.png", "styles/icons", "city.png"},
	}

	for _, tt := range tests {
		if got := Parent(tt.in); got != tt.parent {
			t.Errorf("Parent(%q) = %q, want %q", tt.in, got, tt.parent)
		}
		if got := Base(tt.in); got != tt.base {
			t.Errorf("Base(%q) = %q, want %q", tt.in, got, tt.base)
		}
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"styles", "icons"}, "styles/icons"},
		{[]string{"", "styles"}, "styles"},
		{[]string{"styles", ".."}, ""},
		{[]string{"styles/", "/icons/"}, "styles/icons"},
	}

	for _, tt := range tests {
		got := Join(tt.parts...)
		if got != tt.want {
			t.Errorf("Join(%v) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"styles/icon.png", "styles/icon.png", true},
		{"/styles/", "styles", true},
		{"", "", true},
		{"styles/ic*on.png", "", false},
		{`back"up`, "", false},
		{"a:b", "", false},
	}

	for _, tt := range tests {
		got, err := Valid(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("Valid(%q) error = %v, want ok %v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("Valid(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveConvert(t *testing.T) {
	base := filepath.Join("data", "store")

	file := Resolve(base, "styles/icon.png")
	want := filepath.Join(base, "styles", "icon.png")
	if file != want {
		t.Fatalf("Resolve = %q, want %q", file, want)
	}

	path, ok := Convert(base, file)
	if !ok || path != "styles/icon.png" {
		t.Errorf("Convert = %q, %v, want styles/icon.png, true", path, ok)
	}

	if Resolve(base, "") != filepath.Clean(base) {
		t.Errorf("Resolve of root should be the base directory")
	}

	if _, ok := Convert(base, filepath.Join("data", "elsewhere", "x")); ok {
		t.Errorf("Convert should reject locations outside the base directory")
	}
}
