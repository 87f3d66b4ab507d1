package view

import (
	"strings"
	"testing"
)

func TestIconSVGFallsBackToDefault(t *testing.T) {
	got := string(IconSVG("does-not-exist"))
	want := string(IconSVG("default"))
	if got != want {
		t.Fatalf("expected unknown icon to render the default icon")
	}
}

func TestIconSVGIsCaseInsensitive(t *testing.T) {
	if IconSVG("Clock") != IconSVG("clock") {
		t.Fatal("expected icon lookup to ignore case")
	}
	if !strings.HasPrefix(string(IconSVG("clock")), "<svg") {
		t.Fatal("expected inline svg markup")
	}
}

func TestHasIcon(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "", want: true},
		{key: "shield", want: true},
		{key: " Tooth ", want: true},
		{key: "rocket", want: false},
	}

	for _, tt := range tests {
		if got := HasIcon(tt.key); got != tt.want {
			t.Fatalf("HasIcon(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIconOptionsSorted(t *testing.T) {
	options := IconOptions()
	for i := 1; i < len(options); i++ {
		if options[i-1].Key > options[i].Key {
			t.Fatalf("expected options sorted by key, got %q before %q", options[i-1].Key, options[i].Key)
		}
	}
}
