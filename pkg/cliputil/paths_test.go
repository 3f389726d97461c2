package cliputil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrimmedPath(t *testing.T) {
	tests := []struct {
		in, suffix, want string
	}{
		{"/videos/match.mp4", "", "/videos/match_trimmed.mp4"},
		{"/videos/match.final.mkv", "_cut", "/videos/match.final_cut.mkv"},
		{"clip", "", "clip_trimmed"},
	}
	for _, tt := range tests {
		if got := TrimmedPath(tt.in, tt.suffix); got != tt.want {
			t.Fatalf("TrimmedPath(%q, %q) = %q, want %q", tt.in, tt.suffix, got, tt.want)
		}
	}
}

func TestEncodedPath(t *testing.T) {
	tests := []struct {
		in, ext, want string
	}{
		{"/videos/match.mp4", "", "/videos/match.gif"},
		{"/videos/match_trimmed.mov", ".gif", "/videos/match_trimmed.gif"},
		{"/videos/match.mp4", "webp", "/videos/match.webp"},
		{"clip", "", "clip.gif"},
	}
	for _, tt := range tests {
		if got := EncodedPath(tt.in, tt.ext); got != tt.want {
			t.Fatalf("EncodedPath(%q, %q) = %q, want %q", tt.in, tt.ext, got, tt.want)
		}
	}
}

func TestRemovePartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.gif")
	if err := os.WriteFile(path, []byte("GIF89a"), 0o644); err != nil {
		t.Fatalf("write partial: %v", err)
	}
	if err := RemovePartial(path); err != nil {
		t.Fatalf("RemovePartial returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected partial output to be removed, stat err = %v", err)
	}
	if err := RemovePartial(path); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if err := RemovePartial(""); err != nil {
		t.Fatalf("expected empty path to be ignored, got %v", err)
	}
}
