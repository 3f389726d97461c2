package cliputil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultTrimmedSuffix is appended to the base name of a trimmed copy.
	DefaultTrimmedSuffix = "_trimmed"
	// GifExtension is the extension of the final animated image.
	GifExtension = ".gif"
)

// TrimmedPath returns the path of the trimmed copy of videoPath, written alongside it.
// The original extension is kept so a copy-mode trim stays in the source container.
// For example, "/path/to/match.mp4" returns "/path/to/match_trimmed.mp4".
func TrimmedPath(videoPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultTrimmedSuffix
	}
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + suffix + ext
}

// EncodedPath replaces the extension of videoPath with ext.
// For example, "/path/to/match_trimmed.mp4" returns "/path/to/match_trimmed.gif".
func EncodedPath(videoPath, ext string) string {
	if ext == "" {
		ext = GifExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ext
}

// RemovePartial deletes an output file left behind by a failed ffmpeg run.
// A missing file is not an error.
func RemovePartial(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove partial output %s: %w", path, err)
	}
	return nil
}
