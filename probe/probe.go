// Package probe queries ffprobe for the container duration of a media file.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Duration is a media duration in seconds.
type Duration float64

// Seconds returns the duration as a plain float.
func (d Duration) Seconds() float64 { return float64(d) }

// ProbeError reports that no usable duration could be read for a file.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

var (
	errNoDuration  = errors.New("format metadata has no duration")
	errNoVideo     = errors.New("no video stream found")
	errBadDuration = errors.New("duration is not a non-negative number")
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index        int    `json:"index"`
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			count++
		}
	}
	return count
}

// DurationSeconds parses format.duration.
func (r Result) DurationSeconds() (float64, error) {
	raw := strings.TrimSpace(r.Format.Duration)
	if raw == "" || strings.EqualFold(raw, "N/A") {
		return 0, errNoDuration
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("%w: %q", errBadDuration, raw)
	}
	return value, nil
}

// Prober runs ffprobe. The zero value uses "ffprobe" from PATH.
type Prober struct {
	Binary string
}

// New returns a Prober for the given ffprobe binary.
func New(binary string) *Prober {
	return &Prober{Binary: binary}
}

// Inspect executes ffprobe against path and decodes the JSON response.
func (p *Prober) Inspect(ctx context.Context, path string) (Result, error) {
	binary := "ffprobe"
	if p != nil && strings.TrimSpace(p.Binary) != "" {
		binary = strings.TrimSpace(p.Binary)
	}
	if strings.TrimSpace(path) == "" {
		return Result{}, &ProbeError{Path: path, Err: errors.New("empty path")}
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, &ProbeError{Path: path, Err: err}
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, &ProbeError{Path: path, Err: fmt.Errorf("parse ffprobe output: %w", err)}
	}
	return result, nil
}

// Probe returns the total duration of the media file at path. Files without a
// video stream or without a parseable duration fail with a *ProbeError.
func (p *Prober) Probe(ctx context.Context, path string) (Duration, error) {
	result, err := p.Inspect(ctx, path)
	if err != nil {
		return 0, err
	}
	if result.VideoStreamCount() == 0 {
		return 0, &ProbeError{Path: path, Err: errNoVideo}
	}
	seconds, err := result.DurationSeconds()
	if err != nil {
		return 0, &ProbeError{Path: path, Err: err}
	}
	return Duration(seconds), nil
}
