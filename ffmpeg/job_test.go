package ffmpeg

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/user/vid2gif-cli/probe"
	"github.com/user/vid2gif-cli/trim"
)

func TestTrimJob(t *testing.T) {
	job := TrimJob("/videos/match.mov", trim.Window{Start: 5, End: 15, Source: 20}, TrimOptions{})

	if job.Output != "/videos/match_trimmed.mov" {
		t.Fatalf("unexpected output %q", job.Output)
	}
	if job.Total != 10 {
		t.Fatalf("expected total 10, got %v", job.Total)
	}
	if job.Description != "trim" {
		t.Fatalf("unexpected description %q", job.Description)
	}
	want := []string{
		"-hide_banner", "-nostats", "-loglevel", "error", "-progress", "pipe:1", "-y",
		"-ss", "5.000", "-to", "15.000",
		"-i", "/videos/match.mov",
		"-c", "copy",
		"/videos/match_trimmed.mov",
	}
	if !slices.Equal(job.Args, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", job.Args, want)
	}
}

func TestTrimJobCustomSuffix(t *testing.T) {
	job := TrimJob("clip.mp4", trim.Window{Start: 0, End: 1, Source: 1}, TrimOptions{Suffix: "_cut"})
	if job.Output != "clip_cut.mp4" {
		t.Fatalf("unexpected output %q", job.Output)
	}
}

func TestEncodeJob(t *testing.T) {
	tests := []struct {
		name     string
		opts     EncodeOptions
		wantVF   string
		wantLoop string
	}{
		{"defaults", EncodeOptions{Loop: true}, "fps=24", "0"},
		{"play once", EncodeOptions{FrameRate: 12.5}, "fps=12.5", "-1"},
		{"scaled", EncodeOptions{FrameRate: 10, Loop: true, ScaleWidth: 480}, "fps=10,scale=480:-1:flags=lanczos", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := EncodeJob("/videos/match_trimmed.mov", 10, tt.opts)
			if job.Output != "/videos/match_trimmed.gif" {
				t.Fatalf("unexpected output %q", job.Output)
			}
			if job.Total != 10 {
				t.Fatalf("expected total 10, got %v", job.Total)
			}
			want := []string{
				"-hide_banner", "-nostats", "-loglevel", "error", "-progress", "pipe:1", "-y",
				"-i", "/videos/match_trimmed.mov",
				"-vf", tt.wantVF,
				"-loop", tt.wantLoop,
				"/videos/match_trimmed.gif",
			}
			if !slices.Equal(job.Args, want) {
				t.Fatalf("unexpected args:\n got %q\nwant %q", job.Args, want)
			}
		})
	}
}

type fakeProber struct {
	durations map[string]probe.Duration
	calls     []string
}

func (f *fakeProber) Probe(_ context.Context, path string) (probe.Duration, error) {
	f.calls = append(f.calls, path)
	d, ok := f.durations[path]
	if !ok {
		return 0, &probe.ProbeError{Path: path, Err: errors.New("no such file")}
	}
	return d, nil
}

func TestBuilderEncodeReprobesInput(t *testing.T) {
	prober := &fakeProber{durations: map[string]probe.Duration{"in_trimmed.mp4": 10}}
	b := &Builder{Prober: prober}

	job, err := b.Encode(context.Background(), "in_trimmed.mp4", EncodeOptions{Loop: true})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if job.Total != 10 {
		t.Fatalf("expected total from probe, got %v", job.Total)
	}
	if len(prober.calls) != 1 || prober.calls[0] != "in_trimmed.mp4" {
		t.Fatalf("expected one probe of the encode input, got %v", prober.calls)
	}

	_, err = b.Encode(context.Background(), "missing.mp4", EncodeOptions{})
	var probeErr *probe.ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
}

func windowForTest(start, end float64) trim.Window {
	w, err := trim.Plan(end+1, start, 1)
	if err != nil {
		panic(err)
	}
	return w
}

func TestTrimJobNeverCollapsesWindow(t *testing.T) {
	w, err := trim.Plan(10, 4.9994, 4.9)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	job := TrimJob("in.mp4", w, TrimOptions{})
	var ss, to string
	for i := 0; i+1 < len(job.Args); i++ {
		switch job.Args[i] {
		case "-ss":
			ss = job.Args[i+1]
		case "-to":
			to = job.Args[i+1]
		}
	}
	if ss != "4.999" || to != "5.100" {
		t.Fatalf("-ss %s -to %s, want -ss 4.999 -to 5.100", ss, to)
	}
}
