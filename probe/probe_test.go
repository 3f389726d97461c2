package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	return path
}

func TestResultDurationSeconds(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"123.45", 123.45, false},
		{"0", 0, false},
		{"", 0, true},
		{"N/A", 0, true},
		{"bad", 0, true},
		{"-1", 0, true},
	}
	for _, tt := range tests {
		got, err := Result{Format: Format{Duration: tt.raw}}.DurationSeconds()
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("duration for %q = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestProbeReadsFormatDuration(t *testing.T) {
	stub := writeStub(t, `cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"},{"index":1,"codec_type":"audio"}],
 "format":{"filename":"in.mp4","duration":"20.000000","format_name":"mov,mp4"}}
JSON
`)
	d, err := New(stub).Probe(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if d.Seconds() != 20 {
		t.Fatalf("expected 20s, got %v", d.Seconds())
	}
}

func TestProbeMissingDuration(t *testing.T) {
	stub := writeStub(t, `echo '{"streams":[{"codec_type":"video"}],"format":{"filename":"in.mp4"}}'
`)
	_, err := New(stub).Probe(context.Background(), "in.mp4")
	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
	if !errors.Is(err, errNoDuration) {
		t.Fatalf("expected missing duration cause, got %v", err)
	}
}

func TestProbeNoVideoStream(t *testing.T) {
	stub := writeStub(t, `echo '{"streams":[{"codec_type":"audio"}],"format":{"duration":"3.0"}}'
`)
	_, err := New(stub).Probe(context.Background(), "song.mp3")
	if !errors.Is(err, errNoVideo) {
		t.Fatalf("expected no video error, got %v", err)
	}
}

func TestProbeCommandFailure(t *testing.T) {
	stub := writeStub(t, `echo "in.mp4: No such file or directory" >&2
exit 1
`)
	_, err := New(stub).Probe(context.Background(), "in.mp4")
	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
	if probeErr.Path != "in.mp4" {
		t.Fatalf("unexpected path in error: %q", probeErr.Path)
	}
}

func TestProbeInvalidJSON(t *testing.T) {
	stub := writeStub(t, "echo not-json\n")
	_, err := New(stub).Probe(context.Background(), "in.mp4")
	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
}

func TestProbeEmptyPath(t *testing.T) {
	_, err := New("").Probe(context.Background(), " ")
	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
}
