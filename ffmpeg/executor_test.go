package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"
)

type recordingIndicator struct {
	deltas   []float64
	finished int
	ok       bool
}

func (r *recordingIndicator) Advance(delta float64) { r.deltas = append(r.deltas, delta) }

func (r *recordingIndicator) Finish(ok bool) {
	r.finished++
	r.ok = ok
}

func (r *recordingIndicator) total() float64 {
	sum := 0.0
	for _, d := range r.deltas {
		sum += d
	}
	return sum
}

func writeFFmpegStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	return path
}

func newTestRunner(binary string, ind *recordingIndicator) *Runner {
	return NewRunner(binary, func(Job) Indicator { return ind }, nil)
}

func TestExecuteTracksProgress(t *testing.T) {
	stub := writeFFmpegStub(t, `echo "frame=1"
echo "out_time_us=N/A"
echo ""
echo "out_time_us=1000000"
echo "progress=continue"
echo "out_time_us=2500000"
printf "out_time_us=4000000"
`)
	ind := &recordingIndicator{}
	job := Job{Args: []string{"-i", "in.mp4", "out.gif"}, Total: 4, Description: "gif encode", Output: "out.gif"}

	res, err := newTestRunner(stub, ind).Execute(context.Background(), job)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if res.Output != "out.gif" || res.ExitCode != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !slices.Equal(ind.deltas, []float64{1, 1.5, 1.5}) {
		t.Fatalf("unexpected advances %v", ind.deltas)
	}
	if ind.finished != 1 || !ind.ok {
		t.Fatalf("expected one successful finish, got %d ok=%v", ind.finished, ind.ok)
	}
}

func TestExecuteNeverMovesBackwards(t *testing.T) {
	stub := writeFFmpegStub(t, `echo "out_time_us=3000000"
echo "out_time_us=2000000"
echo "out_time_us=-500"
echo "out_time_us=3500000"
`)
	ind := &recordingIndicator{}
	_, err := newTestRunner(stub, ind).Execute(context.Background(), Job{Args: []string{"x"}, Total: 5, Description: "trim"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	for _, d := range ind.deltas {
		if d <= 0 {
			t.Fatalf("non-positive advance in %v", ind.deltas)
		}
	}
	if ind.total() != 3.5 {
		t.Fatalf("expected cumulative advance 3.5, got %v", ind.total())
	}
}

func TestExecuteWithoutMarkersAdvancesNothing(t *testing.T) {
	stub := writeFFmpegStub(t, "echo out_time_us=N/A\n")
	ind := &recordingIndicator{}
	if _, err := newTestRunner(stub, ind).Execute(context.Background(), Job{Args: []string{"x"}, Total: 5, Description: "trim"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(ind.deltas) != 0 {
		t.Fatalf("expected no advances, got %v", ind.deltas)
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	stub := writeFFmpegStub(t, `echo "out_time_us=500000"
echo "in.mp4: Invalid data found when processing input" >&2
exit 2
`)
	ind := &recordingIndicator{}
	job := Job{Args: []string{"-i", "in.mp4"}, Total: 2, Description: "trim", Output: "in_trimmed.mp4"}

	res, err := newTestRunner(stub, ind).Execute(context.Background(), job)
	var subErr *SubprocessError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubprocessError, got %v", err)
	}
	if subErr.ExitCode != 2 || res.ExitCode != 2 {
		t.Fatalf("expected exit code 2, got %d / %d", subErr.ExitCode, res.ExitCode)
	}
	if subErr.Description != "trim" {
		t.Fatalf("unexpected description %q", subErr.Description)
	}
	if !slices.Contains(subErr.Output, "in.mp4: Invalid data found when processing input") {
		t.Fatalf("expected stderr line in diagnostics, got %v", subErr.Output)
	}
	if !strings.Contains(subErr.Error(), "trim failed (exit code 2)") {
		t.Fatalf("unexpected message %q", subErr.Error())
	}
	if ind.finished != 1 || ind.ok {
		t.Fatalf("expected one failed finish, got %d ok=%v", ind.finished, ind.ok)
	}
}

func TestExecutePassesArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	stub := writeFFmpegStub(t, `printf '%s\n' "$@" > "`+argsFile+`"
`)
	job := TrimJob("in.mp4", windowForTest(2, 7), TrimOptions{})
	if _, err := newTestRunner(stub, &recordingIndicator{}).Execute(context.Background(), job); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	if !slices.Equal(got, job.Args) {
		t.Fatalf("ffmpeg received %q, want %q", got, job.Args)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	ind := &recordingIndicator{}
	r := newTestRunner(filepath.Join(t.TempDir(), "no-ffmpeg"), ind)
	_, err := r.Execute(context.Background(), Job{Args: []string{"x"}, Description: "trim"})
	var subErr *SubprocessError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubprocessError, got %v", err)
	}
	if subErr.ExitCode != -1 {
		t.Fatalf("expected exit code -1, got %d", subErr.ExitCode)
	}
	if ind.finished != 0 {
		t.Fatal("indicator should not be created when the process never started")
	}
}

func TestExecuteEmptyArgs(t *testing.T) {
	_, err := NewRunner("", nil, nil).Execute(context.Background(), Job{Description: "trim"})
	var subErr *SubprocessError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubprocessError, got %v", err)
	}
}

func TestExecuteCancellationKillsProcess(t *testing.T) {
	stub := writeFFmpegStub(t, `echo "out_time_us=1000000"
exec sleep 5
`)
	ind := &recordingIndicator{}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := newTestRunner(stub, ind).Execute(ctx, Job{Args: []string{"x"}, Total: 10, Description: "gif encode"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	var subErr *SubprocessError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubprocessError wrapper, got %T", err)
	}
	if time.Since(started) > 4*time.Second {
		t.Fatal("cancellation did not stop the subprocess")
	}
	if ind.finished != 1 || ind.ok {
		t.Fatalf("expected failed finish, got %d ok=%v", ind.finished, ind.ok)
	}
}

func TestSubprocessErrorMessage(t *testing.T) {
	err := &SubprocessError{Description: "gif encode", ExitCode: -1, Err: context.Canceled, Output: []string{"last line"}}
	want := "gif encode failed: context canceled\nlast line"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
