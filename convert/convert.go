// Package convert runs the full video to GIF pipeline: validate the input,
// optionally trim it in copy mode, then encode the result as a GIF.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/user/vid2gif-cli/db"
	"github.com/user/vid2gif-cli/ffmpeg"
	"github.com/user/vid2gif-cli/logging"
	"github.com/user/vid2gif-cli/pkg/cliputil"
	"github.com/user/vid2gif-cli/trim"
)

// InputNotFoundError reports a video path that does not name a regular file.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input video %s not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("input video %s is not a regular file", e.Path)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// OutputConflictError reports a job whose output path would replace one of
// its inputs, for example converting a file that is already a GIF.
type OutputConflictError struct {
	Input  string
	Output string
}

func (e *OutputConflictError) Error() string {
	return fmt.Sprintf("output %s would overwrite input %s; rename or copy the input first", e.Output, e.Input)
}

// Executor runs a single ffmpeg job.
type Executor interface {
	Execute(ctx context.Context, job ffmpeg.Job) (ffmpeg.Result, error)
}

// Recorder persists the lifecycle of each run.
type Recorder interface {
	Start(c db.NewConversion) (string, error)
	Complete(id string, result db.ConversionResult) error
	Fail(id string, cause error) error
}

// Options configures both passes and the cleanup policy.
type Options struct {
	Trim   ffmpeg.TrimOptions
	Encode ffmpeg.EncodeOptions
	// KeepPartial leaves the output of a failed ffmpeg run on disk.
	KeepPartial bool
	// KeepTrimmed leaves the intermediate trimmed file after a successful encode.
	KeepTrimmed bool
	// LockDir holds per-input lock files; empty disables locking.
	LockDir string
}

// DefaultOptions returns 24 fps looping output that keeps the trimmed file.
func DefaultOptions() Options {
	return Options{
		Trim:        ffmpeg.TrimOptions{Suffix: cliputil.DefaultTrimmedSuffix},
		Encode:      ffmpeg.EncodeOptions{FrameRate: ffmpeg.DefaultFrameRate, Loop: true},
		KeepTrimmed: true,
	}
}

// Request is one conversion. Offsets are seconds from the start and from
// the end of the video.
type Request struct {
	Input       string
	StartOffset float64
	EndOffset   float64
}

// Outcome describes a finished conversion.
type Outcome struct {
	Output string
	// Trimmed is the intermediate file, empty when no trim ran or it was removed.
	Trimmed string
	// Window is set when a trim ran.
	Window *trim.Window
	// Duration of the encoded input in seconds.
	Duration float64
	Size     int64
}

// Converter wires probing, planning and execution together.
type Converter struct {
	Prober   ffmpeg.DurationProber
	Executor Executor
	// History is optional.
	History Recorder
	Logger  *slog.Logger
	Options Options
}

// New returns a Converter without history.
func New(prober ffmpeg.DurationProber, executor Executor, opts Options, logger *slog.Logger) *Converter {
	return &Converter{
		Prober:   prober,
		Executor: executor,
		Logger:   logging.WithComponent(logger, "convert"),
		Options:  opts,
	}
}

// Run converts req.Input to a GIF.
func (c *Converter) Run(ctx context.Context, req Request) (Outcome, error) {
	logger := c.logger().With(logging.String(logging.FieldPath, req.Input))

	if err := checkInput(req.Input); err != nil {
		return Outcome{}, err
	}
	if err := c.checkOutputs(req); err != nil {
		return Outcome{}, err
	}
	if c.Options.LockDir != "" {
		unlock, err := lockInput(c.Options.LockDir, req.Input)
		if err != nil {
			return Outcome{}, err
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("release lock failed", logging.Error(err))
			}
		}()
	}

	id := c.recordStart(logger, req)
	outcome, err := c.run(ctx, logger, req)
	if err != nil {
		c.recordFailure(logger, id, err)
		return Outcome{}, err
	}
	c.recordSuccess(logger, id, outcome)
	return outcome, nil
}

func (c *Converter) run(ctx context.Context, logger *slog.Logger, req Request) (Outcome, error) {
	var outcome Outcome
	source := req.Input

	if !trim.Skip(req.StartOffset, req.EndOffset) {
		duration, err := c.Prober.Probe(ctx, req.Input)
		if err != nil {
			return Outcome{}, err
		}
		window, err := trim.Plan(duration.Seconds(), req.StartOffset, req.EndOffset)
		if err != nil {
			return Outcome{}, err
		}
		logger.Info("trimming",
			logging.Float64("start_seconds", window.Start),
			logging.Float64("end_seconds", window.End),
		)
		job := ffmpeg.TrimJob(req.Input, window, c.Options.Trim)
		if err := c.execute(ctx, logger, job, req.Input); err != nil {
			return Outcome{}, err
		}
		source = job.Output
		outcome.Trimmed = job.Output
		outcome.Window = &window
	}

	builder := ffmpeg.Builder{Prober: c.Prober}
	job, err := builder.Encode(ctx, source, c.Options.Encode)
	if err != nil {
		return Outcome{}, err
	}
	if err := c.execute(ctx, logger, job, req.Input); err != nil {
		return Outcome{}, err
	}
	outcome.Output = job.Output
	outcome.Duration = job.Total

	if info, err := os.Stat(job.Output); err == nil {
		outcome.Size = info.Size()
	} else {
		logger.Warn("stat output failed", logging.String(logging.FieldPath, job.Output), logging.Error(err))
	}

	if outcome.Trimmed != "" && !c.Options.KeepTrimmed {
		if err := cliputil.RemovePartial(outcome.Trimmed); err != nil {
			logger.Warn("remove trimmed file failed", logging.String(logging.FieldPath, outcome.Trimmed), logging.Error(err))
		} else {
			outcome.Trimmed = ""
		}
	}
	return outcome, nil
}

// execute runs job and removes its partial output when ffmpeg fails. The
// output is never removed when it is the conversion input.
func (c *Converter) execute(ctx context.Context, logger *slog.Logger, job ffmpeg.Job, input string) error {
	_, err := c.Executor.Execute(ctx, job)
	if err == nil {
		return nil
	}
	if job.Output == "" || c.Options.KeepPartial {
		return err
	}
	if sameFile(job.Output, input) {
		logger.Warn("partial output is the input, not removing", logging.String(logging.FieldPath, job.Output))
		return err
	}
	var subErr *ffmpeg.SubprocessError
	if errors.As(err, &subErr) {
		if rmErr := cliputil.RemovePartial(job.Output); rmErr != nil {
			logger.Warn("remove partial output failed", logging.String(logging.FieldPath, job.Output), logging.Error(rmErr))
		} else {
			logger.Debug("removed partial output", logging.String(logging.FieldPath, job.Output))
		}
	}
	return err
}

// checkOutputs rejects requests whose trimmed copy or GIF would be written
// over the input or the trimmed copy.
func (c *Converter) checkOutputs(req Request) error {
	source := req.Input
	if !trim.Skip(req.StartOffset, req.EndOffset) {
		trimmed := cliputil.TrimmedPath(req.Input, c.Options.Trim.Suffix)
		if sameFile(trimmed, req.Input) {
			return &OutputConflictError{Input: req.Input, Output: trimmed}
		}
		source = trimmed
	}
	output := cliputil.EncodedPath(source, c.Options.Encode.Extension)
	for _, in := range []string{source, req.Input} {
		if sameFile(output, in) {
			return &OutputConflictError{Input: in, Output: output}
		}
	}
	return nil
}

// sameFile reports whether a and b name the same file. Paths that do not
// exist yet are compared in absolute form.
func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &InputNotFoundError{Path: path, Err: fs.ErrNotExist}
		}
		return &InputNotFoundError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &InputNotFoundError{Path: path}
	}
	return nil
}

func (c *Converter) recordStart(logger *slog.Logger, req Request) string {
	if c.History == nil {
		return ""
	}
	id, err := c.History.Start(db.NewConversion{
		InputPath:   req.Input,
		StartOffset: req.StartOffset,
		EndOffset:   req.EndOffset,
		FPS:         int(c.Options.Encode.FrameRate),
		Loop:        c.Options.Encode.Loop,
	})
	if err != nil {
		logger.Warn("history start failed", logging.Error(err))
		return ""
	}
	return id
}

func (c *Converter) recordSuccess(logger *slog.Logger, id string, outcome Outcome) {
	if c.History == nil || id == "" {
		return
	}
	source := outcome.Duration
	if outcome.Window != nil {
		source = outcome.Window.Source
	}
	err := c.History.Complete(id, db.ConversionResult{
		OutputPath:     outcome.Output,
		TrimmedPath:    outcome.Trimmed,
		SourceDuration: source,
		Filesize:       outcome.Size,
	})
	if err != nil {
		logger.Warn("history complete failed", logging.Error(err))
	}
}

func (c *Converter) recordFailure(logger *slog.Logger, id string, cause error) {
	if c.History == nil || id == "" {
		return
	}
	if err := c.History.Fail(id, cause); err != nil {
		logger.Warn("history failure record failed", logging.Error(err))
	}
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.NewNop()
	}
	return c.Logger
}
