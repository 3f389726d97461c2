package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/user/vid2gif-cli/logging"
)

// maxTailLines is how many diagnostic lines are kept for error reports.
const maxTailLines = 20

// Result is the terminal state of a job.
type Result struct {
	Output   string
	ExitCode int
}

// SubprocessError reports an ffmpeg job that did not complete successfully.
// ExitCode is -1 when the process never ran or was killed by a signal.
type SubprocessError struct {
	Description string
	ExitCode    int
	Output      []string
	Err         error
}

func (e *SubprocessError) Error() string {
	var b strings.Builder
	b.WriteString(e.Description)
	b.WriteString(" failed")
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit code %d)", e.ExitCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Output) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(e.Output, "\n"))
	}
	return b.String()
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// Runner executes jobs against an ffmpeg binary.
type Runner struct {
	// Binary defaults to "ffmpeg".
	Binary string
	// Parser defaults to DefaultParser.
	Parser Parser
	// Indicators creates the per-job display; nil means no display.
	Indicators IndicatorFactory
	Logger     *slog.Logger
}

// NewRunner returns a Runner using the default out_time_us parser.
func NewRunner(binary string, indicators IndicatorFactory, logger *slog.Logger) *Runner {
	return &Runner{
		Binary:     binary,
		Parser:     DefaultParser(),
		Indicators: indicators,
		Logger:     logging.WithComponent(logger, "ffmpeg"),
	}
}

// Execute runs job to completion. Standard output and error share one pipe
// that is read line by line; elapsed-time markers advance the indicator and
// all other non-progress lines are kept as diagnostics. The indicator is
// finished on every return path once the process has started.
func (r *Runner) Execute(ctx context.Context, job Job) (Result, error) {
	logger := r.logger().With(logging.String(logging.FieldJob, job.Description))
	fail := func(code int, lines []string, err error) (Result, error) {
		return Result{Output: job.Output, ExitCode: code}, &SubprocessError{
			Description: job.Description,
			ExitCode:    code,
			Output:      lines,
			Err:         err,
		}
	}

	if len(job.Args) == 0 {
		return fail(-1, nil, errors.New("no arguments"))
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return fail(-1, nil, fmt.Errorf("create output pipe: %w", err))
	}
	defer pr.Close()

	cmd := exec.CommandContext(ctx, r.binary(), job.Args...)
	cmd.Stdout = pw
	cmd.Stderr = pw

	logger.Debug("starting ffmpeg",
		logging.String("binary", cmd.Path),
		logging.String("args", strings.Join(job.Args, " ")),
		logging.Float64("total_seconds", job.Total),
	)
	started := time.Now()
	if err := cmd.Start(); err != nil {
		pw.Close()
		return fail(-1, nil, err)
	}
	// Only the child holds the write end now, so EOF means it has gone away.
	pw.Close()

	indicator := r.indicator(job)
	ok := false
	defer func() { indicator.Finish(ok) }()

	state := Progress{Total: job.Total}
	diagnostics := newTail(maxTailLines)
	readErr := r.drain(pr, &state, indicator, diagnostics)
	if readErr != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	logger.Debug("ffmpeg exited",
		logging.Int("exit_code", code),
		logging.Duration("elapsed", time.Since(started)),
		logging.Float64("reported_seconds", state.Current),
	)

	switch {
	case ctx.Err() != nil:
		return fail(code, diagnostics.snapshot(), ctx.Err())
	case readErr != nil:
		return fail(code, diagnostics.snapshot(), fmt.Errorf("read output: %w", readErr))
	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return fail(code, diagnostics.snapshot(), nil)
		}
		return fail(code, diagnostics.snapshot(), waitErr)
	case code != 0:
		return fail(code, diagnostics.snapshot(), nil)
	}

	ok = true
	return Result{Output: job.Output, ExitCode: code}, nil
}

// drain consumes src until EOF. A final line without a trailing newline is
// still handled.
func (r *Runner) drain(src io.Reader, state *Progress, indicator Indicator, diagnostics *tail) error {
	parser := r.parser()
	reader := bufio.NewReader(src)
	for {
		line, err := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if elapsed, ok := parser.Parse(trimmed); ok {
				if delta := state.Observe(elapsed); delta > 0 {
					indicator.Advance(delta)
				}
			} else if !isKeyValue(trimmed) {
				diagnostics.add(trimmed)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (r *Runner) binary() string {
	if b := strings.TrimSpace(r.Binary); b != "" {
		return b
	}
	return "ffmpeg"
}

func (r *Runner) parser() Parser {
	if r.Parser == nil {
		return DefaultParser()
	}
	return r.Parser
}

func (r *Runner) indicator(job Job) Indicator {
	if r.Indicators == nil {
		return nopIndicator{}
	}
	if ind := r.Indicators(job); ind != nil {
		return ind
	}
	return nopIndicator{}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}
