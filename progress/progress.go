// Package progress provides the terminal indicators that display ffmpeg job progress.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/user/vid2gif-cli/ffmpeg"
	"github.com/user/vid2gif-cli/tui"
)

// Mode selects how progress is displayed.
type Mode string

const (
	// ModeAuto uses a bar on terminals and log records otherwise.
	ModeAuto Mode = "auto"
	ModeBar  Mode = "bar"
	ModeTUI  Mode = "tui"
	ModeLog  Mode = "log"
	ModeNone Mode = "none"
)

// ParseMode validates a mode name. An empty name means ModeAuto.
func ParseMode(value string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeBar, ModeTUI, ModeLog, ModeNone:
		return m, nil
	default:
		return "", fmt.Errorf("progress mode: unsupported value %q (want auto, bar, tui, log or none)", value)
	}
}

// Resolve turns ModeAuto into a concrete mode for out.
func Resolve(mode Mode, out io.Writer) Mode {
	if mode != ModeAuto && mode != "" {
		return mode
	}
	if IsTerminal(out) {
		return ModeBar
	}
	return ModeLog
}

// IsTerminal reports whether out is an interactive terminal.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Factory returns the indicator constructor for mode. Bars and the TUI
// render to out; log mode reports through logger.
func Factory(mode Mode, out io.Writer, logger *slog.Logger) ffmpeg.IndicatorFactory {
	if out == nil {
		out = os.Stdout
	}
	switch Resolve(mode, out) {
	case ModeBar:
		return func(job ffmpeg.Job) ffmpeg.Indicator {
			return NewBar(out, job.Description, job.Total)
		}
	case ModeTUI:
		return func(job ffmpeg.Job) ffmpeg.Indicator {
			return tui.NewIndicator(out, job.Description, jobInput(job), job.Total)
		}
	case ModeLog:
		return func(job ffmpeg.Job) ffmpeg.Indicator {
			return NewLog(logger, job.Description, job.Total)
		}
	default:
		return func(ffmpeg.Job) ffmpeg.Indicator { return Nop{} }
	}
}

// jobInput returns the value following -i in the job arguments.
func jobInput(job ffmpeg.Job) string {
	for i := 0; i+1 < len(job.Args); i++ {
		if job.Args[i] == "-i" {
			return job.Args[i+1]
		}
	}
	return ""
}

// Nop discards progress.
type Nop struct{}

func (Nop) Advance(float64) {}
func (Nop) Finish(bool)     {}
