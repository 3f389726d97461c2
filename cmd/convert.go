package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/vid2gif-cli/config"
	"github.com/user/vid2gif-cli/convert"
	"github.com/user/vid2gif-cli/db"
	"github.com/user/vid2gif-cli/deps"
	"github.com/user/vid2gif-cli/ffmpeg"
	"github.com/user/vid2gif-cli/logging"
	"github.com/user/vid2gif-cli/pkg/cliputil"
	"github.com/user/vid2gif-cli/pkg/timeutil"
	"github.com/user/vid2gif-cli/probe"
	"github.com/user/vid2gif-cli/progress"
	"github.com/user/vid2gif-cli/trim"
	"github.com/user/vid2gif-cli/tui/forms"
	"github.com/user/vid2gif-cli/tui/styles"
)

var runFlags struct {
	fps           int
	noLoop        bool
	scale         int
	ui            string
	keepPartial   bool
	noKeepTrimmed bool
	interactive   bool
}

func init() {
	f := rootCmd.Flags()
	f.IntVar(&runFlags.fps, "fps", ffmpeg.DefaultFrameRate, "GIF frame rate")
	f.BoolVar(&runFlags.noLoop, "no-loop", false, "play the GIF once instead of looping")
	f.IntVar(&runFlags.scale, "scale", 0, "output width in pixels, keeping aspect ratio (0 keeps the source width)")
	f.StringVar(&runFlags.ui, "ui", "auto", "progress display: auto, bar, tui, log or none")
	f.BoolVar(&runFlags.keepPartial, "keep-partial", false, "keep the partial output of a failed ffmpeg run")
	f.BoolVar(&runFlags.noKeepTrimmed, "no-keep-trimmed", false, "remove the intermediate trimmed video after encoding")
	f.BoolVarP(&runFlags.interactive, "interactive", "i", false, "prompt for the trim offsets")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	input := args[0]
	start, end, err := parseOffsets(args[1:])
	if err != nil {
		return err
	}

	mode, err := progress.ParseMode(cfg.Output.UI)
	if err != nil {
		return err
	}
	if err := deps.CheckFfprobe(cfg.FFmpeg.FFprobeBinary); err != nil {
		return err
	}
	if err := deps.CheckFfmpeg(cfg.FFmpeg.FFmpegBinary); err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prober := probe.New(cfg.FFmpeg.FFprobeBinary)
	opts := conversionOptions(cfg)

	if runFlags.interactive {
		start, end, err = promptOffsets(ctx, prober, input, start, end)
		if err != nil {
			return err
		}
		proceed, err := confirmOverwrite(ctx, plannedOutput(input, start, end, opts))
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Fprintln(out, styles.SecondaryText.Render("Nothing converted."))
			return nil
		}
	}

	runner := ffmpeg.NewRunner(cfg.FFmpeg.FFmpegBinary, progress.Factory(mode, out, logger), logger)
	converter := convert.New(prober, runner, opts, logger)
	if history := openHistory(cfg, logger); history != nil {
		defer history.Close()
		converter.History = history
	}

	fmt.Fprintln(out, styles.SecondaryText.Render("Converting "+input))
	outcome, err := converter.Run(ctx, convert.Request{Input: input, StartOffset: start, EndOffset: end})
	if err != nil {
		return err
	}
	printOutcome(out, outcome)
	return nil
}

// applyRunFlags copies explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagChanged(cmd, "fps") {
		cfg.GIF.FPS = runFlags.fps
	}
	if flagChanged(cmd, "no-loop") {
		cfg.GIF.Loop = !runFlags.noLoop
	}
	if flagChanged(cmd, "scale") {
		cfg.GIF.ScaleWidth = runFlags.scale
	}
	if flagChanged(cmd, "ui") {
		cfg.Output.UI = strings.ToLower(strings.TrimSpace(runFlags.ui))
	}
	if flagChanged(cmd, "keep-partial") {
		cfg.Output.KeepPartial = runFlags.keepPartial
	}
	if flagChanged(cmd, "no-keep-trimmed") {
		cfg.Trim.KeepTrimmed = !runFlags.noKeepTrimmed
	}
}

func conversionOptions(cfg *config.Config) convert.Options {
	return convert.Options{
		Trim: ffmpeg.TrimOptions{Suffix: cfg.Trim.Suffix},
		Encode: ffmpeg.EncodeOptions{
			FrameRate:  float64(cfg.GIF.FPS),
			Loop:       cfg.GIF.Loop,
			ScaleWidth: cfg.GIF.ScaleWidth,
		},
		KeepPartial: cfg.Output.KeepPartial,
		KeepTrimmed: cfg.Trim.KeepTrimmed,
		LockDir:     filepath.Join(filepath.Dir(cfg.History.Path), "locks"),
	}
}

// parseOffsets reads the optional start and end positional arguments.
func parseOffsets(args []string) (start, end float64, err error) {
	if len(args) > 0 {
		if start, err = timeutil.ParseTimeToSeconds(args[0]); err != nil {
			return 0, 0, fmt.Errorf("invalid start offset: %w", err)
		}
	}
	if len(args) > 1 {
		if end, err = timeutil.ParseTimeToSeconds(args[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid end offset: %w", err)
		}
	}
	return start, end, nil
}

func promptOffsets(ctx context.Context, prober *probe.Prober, input string, start, end float64) (float64, float64, error) {
	if info, err := os.Stat(input); err != nil || !info.Mode().IsRegular() {
		return 0, 0, &convert.InputNotFoundError{Path: input, Err: err}
	}
	duration, err := prober.Probe(ctx, input)
	if err != nil {
		return 0, 0, err
	}

	result := &forms.TrimFormResult{}
	if start > 0 {
		result.Start = timeutil.FormatSeconds(start)
	}
	if end > 0 {
		result.End = timeutil.FormatSeconds(end)
	}
	if err := forms.NewTrimForm(input, duration.Seconds(), result).RunWithContext(ctx); err != nil {
		return 0, 0, formError(err)
	}
	return result.Offsets()
}

// plannedOutput predicts the GIF path a run will write.
func plannedOutput(input string, start, end float64, opts convert.Options) string {
	source := input
	if !trim.Skip(start, end) {
		source = cliputil.TrimmedPath(input, opts.Trim.Suffix)
	}
	return cliputil.EncodedPath(source, opts.Encode.Extension)
}

func confirmOverwrite(ctx context.Context, output string) (bool, error) {
	if _, err := os.Stat(output); err != nil {
		return true, nil
	}
	overwrite := false
	if err := forms.NewConfirmOverwriteForm(output, &overwrite).RunWithContext(ctx); err != nil {
		return false, formError(err)
	}
	return overwrite, nil
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return context.Canceled
	}
	return err
}

// openHistory opens the history database when enabled. Failures are logged
// and the conversion runs without history.
func openHistory(cfg *config.Config, logger *slog.Logger) *db.History {
	if !cfg.History.Enabled {
		return nil
	}
	history, err := db.OpenHistory(cfg.History.Path)
	if err != nil {
		logger.Warn("history unavailable",
			logging.String(logging.FieldPath, cfg.History.Path),
			logging.Error(err),
		)
		return nil
	}
	return history
}

func printOutcome(w io.Writer, outcome convert.Outcome) {
	if outcome.Window != nil {
		fmt.Fprintln(w, styles.SecondaryText.Render(fmt.Sprintf("Trimmed %s to %s of %s",
			timeutil.FormatTime(outcome.Window.Start),
			timeutil.FormatTime(outcome.Window.End),
			timeutil.FormatTime(outcome.Window.Source),
		)))
	}
	if outcome.Trimmed != "" {
		fmt.Fprintln(w, styles.SecondaryText.Render("Trimmed video: "+outcome.Trimmed))
	}
	fmt.Fprintf(w, "%s %s (%s)\n",
		styles.Success.Render("✓ GIF created:"),
		styles.PrimaryText.Render(outcome.Output),
		humanize.Bytes(uint64(outcome.Size)),
	)
}
