package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/user/vid2gif-cli/config"
	"github.com/user/vid2gif-cli/logging"
	"github.com/user/vid2gif-cli/tui/styles"
)

var Version = "0.1.0"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "vid2gif <video> [start] [end]",
	Short: "Convert a video to an animated GIF",
	Long: `vid2gif converts a video file to an animated GIF using ffmpeg.

The optional start and end offsets trim the video before encoding: start is
the time to skip from the beginning and end is the time to drop from the end.
Offsets accept seconds (12.5), MM:SS or HH:MM:SS.

Examples:
  vid2gif match.mp4
  vid2gif match.mp4 5 5
  vid2gif match.mp4 1:30 0:45 --fps 12 --scale 480`,
	Args:          cobra.RangeArgs(1, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vid2gif version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/vid2gif/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Interrupts cancel the running conversion.
// Any error is printed to standard output and exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stdout, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	msg := err.Error()
	if errors.Is(err, context.Canceled) {
		msg = "conversion cancelled"
	}
	fmt.Fprintln(w, styles.Warning.Render("Error:")+" "+msg)
}

// loadRuntime loads the configuration and builds the stderr logger, applying
// the --log-level override.
func loadRuntime(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, path, exists, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if flagChanged(cmd, "log-level") {
		cfg.Logging.Level = logLevel
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("config loaded",
		logging.String(logging.FieldPath, path),
		slog.Bool("exists", exists),
	)
	return cfg, logger, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}
