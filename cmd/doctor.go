package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/vid2gif-cli/deps"
	"github.com/user/vid2gif-cli/tui/styles"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the ffmpeg and ffprobe binaries used for conversion are installed and available.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking dependencies...")
		fmt.Fprintln(out)

		allGood := true
		for _, s := range deps.CheckAll(cfg.FFmpeg.FFmpegBinary, cfg.FFmpeg.FFprobeBinary) {
			if !s.Available {
				fmt.Fprintln(out, styles.Warning.Render("✗ "+s.Name+": NOT FOUND"))
				fmt.Fprintf(out, "  Looked for %q. Install from: %s\n", s.Command, deps.FfmpegInstallURL)
				allGood = false
				continue
			}
			fmt.Fprintf(out, "%s %s\n", styles.Success.Render("✓ "+s.Name+": OK"), styles.SecondaryText.Render(s.Path))
		}

		fmt.Fprintln(out)
		if !allGood {
			return errors.New("some dependencies are missing; install them to convert videos")
		}
		fmt.Fprintln(out, "All dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
