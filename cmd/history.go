package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/vid2gif-cli/db"
	"github.com/user/vid2gif-cli/pkg/timeutil"
	"github.com/user/vid2gif-cli/trim"
	"github.com/user/vid2gif-cli/tui/styles"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversions",
	Long:  `List recent conversions recorded in the history database, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !cfg.History.Enabled {
			fmt.Fprintln(out, styles.SecondaryText.Render("History is disabled in the configuration."))
			return nil
		}

		history, err := db.OpenHistory(cfg.History.Path)
		if err != nil {
			return err
		}
		defer history.Close()

		conversions, err := history.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(conversions) == 0 {
			fmt.Fprintln(out, styles.SecondaryText.Render("No conversions recorded yet."))
			return nil
		}
		fmt.Fprintln(out, renderHistory(conversions))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded conversion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		history, err := db.OpenHistory(cfg.History.Path)
		if err != nil {
			return err
		}
		defer history.Close()

		c, err := history.Get(args[0])
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no conversion with id %s", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderConversion(*c))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of conversions to show (0 for all)")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func renderConversion(c db.Conversion) string {
	rows := [][]string{
		{"ID", c.ID},
		{"Status", c.Status},
		{"Input", c.InputPath},
		{"Trim", describeTrim(c)},
		{"Trimmed", orDash(c.TrimmedPath)},
		{"Output", orDash(c.OutputPath)},
		{"Source length", timeutil.FormatTime(c.SourceDuration)},
		{"GIF", fmt.Sprintf("%d fps, loop %t", c.FPS, c.Loop)},
		{"Size", describeSize(c)},
		{"Started", c.StartedAt.Local().Format(time.DateTime)},
	}
	if c.FinishedAt != nil {
		rows = append(rows, []string{"Finished", c.FinishedAt.Local().Format(time.DateTime)})
	}
	if c.ErrorAt != nil {
		rows = append(rows, []string{"Failed", c.ErrorAt.Local().Format(time.DateTime)}, []string{"Error", c.Log})
	}
	return renderTable([]string{"Field", "Value"}, rows, nil, 0)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func renderHistory(conversions []db.Conversion) string {
	headers := []string{"Started", "Input", "Trim", "Output", "Status", "Size"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
	rows := make([][]string, 0, len(conversions))
	for _, c := range conversions {
		rows = append(rows, []string{
			humanize.Time(c.StartedAt),
			filepath.Base(c.InputPath),
			describeTrim(c),
			describeOutput(c),
			c.Status,
			describeSize(c),
		})
	}
	return renderTable(headers, rows, aligns, maxCellWidth)
}

func describeTrim(c db.Conversion) string {
	if trim.Skip(c.StartOffset, c.EndOffset) {
		return "-"
	}
	return fmt.Sprintf("+%s / -%s", timeutil.FormatTime(c.StartOffset), timeutil.FormatTime(c.EndOffset))
}

func describeOutput(c db.Conversion) string {
	if c.Status == db.StatusError {
		return c.Log
	}
	if c.OutputPath == "" {
		return "-"
	}
	return filepath.Base(c.OutputPath)
}

func describeSize(c db.Conversion) string {
	if c.Status != db.StatusComplete {
		return "-"
	}
	return humanize.Bytes(uint64(c.Filesize))
}
