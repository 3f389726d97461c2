package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/vid2gif-cli/pkg/timeutil"
	"github.com/user/vid2gif-cli/tui/styles"
)

// JobProgressState holds the state for one ffmpeg job's progress display.
type JobProgressState struct {
	Description string
	// Input is the file being processed, shown under the bar.
	Input   string
	Current float64
	Total   float64
	Done    bool
	OK      bool
}

// Percent returns the completed fraction clamped to [0, 1].
func (s JobProgressState) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	pct := s.Current / s.Total
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// JobProgress renders a bordered info box showing job progress.
// It displays a progress bar, percentage, elapsed/total media time, and the input file.
func JobProgress(state JobProgressState, width int) string {
	if width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	// Inner width for content (box border = 2, plus 1 space padding each side)
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	pct := state.Percent()
	if state.Done && state.OK {
		pct = 1
	}

	// Bar width: innerW minus " XXX%" label (5 chars) minus 1 space padding
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	bar := progress.New(
		progress.WithSolidFill(string(styles.Green)),
		progress.WithFillCharacters('█', '░'),
		progress.WithoutPercentage(),
	)
	bar.Width = barWidth
	bar.EmptyColor = string(styles.Amber)

	contentLines := []string{
		" " + bar.ViewAs(pct) + textStyle.Render(fmt.Sprintf(" %3d%%", int(pct*100))),
		textStyle.Render(fmt.Sprintf(" %s / %s", timeutil.FormatTime(state.Current), timeutil.FormatTime(state.Total))),
	}

	switch {
	case state.Done && state.OK:
		contentLines = append(contentLines, " "+greenStyle.Render("Done"))
	case state.Done:
		contentLines = append(contentLines, " "+redStyle.Render("Failed"))
	case state.Input != "":
		maxFileW := innerW - 2
		fileDisplay := state.Input
		if lipgloss.Width(fileDisplay) > maxFileW {
			fileDisplay = ansi.Truncate(fileDisplay, maxFileW-3, "...")
		}
		contentLines = append(contentLines, " "+textStyle.Render(fileDisplay))
	}

	return RenderInfoBox(state.Description, contentLines, width)
}
