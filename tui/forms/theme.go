package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/vid2gif-cli/tui/styles"
)

// fieldPalette picks the colours for one focus state.
type fieldPalette struct {
	title, text, hint, accent, button, card lipgloss.Color
	border                                  lipgloss.Border
	bold                                    bool
}

var (
	focusedPalette = fieldPalette{
		title:  styles.Pink,
		text:   styles.LightLavender,
		hint:   styles.Lavender,
		accent: styles.Cyan,
		button: styles.BrightPurple,
		card:   styles.Purple,
		border: lipgloss.ThickBorder(),
		bold:   true,
	}
	blurredPalette = fieldPalette{
		title:  styles.Lavender,
		text:   styles.Lavender,
		hint:   styles.Purple,
		accent: styles.Purple,
		button: styles.Purple,
		card:   styles.DeepPurple,
		border: lipgloss.HiddenBorder(),
	}
)

// Theme returns a huh theme in the palette used by the progress display.
// Only the inputs, notes and confirm buttons used by the prompts are styled.
func Theme() *huh.Theme {
	t := huh.ThemeBase()
	applyPalette(&t.Focused, focusedPalette)
	applyPalette(&t.Blurred, blurredPalette)
	t.Focused.Base = t.Focused.Base.BorderForeground(styles.BrightPurple)
	return t
}

func applyPalette(fs *huh.FieldStyles, p fieldPalette) {
	fs.Base = fs.Base.
		BorderStyle(p.border).
		BorderLeft(true).
		PaddingLeft(1)
	fs.Title = lipgloss.NewStyle().Foreground(p.title).Bold(p.bold)
	fs.Description = lipgloss.NewStyle().Foreground(p.hint)
	fs.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Pink).Bold(p.bold)
	fs.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Pink)

	fs.TextInput.Cursor = lipgloss.NewStyle().Foreground(p.accent)
	fs.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Purple)
	fs.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.accent)
	fs.TextInput.Text = lipgloss.NewStyle().Foreground(p.text)

	fs.FocusedButton = lipgloss.NewStyle().
		Background(p.button).
		Foreground(p.text).
		Bold(p.bold).
		Padding(0, 1)
	fs.BlurredButton = lipgloss.NewStyle().
		Background(p.card).
		Foreground(p.hint).
		Padding(0, 1)
	fs.Next = fs.FocusedButton

	fs.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.card).
		Padding(0, 1)
	fs.NoteTitle = lipgloss.NewStyle().Foreground(p.accent).Bold(p.bold)
}
