package forms

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/vid2gif-cli/pkg/timeutil"
	"github.com/user/vid2gif-cli/trim"
)

// TrimFormResult holds the offsets entered in the trim form, as typed.
type TrimFormResult struct {
	Start string
	End   string
}

// Offsets parses the entered offsets. Blank fields mean zero.
func (r *TrimFormResult) Offsets() (start, end float64, err error) {
	if start, err = parseOffset(r.Start); err != nil {
		return 0, 0, fmt.Errorf("start offset: %w", err)
	}
	if end, err = parseOffset(r.End); err != nil {
		return 0, 0, fmt.Errorf("end offset: %w", err)
	}
	return start, end, nil
}

// NewTrimForm creates a huh form prompting for the start and end offsets of
// input. The probed duration is shown in the header and used to reject
// offsets that leave nothing to convert.
func NewTrimForm(input string, duration float64, result *TrimFormResult) *huh.Form {
	header := fmt.Sprintf("%s (%s)", filepath.Base(input), timeutil.FormatTime(duration))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(header).
				Description("Offsets accept seconds, MM:SS or HH:MM:SS. Leave both blank to convert the whole video."),

			huh.NewInput().
				Title("Start offset").
				Description("Time to skip from the beginning").
				Placeholder("0").
				Value(&result.Start).
				Validate(func(s string) error {
					return validateOffsets(duration, s, result.End)
				}),

			huh.NewInput().
				Title("End offset").
				Description("Time to drop from the end").
				Placeholder("0").
				Value(&result.End).
				Validate(func(s string) error {
					return validateOffsets(duration, result.Start, s)
				}),
		),
	).WithTheme(Theme())
}

// validateOffsets checks both fields and, once both parse, the window they
// leave. Unknown durations skip the window check.
func validateOffsets(duration float64, startValue, endValue string) error {
	start, err := parseOffset(startValue)
	if err != nil {
		return err
	}
	end, err := parseOffset(endValue)
	if err != nil {
		return err
	}
	if duration <= 0 || trim.Skip(start, end) {
		return nil
	}
	if _, err := trim.Plan(duration, start, end); err != nil {
		return fmt.Errorf("offsets leave nothing of the %s video", timeutil.FormatTime(duration))
	}
	return nil
}

func parseOffset(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return timeutil.ParseTimeToSeconds(value)
}
