// Package forms provides huh-based prompts for interactive conversions.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewConfirmOverwriteForm asks whether an existing output file may be replaced.
// The result pointer is bound to the confirm field value.
func NewConfirmOverwriteForm(path string, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing file?").
				Description(fmt.Sprintf("%s already exists and will be replaced.", path)).
				Affirmative("Yes, overwrite").
				Negative("No, cancel").
				Value(overwrite),
		),
	).WithTheme(Theme())
}
