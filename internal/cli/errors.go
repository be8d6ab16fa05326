package cli

import (
	"errors"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrorMessage renders err for the terminal. Field validation failures are
// listed one field per line.
func ErrorMessage(err error) string {
	var verrs validation.Errors
	if errors.Is(err, apperr.ErrValidation) && errors.As(err, &verrs) {
		return "validation failed:\n" + formatter.FormatValidation(verrs)
	}
	return err.Error()
}

// shellError formats err for display inside the TUI.
func shellError(err error) string {
	return formatter.StyleRed.Render("Error: ") + ErrorMessage(err)
}
