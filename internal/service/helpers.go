package service

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/apperr"
)

// invalid marks a form validation failure. The ozzo validation.Errors stays
// reachable through errors.As for per-field messages.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrValidation, err)
}

func values[T any](ptrs []*T) []T {
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, *p)
	}
	return out
}
