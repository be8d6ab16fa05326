// Package apperr holds the sentinel errors shared across layers. Wrap them
// with fmt.Errorf("...: %w", ErrX) and match with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrDeleteBlocked = errors.New("delete blocked")
	ErrAmbiguous     = errors.New("ambiguous reference")
)
