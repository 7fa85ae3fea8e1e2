package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for mutation services. Services reject with one of these
// (wrapped with context via %w); anything else is a store-level failure and
// surfaces verbatim with no retry.
var (
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("conflict with current state")
	ErrNotFound   = errors.New("not found")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}
