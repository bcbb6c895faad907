package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned whenever an id or slug does not resolve. Handlers
// map it to 404.
var ErrNotFound = errors.New("not found")

// ErrValidation tags input errors the store itself catches (bad time format,
// cyclic folder move, unknown status). Handlers map it to 400.
var ErrValidation = errors.New("invalid input")

func validationf(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(msg, args...))
}
