package directory

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no user matches the given id or username.
	ErrNotFound = errors.New("directory: user not found")
	// ErrUsernameTaken indicates a write would duplicate a live username.
	ErrUsernameTaken = errors.New("directory: username already taken")
	// ErrConstraint indicates a required field is missing or exceeds its bound.
	ErrConstraint = errors.New("directory: constraint violation")
)

// FieldError is a constraint violation tied to a single attribute. It
// unwraps to ErrConstraint so callers can match the whole class.
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("directory: field %s violates rule %q", e.Field, e.Rule)
}

func (e *FieldError) Unwrap() error { return ErrConstraint }
