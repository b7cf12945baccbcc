package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors returned by services and repository implementations.

var (
	// ErrNotFound indicates the requested resource does not exist or is not
	// visible in the caller's scope. Both cases produce the same error.
	ErrNotFound = errors.New("resource not found")

	// ErrMoveBoundary indicates a move up on the first item or a move down on
	// the last item of a sibling set.
	ErrMoveBoundary = errors.New("item cannot be moved past the boundary of its list")

	// ErrInvalidID indicates the provided ID format is invalid.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrValidation is matched by every ValidationErrors value.
	ErrValidation = errors.New("validation failed")

	// ErrCheatExists indicates the game already has a cheat.
	ErrCheatExists = errors.New("game already has a cheat")

	// ErrUnauthorized indicates missing, invalid, or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidAPIKeyFormat indicates an API key that does not follow the
	// {type}-{service}-{version}-{short}-{long} layout.
	ErrInvalidAPIKeyFormat = errors.New("invalid API key format")
)

// NotFound wraps ErrNotFound with the resource kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// FieldError describes a single failed field constraint.
type FieldError struct {
	Field string
	Issue string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Issue
}

// ValidationErrors aggregates field-level failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports ErrValidation so callers can use errors.Is.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add records a failed constraint.
func (v *ValidationErrors) Add(field, issue string) {
	*v = append(*v, FieldError{Field: field, Issue: issue})
}

// Err returns nil when nothing failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// FieldErrors flattens err into field errors. Validation failures keep their
// fields; ErrNotFound and ErrMoveBoundary found anywhere in a joined error
// tree are reported against "id" and "position".
func FieldErrors(err error) []FieldError {
	var out []FieldError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var ve ValidationErrors
		switch {
		case errors.As(e, &ve):
			out = append(out, ve...)
		case errors.Is(e, ErrMoveBoundary):
			out = append(out, FieldError{Field: "position", Issue: ErrMoveBoundary.Error()})
		case errors.Is(e, ErrNotFound):
			out = append(out, FieldError{Field: "id", Issue: e.Error()})
		}
	}
	walk(err)
	return out
}
