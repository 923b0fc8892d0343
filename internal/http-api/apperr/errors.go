// Package apperr holds the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")
	ErrForbidden        = errors.New("you do not have permission to perform this action")
	ErrConflict         = errors.New("conflict")
	ErrThrottled        = errors.New("request was throttled")

	// ErrInvalidConfirmationCode is answered with a 200 payload, not an error status.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
)

// NonFieldKey collects messages that do not belong to a single input field.
const NonFieldKey = "non_field_errors"

// ValidationError carries per-field messages, keyed by wire field name.
type ValidationError struct {
	Fields map[string][]string
	cause  error
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError is a shortcut for a validation error on a single field.
func FieldError(field, msg string) *ValidationError {
	return NewValidationError().Add(field, msg)
}

// Conflict reports a domain rule violation. It renders as a validation
// error but still matches ErrConflict.
func Conflict(msg string) *ValidationError {
	v := FieldError(NonFieldKey, msg)
	v.cause = ErrConflict
	return v
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// Merge copies all messages of other into e.
func (e *ValidationError) Merge(other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}
	for field, msgs := range other.Fields {
		e.Fields[field] = append(e.Fields[field], msgs...)
	}
	if e.cause == nil {
		e.cause = other.cause
	}
	return e
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns nil when no message was recorded, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// IsValidation reports whether err carries field messages and returns them.
func IsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
