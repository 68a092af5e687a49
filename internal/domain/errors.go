package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")

	// ErrTransport marks a remote store or lookup service that could not be
	// reached or answered with an unexpected status.
	ErrTransport = errors.New("transport error")

	// ErrState marks an operation that does not fit the current workspace,
	// e.g. a hint while no word is being practiced.
	ErrState = errors.New("invalid state")
)

// FieldError is a problem with one input field. Field uses the request's
// naming, e.g. "entries[3].word".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects field problems while validating an input.
type FieldErrors []FieldError

func (f *FieldErrors) Add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

// Err returns nil when nothing was collected.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return NewValidationErrors(f)
}

// ValidationError matches ErrValidation and lists every rejected field.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Fields returns the rejected field names in order, without duplicates.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(e.Errors))
	var out []string
	for _, fe := range e.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			out = append(out, fe.Field)
		}
	}
	return out
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NewStateError wraps ErrState with a description of the rejected operation.
func NewStateError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrState)
}
