// Package common defines the error taxonomy shared by the store layers.
// Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when an operation references an unknown task or user.
	ErrNotFound = errors.New("not found")

	// ErrPermission is returned when an ownership check fails. The mutation
	// is never applied in that case.
	ErrPermission = errors.New("permission denied")

	// ErrPersistence wraps backing-store read/write failures. It never
	// reaches callers of user-visible operations; it is logged.
	ErrPersistence = errors.New("persistence error")

	// ErrNotReady is returned when a caller gives up waiting for the store
	// to finish its startup hydration.
	ErrNotReady = errors.New("store not ready")
)

// ValidationError carries field-level messages, keyed by the JSON field name,
// so that the presentation layer can prompt for each offending field.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrValidation) succeed for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
