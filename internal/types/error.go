package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the service layer. Handlers translate these into the
// HTTP error envelope; they never carry transport detail themselves.
var (
	// ErrNotFound covers both "absent" and "exists but not owned by the
	// caller" so existence is never leaked.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller was identified but lacks the required
	// permission grant for an entity they do not own.
	ErrForbidden = errors.New("forbidden")
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError is the structured report produced by the submission
// validator: per-field errors keyed by field name plus form-level errors.
// It is always caught before any store write happens.
type ValidationError struct {
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
	FormErrors  []string            `json:"formErrors,omitempty"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.FieldErrors)+1)
	for field, msgs := range e.FieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	if len(e.FormErrors) > 0 {
		parts = append(parts, strings.Join(e.FormErrors, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AddFieldError appends a message to the named field's error list.
func (e *ValidationError) AddFieldError(field, message string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], message)
}

// HasErrors reports whether any field or form error was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.FieldErrors) > 0 || len(e.FormErrors) > 0
}

// IsVersionConflict reports whether err is an optimistic-concurrency failure
// (stale updatedAt token or a lost version race inside a transaction).
func IsVersionConflict(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "E_VERSION")
}
