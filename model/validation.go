package model

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid business field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %v", e.Field, e.Message)
}

// ValidationError aggregates field-level violations detected on create or
// update.  The operation is aborted with no partial write.
type ValidationError struct {
	Violations []*FieldError
}

// Add appends a violation for the supplied field.
func (e *ValidationError) Add(field, format string, args ...interface{}) {
	e.Violations = append(e.Violations, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationError) HasViolations() bool {
	return e != nil && len(e.Violations) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		parts = append(parts, violation.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
