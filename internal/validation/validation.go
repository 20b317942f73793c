// Package validation defines the input-rejection error type shared by the
// domain services. A validation failure always names the offending field and
// is raised before any mutation happens.
package validation

import "fmt"

type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Errorf builds a validation error for the given field.
func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}
