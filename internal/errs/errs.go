package errs

import "fmt"

// ValidationError indicates missing or malformed user input. Handlers map it
// to a 400 response shown next to the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidation creates a ValidationError for a field
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError indicates a duplicate username or email
type ConflictError struct {
	Resource string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Resource)
}

// AuthError indicates credentials that do not match a known identity
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// NotFoundError indicates a missing record (unknown username, history id, ...)
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
