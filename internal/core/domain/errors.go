package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these so
// the transport layer can classify it with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrAuthentication      = errors.New("authentication failed")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrConflict            = errors.New("conflict")
	ErrCredentialOperation = errors.New("credential operation failed")
	ErrProcessing          = errors.New("processing error")
)

var (
	ErrMissingCredentials = fmt.Errorf("missing credentials: %w", ErrAuthentication)
	ErrTokenInvalid       = fmt.Errorf("invalid token: %w", ErrAuthentication)
	ErrTokenExpired       = fmt.Errorf("token expired: %w", ErrAuthentication)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrAuthentication)

	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)

	ErrProjectForbidden = fmt.Errorf("project %w", ErrForbidden)
	ErrTaskForbidden    = fmt.Errorf("task %w", ErrForbidden)

	ErrEmailTaken      = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrProjectHasTasks = fmt.Errorf("project still has tasks: %w", ErrConflict)
)

// ValidationError reports malformed input. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Processing wraps an unexpected failure of op so it classifies as ErrProcessing
// while keeping the cause for logs.
func Processing(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrProcessing, cause)
}
