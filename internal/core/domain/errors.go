package domain

import (
	"fmt"
	"strings"
)

// Error is a tagged domain failure carrying a stable machine-readable code.
// The transport layer maps codes to HTTP statuses; services and repositories
// only ever return values from the closed set below (or wrap them).
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrDuplicateEmail     = &Error{Code: "UNIQUE_EMAIL", Message: "email already exists"}
	ErrInvalidCredentials = &Error{Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}
	ErrUserBlocked        = &Error{Code: "USER_BLOCKED", Message: "account is blocked"}
	ErrUserNotFound       = &Error{Code: "USER_NOT_FOUND", Message: "user not found"}
	ErrInvalidToken       = &Error{Code: "UNAUTHORIZED", Message: "invalid or expired token"}
	ErrUnauthorized       = &Error{Code: "UNAUTHORIZED", Message: "unauthorized"}
	ErrForbidden          = &Error{Code: "FORBIDDEN", Message: "forbidden"}
)

// FieldError describes one offending field in a rejected payload.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates every field failure found in a request, not
// just the first one.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "invalid request"
	}
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, fmt.Sprintf("%s: %s", d.Path, d.Message))
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError from field failures.
func NewValidationError(details ...FieldError) *ValidationError {
	return &ValidationError{Details: details}
}
