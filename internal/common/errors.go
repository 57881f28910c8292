// Package common defines shared constants and sentinel errors used across
// client and server layers of TaskJournal. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already in use")

	// Service-level errors.
	ErrorTransient          = errors.New("transient failure")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidInput       = errors.New("invalid input")
	ErrorNoChanges          = errors.New("no changes")
	ErrorIncorrectPassword  = errors.New("current password is incorrect")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ValidationError reports which input rule was violated.
// It matches ErrorInvalidInput via errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrorInvalidInput
}
