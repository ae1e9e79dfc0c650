package service

import (
	"errors"
	"fmt"
)

var (
	// Item errors
	ErrItemNotFound = errors.New("item not found")

	// Auth errors
	ErrMissingCredentials = errors.New("schema name, username, and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingRefresh     = errors.New("refresh token is required")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
