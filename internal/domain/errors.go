package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError rejects a malformed request before any lookup happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError covers both resource-overlap conflicts (Suggestions set)
// and invalid-state conflicts such as approving a meeting that is not
// pending (Suggestions nil).
type ConflictError struct {
	Message     string
	Suggestions *Suggestions
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewNotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}
