package application

import (
	"errors"
	"fmt"

	"folio/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound             = domain.ErrNotFound
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrDuplicateKey         = errors.New("duplicate key")
)

// ValidationError represents a validation failure with details
type ValidationError = domain.ValidationError

// LookupError represents a reference that does not resolve. It matches
// ErrNotFound with errors.Is.
type LookupError = domain.LookupError

// ParseError represents a malformed imported document. The aggregate is left
// unchanged when it is returned.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfirmationError asks the caller to repeat a destructive operation with
// confirmation
type ConfirmationError struct {
	Prompt string
}

func (e *ConfirmationError) Error() string {
	return e.Prompt
}

func (e *ConfirmationError) Is(target error) bool {
	return target == ErrConfirmationRequired
}
