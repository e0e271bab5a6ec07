package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every LookupError
var ErrNotFound = errors.New("not found")

// ValidationError represents a missing or malformed field. Operations that
// return it leave the aggregate untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LookupError reports a reference (project, category, tag, event) that does
// not resolve
type LookupError struct {
	Kind string // e.g., "project", "category"
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}
