package domain

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for sections and list entries
func NewID() string {
	return uuid.NewString()
}
