package entities

import "github.com/google/uuid"

// newID returns a fresh opaque identifier for a row.
func newID() string {
	return uuid.NewString()
}
