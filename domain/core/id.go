package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RenderID identifies one render cycle, used to correlate log lines for a request.
type RenderID ID

// NewRenderID returns a fresh render identifier.
func NewRenderID() RenderID {
	return RenderID(NewID())
}

func (id RenderID) String() string {
	return string(id)
}

// IsValid reports whether the ID parses as a UUID.
func (id ID) IsValid() bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}
