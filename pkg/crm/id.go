package crm

import "github.com/google/uuid"

// ID identifies an entity within its collection.
type ID string

// NewID returns a random 128-bit identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string {
	return string(id)
}
