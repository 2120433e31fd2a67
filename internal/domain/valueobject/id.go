package valueobject

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is the opaque identity of a user. The zero value is not a valid identity.
type ID struct {
	value uuid.UUID
}

// GenerateID returns a fresh random identity.
func GenerateID() ID {
	return ID{value: uuid.New()}
}

// ParseID rebuilds an ID read back from storage.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	if u == uuid.Nil {
		return ID{}, fmt.Errorf("parse id: nil uuid")
	}
	return ID{value: u}, nil
}

func (id ID) String() string { return id.value.String() }

func (id ID) Equal(other ID) bool { return id.value == other.value }

func (id ID) IsZero() bool { return id.value == uuid.Nil }

// UUID exposes the underlying value for binding to a native uuid column.
func (id ID) UUID() uuid.UUID { return id.value }
