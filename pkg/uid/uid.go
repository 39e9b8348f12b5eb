// Package uid defines the opaque identifier shared by every registry entity.
// A UID is a UUID v7: time ordered, comparable, and usable as a map key.
package uid

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// UID identifies one registry record. The zero value is Nil and means "none".
type UID struct {
	id uuid.UUID
}

// Nil is the empty UID.
var Nil UID

// ErrInvalid is returned by Parse for malformed input.
var ErrInvalid = errors.New("invalid uid")

// New mints a fresh UID. Falls back to a random v4 UUID if the v7
// generator fails.
func New() UID {
	id, err := uuid.NewV7()
	if err != nil {
		return UID{id: uuid.New()}
	}
	return UID{id: id}
}

// Parse reads the canonical string form produced by String.
func Parse(s string) (UID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w %q: %v", ErrInvalid, s, err)
	}
	return UID{id: id}, nil
}

// MustParse is Parse for constants in tests and scripts; it panics on error.
func MustParse(s string) UID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// IsNil reports whether u is the empty UID.
func (u UID) IsNil() bool {
	return u.id == uuid.Nil
}

// String returns the canonical 36 character form.
func (u UID) String() string {
	return u.id.String()
}

// Short returns the first eight hex digits, for log lines and CLI output.
func (u UID) Short() string {
	return u.id.String()[:8]
}

// Compare orders UIDs bytewise. For v7 UIDs this is creation order.
func Compare(a, b UID) int {
	return bytes.Compare(a.id[:], b.id[:])
}

// Less reports whether a sorts before b.
func Less(a, b UID) bool {
	return Compare(a, b) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (u UID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
