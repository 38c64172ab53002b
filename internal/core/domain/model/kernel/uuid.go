package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, NewDerivedUUID, UUIDFromString or UUIDFromBytes",
)

// derivedNamespace scopes identifiers produced by NewDerivedUUID.
var derivedNamespace = uuid.MustParse("6f1c2a9e-3b7d-4c0e-9a51-0d8e4b2f7c13")

// UUID is the identifier value object used by every aggregate and entity.
// It wraps github.com/google/uuid; the zero value is invalid.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	riderID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid rider ID: %w", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// NewDerivedUUID returns a stable (version 5) identifier for the given parts.
// The same parts always produce the same UUID, which lets retried side effects
// (one notification per event and recipient) collapse into a single row.
//
// Example:
//
//	id := kernel.NewDerivedUUID(eventID.String(), recipientID.String(), "order_ready")
func NewDerivedUUID(parts ...string) UUID {
	name := ""
	for i, p := range parts {
		if i > 0 {
			name += "/"
		}
		name += p
	}
	return UUID{id: uuid.NewSHA1(derivedNamespace, []byte(name))}
}

// UUIDFromString parses the canonical, braced, urn and hyphen-less forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes creates a UUID from exactly 16 bytes, as stored by the postgres adapters.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// UUIDFromGoogle adopts an already parsed github.com/google/uuid value,
// typically one bound from an HTTP path parameter.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	wrapped := UUID{id: id}
	if err := wrapped.Validate(); err != nil {
		return UUID{}, err
	}
	return wrapped, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google UUID (a [16]byte), used by GORM DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two identifiers by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether the UUID was never constructed.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText encodes the canonical form so UUIDs embed cleanly in event payloads.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}

// UnmarshalText decodes the canonical form; an empty input leaves the zero value.
func (u *UUID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		u.id = uuid.Nil
		return nil
	}
	id, err := uuid.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("invalid UUID format: %w", err)
	}
	u.id = id
	return nil
}

// UUIDPtrFromBytes converts a nullable DTO column into a nullable identifier.
func UUIDPtrFromBytes(id *uuid.UUID) (*UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

// UUIDPtrToBytes is the inverse of UUIDPtrFromBytes.
func UUIDPtrToBytes(id *UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
