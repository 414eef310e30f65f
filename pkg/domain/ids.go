package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "frontdesk/pkg/domain-errors"
)

// Typed identifiers keep visitor, badge and host ids from being swapped at
// compile time. All of them are non-nil UUIDs.
type (
	VisitorID uuid.UUID
	BadgeID   uuid.UUID
	HostID    uuid.UUID
)

func NewVisitorID() VisitorID { return VisitorID(uuid.New()) }
func NewBadgeID() BadgeID     { return BadgeID(uuid.New()) }
func NewHostID() HostID       { return HostID(uuid.New()) }

func (v VisitorID) String() string { return uuid.UUID(v).String() }
func (b BadgeID) String() string   { return uuid.UUID(b).String() }
func (h HostID) String() string    { return uuid.UUID(h).String() }

func (v VisitorID) IsNil() bool { return uuid.UUID(v) == uuid.Nil }
func (b BadgeID) IsNil() bool   { return uuid.UUID(b) == uuid.Nil }
func (h HostID) IsNil() bool    { return uuid.UUID(h) == uuid.Nil }

// MarshalText renders ids in canonical string form for JSON and logs.
func (v VisitorID) MarshalText() ([]byte, error) { return uuid.UUID(v).MarshalText() }
func (b BadgeID) MarshalText() ([]byte, error)   { return uuid.UUID(b).MarshalText() }
func (h HostID) MarshalText() ([]byte, error)    { return uuid.UUID(h).MarshalText() }

// UnmarshalText applies the same strict rules as the Parse functions.
func (v *VisitorID) UnmarshalText(text []byte) error {
	parsed, err := ParseVisitorID(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (b *BadgeID) UnmarshalText(text []byte) error {
	parsed, err := ParseBadgeID(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (h *HostID) UnmarshalText(text []byte) error {
	parsed, err := ParseHostID(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseVisitorID validates s at a trust boundary.
func ParseVisitorID(s string) (VisitorID, error) {
	u, err := parseUUID(s, "visitor id")
	return VisitorID(u), err
}

// ParseBadgeID validates s at a trust boundary.
func ParseBadgeID(s string) (BadgeID, error) {
	u, err := parseUUID(s, "badge id")
	return BadgeID(u), err
}

// ParseHostID validates s at a trust boundary.
func ParseHostID(s string) (HostID, error) {
	u, err := parseUUID(s, "host id")
	return HostID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" is required")
	}
	// uuid.Parse also accepts urn and braced forms; only the canonical 36-char
	// form is allowed in.
	if len(s) != 36 {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+label)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" must not be nil")
	}
	return u, nil
}
