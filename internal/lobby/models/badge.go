package models

import (
	"fmt"
	"strings"
	"time"

	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
)

// BadgeType partitions the badge pool. Allocation and locking are scoped per type.
type BadgeType string

const (
	BadgeTypeVisitor    BadgeType = "visitor"
	BadgeTypeContractor BadgeType = "contractor"
	BadgeTypeVIP        BadgeType = "vip"
	BadgeTypeDelivery   BadgeType = "delivery"
)

// BadgeTypes lists every type in display order.
var BadgeTypes = []BadgeType{BadgeTypeVisitor, BadgeTypeContractor, BadgeTypeVIP, BadgeTypeDelivery}

// ParseBadgeType validates s; an empty value selects the visitor pool.
func ParseBadgeType(s string) (BadgeType, error) {
	t := BadgeType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return BadgeTypeVisitor, nil
	}
	for _, known := range BadgeTypes {
		if t == known {
			return t, nil
		}
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "unknown badge type: "+s)
}

type BadgeStatus string

const (
	BadgeAvailable BadgeStatus = "available"
	BadgeAssigned  BadgeStatus = "assigned"
)

// Badge is a physical access badge.
//
// Invariants:
//   - assigned implies exactly one CurrentVisitorID, whose visitor links back
//   - available implies CurrentVisitorID is nil
//   - Number is unique across the inventory
type Badge struct {
	ID               id.BadgeID    `json:"id"`
	Number           int           `json:"number"`
	Type             BadgeType     `json:"type"`
	Status           BadgeStatus   `json:"status"`
	CurrentVisitorID *id.VisitorID `json:"current_visitor_id,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Label is the human-readable badge number.
func (b *Badge) Label() string {
	return fmt.Sprintf("#%d", b.Number)
}

// Assign links the badge to a visitor.
func (b *Badge) Assign(visitorID id.VisitorID, now time.Time) error {
	if b.Status != BadgeAvailable {
		return dErrors.New(dErrors.CodeInvariantViolation, "badge "+b.Label()+" is already assigned")
	}
	v := visitorID
	b.Status = BadgeAssigned
	b.CurrentVisitorID = &v
	b.UpdatedAt = now
	return nil
}

// Release returns the badge to the pool. It reports false when the badge was
// already available.
func (b *Badge) Release(now time.Time) bool {
	if b.Status == BadgeAvailable {
		return false
	}
	b.Status = BadgeAvailable
	b.CurrentVisitorID = nil
	b.UpdatedAt = now
	return true
}

// CheckInvariants reports the first violated record-level invariant.
func (b *Badge) CheckInvariants() error {
	switch b.Status {
	case BadgeAssigned:
		if b.CurrentVisitorID == nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "assigned badge has no visitor")
		}
	case BadgeAvailable:
		if b.CurrentVisitorID != nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "available badge still references a visitor")
		}
	default:
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown badge status "+string(b.Status))
	}
	return nil
}

func (b *Badge) Clone() *Badge {
	if b == nil {
		return nil
	}
	c := *b
	if b.CurrentVisitorID != nil {
		v := *b.CurrentVisitorID
		c.CurrentVisitorID = &v
	}
	return &c
}

// BadgeSummary counts one badge type's pool.
type BadgeSummary struct {
	Type      BadgeType `json:"type"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
	Assigned  int       `json:"assigned"`
}

// SummarizeBadges tallies badges per type in BadgeTypes order.
func SummarizeBadges(badges []*Badge) []BadgeSummary {
	byType := make(map[BadgeType]*BadgeSummary, len(BadgeTypes))
	out := make([]BadgeSummary, len(BadgeTypes))
	for i, t := range BadgeTypes {
		out[i].Type = t
		byType[t] = &out[i]
	}
	for _, b := range badges {
		s, ok := byType[b.Type]
		if !ok {
			continue
		}
		s.Total++
		if b.Status == BadgeAssigned {
			s.Assigned++
		} else {
			s.Available++
		}
	}
	return out
}
