package models

import (
	"strings"
	"time"

	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
)

// OperatorScope is what a receptionist is allowed to see. An empty
// AssignedFloors means every floor.
type OperatorScope struct {
	OperatorID     string
	AssignedFloors []string
}

// PreRegisterRequest creates a visitor ahead of arrival (or as a walk-in when
// VisitDate is nil).
type PreRegisterRequest struct {
	Name             string     `json:"name"`
	HostID           id.HostID  `json:"host_id"`
	FloorNumber      *int       `json:"floor_number,omitempty"`
	FloorName        string     `json:"floor_name,omitempty"`
	VisitDate        *time.Time `json:"visit_date,omitempty"`
	VisitTime        string     `json:"visit_time,omitempty"`
	RequiresApproval bool       `json:"requires_approval,omitempty"`
}

func (r *PreRegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.FloorName = strings.TrimSpace(r.FloorName)
	r.VisitTime = strings.TrimSpace(r.VisitTime)
}

func (r *PreRegisterRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "visitor name is required")
	}
	if len(r.Name) > 200 {
		return dErrors.New(dErrors.CodeValidation, "visitor name must be 200 characters or less")
	}
	if r.HostID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "host id is required")
	}
	if r.FloorNumber != nil && *r.FloorNumber < 0 {
		return dErrors.New(dErrors.CodeValidation, "floor number must not be negative")
	}
	return nil
}

// CheckInResult reports the visitor after check-in and the badge handed
// out. A nil Badge is a successful check-in with an empty inventory.
type CheckInResult struct {
	Visitor *Visitor `json:"visitor"`
	Badge   *Badge   `json:"badge,omitempty"`
}

func (r *CheckInResult) BadgeAssigned() bool { return r.Badge != nil }

// CheckOutResult reports the visitor after check-out and the badge number
// that went back to inventory, if any.
type CheckOutResult struct {
	Visitor             *Visitor `json:"visitor"`
	ReleasedBadgeNumber *int     `json:"released_badge_number,omitempty"`
}
