package models

import (
	"strings"
	"time"

	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
)

// VisitorStatus is the single closed set of lifecycle states. Any other
// spelling used by clients is mapped through ParseVisitorStatus.
type VisitorStatus string

const (
	StatusPendingApproval VisitorStatus = "pending_approval"
	StatusPreRegistered   VisitorStatus = "pre_registered"
	StatusCheckedIn       VisitorStatus = "checked_in"
	StatusCheckedOut      VisitorStatus = "checked_out"
	StatusCancelled       VisitorStatus = "cancelled"
)

var knownStatuses = map[VisitorStatus]bool{
	StatusPendingApproval: true,
	StatusPreRegistered:   true,
	StatusCheckedIn:       true,
	StatusCheckedOut:      true,
	StatusCancelled:       true,
}

// ParseVisitorStatus accepts the canonical form plus hyphenated and
// mixed-case variants ("Checked-In").
func ParseVisitorStatus(s string) (VisitorStatus, error) {
	norm := VisitorStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !knownStatuses[norm] {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown visitor status: "+s)
	}
	return norm, nil
}

func (s VisitorStatus) String() string { return string(s) }

// IsTerminal reports whether no engine transition leaves s.
func (s VisitorStatus) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Visitor is the aggregate the lifecycle engine moves through its states.
//
// Invariants:
//   - CheckOutTime set implies CheckInTime set and Status = checked_out
//   - BadgeID set implies Status = checked_in
//   - a visitor holds at most one badge
//   - transitions only move forward; checked_out and cancelled are terminal
type Visitor struct {
	ID           id.VisitorID  `json:"id"`
	VisitorCode  string        `json:"visitor_id"`
	Name         string        `json:"name"`
	HostID       id.HostID     `json:"host_id"`
	FloorNumber  *int          `json:"floor_number,omitempty"`
	FloorName    string        `json:"floor_name,omitempty"`
	GuestCode    string        `json:"-"`
	BadgeID      *id.BadgeID   `json:"badge_id,omitempty"`
	Status       VisitorStatus `json:"status"`
	VisitDate    *time.Time    `json:"visit_date,omitempty"`
	VisitTime    string        `json:"visit_time,omitempty"`
	CheckInTime  *time.Time    `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time    `json:"check_out_time,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CanCheckIn validates the check-in transition from the current status.
func (v *Visitor) CanCheckIn() error {
	return v.can(ActionCheckIn)
}

// ApplyCheckIn moves the visitor to checked_in, linking badgeID when one was
// reserved. Call CanCheckIn first.
func (v *Visitor) ApplyCheckIn(now time.Time, badgeID *id.BadgeID) {
	v.Status = StatusCheckedIn
	t := now
	v.CheckInTime = &t
	v.BadgeID = badgeID
	v.UpdatedAt = now
}

// CanCheckOut validates the check-out transition from the current status.
func (v *Visitor) CanCheckOut() error {
	return v.can(ActionCheckOut)
}

// ApplyCheckOut moves the visitor to checked_out and returns the badge that
// must be released, if any. Call CanCheckOut first.
func (v *Visitor) ApplyCheckOut(now time.Time) *id.BadgeID {
	released := v.BadgeID
	v.Status = StatusCheckedOut
	t := now
	v.CheckOutTime = &t
	v.BadgeID = nil
	v.UpdatedAt = now
	return released
}

// CanCancel validates the administrative cancel transition.
func (v *Visitor) CanCancel() error {
	return v.can(ActionCancel)
}

// ApplyCancel moves the visitor to cancelled. Call CanCancel first.
func (v *Visitor) ApplyCancel(now time.Time) {
	v.Status = StatusCancelled
	v.UpdatedAt = now
}

// DetachBadge clears the badge link without touching the lifecycle status.
// Used when a badge is returned or reported lost while the visitor stays on site.
func (v *Visitor) DetachBadge(now time.Time) {
	v.BadgeID = nil
	v.UpdatedAt = now
}

func (v *Visitor) can(action Action) error {
	if CanTransition(action, v.Status) {
		return nil
	}
	return dErrors.New(dErrors.CodeInvalidTransition, invalidTransitionMessage(action, v.Status)).
		With("current_status", string(v.Status)).
		With("action", string(action))
}

// CheckInvariants reports the first violated record-level invariant.
func (v *Visitor) CheckInvariants() error {
	if v.CheckOutTime != nil && (v.CheckInTime == nil || v.Status != StatusCheckedOut) {
		return dErrors.New(dErrors.CodeInvariantViolation, "check-out time requires a checked-out visitor with a check-in time")
	}
	if v.BadgeID != nil && v.Status != StatusCheckedIn {
		return dErrors.New(dErrors.CodeInvariantViolation, "only checked-in visitors may hold a badge")
	}
	return nil
}

// Clone returns a deep copy safe to hand across store boundaries.
func (v *Visitor) Clone() *Visitor {
	if v == nil {
		return nil
	}
	c := *v
	if v.FloorNumber != nil {
		n := *v.FloorNumber
		c.FloorNumber = &n
	}
	if v.BadgeID != nil {
		b := *v.BadgeID
		c.BadgeID = &b
	}
	c.VisitDate = cloneTime(v.VisitDate)
	c.CheckInTime = cloneTime(v.CheckInTime)
	c.CheckOutTime = cloneTime(v.CheckOutTime)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// VisitorFilter narrows a visitor listing before floor scoping is applied.
type VisitorFilter struct {
	Statuses  []VisitorStatus
	HostID    *id.HostID
	VisitDate *time.Time
	Search    string
}

// Matches applies the filter to a single record. Stores that cannot push a
// predicate down use it directly.
func (f VisitorFilter) Matches(v *Visitor) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if v.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.HostID != nil && v.HostID != *f.HostID {
		return false
	}
	if f.VisitDate != nil {
		if v.VisitDate == nil || !SameDate(*v.VisitDate, *f.VisitDate) {
			return false
		}
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(v.Name), strings.ToLower(q)) &&
			!strings.EqualFold(v.VisitorCode, q) {
			return false
		}
	}
	return true
}

// SameDate compares the calendar dates of a and b as written, ignoring zones.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
