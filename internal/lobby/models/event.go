package models

import "time"

// EventType names a domain event the notification subsystem reacts to.
type EventType string

const (
	EventVisitorPreRegistered EventType = "visitor.pre_registered"
	EventVisitorCheckedIn     EventType = "visitor.checked_in"
	EventVisitorCheckedOut    EventType = "visitor.checked_out"
	EventVisitorCancelled     EventType = "visitor.cancelled"
	EventBadgeAssigned        EventType = "badge.assigned"
	EventBadgeReleased        EventType = "badge.released"
)

// Event is transport-agnostic so sinks can fan out to logs, Kafka or tests.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	OccurredAt  time.Time `json:"occurred_at"`
	VisitorID   string    `json:"visitor_id,omitempty"`
	VisitorCode string    `json:"visitor_code,omitempty"`
	HostID      string    `json:"host_id,omitempty"`
	BadgeID     string    `json:"badge_id,omitempty"`
	BadgeNumber *int      `json:"badge_number,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	OperatorID  string    `json:"operator_id,omitempty"`
}

// Key is the partitioning key: all events for one visitor stay ordered.
func (e Event) Key() string {
	if e.VisitorID != "" {
		return e.VisitorID
	}
	return e.BadgeID
}
