// Package timegate decides whether a scheduled visitor may check in yet.
package timegate

import (
	"strings"
	"time"

	dErrors "frontdesk/pkg/domain-errors"
)

// DefaultEarlyWindow is how long before the scheduled time check-in opens.
const DefaultEarlyWindow = 60 * time.Minute

var timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04 pm", "3:04pm"}

// Gate evaluates the check-in window in the building's local time.
type Gate struct {
	loc         *time.Location
	earlyWindow time.Duration
}

type Option func(*Gate)

// WithLocation sets the zone "today" is evaluated in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(g *Gate) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// WithEarlyWindow overrides DefaultEarlyWindow.
func WithEarlyWindow(d time.Duration) Option {
	return func(g *Gate) {
		if d >= 0 {
			g.earlyWindow = d
		}
	}
}

func New(opts ...Option) *Gate {
	g := &Gate{loc: time.UTC, earlyWindow: DefaultEarlyWindow}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check returns nil when a visitor scheduled for visitDate at visitTime may
// check in at now, or a CodeTooEarly error carrying either "scheduled_date"
// or "allowed_from". There is no upper bound: late arrivals always pass.
//
// A nil visitDate is a walk-in and always passes. An unparsable visitTime is
// treated as no time constraint.
func (g *Gate) Check(visitDate *time.Time, visitTime string, now time.Time) error {
	if visitDate == nil {
		return nil
	}
	local := now.In(g.loc)
	today := civilDate(local.Date())
	scheduled := civilDate(visitDate.Date())

	switch {
	case scheduled.After(today):
		return dErrors.New(dErrors.CodeTooEarly, "visit is scheduled for a later date").
			With("scheduled_date", scheduled.Format(time.DateOnly))
	case scheduled.Before(today):
		return nil
	}

	clock, ok := ParseTimeOfDay(visitTime)
	if !ok {
		return nil
	}
	y, m, d := local.Date()
	scheduledAt := time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, g.loc)
	allowedFrom := scheduledAt.Add(-g.earlyWindow)
	if local.Before(allowedFrom) {
		return dErrors.New(dErrors.CodeTooEarly, "check-in opens "+g.earlyWindow.String()+" before the scheduled time").
			With("scheduled_at", scheduledAt).
			With("allowed_from", allowedFrom)
	}
	return nil
}

// ParseTimeOfDay parses the clock formats found in schedule data. The
// returned time only carries hour, minute and second.
func ParseTimeOfDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func civilDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
