package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
)

func TestVisitorLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC)
	badgeID := id.NewBadgeID()
	v := &Visitor{ID: id.NewVisitorID(), Status: StatusPreRegistered}

	require.NoError(t, v.CanCheckIn())
	v.ApplyCheckIn(now, &badgeID)
	assert.Equal(t, StatusCheckedIn, v.Status)
	require.NoError(t, v.CheckInvariants())

	t.Run("second check-in is rejected with current status", func(t *testing.T) {
		err := v.CanCheckIn()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))
		status, ok := dErrors.Detail(err, "current_status")
		require.True(t, ok)
		assert.Equal(t, "checked_in", status)
	})

	require.NoError(t, v.CanCheckOut())
	released := v.ApplyCheckOut(now.Add(time.Hour))
	require.NotNil(t, released)
	assert.Equal(t, badgeID, *released)
	assert.Nil(t, v.BadgeID)
	require.NoError(t, v.CheckInvariants())

	assert.True(t, dErrors.HasCode(v.CanCheckOut(), dErrors.CodeInvalidTransition))
	assert.True(t, dErrors.HasCode(v.CanCancel(), dErrors.CodeInvalidTransition))
}

func TestVisitorInvariants(t *testing.T) {
	now := time.Now()
	badgeID := id.NewBadgeID()

	bad := &Visitor{Status: StatusPreRegistered, BadgeID: &badgeID}
	assert.True(t, dErrors.HasCode(bad.CheckInvariants(), dErrors.CodeInvariantViolation))

	bad = &Visitor{Status: StatusCheckedOut, CheckOutTime: &now}
	assert.True(t, dErrors.HasCode(bad.CheckInvariants(), dErrors.CodeInvariantViolation))
}

func TestParseVisitorStatus(t *testing.T) {
	for in, want := range map[string]VisitorStatus{
		"checked_in":     StatusCheckedIn,
		"checked-in":     StatusCheckedIn,
		" Checked-Out":   StatusCheckedOut,
		"PRE_REGISTERED": StatusPreRegistered,
	} {
		got, err := ParseVisitorStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseVisitorStatus("arrived")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestBadgeAssignRelease(t *testing.T) {
	now := time.Now()
	b := &Badge{ID: id.NewBadgeID(), Number: 12, Type: BadgeTypeVisitor, Status: BadgeAvailable}

	visitorID := id.NewVisitorID()
	require.NoError(t, b.Assign(visitorID, now))
	assert.Equal(t, BadgeAssigned, b.Status)
	assert.Equal(t, visitorID, *b.CurrentVisitorID)
	require.NoError(t, b.CheckInvariants())

	assert.True(t, dErrors.HasCode(b.Assign(id.NewVisitorID(), now), dErrors.CodeInvariantViolation))

	assert.True(t, b.Release(now))
	assert.Nil(t, b.CurrentVisitorID)
	assert.False(t, b.Release(now), "releasing an available badge is a no-op")
	assert.Equal(t, "#12", b.Label())
}

func TestParseBadgeType(t *testing.T) {
	got, err := ParseBadgeType("")
	require.NoError(t, err)
	assert.Equal(t, BadgeTypeVisitor, got)

	got, err = ParseBadgeType("VIP")
	require.NoError(t, err)
	assert.Equal(t, BadgeTypeVIP, got)

	_, err = ParseBadgeType("staff")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestSummarizeBadges(t *testing.T) {
	visitorID := id.NewVisitorID()
	badges := []*Badge{
		{Type: BadgeTypeVisitor, Status: BadgeAvailable},
		{Type: BadgeTypeVisitor, Status: BadgeAssigned, CurrentVisitorID: &visitorID},
		{Type: BadgeTypeVIP, Status: BadgeAvailable},
	}

	summary := SummarizeBadges(badges)
	require.Len(t, summary, len(BadgeTypes))
	assert.Equal(t, BadgeSummary{Type: BadgeTypeVisitor, Total: 2, Available: 1, Assigned: 1}, summary[0])
	assert.Equal(t, BadgeSummary{Type: BadgeTypeVIP, Total: 1, Available: 1}, summary[2])
	for _, s := range summary {
		assert.Equal(t, s.Total, s.Available+s.Assigned)
	}
}

func TestVisitorFilterMatches(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	host := id.NewHostID()
	v := &Visitor{Name: "Ada Lovelace", VisitorCode: "VIS-7KQ2M9XA", HostID: host, Status: StatusPreRegistered, VisitDate: &day}

	assert.True(t, VisitorFilter{}.Matches(v))
	assert.True(t, VisitorFilter{Statuses: []VisitorStatus{StatusPreRegistered, StatusCheckedIn}}.Matches(v))
	assert.False(t, VisitorFilter{Statuses: []VisitorStatus{StatusCheckedOut}}.Matches(v))
	assert.True(t, VisitorFilter{HostID: &host}.Matches(v))
	assert.True(t, VisitorFilter{Search: "lovelace"}.Matches(v))
	assert.True(t, VisitorFilter{Search: "vis-7kq2m9xa"}.Matches(v))
	assert.False(t, VisitorFilter{Search: "babbage"}.Matches(v))

	other := day.AddDate(0, 0, 1)
	assert.False(t, VisitorFilter{VisitDate: &other}.Matches(v))
}
