package events

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/lobby/models"
)

type recorder struct {
	mu      sync.Mutex
	reasons []string
}

func (r *recorder) IncEventPublishFailure(_, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

func (r *recorder) Reasons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reasons...)
}

type failingSink struct{}

func (failingSink) Publish(context.Context, models.Event) error {
	return errors.New("downstream unavailable")
}

type blockingSink struct{ release chan struct{} }

func (b blockingSink) Publish(context.Context, models.Event) error {
	<-b.release
	return nil
}

func event(t models.EventType) models.Event {
	return models.Event{ID: "evt-1", Type: t, VisitorID: "v-1", OccurredAt: time.Now()}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Publish(context.Background(), event(models.EventVisitorCheckedIn)))
	require.NoError(t, m.Publish(context.Background(), event(models.EventBadgeAssigned)))

	assert.Len(t, m.Events(), 2)
	assert.Len(t, m.OfType(models.EventBadgeAssigned), 1)

	m.Reset()
	assert.Empty(t, m.Events())
}

func TestFanoutJoinsErrors(t *testing.T) {
	m := NewMemory()
	err := Fanout{m, failingSink{}}.Publish(context.Background(), event(models.EventVisitorCheckedOut))

	require.Error(t, err)
	assert.Len(t, m.Events(), 1, "healthy sinks still receive the event")
}

func TestLogWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLog(slog.New(slog.NewJSONHandler(&buf, nil)))
	n := 7
	e := event(models.EventBadgeReleased)
	e.BadgeNumber = &n

	require.NoError(t, sink.Publish(context.Background(), e))
	assert.Contains(t, buf.String(), `"event_type":"badge.released"`)
	assert.Contains(t, buf.String(), `"badge_number":7`)
}

func TestAsyncDeliversAndDrains(t *testing.T) {
	m := NewMemory()
	a := NewAsync(m, WithBuffer(16))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = a.Run(ctx)
		close(done)
	}()

	for i := 0; i < 10; i++ {
		require.NoError(t, a.Publish(context.Background(), event(models.EventVisitorCheckedIn)))
	}
	cancel()
	<-done

	assert.Len(t, m.Events(), 10)
}

func TestAsyncDropsWhenFull(t *testing.T) {
	rec := &recorder{}
	blocker := blockingSink{release: make(chan struct{})}
	a := NewAsync(blocker, WithBuffer(1), WithFailureRecorder(rec))

	require.NoError(t, a.Publish(context.Background(), event(models.EventVisitorCheckedIn)))
	require.NoError(t, a.Publish(context.Background(), event(models.EventVisitorCheckedIn)))

	assert.Equal(t, []string{"buffer_full"}, rec.Reasons())
	assert.Equal(t, 1, a.Pending())
	close(blocker.release)
}

func TestAsyncCountsDeliveryFailures(t *testing.T) {
	rec := &recorder{}
	a := NewAsync(failingSink{}, WithFailureRecorder(rec))
	require.NoError(t, a.Publish(context.Background(), event(models.EventVisitorCheckedIn)))

	a.Close()
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, []string{"delivery"}, rec.Reasons())
	require.NoError(t, a.Publish(context.Background(), event(models.EventVisitorCheckedIn)))
	assert.Equal(t, []string{"delivery", "closed"}, rec.Reasons())
}
