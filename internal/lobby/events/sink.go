// Package events delivers lifecycle domain events to downstream consumers.
// Delivery is best-effort: a failed publish never undoes a committed state
// change.
package events

import (
	"context"
	"errors"
	"sync"

	"frontdesk/internal/lobby/models"
)

// Sink publishes a domain event.
type Sink interface {
	Publish(ctx context.Context, event models.Event) error
}

// FailureRecorder counts events that could not be delivered.
type FailureRecorder interface {
	IncEventPublishFailure(sink, reason string)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, models.Event) error { return nil }

// Fanout publishes to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Publish(ctx context.Context, event models.Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Memory keeps published events for inspection in tests and local runs.
type Memory struct {
	mu     sync.Mutex
	events []models.Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Publish(_ context.Context, event models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (m *Memory) Events() []models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Event, len(m.events))
	copy(out, m.events)
	return out
}

// OfType filters Events by type.
func (m *Memory) OfType(t models.EventType) []models.Event {
	var out []models.Event
	for _, e := range m.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
