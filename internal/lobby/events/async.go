package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"frontdesk/internal/lobby/models"
)

const defaultBuffer = 1024

// Async queues events for a background worker so request paths never wait on
// the downstream sink. When the queue is full the event is dropped and
// counted here and Publish still returns nil, so callers do not count the
// same drop again.
type Async struct {
	next    Sink
	name    string
	inbox   chan queued
	logger  *slog.Logger
	metrics FailureRecorder

	closeOnce sync.Once
	done      chan struct{}
}

type queued struct {
	ctx   context.Context
	event models.Event
}

type AsyncOption func(*Async)

func WithBuffer(n int) AsyncOption {
	return func(a *Async) {
		if n > 0 {
			a.inbox = make(chan queued, n)
		}
	}
}

func WithAsyncLogger(logger *slog.Logger) AsyncOption {
	return func(a *Async) {
		a.logger = logger
	}
}

func WithFailureRecorder(m FailureRecorder) AsyncOption {
	return func(a *Async) {
		a.metrics = m
	}
}

// WithSinkName labels failure metrics. Defaults to "async".
func WithSinkName(name string) AsyncOption {
	return func(a *Async) {
		a.name = name
	}
}

func NewAsync(next Sink, opts ...AsyncOption) *Async {
	a := &Async{
		next:  next,
		name:  "async",
		inbox: make(chan queued, defaultBuffer),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Publish enqueues without blocking. Events arriving after Close or while
// the buffer is full are dropped and counted.
func (a *Async) Publish(ctx context.Context, event models.Event) error {
	select {
	case <-a.done:
		a.drop(ctx, event, "closed")
		return nil
	default:
	}
	select {
	case a.inbox <- queued{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		a.drop(ctx, event, "buffer_full")
	}
	return nil
}

func (a *Async) drop(ctx context.Context, event models.Event, reason string) {
	a.fail(reason)
	if a.logger != nil {
		a.logger.WarnContext(ctx, "dropped domain event",
			"request_id", event.RequestID,
			"event_id", event.ID,
			"event_type", string(event.Type),
			"reason", reason,
		)
	}
}

// Run delivers queued events until ctx is done or Close is called, then
// drains whatever is still buffered.
func (a *Async) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			a.drain()
			return nil
		case <-a.done:
			a.drain()
			return nil
		case q := <-a.inbox:
			a.deliver(q)
		}
	}
}

// Close stops accepting events. Run returns once the buffer is drained.
func (a *Async) Close() {
	a.closeOnce.Do(func() { close(a.done) })
}

// Pending reports how many events are buffered.
func (a *Async) Pending() int {
	return len(a.inbox)
}

func (a *Async) drain() {
	for {
		select {
		case q := <-a.inbox:
			a.deliver(q)
		default:
			return
		}
	}
}

func (a *Async) deliver(q queued) {
	if err := a.next.Publish(q.ctx, q.event); err != nil {
		if !errors.Is(err, ErrCircuitOpen) {
			a.fail("delivery")
		}
		if a.logger != nil {
			a.logger.WarnContext(q.ctx, "failed to deliver domain event",
				"request_id", q.event.RequestID,
				"event_id", q.event.ID,
				"event_type", string(q.event.Type),
				"error", err,
			)
		}
	}
}

func (a *Async) fail(reason string) {
	if a.metrics != nil {
		a.metrics.IncEventPublishFailure(a.name, reason)
	}
}
