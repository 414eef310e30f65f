package events

import (
	"context"
	"errors"
	"log/slog"

	"frontdesk/internal/lobby/models"
	"frontdesk/pkg/platform/circuit"
)

var ErrCircuitOpen = errors.New("event sink circuit open")

// Guarded sheds events while its downstream keeps failing, so a dead broker
// costs one probe per cooldown instead of a timeout per event.
type Guarded struct {
	next     Sink
	breaker  *circuit.Breaker
	logger   *slog.Logger
	recorder FailureRecorder
}

type GuardOption func(*Guarded)

func WithGuardLogger(logger *slog.Logger) GuardOption {
	return func(g *Guarded) {
		g.logger = logger
	}
}

func WithGuardFailureRecorder(m FailureRecorder) GuardOption {
	return func(g *Guarded) {
		g.recorder = m
	}
}

func NewGuarded(next Sink, breaker *circuit.Breaker, opts ...GuardOption) *Guarded {
	g := &Guarded{next: next, breaker: breaker}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Guarded) Publish(ctx context.Context, event models.Event) error {
	if !g.breaker.Allow() {
		if g.recorder != nil {
			g.recorder.IncEventPublishFailure(g.breaker.Name(), "circuit_open")
		}
		return ErrCircuitOpen
	}
	if err := g.next.Publish(ctx, event); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened && g.logger != nil {
			g.logger.WarnContext(ctx, "event sink circuit opened",
				"sink", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed && g.logger != nil {
		g.logger.InfoContext(ctx, "event sink circuit closed", "sink", g.breaker.Name())
	}
	return nil
}
