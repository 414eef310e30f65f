// Package service is the visitor lifecycle engine. Every call site that moves
// a visitor or a badge goes through it, so the invariants live in one place.
package service

import (
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"frontdesk/internal/lobby/floorscope"
	"frontdesk/internal/lobby/metrics"
	"frontdesk/internal/lobby/ports"
	"frontdesk/internal/lobby/timegate"
)

const (
	defaultConflictRetries = 3
	defaultRetryBackoff    = 10 * time.Millisecond
	tracerName             = "frontdesk/internal/lobby/service"
)

// Service orchestrates check-in, check-out and badge handling over the
// injected stores.
type Service struct {
	visitors ports.VisitorStore
	badges   ports.BadgeStore
	tx       ports.StoreTx
	events   ports.EventSink

	gate  *timegate.Gate
	scope *floorscope.Filter

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	maxAttempts  int
	retryBackoff time.Duration
	newCode      func(n int) (string, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEventSink sets where domain events go after a commit.
func WithEventSink(sink ports.EventSink) Option {
	return func(s *Service) {
		s.events = sink
	}
}

// WithTimeGate replaces the default gate (UTC, 60 minute early window).
func WithTimeGate(g *timegate.Gate) Option {
	return func(s *Service) {
		if g != nil {
			s.gate = g
		}
	}
}

// WithConflictRetries bounds how many times a transaction that lost a race
// is attempted in total.
func WithConflictRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithRetryBackoff(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.retryBackoff = d
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// New constructs a Service. The stores and the transaction runner are
// required.
func New(visitors ports.VisitorStore, badges ports.BadgeStore, tx ports.StoreTx, opts ...Option) (*Service, error) {
	if visitors == nil {
		return nil, errors.New("visitor store is required")
	}
	if badges == nil {
		return nil, errors.New("badge store is required")
	}
	if tx == nil {
		return nil, errors.New("store transaction is required")
	}
	s := &Service{
		visitors:     visitors,
		badges:       badges,
		tx:           tx,
		gate:         timegate.New(),
		tracer:       otel.Tracer(tracerName),
		maxAttempts:  defaultConflictRetries,
		retryBackoff: defaultRetryBackoff,
		newCode:      randomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	scopeOpts := []floorscope.Option{floorscope.WithMetrics(s.metrics)}
	if s.logger != nil {
		scopeOpts = append(scopeOpts, floorscope.WithLogger(s.logger))
	}
	s.scope = floorscope.New(scopeOpts...)
	return s, nil
}
