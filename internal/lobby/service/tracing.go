package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "frontdesk/pkg/domain-errors"
)

func (s *Service) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "lobby."+op, trace.WithAttributes(attrs...))
}

// reject records a failed operation on its span and in metrics, and returns
// err unchanged.
func (s *Service) reject(span trace.Span, op string, err error) error {
	code := dErrors.CodeOf(err)
	s.metrics.IncRejection(op, string(code))
	span.SetAttributes(attribute.String("error.code", string(code)))
	span.RecordError(err)
	span.SetStatus(codes.Error, string(code))
	return err
}
