package events

import (
	"context"
	"log/slog"

	"frontdesk/internal/lobby/models"
)

// Log writes each event as a structured log line.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Publish(ctx context.Context, event models.Event) error {
	attrs := []any{
		"event_id", event.ID,
		"event_type", string(event.Type),
		"occurred_at", event.OccurredAt,
		"request_id", event.RequestID,
	}
	if event.VisitorID != "" {
		attrs = append(attrs, "visitor_id", event.VisitorID)
	}
	if event.BadgeID != "" {
		attrs = append(attrs, "badge_id", event.BadgeID)
	}
	if event.BadgeNumber != nil {
		attrs = append(attrs, "badge_number", *event.BadgeNumber)
	}
	if event.OperatorID != "" {
		attrs = append(attrs, "operator_id", event.OperatorID)
	}
	l.logger.InfoContext(ctx, "domain event", attrs...)
	return nil
}
