package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/lobby/models"
	"frontdesk/pkg/requestcontext"
)

func newEvent(ctx context.Context, t models.EventType, now time.Time, v *models.Visitor, b *models.Badge) models.Event {
	e := models.Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: now,
		RequestID:  requestcontext.RequestID(ctx),
		OperatorID: requestcontext.OperatorID(ctx),
	}
	if v != nil {
		e.VisitorID = v.ID.String()
		e.VisitorCode = v.VisitorCode
		e.HostID = v.HostID.String()
	}
	if b != nil {
		e.BadgeID = b.ID.String()
		n := b.Number
		e.BadgeNumber = &n
		if e.VisitorID == "" && b.CurrentVisitorID != nil {
			e.VisitorID = b.CurrentVisitorID.String()
		}
	}
	return e
}

// publish delivers events after commit. Failures are logged and counted but
// never undo the state change.
func (s *Service) publish(ctx context.Context, events ...models.Event) {
	if s.events == nil {
		return
	}
	for _, e := range events {
		if err := s.events.Publish(ctx, e); err != nil {
			s.metrics.IncEventPublishFailure("engine", "publish")
			if s.logger != nil {
				s.logger.WarnContext(ctx, "failed to publish domain event",
					"request_id", requestcontext.RequestID(ctx),
					"event_type", string(e.Type),
					"visitor_id", e.VisitorID,
					"error", err,
				)
			}
		}
	}
}
