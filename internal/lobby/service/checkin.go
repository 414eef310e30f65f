package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"frontdesk/internal/lobby/identity"
	"frontdesk/internal/lobby/models"
	"frontdesk/internal/lobby/ports"
	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/platform/sentinel"
	"frontdesk/pkg/requestcontext"
)

const opCheckIn = "check_in"

// CheckIn admits a visitor who presents code and hands out the
// lowest-numbered free badge of badgeType (visitor when empty).
//
// Checks run in order: blank code, visitor lookup, lifecycle status,
// identity, time window. An exhausted badge pool is not an error: the
// visitor is checked in and the result carries no badge.
func (s *Service) CheckIn(ctx context.Context, visitorID id.VisitorID, code string, badgeType models.BadgeType) (*models.CheckInResult, error) {
	start := time.Now()
	defer s.metrics.ObserveCheckIn(start)
	ctx, span := s.startSpan(ctx, opCheckIn, attribute.String("visitor.id", visitorID.String()))
	defer span.End()

	if identity.Blank(code) {
		return nil, s.reject(span, opCheckIn, dErrors.New(dErrors.CodeCodeMismatch, "guest code is required"))
	}
	badgeType, err := models.ParseBadgeType(string(badgeType))
	if err != nil {
		return nil, s.reject(span, opCheckIn, err)
	}
	span.SetAttributes(attribute.String("badge.type", string(badgeType)))

	visitor, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, s.reject(span, opCheckIn, translate(err, "visitor not found", "failed to load visitor"))
	}
	if err := visitor.CanCheckIn(); err != nil {
		return nil, s.reject(span, opCheckIn, err)
	}
	if !identity.Verify(visitor, code) {
		return nil, s.reject(span, opCheckIn, dErrors.New(dErrors.CodeCodeMismatch, "code does not match this visitor"))
	}
	now := requestcontext.Now(ctx)
	if err := s.gate.Check(visitor.VisitDate, visitor.VisitTime, now); err != nil {
		return nil, s.reject(span, opCheckIn, err)
	}

	var result *models.CheckInResult
	err = s.withRetry(ctx, opCheckIn, func() error {
		return s.tx.RunInTx(ctx, ports.TxScope{BadgeType: badgeType}, func(st ports.TxStores) error {
			var txErr error
			result, txErr = s.applyCheckIn(ctx, st, visitorID, badgeType, now)
			return txErr
		})
	})
	if err != nil {
		return nil, s.reject(span, opCheckIn, translate(err, "visitor not found", "failed to check in visitor"))
	}

	s.metrics.IncCheckIn(result.BadgeAssigned())
	span.SetAttributes(attribute.Bool("badge.assigned", result.BadgeAssigned()))
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"visitor_id", visitorID.String(),
		"badge_assigned", result.BadgeAssigned(),
	}
	events := []models.Event{newEvent(ctx, models.EventVisitorCheckedIn, now, result.Visitor, result.Badge)}
	if result.Badge != nil {
		attrs = append(attrs, "badge_number", result.Badge.Number)
		events = append(events, newEvent(ctx, models.EventBadgeAssigned, now, result.Visitor, result.Badge))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "visitor checked in", attrs...)
	}
	s.publish(ctx, events...)
	return result, nil
}

// applyCheckIn is the locked part of CheckIn: re-read, reserve, link.
func (s *Service) applyCheckIn(ctx context.Context, st ports.TxStores, visitorID id.VisitorID, badgeType models.BadgeType, now time.Time) (*models.CheckInResult, error) {
	visitor, err := st.Visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, conflictOr(err, "visitor not found", "failed to load visitor")
	}
	// Another desk may have moved the visitor since the pre-checks.
	if err := visitor.CanCheckIn(); err != nil {
		return nil, err
	}
	expected := visitor.Status

	badge, err := st.Badges.FindAvailable(ctx, badgeType)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		badge = nil
	case err != nil:
		return nil, conflictOr(err, "badge not found", "failed to reserve badge")
	}

	if badge != nil {
		if err := badge.Assign(visitor.ID, now); err != nil {
			return nil, err
		}
		visitor.ApplyCheckIn(now, &badge.ID)
		if err := badge.CheckInvariants(); err != nil {
			return nil, err
		}
	} else {
		visitor.ApplyCheckIn(now, nil)
	}
	if err := visitor.CheckInvariants(); err != nil {
		return nil, err
	}

	if badge != nil {
		if err := st.Badges.UpdateIfStatus(ctx, badge, models.BadgeAvailable); err != nil {
			return nil, conflictOr(err, "badge not found", "failed to assign badge")
		}
	}
	if err := st.Visitors.UpdateIfStatus(ctx, visitor, expected); err != nil {
		return nil, conflictOr(err, "visitor not found", "failed to check in visitor")
	}
	return &models.CheckInResult{Visitor: visitor, Badge: badge}, nil
}
