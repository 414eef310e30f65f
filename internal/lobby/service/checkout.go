package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"frontdesk/internal/lobby/models"
	"frontdesk/internal/lobby/ports"
	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/platform/sentinel"
	"frontdesk/pkg/requestcontext"
)

const opCheckOut = "check_out"

// CheckOut moves a checked-in visitor to checked_out and returns their badge
// to the pool in the same transaction.
func (s *Service) CheckOut(ctx context.Context, visitorID id.VisitorID) (*models.CheckOutResult, error) {
	ctx, span := s.startSpan(ctx, opCheckOut, attribute.String("visitor.id", visitorID.String()))
	defer span.End()

	visitor, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, s.reject(span, opCheckOut, translate(err, "visitor not found", "failed to load visitor"))
	}
	if err := visitor.CanCheckOut(); err != nil {
		return nil, s.reject(span, opCheckOut, err)
	}

	now := requestcontext.Now(ctx)
	var (
		result   *models.CheckOutResult
		released *models.Badge
	)
	err = s.withRetry(ctx, opCheckOut, func() error {
		// The badge type decides which pool lock to hold, so it is read
		// before the transaction and re-validated inside it.
		planned, scope, err := s.badgeScope(ctx, visitorID)
		if err != nil {
			return err
		}
		return s.tx.RunInTx(ctx, scope, func(st ports.TxStores) error {
			var txErr error
			result, released, txErr = s.applyCheckOut(ctx, st, visitorID, planned, now)
			return txErr
		})
	})
	if err != nil {
		return nil, s.reject(span, opCheckOut, translate(err, "visitor not found", "failed to check out visitor"))
	}

	s.metrics.IncCheckOut()
	events := []models.Event{newEvent(ctx, models.EventVisitorCheckedOut, now, result.Visitor, released)}
	if released != nil {
		events = append(events, newEvent(ctx, models.EventBadgeReleased, now, result.Visitor, released))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "visitor checked out",
			"request_id", requestcontext.RequestID(ctx),
			"visitor_id", visitorID.String(),
			"badge_released", released != nil,
		)
	}
	s.publish(ctx, events...)
	return result, nil
}

// badgeScope reads the visitor's current badge link and the pool it belongs to.
func (s *Service) badgeScope(ctx context.Context, visitorID id.VisitorID) (*id.BadgeID, ports.TxScope, error) {
	visitor, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, ports.TxScope{}, conflictOr(err, "visitor not found", "failed to load visitor")
	}
	if visitor.BadgeID == nil {
		return nil, ports.TxScope{}, nil
	}
	badge, err := s.badges.FindByID(ctx, *visitor.BadgeID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return visitor.BadgeID, ports.TxScope{}, nil
	}
	if err != nil {
		return nil, ports.TxScope{}, conflictOr(err, "badge not found", "failed to load badge")
	}
	return visitor.BadgeID, ports.TxScope{BadgeType: badge.Type}, nil
}

func (s *Service) applyCheckOut(ctx context.Context, st ports.TxStores, visitorID id.VisitorID, planned *id.BadgeID, now time.Time) (*models.CheckOutResult, *models.Badge, error) {
	visitor, err := st.Visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, nil, conflictOr(err, "visitor not found", "failed to load visitor")
	}
	if err := visitor.CanCheckOut(); err != nil {
		return nil, nil, err
	}
	if !sameBadge(visitor.BadgeID, planned) {
		// Badge link changed after the pool was chosen; start over.
		return nil, nil, sentinel.ErrConflict
	}

	badgeID := visitor.ApplyCheckOut(now)
	if err := visitor.CheckInvariants(); err != nil {
		return nil, nil, err
	}

	var released *models.Badge
	if badgeID != nil {
		badge, err := st.Badges.FindByID(ctx, *badgeID)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			s.warnDangling(ctx, visitorID, *badgeID)
		case err != nil:
			return nil, nil, conflictOr(err, "badge not found", "failed to load badge")
		case badge.Status == models.BadgeAssigned && badge.CurrentVisitorID != nil && *badge.CurrentVisitorID == visitorID:
			badge.Release(now)
			if err := st.Badges.UpdateIfStatus(ctx, badge, models.BadgeAssigned); err != nil {
				return nil, nil, conflictOr(err, "badge not found", "failed to release badge")
			}
			released = badge
		default:
			s.warnDangling(ctx, visitorID, *badgeID)
		}
	}

	if err := st.Visitors.UpdateIfStatus(ctx, visitor, models.StatusCheckedIn); err != nil {
		return nil, nil, conflictOr(err, "visitor not found", "failed to check out visitor")
	}

	result := &models.CheckOutResult{Visitor: visitor}
	if released != nil {
		n := released.Number
		result.ReleasedBadgeNumber = &n
	}
	return result, released, nil
}

// warnDangling logs a visitor whose badge link does not point back at them.
// Check-out proceeds and the badge is left untouched.
func (s *Service) warnDangling(ctx context.Context, visitorID id.VisitorID, badgeID id.BadgeID) {
	if s.logger == nil {
		return
	}
	s.logger.WarnContext(ctx, "visitor badge link is not reciprocated; badge left as is",
		"request_id", requestcontext.RequestID(ctx),
		"visitor_id", visitorID.String(),
		"badge_id", badgeID.String(),
		"code", string(dErrors.CodeInvariantViolation),
	)
}

func sameBadge(a, b *id.BadgeID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
