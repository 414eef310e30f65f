package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"frontdesk/internal/lobby/models"
	"frontdesk/internal/lobby/ports"
	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/platform/sentinel"
	"frontdesk/pkg/requestcontext"
)

const (
	opReturnBadge     = "return_badge"
	opProvisionBadges = "provision_badges"

	maxProvisionBatch = 500
)

// ReturnBadge puts a badge back in the pool while its visitor stays on site,
// e.g. a lost badge being replaced. Returning an available badge is a no-op.
func (s *Service) ReturnBadge(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	ctx, span := s.startSpan(ctx, opReturnBadge, attribute.String("badge.id", badgeID.String()))
	defer span.End()

	now := requestcontext.Now(ctx)
	var out returnOutcome
	err := s.withRetry(ctx, opReturnBadge, func() error {
		current, err := s.badges.FindByID(ctx, badgeID)
		if err != nil {
			return conflictOr(err, "badge not found", "failed to load badge")
		}
		if current.Status == models.BadgeAvailable {
			out = returnOutcome{badge: current, noop: true}
			return nil
		}
		return s.tx.RunInTx(ctx, ports.TxScope{BadgeType: current.Type}, func(st ports.TxStores) error {
			var txErr error
			out, txErr = s.applyReturn(ctx, st, badgeID)
			return txErr
		})
	})
	if err != nil {
		return nil, s.reject(span, opReturnBadge, translate(err, "badge not found", "failed to return badge"))
	}
	badge := out.badge
	if out.noop {
		return badge, nil
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "badge returned",
			"request_id", requestcontext.RequestID(ctx),
			"badge_id", badgeID.String(),
			"badge_number", badge.Number,
		)
	}
	event := newEvent(ctx, models.EventBadgeReleased, now, out.holder, badge)
	if event.VisitorID == "" && out.holderID != nil {
		event.VisitorID = out.holderID.String()
	}
	s.publish(ctx, event)
	return badge, nil
}

// returnOutcome carries the released badge and whoever held it. holderID is
// kept even when the holder record itself is gone.
type returnOutcome struct {
	badge    *models.Badge
	holder   *models.Visitor
	holderID *id.VisitorID
	noop     bool
}

func (s *Service) applyReturn(ctx context.Context, st ports.TxStores, badgeID id.BadgeID) (returnOutcome, error) {
	now := requestcontext.Now(ctx)
	badge, err := st.Badges.FindByID(ctx, badgeID)
	if err != nil {
		return returnOutcome{}, conflictOr(err, "badge not found", "failed to load badge")
	}
	if badge.Status == models.BadgeAvailable {
		return returnOutcome{badge: badge, noop: true}, nil
	}

	out := returnOutcome{badge: badge, holderID: badge.CurrentVisitorID}
	badge.Release(now)
	if err := st.Badges.UpdateIfStatus(ctx, badge, models.BadgeAssigned); err != nil {
		return returnOutcome{}, conflictOr(err, "badge not found", "failed to release badge")
	}
	if out.holderID == nil {
		return out, nil
	}

	visitor, err := st.Visitors.FindByID(ctx, *out.holderID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return returnOutcome{}, conflictOr(err, "visitor not found", "failed to load visitor")
	}
	out.holder = visitor
	if visitor.BadgeID == nil || *visitor.BadgeID != badgeID {
		return out, nil
	}
	status := visitor.Status
	visitor.DetachBadge(now)
	if err := st.Visitors.UpdateIfStatus(ctx, visitor, status); err != nil {
		return returnOutcome{}, conflictOr(err, "visitor not found", "failed to detach badge")
	}
	return out, nil
}

// BadgeSummary counts the pool per badge type. Assigned plus available
// always equals total.
func (s *Service) BadgeSummary(ctx context.Context) ([]models.BadgeSummary, error) {
	badges, err := s.badges.List(ctx)
	if err != nil {
		return nil, translate(err, "badges not found", "failed to list badges")
	}
	summary := models.SummarizeBadges(badges)
	for _, row := range summary {
		s.metrics.SetBadgesAssigned(string(row.Type), row.Assigned)
	}
	return summary, nil
}

// ListBadges returns the whole inventory ordered by number.
func (s *Service) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	badges, err := s.badges.List(ctx)
	if err != nil {
		return nil, translate(err, "badges not found", "failed to list badges")
	}
	return badges, nil
}

// ProvisionBadges adds count new available badges of badgeType, numbered
// after the highest existing number.
func (s *Service) ProvisionBadges(ctx context.Context, badgeType models.BadgeType, count int) ([]*models.Badge, error) {
	ctx, span := s.startSpan(ctx, opProvisionBadges, attribute.Int("badge.count", count))
	defer span.End()

	badgeType, err := models.ParseBadgeType(string(badgeType))
	if err != nil {
		return nil, s.reject(span, opProvisionBadges, err)
	}
	if count <= 0 || count > maxProvisionBatch {
		return nil, s.reject(span, opProvisionBadges, dErrors.New(dErrors.CodeValidation, "badge count must be between 1 and 500"))
	}

	now := requestcontext.Now(ctx)
	var created []*models.Badge
	err = s.withRetry(ctx, opProvisionBadges, func() error {
		return s.tx.RunInTx(ctx, ports.TxScope{BadgeType: badgeType}, func(st ports.TxStores) error {
			existing, err := st.Badges.List(ctx)
			if err != nil {
				return conflictOr(err, "badges not found", "failed to list badges")
			}
			next := 1
			for _, b := range existing {
				if b.Number >= next {
					next = b.Number + 1
				}
			}
			created = make([]*models.Badge, 0, count)
			for i := 0; i < count; i++ {
				b := &models.Badge{
					ID:        id.NewBadgeID(),
					Number:    next + i,
					Type:      badgeType,
					Status:    models.BadgeAvailable,
					UpdatedAt: now,
				}
				if err := st.Badges.Create(ctx, b); err != nil {
					return conflictOr(err, "badge not found", "failed to create badge")
				}
				created = append(created, b)
			}
			return nil
		})
	})
	if err != nil {
		return nil, s.reject(span, opProvisionBadges, translate(err, "badges not found", "failed to provision badges"))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "badges provisioned",
			"request_id", requestcontext.RequestID(ctx),
			"badge_type", string(badgeType),
			"count", count,
			"first_number", created[0].Number,
		)
	}
	return created, nil
}
