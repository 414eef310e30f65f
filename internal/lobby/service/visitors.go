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

const (
	opPreRegister = "pre_register"
	opCancel      = "cancel"

	codeCollisionAttempts = 3
)

// PreRegister records an expected visitor and issues their public visitor
// code and guest code.
func (s *Service) PreRegister(ctx context.Context, req *models.PreRegisterRequest) (*models.Visitor, error) {
	ctx, span := s.startSpan(ctx, opPreRegister)
	defer span.End()

	if req == nil {
		return nil, s.reject(span, opPreRegister, dErrors.New(dErrors.CodeBadRequest, "request is required"))
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.reject(span, opPreRegister, err)
	}

	now := requestcontext.Now(ctx)
	status := models.StatusPreRegistered
	if req.RequiresApproval {
		status = models.StatusPendingApproval
	}

	var visitor *models.Visitor
	for attempt := 1; ; attempt++ {
		v, err := s.newVisitor(req, status, now)
		if err != nil {
			return nil, s.reject(span, opPreRegister, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate visitor codes"))
		}
		err = s.visitors.Create(ctx, v)
		if err == nil {
			visitor = v
			break
		}
		// A code collision is the only expected conflict on insert.
		if !errors.Is(err, sentinel.ErrConflict) || attempt == codeCollisionAttempts {
			return nil, s.reject(span, opPreRegister, translate(err, "visitor not found", "failed to register visitor"))
		}
	}

	span.SetAttributes(attribute.String("visitor.id", visitor.ID.String()))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "visitor pre-registered",
			"request_id", requestcontext.RequestID(ctx),
			"visitor_id", visitor.ID.String(),
			"status", string(visitor.Status),
		)
	}
	s.publish(ctx, newEvent(ctx, models.EventVisitorPreRegistered, now, visitor, nil))
	return visitor, nil
}

func (s *Service) newVisitor(req *models.PreRegisterRequest, status models.VisitorStatus, now time.Time) (*models.Visitor, error) {
	visitorCode, err := s.newCode(visitorCodeLength)
	if err != nil {
		return nil, err
	}
	guestCode, err := s.newCode(guestCodeLength)
	if err != nil {
		return nil, err
	}
	v := &models.Visitor{
		ID:          id.NewVisitorID(),
		VisitorCode: visitorCodePrefix + visitorCode,
		Name:        req.Name,
		HostID:      req.HostID,
		FloorName:   req.FloorName,
		GuestCode:   guestCode,
		Status:      status,
		VisitTime:   req.VisitTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.FloorNumber != nil {
		n := *req.FloorNumber
		v.FloorNumber = &n
	}
	if req.VisitDate != nil {
		d := *req.VisitDate
		v.VisitDate = &d
	}
	return v, nil
}

// Cancel withdraws a visit that has not started.
func (s *Service) Cancel(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	ctx, span := s.startSpan(ctx, opCancel, attribute.String("visitor.id", visitorID.String()))
	defer span.End()

	now := requestcontext.Now(ctx)
	var visitor *models.Visitor
	err := s.withRetry(ctx, opCancel, func() error {
		return s.tx.RunInTx(ctx, ports.TxScope{}, func(st ports.TxStores) error {
			v, err := st.Visitors.FindByID(ctx, visitorID)
			if err != nil {
				return conflictOr(err, "visitor not found", "failed to load visitor")
			}
			if err := v.CanCancel(); err != nil {
				return err
			}
			expected := v.Status
			v.ApplyCancel(now)
			if err := st.Visitors.UpdateIfStatus(ctx, v, expected); err != nil {
				return conflictOr(err, "visitor not found", "failed to cancel visitor")
			}
			visitor = v
			return nil
		})
	})
	if err != nil {
		return nil, s.reject(span, opCancel, translate(err, "visitor not found", "failed to cancel visitor"))
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "visit cancelled",
			"request_id", requestcontext.RequestID(ctx),
			"visitor_id", visitorID.String(),
		)
	}
	s.publish(ctx, newEvent(ctx, models.EventVisitorCancelled, now, visitor, nil))
	return visitor, nil
}

func (s *Service) GetVisitor(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	v, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, translate(err, "visitor not found", "failed to load visitor")
	}
	return v, nil
}

// ListVisibleVisitors lists visitors matching filter that the operator's
// floor scope allows them to see.
func (s *Service) ListVisibleVisitors(ctx context.Context, scope models.OperatorScope, filter models.VisitorFilter) ([]*models.Visitor, error) {
	visitors, err := s.visitors.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "visitors not found", "failed to list visitors")
	}
	return s.scope.Apply(ctx, visitors, scope), nil
}
