package floorscope

import (
	"context"
	"log/slog"

	"frontdesk/internal/lobby/models"
	"frontdesk/pkg/requestcontext"
)

// FallbackRecorder counts visitors shown only because their floor could not
// be resolved.
type FallbackRecorder interface {
	IncFloorFallback()
}

// Filter applies an OperatorScope to a visitor list.
type Filter struct {
	logger  *slog.Logger
	metrics FallbackRecorder
}

type Option func(*Filter)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) {
		f.logger = logger
	}
}

func WithMetrics(m FallbackRecorder) Option {
	return func(f *Filter) {
		f.metrics = m
	}
}

func New(opts ...Option) *Filter {
	f := &Filter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply returns the visitors visible under scope, preserving order.
//
// An empty AssignedFloors sees everything. A visitor whose floor cannot be
// resolved is included, logged and counted so the data gap stays visible.
func (f *Filter) Apply(ctx context.Context, visitors []*models.Visitor, scope models.OperatorScope) []*models.Visitor {
	if len(scope.AssignedFloors) == 0 {
		return visitors
	}
	allowed := NormalizeScope(scope.AssignedFloors)

	out := make([]*models.Visitor, 0, len(visitors))
	for _, v := range visitors {
		floor, ok := ResolveFloor(v)
		if !ok {
			f.recordFallback(ctx, v, scope)
			out = append(out, v)
			continue
		}
		if _, in := allowed[floor]; in {
			out = append(out, v)
		}
	}
	return out
}

func (f *Filter) recordFallback(ctx context.Context, v *models.Visitor, scope models.OperatorScope) {
	if f.metrics != nil {
		f.metrics.IncFloorFallback()
	}
	if f.logger == nil {
		return
	}
	f.logger.WarnContext(ctx, "visitor has no resolvable floor; shown outside operator scope",
		"request_id", requestcontext.RequestID(ctx),
		"operator_id", scope.OperatorID,
		"visitor_id", v.ID.String(),
		"floor_name", v.FloorName,
	)
}
