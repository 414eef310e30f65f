// Package handler is the thin HTTP adapter over the lobby engine.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"frontdesk/internal/lobby/models"
	platformmetrics "frontdesk/internal/platform/metrics"
	"frontdesk/internal/platform/middleware"
	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/platform/httputil"
	"frontdesk/pkg/platform/middleware/metadata"
	"frontdesk/pkg/platform/middleware/requesttime"
	"frontdesk/pkg/requestcontext"
)

const dateLayout = "2006-01-02"

// Service is the slice of the engine the HTTP layer needs.
type Service interface {
	PreRegister(ctx context.Context, req *models.PreRegisterRequest) (*models.Visitor, error)
	GetVisitor(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error)
	ListVisibleVisitors(ctx context.Context, scope models.OperatorScope, filter models.VisitorFilter) ([]*models.Visitor, error)
	CheckIn(ctx context.Context, visitorID id.VisitorID, code string, badgeType models.BadgeType) (*models.CheckInResult, error)
	CheckOut(ctx context.Context, visitorID id.VisitorID) (*models.CheckOutResult, error)
	Cancel(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error)
	ReturnBadge(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error)
	BadgeSummary(ctx context.Context) ([]models.BadgeSummary, error)
	ListBadges(ctx context.Context) ([]*models.Badge, error)
	ProvisionBadges(ctx context.Context, badgeType models.BadgeType, count int) ([]*models.Badge, error)
}

type Handler struct {
	lobby   Service
	logger  *slog.Logger
	metrics *platformmetrics.Metrics
	timeout time.Duration
}

type Option func(*Handler)

func WithMetrics(m *platformmetrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithRequestTimeout bounds each request; the default is 30s.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func New(lobby Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		lobby:   lobby,
		logger:  logger,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the lobby routes on r.
func (h *Handler) Register(r chi.Router) {
	lobby := chi.NewRouter()
	lobby.Use(middleware.Recovery(h.logger))
	lobby.Use(middleware.RequestID)
	lobby.Use(requesttime.Middleware)
	lobby.Use(metadata.Operator)
	lobby.Use(middleware.Logger(h.logger))
	lobby.Use(middleware.Timeout(h.timeout))
	lobby.Use(middleware.ContentTypeJSON)
	lobby.Use(middleware.Latency(h.metrics))

	lobby.Route("/visitors", func(r chi.Router) {
		r.Post("/", h.handlePreRegister)
		r.Get("/", h.handleListVisitors)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetVisitor)
			r.Post("/check-in", h.handleCheckIn)
			r.Post("/check-out", h.handleCheckOut)
			r.Post("/cancel", h.handleCancel)
		})
	})
	lobby.Route("/badges", func(r chi.Router) {
		r.Get("/", h.handleListBadges)
		r.Post("/", h.handleProvisionBadges)
		r.Get("/summary", h.handleBadgeSummary)
		r.Post("/{id}/return", h.handleReturnBadge)
	})

	r.Mount("/", lobby)
}

// fail writes err and logs it at a level matching who is at fault.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	code := dErrors.CodeOf(err)
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"code", string(code),
		"error", err.Error(),
	}
	if httputil.StatusFor(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) visitorID(w http.ResponseWriter, r *http.Request) (id.VisitorID, bool) {
	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.VisitorID{}, false
	}
	return visitorID, true
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "dates must be YYYY-MM-DD")
	}
	return &d, nil
}
