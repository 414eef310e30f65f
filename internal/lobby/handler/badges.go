package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"frontdesk/internal/lobby/models"
	id "frontdesk/pkg/domain"
	"frontdesk/pkg/platform/httputil"
)

type provisionRequest struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type badgesResponse struct {
	Badges []*models.Badge `json:"badges"`
}

type summaryResponse struct {
	Types []models.BadgeSummary `json:"types"`
}

func (h *Handler) handleListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.lobby.ListBadges(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "failed to list badges", err)
		return
	}
	if badges == nil {
		badges = []*models.Badge{}
	}
	httputil.WriteJSON(w, http.StatusOK, badgesResponse{Badges: badges})
}

func (h *Handler) handleProvisionBadges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body provisionRequest
	if err := httputil.DecodeJSON(r, &body); err != nil {
		h.fail(ctx, w, "invalid provision request", err)
		return
	}
	badges, err := h.lobby.ProvisionBadges(ctx, models.BadgeType(body.Type), body.Count)
	if err != nil {
		h.fail(ctx, w, "failed to provision badges", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, badgesResponse{Badges: badges})
}

func (h *Handler) handleBadgeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.lobby.BadgeSummary(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "failed to summarize badges", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summaryResponse{Types: summary})
}

func (h *Handler) handleReturnBadge(w http.ResponseWriter, r *http.Request) {
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	badge, err := h.lobby.ReturnBadge(r.Context(), badgeID)
	if err != nil {
		h.fail(r.Context(), w, "failed to return badge", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, badge)
}
