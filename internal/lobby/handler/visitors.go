package handler

import (
	"net/http"

	"frontdesk/internal/lobby/models"
	id "frontdesk/pkg/domain"
	"frontdesk/pkg/platform/httputil"
	"frontdesk/pkg/platform/middleware/metadata"
	platformstrings "frontdesk/pkg/platform/strings"
	"frontdesk/pkg/requestcontext"
)

type preRegisterRequest struct {
	Name             string `json:"name"`
	HostID           string `json:"host_id"`
	FloorNumber      *int   `json:"floor_number,omitempty"`
	FloorName        string `json:"floor_name,omitempty"`
	VisitDate        string `json:"visit_date,omitempty"`
	VisitTime        string `json:"visit_time,omitempty"`
	RequiresApproval bool   `json:"requires_approval,omitempty"`
}

// preRegisterResponse is the only response that reveals the guest code.
type preRegisterResponse struct {
	*models.Visitor
	GuestCode string `json:"guest_code"`
}

type checkInRequest struct {
	Code      string `json:"code"`
	BadgeType string `json:"badge_type,omitempty"`
}

type checkInResponse struct {
	Visitor       *models.Visitor `json:"visitor"`
	Badge         *models.Badge   `json:"badge,omitempty"`
	BadgeAssigned bool            `json:"badge_assigned"`
}

type listVisitorsResponse struct {
	Visitors []*models.Visitor `json:"visitors"`
}

func (h *Handler) handlePreRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body preRegisterRequest
	if err := httputil.DecodeJSON(r, &body); err != nil {
		h.fail(ctx, w, "invalid pre-register request", err)
		return
	}
	hostID, err := id.ParseHostID(body.HostID)
	if err != nil {
		h.fail(ctx, w, "invalid pre-register request", err)
		return
	}
	visitDate, err := parseDate(body.VisitDate)
	if err != nil {
		h.fail(ctx, w, "invalid pre-register request", err)
		return
	}

	visitor, err := h.lobby.PreRegister(ctx, &models.PreRegisterRequest{
		Name:             body.Name,
		HostID:           hostID,
		FloorNumber:      body.FloorNumber,
		FloorName:        body.FloorName,
		VisitDate:        visitDate,
		VisitTime:        body.VisitTime,
		RequiresApproval: body.RequiresApproval,
	})
	if err != nil {
		h.fail(ctx, w, "failed to pre-register visitor", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, preRegisterResponse{Visitor: visitor, GuestCode: visitor.GuestCode})
}

func (h *Handler) handleListVisitors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var filter models.VisitorFilter
	for _, raw := range platformstrings.SplitList(q.Get("status")) {
		status, err := models.ParseVisitorStatus(raw)
		if err != nil {
			h.fail(ctx, w, "invalid visitor filter", err)
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if raw := q.Get("host_id"); raw != "" {
		hostID, err := id.ParseHostID(raw)
		if err != nil {
			h.fail(ctx, w, "invalid visitor filter", err)
			return
		}
		filter.HostID = &hostID
	}
	visitDate, err := parseDate(q.Get("date"))
	if err != nil {
		h.fail(ctx, w, "invalid visitor filter", err)
		return
	}
	filter.VisitDate = visitDate
	filter.Search = q.Get("q")

	scope := models.OperatorScope{
		OperatorID:     requestcontext.OperatorID(ctx),
		AssignedFloors: metadata.GetOperatorFloors(ctx),
	}
	visitors, err := h.lobby.ListVisibleVisitors(ctx, scope, filter)
	if err != nil {
		h.fail(ctx, w, "failed to list visitors", err)
		return
	}
	if visitors == nil {
		visitors = []*models.Visitor{}
	}
	httputil.WriteJSON(w, http.StatusOK, listVisitorsResponse{Visitors: visitors})
}

func (h *Handler) handleGetVisitor(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitorID(w, r)
	if !ok {
		return
	}
	visitor, err := h.lobby.GetVisitor(r.Context(), visitorID)
	if err != nil {
		h.fail(r.Context(), w, "failed to get visitor", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visitor)
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	visitorID, ok := h.visitorID(w, r)
	if !ok {
		return
	}
	var body checkInRequest
	if err := httputil.DecodeJSON(r, &body); err != nil {
		h.fail(ctx, w, "invalid check-in request", err)
		return
	}

	result, err := h.lobby.CheckIn(ctx, visitorID, body.Code, models.BadgeType(body.BadgeType))
	if err != nil {
		h.fail(ctx, w, "check-in rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkInResponse{
		Visitor:       result.Visitor,
		Badge:         result.Badge,
		BadgeAssigned: result.BadgeAssigned(),
	})
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitorID(w, r)
	if !ok {
		return
	}
	result, err := h.lobby.CheckOut(r.Context(), visitorID)
	if err != nil {
		h.fail(r.Context(), w, "check-out rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitorID(w, r)
	if !ok {
		return
	}
	visitor, err := h.lobby.Cancel(r.Context(), visitorID)
	if err != nil {
		h.fail(r.Context(), w, "cancel rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visitor)
}
