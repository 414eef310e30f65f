package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"frontdesk/internal/lobby/models"
	"frontdesk/internal/lobby/service"
	"frontdesk/internal/lobby/store/memory"
	"frontdesk/pkg/platform/middleware/metadata"
	"frontdesk/pkg/testutil"
)

// HandlerSuite drives the lobby routes over the real engine and the
// in-memory store. Handler tests cover HTTP concerns: parsing, headers and
// status mapping.
type HandlerSuite struct {
	suite.Suite
	router http.Handler
	host   string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(store.Visitors(), store.Badges(), store, service.WithLogger(logger))
	s.Require().NoError(err)

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	s.router = r
	s.host = uuid.NewString()
}

func (s *HandlerSuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	req := testutil.WithHeaders(testutil.NewJSONRequest(s.T(), method, path, body), headers...)
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(dst))
}

type registered struct {
	ID          string `json:"id"`
	VisitorCode string `json:"visitor_id"`
	GuestCode   string `json:"guest_code"`
	Status      string `json:"status"`
}

func (s *HandlerSuite) preRegister(body map[string]any) registered {
	if _, ok := body["host_id"]; !ok {
		body["host_id"] = s.host
	}
	rec := s.do(http.MethodPost, "/visitors", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var out registered
	s.decode(rec, &out)
	return out
}

func (s *HandlerSuite) TestPreRegister() {
	s.Run("returns codes once", func() {
		v := s.preRegister(map[string]any{"name": "Ada", "requires_approval": true})
		s.Len(v.GuestCode, 6)
		s.Regexp(`^VIS-`, v.VisitorCode)
		s.Equal("pending_approval", v.Status)

		rec := s.do(http.MethodGet, "/visitors/"+v.ID, nil)
		s.Equal(http.StatusOK, rec.Code)
		s.NotContains(rec.Body.String(), v.GuestCode)

		var fetched struct {
			ID     string `json:"id"`
			HostID string `json:"host_id"`
		}
		s.decode(rec, &fetched)
		s.Equal(v.ID, fetched.ID)
		s.Equal(s.host, fetched.HostID)
	})

	s.Run("missing name is a validation error", func() {
		rec := s.do(http.MethodPost, "/visitors", map[string]any{"name": " ", "host_id": s.host})
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), `"validation"`)
	})

	s.Run("malformed json", func() {
		rec := s.do(http.MethodPost, "/visitors", "{not json")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("bad visit date", func() {
		rec := s.do(http.MethodPost, "/visitors", map[string]any{"name": "x", "host_id": s.host, "visit_date": "09/03/2026"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestCheckInAndOut() {
	rec := s.do(http.MethodPost, "/badges", map[string]any{"type": "visitor", "count": 2})
	s.Require().Equal(http.StatusCreated, rec.Code)

	v := s.preRegister(map[string]any{"name": "Grace"})

	rec = s.do(http.MethodPost, "/visitors/"+v.ID+"/check-in", map[string]any{"code": "WRONG9"})
	testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "code_mismatch")

	rec = s.do(http.MethodPost, "/visitors/"+v.ID+"/check-in", map[string]any{"code": v.GuestCode},
		metadata.HeaderOperatorID, "desk-1")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var in struct {
		BadgeAssigned bool `json:"badge_assigned"`
		Badge         struct {
			ID     string `json:"id"`
			Number int    `json:"number"`
		} `json:"badge"`
	}
	s.decode(rec, &in)
	s.True(in.BadgeAssigned)
	s.Equal(1, in.Badge.Number)

	rec = s.do(http.MethodPost, "/visitors/"+v.ID+"/check-in", map[string]any{"code": v.GuestCode})
	errBody := testutil.AssertStatusAndError(s.T(), rec, http.StatusConflict, "invalid_transition")
	s.Equal("checked_in", errBody.Details["current_status"])

	rec = s.do(http.MethodGet, "/badges/summary", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var summary struct {
		Types []models.BadgeSummary `json:"types"`
	}
	s.decode(rec, &summary)
	s.Equal(models.BadgeTypeVisitor, summary.Types[0].Type)
	s.Equal(1, summary.Types[0].Assigned)
	s.Equal(1, summary.Types[0].Available)

	rec = s.do(http.MethodPost, "/visitors/"+v.ID+"/check-out", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var out struct {
		Released *int `json:"released_badge_number"`
	}
	s.decode(rec, &out)
	s.Require().NotNil(out.Released)
	s.Equal(1, *out.Released)
}

func (s *HandlerSuite) TestCheckInTooEarlyCarriesSchedule() {
	v := s.preRegister(map[string]any{"name": "Future", "visit_date": "2999-01-01", "visit_time": "09:00"})

	rec := s.do(http.MethodPost, "/visitors/"+v.ID+"/check-in", map[string]any{"code": v.GuestCode})
	body := testutil.AssertStatusAndError(s.T(), rec, http.StatusUnprocessableEntity, "too_early")
	s.Equal("2999-01-01", body.Details["scheduled_date"])
}

func (s *HandlerSuite) TestListVisitorsHonoursOperatorFloors() {
	s.preRegister(map[string]any{"name": "three", "floor_number": 3})
	s.preRegister(map[string]any{"name": "five", "floor_number": 5})
	s.preRegister(map[string]any{"name": "lobby guest", "floor_name": "Ground Floor"})

	list := func(headers ...string) []string {
		rec := s.do(http.MethodGet, "/visitors", nil, headers...)
		s.Require().Equal(http.StatusOK, rec.Code)
		var body struct {
			Visitors []struct {
				Name string `json:"name"`
			} `json:"visitors"`
		}
		s.decode(rec, &body)
		names := make([]string, 0, len(body.Visitors))
		for _, v := range body.Visitors {
			names = append(names, v.Name)
		}
		return names
	}

	s.ElementsMatch([]string{"three", "five", "lobby guest"}, list())
	s.ElementsMatch([]string{"five", "lobby guest"}, list(metadata.HeaderOperatorFloors, "5, ground"))

	rec := s.do(http.MethodGet, "/visitors?status=bogus", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestReturnBadge() {
	rec := s.do(http.MethodPost, "/badges", map[string]any{"type": "vip", "count": 1})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var created struct {
		Badges []struct {
			ID string `json:"id"`
		} `json:"badges"`
	}
	s.decode(rec, &created)

	v := s.preRegister(map[string]any{"name": "Star"})
	rec = s.do(http.MethodPost, "/visitors/"+v.ID+"/check-in", map[string]any{"code": v.VisitorCode, "badge_type": "vip"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/badges/%s/return", created.Badges[0].ID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"available"`)

	rec = s.do(http.MethodPost, "/badges/"+uuid.NewString()+"/return", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestPathValidation() {
	rec := s.do(http.MethodGet, "/visitors/not-a-uuid", nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")

	rec = s.do(http.MethodGet, "/visitors/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/visitors/"+uuid.NewString()+"/cancel", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
}
