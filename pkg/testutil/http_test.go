package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/pkg/requestcontext"
)

func TestNewJSONRequest(t *testing.T) {
	req := NewJSONRequest(t, http.MethodPost, "/visitors", map[string]string{"name": "Ada"})
	body, _ := io.ReadAll(req.Body)
	assert.JSONEq(t, `{"name":"Ada"}`, string(body))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	req = NewJSONRequest(t, http.MethodPost, "/visitors", "{raw")
	body, _ = io.ReadAll(req.Body)
	assert.Equal(t, "{raw", string(body))

	req = WithHeaders(NewJSONRequest(t, http.MethodGet, "/visitors", nil), "X-Operator-ID", "desk-1")
	assert.Empty(t, req.Header.Get("Content-Type"))
	assert.Equal(t, "desk-1", req.Header.Get("X-Operator-ID"))
}

func TestAssertStatusAndError(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusConflict)
	_, _ = rr.WriteString(`{"error":"invalid_transition","details":{"current_status":"checked_in"}}`)

	body := AssertStatusAndError(t, rr, http.StatusConflict, "invalid_transition")
	assert.Equal(t, "checked_in", body.Details["current_status"])
}

func TestContext(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	ctx := Context(now, "req-9")
	assert.Equal(t, now, requestcontext.Now(ctx))
	assert.Equal(t, "req-9", requestcontext.RequestID(ctx))
}
