package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "frontdesk/pkg/domain-errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "internal_error", body["error"])
		assert.NotContains(t, body, "error_description")
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "bad_request", body["error"])
		assert.Equal(t, "invalid input", body["error_description"])
	})

	t.Run("too early carries its details", func(t *testing.T) {
		w := httptest.NewRecorder()
		allowed := time.Date(2026, 3, 9, 13, 0, 0, 0, time.UTC)
		WriteError(w, dErrors.New(dErrors.CodeTooEarly, "too early").With("allowed_from", allowed))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decode(t, w)
		details, ok := body["details"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "2026-03-09T13:00:00Z", details["allowed_from"])
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeValidation:        http.StatusBadRequest,
		dErrors.CodeNotFound:          http.StatusNotFound,
		dErrors.CodeInvalidTransition: http.StatusConflict,
		dErrors.CodeStorageConflict:   http.StatusConflict,
		dErrors.CodeCodeMismatch:      http.StatusForbidden,
		dErrors.CodeTooEarly:          http.StatusUnprocessableEntity,
		dErrors.CodeTimeout:           http.StatusServiceUnavailable,
		dErrors.Code("unheard_of"):    http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusFor(code), string(code))
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ada"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "ada", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
	err := DecodeJSON(r, &dst)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
