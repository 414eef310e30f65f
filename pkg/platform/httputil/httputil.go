// Package httputil holds the JSON envelope shared by every HTTP handler.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "frontdesk/pkg/domain-errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string         `json:"error"`
	ErrorDescription string         `json:"error_description,omitempty"`
	Details          map[string]any `json:"details,omitempty"`
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeInvalidTransition, dErrors.CodeStorageConflict:
		return http.StatusConflict
	case dErrors.CodeCodeMismatch:
		return http.StatusForbidden
	case dErrors.CodeTooEarly:
		return http.StatusUnprocessableEntity
	case dErrors.CodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as an ErrorResponse. Internal errors never leak
// their message or details.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code == dErrors.CodeInternal || de.Code == dErrors.CodeInvariantViolation {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
		return
	}
	WriteJSON(w, StatusFor(de.Code), ErrorResponse{
		Error:            string(de.Code),
		ErrorDescription: de.Message,
		Details:          de.Details,
	})
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
