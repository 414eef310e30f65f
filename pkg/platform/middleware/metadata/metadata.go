// Package metadata lifts caller identity asserted by the upstream gateway
// into the request context.
package metadata

import (
	"context"
	"net/http"
	"strings"

	platformstrings "frontdesk/pkg/platform/strings"
	"frontdesk/pkg/requestcontext"
)

const (
	HeaderOperatorID     = "X-Operator-ID"
	HeaderOperatorFloors = "X-Operator-Floors"
)

type contextKeyOperatorFloors struct{}

// Operator reads the acting receptionist and the floors they cover. A
// missing floors header means the operator covers every floor.
func Operator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithOperator(r.Context(),
			strings.TrimSpace(r.Header.Get(HeaderOperatorID)),
			ParseFloors(r.Header.Get(HeaderOperatorFloors)),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithOperator injects an operator into ctx without the HTTP middleware.
func WithOperator(ctx context.Context, operatorID string, floors []string) context.Context {
	ctx = requestcontext.WithOperatorID(ctx, operatorID)
	return context.WithValue(ctx, contextKeyOperatorFloors{}, floors)
}

// GetOperatorFloors returns the raw floor identifiers for the operator.
func GetOperatorFloors(ctx context.Context) []string {
	if floors, ok := ctx.Value(contextKeyOperatorFloors{}).([]string); ok {
		return floors
	}
	return nil
}

// ParseFloors splits a comma list, dropping blanks and repeats.
func ParseFloors(header string) []string {
	return platformstrings.SplitList(header)
}

// ClientIPFromRequest extracts the caller address, preferring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
