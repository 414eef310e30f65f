// Package requesttime pins one "now" per HTTP request so every timestamp a
// request writes, and the check-in time window, agree.
package requesttime

import (
	"net/http"
	"time"

	"frontdesk/pkg/requestcontext"
)

// Middleware stores the arrival time in the request context.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock for tests.
func MiddlewareWithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
