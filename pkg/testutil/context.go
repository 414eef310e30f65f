package testutil

import (
	"context"
	"time"

	"frontdesk/pkg/requestcontext"
)

// Context returns a context carrying a fixed request time and request id, as
// the HTTP middleware would set them.
func Context(now time.Time, requestID string) context.Context {
	ctx := requestcontext.WithTime(context.Background(), now)
	if requestID != "" {
		ctx = requestcontext.WithRequestID(ctx, requestID)
	}
	return ctx
}
