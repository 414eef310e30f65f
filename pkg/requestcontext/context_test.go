package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowPrefersInjectedTime(t *testing.T) {
	fixed := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
	ctx := WithTime(context.Background(), fixed)
	assert.Equal(t, fixed, Now(ctx))

	before := time.Now()
	got := Now(context.Background())
	assert.False(t, got.Before(before))
}

func TestRequestScopedIDs(t *testing.T) {
	ctx := WithOperatorID(WithRequestID(context.Background(), "req-1"), "desk-3")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "desk-3", OperatorID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
