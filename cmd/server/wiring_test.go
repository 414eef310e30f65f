package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/lobby/events"
	"frontdesk/internal/platform/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultWiringIsInProcess(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	ctx := context.Background()

	locks, err := buildLocker(ctx, cfg, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, locks.locker)
	assert.Empty(t, locks.checks)

	b, err := buildBackend(ctx, cfg, locks.locker, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "memory", b.name)
	assert.NotNil(t, b.tx)

	sink, err := buildEventSink(ctx, cfg, quietLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, "log", sink.name)
	assert.IsType(t, &events.Log{}, sink.sink)
	assert.Nil(t, sink.async)
	assert.NoError(t, sink.close(ctx))
}

func TestOpsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()

	t.Run("ready when every check passes", func(t *testing.T) {
		h := opsRouter(reg, healthChecks{"postgres": func(context.Context) error { return nil }})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"postgres":"ok"}`, rec.Body.String())
	})

	t.Run("not ready when a dependency fails", func(t *testing.T) {
		h := opsRouter(reg, healthChecks{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection refused")
	})

	t.Run("liveness and metrics", func(t *testing.T) {
		h := opsRouter(reg, healthChecks{})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
