package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"frontdesk/internal/platform/config"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{ServiceName: "frontdesk"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestResourceNamesService(t *testing.T) {
	res := Resource("frontdesk-test")
	v, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "frontdesk-test", v.AsString())
}
