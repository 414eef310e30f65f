package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncCheckIn(true)
	m.IncCheckIn(true)
	m.IncCheckIn(false)
	m.IncRejection("check_in", "too_early")
	m.IncConflictRetry("check_in")
	m.IncFloorFallback()
	m.IncEventPublishFailure("kafka", "produce")
	m.SetBadgesAssigned("visitor", 4)
	m.ObserveCheckIn(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CheckIns.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckIns.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("check_in", "too_early")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConflictRetries.WithLabelValues("check_in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FloorFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventPublishFailures.WithLabelValues("kafka", "produce")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.BadgesAssigned.WithLabelValues("visitor")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncCheckIn(true)
		m.IncCheckOut()
		m.IncRejection("check_out", "not_found")
		m.IncConflictRetry("check_out")
		m.IncFloorFallback()
		m.IncEventPublishFailure("log", "error")
		m.ObserveCheckIn(time.Now())
		m.SetBadgesAssigned("vip", 1)
	})
}
