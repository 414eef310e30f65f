package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the visitor lifecycle engine.
// All methods are safe on a nil receiver.
type Metrics struct {
	// Successful check-ins, labelled by whether a badge was handed out
	CheckIns *prometheus.CounterVec

	CheckOuts prometheus.Counter

	// Rejected operations by operation and domain error code
	Rejections *prometheus.CounterVec

	// Storage conflicts that triggered a retry, by operation
	ConflictRetries *prometheus.CounterVec

	// Visitors shown outside an operator's floor scope because no floor resolved
	FloorFallbacks prometheus.Counter

	// Best-effort event deliveries that failed or were dropped
	EventPublishFailures *prometheus.CounterVec

	CheckInLatency prometheus.Histogram

	// Badges currently assigned, by type
	BadgesAssigned *prometheus.GaugeVec
}

// New registers the engine metrics on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		CheckIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_checkins_total",
			Help: "Total successful visitor check-ins",
		}, []string{"badge_assigned"}), // "true", "false"

		CheckOuts: factory.NewCounter(prometheus.CounterOpts{
			Name: "frontdesk_checkouts_total",
			Help: "Total successful visitor check-outs",
		}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_rejections_total",
			Help: "Lifecycle operations rejected by operation and error code",
		}, []string{"operation", "code"}),

		ConflictRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_storage_conflict_retries_total",
			Help: "Storage conflicts retried by operation",
		}, []string{"operation"}),

		FloorFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "frontdesk_floor_scope_fallbacks_total",
			Help: "Visitors shown to a scoped operator because their floor could not be resolved",
		}),

		EventPublishFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_event_publish_failures_total",
			Help: "Domain events that could not be delivered, by sink and reason",
		}, []string{"sink", "reason"}),

		CheckInLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "frontdesk_checkin_duration_seconds",
			Help:    "Duration of check-in including badge reservation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		BadgesAssigned: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "frontdesk_badges_assigned",
			Help: "Badges currently assigned to a visitor, by type",
		}, []string{"type"}),
	}
}

func (m *Metrics) IncCheckIn(badgeAssigned bool) {
	if m == nil {
		return
	}
	label := "false"
	if badgeAssigned {
		label = "true"
	}
	m.CheckIns.WithLabelValues(label).Inc()
}

func (m *Metrics) IncCheckOut() {
	if m != nil {
		m.CheckOuts.Inc()
	}
}

// IncRejection records a client-visible failure of operation.
func (m *Metrics) IncRejection(operation, code string) {
	if m != nil {
		m.Rejections.WithLabelValues(operation, code).Inc()
	}
}

func (m *Metrics) IncConflictRetry(operation string) {
	if m != nil {
		m.ConflictRetries.WithLabelValues(operation).Inc()
	}
}

// IncFloorFallback satisfies floorscope.FallbackRecorder.
func (m *Metrics) IncFloorFallback() {
	if m != nil {
		m.FloorFallbacks.Inc()
	}
}

func (m *Metrics) IncEventPublishFailure(sink, reason string) {
	if m != nil {
		m.EventPublishFailures.WithLabelValues(sink, reason).Inc()
	}
}

// ObserveCheckIn records the duration since start.
func (m *Metrics) ObserveCheckIn(start time.Time) {
	if m != nil {
		m.CheckInLatency.Observe(time.Since(start).Seconds())
	}
}

// SetBadgesAssigned publishes the assigned count for one badge type.
func (m *Metrics) SetBadgesAssigned(badgeType string, n int) {
	if m != nil {
		m.BadgesAssigned.WithLabelValues(badgeType).Set(float64(n))
	}
}
