package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"

	"frontdesk/internal/lobby/events"
	"frontdesk/internal/lobby/lock"
	lobbymetrics "frontdesk/internal/lobby/metrics"
	"frontdesk/internal/lobby/ports"
	"frontdesk/internal/lobby/store/memory"
	"frontdesk/internal/lobby/store/postgres"
	"frontdesk/internal/platform/config"
	"frontdesk/internal/platform/redis"
	"frontdesk/pkg/platform/circuit"
)

type healthChecks map[string]func(context.Context) error

func (h healthChecks) merge(other healthChecks) {
	for name, check := range other {
		h[name] = check
	}
}

type backend struct {
	name     string
	visitors ports.VisitorStore
	badges   ports.BadgeStore
	tx       ports.StoreTx
	checks   healthChecks
	close    func()
}

// buildBackend selects Postgres when a database URL is configured and the
// in-memory store otherwise.
func buildBackend(ctx context.Context, cfg config.Config, locker lock.Locker, log *slog.Logger) (*backend, error) {
	if cfg.Database.URL == "" {
		opts := []memory.Option{memory.WithTxTimeout(cfg.Lobby.TxTimeout)}
		if locker != nil {
			opts = append(opts, memory.WithLocker(locker))
		}
		store := memory.New(opts...)
		log.Warn("no database configured; visitor state is kept in memory")
		return &backend{
			name:     "memory",
			visitors: store.Visitors(),
			badges:   store.Badges(),
			tx:       store,
			checks:   healthChecks{},
			close:    func() {},
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	if err := postgres.ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	txOpts := []postgres.TxOption{postgres.WithTxTimeout(cfg.Lobby.TxTimeout)}
	if locker != nil {
		txOpts = append(txOpts, postgres.WithLocker(locker))
	}
	return &backend{
		name:     "postgres",
		visitors: postgres.NewVisitors(db),
		badges:   postgres.NewBadges(db),
		tx:       postgres.NewTx(db, txOpts...),
		checks:   healthChecks{"postgres": db.PingContext},
		close:    closeDB(db, log),
	}, nil
}

func closeDB(db *sql.DB, log *slog.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn("database close failed", "error", err)
		}
	}
}

type lockers struct {
	locker lock.Locker
	checks healthChecks
	close  func()
}

// buildLocker returns a Redis-backed badge pool lock when Redis is
// configured. A nil locker leaves each store with its default.
func buildLocker(ctx context.Context, cfg config.Config, log *slog.Logger) (*lockers, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return &lockers{checks: healthChecks{}, close: func() {}}, nil
	}
	return &lockers{
		locker: lock.NewRedis(client.Client,
			lock.WithTTL(cfg.Redis.LockTTL),
			lock.WithLogger(log),
		),
		checks: healthChecks{"redis": client.Health},
		close: func() {
			if err := client.Close(); err != nil {
				log.Warn("redis close failed", "error", err)
			}
		},
	}, nil
}

type eventSink struct {
	name   string
	sink   events.Sink
	async  *events.Async
	kafka  *events.Kafka
	checks healthChecks
}

// stop closes the async buffer; Run drains what is left.
func (e *eventSink) stop() {
	if e.async != nil {
		e.async.Close()
	}
}

func (e *eventSink) close(ctx context.Context) error {
	if e.kafka == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.kafka.Close(ctx)
}

// buildEventSink always logs events and additionally produces them to Kafka,
// off the request path and behind a circuit breaker, when brokers are
// configured.
func buildEventSink(ctx context.Context, cfg config.Config, log *slog.Logger, m *lobbymetrics.Metrics) (*eventSink, error) {
	logSink := events.NewLog(log)
	if len(cfg.Kafka.Brokers) == 0 {
		return &eventSink{name: "log", sink: logSink, checks: healthChecks{}}, nil
	}

	producer, err := events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, kgo.ClientID("frontdesk"))
	if err != nil {
		return nil, err
	}
	if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
		_ = producer.Close(ctx)
		return nil, err
	}
	guarded := events.NewGuarded(producer,
		circuit.New("kafka", circuit.WithFailureThreshold(5), circuit.WithCooldown(10*time.Second)),
		events.WithGuardLogger(log),
		events.WithGuardFailureRecorder(m),
	)
	async := events.NewAsync(guarded,
		events.WithBuffer(cfg.Lobby.EventBuffer),
		events.WithAsyncLogger(log),
		events.WithFailureRecorder(m),
		events.WithSinkName("kafka"),
	)
	return &eventSink{
		name:   "log+kafka",
		sink:   events.Fanout{logSink, async},
		async:  async,
		kafka:  producer,
		checks: healthChecks{"kafka": producer.Health},
	}, nil
}

// opsRouter serves Prometheus metrics and health probes on the ops port.
func opsRouter(reg *prometheus.Registry, checks healthChecks) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = fmt.Sprintf("unhealthy: %v", err)
				continue
			}
			results[name] = "ok"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(results)
	})
	return r
}
