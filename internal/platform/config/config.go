// Package config loads process configuration from FRONTDESK_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "FRONTDESK_"

// Config is the full process configuration.
type Config struct {
	Server   Server   `envPrefix:"SERVER_"`
	Log      Log      `envPrefix:"LOG_"`
	Lobby    Lobby    `envPrefix:""`
	Database Database `envPrefix:"DATABASE_"`
	Redis    RedisConfig
	Kafka    Kafka `envPrefix:"KAFKA_"`
	Tracing  Tracing
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	MetricsAddr     string        `env:"METRICS_ADDR" envDefault:":9090"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type Log struct {
	Format string `env:"FORMAT" envDefault:"json"`
	Level  string `env:"LEVEL" envDefault:"info"`
}

// Lobby tunes the check-in engine.
type Lobby struct {
	BuildingTimezone   string        `env:"BUILDING_TIMEZONE" envDefault:"UTC"`
	EarlyCheckInWindow time.Duration `env:"EARLY_CHECKIN_WINDOW" envDefault:"60m"`
	TxTimeout          time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`
	ConflictRetries    int           `env:"CONFLICT_RETRIES" envDefault:"3"`
	EventBuffer        int           `env:"EVENT_BUFFER" envDefault:"1024"`
}

// Database selects the Postgres backend. An empty URL keeps state in memory.
type Database struct {
	URL          string `env:"URL"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
}

// RedisConfig enables the cross-instance badge pool lock. An empty URL uses
// in-process locks.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	LockTTL      time.Duration `env:"REDIS_LOCK_TTL" envDefault:"10s"`
}

// Kafka enables publishing domain events. No brokers means log-only events.
type Kafka struct {
	Brokers           []string `env:"BROKERS" envSeparator:","`
	Topic             string   `env:"TOPIC" envDefault:"frontdesk.visitor-events"`
	Partitions        int32    `env:"PARTITIONS" envDefault:"3"`
	ReplicationFactor int16    `env:"REPLICATION_FACTOR" envDefault:"1"`
}

type Tracing struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"frontdesk"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads from environ instead of the process environment when it is
// non-nil.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Lobby.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Lobby.EarlyCheckInWindow < 0 {
		errs = append(errs, errors.New("early check-in window must not be negative"))
	}
	if c.Lobby.ConflictRetries < 1 {
		errs = append(errs, errors.New("conflict retries must be at least 1"))
	}
	if c.Lobby.EventBuffer < 1 {
		errs = append(errs, errors.New("event buffer must be at least 1"))
	}
	if c.Lobby.TxTimeout <= 0 {
		errs = append(errs, errors.New("transaction timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Location resolves BuildingTimezone.
func (l Lobby) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(l.BuildingTimezone)
	if err != nil {
		return nil, fmt.Errorf("building timezone %q: %w", l.BuildingTimezone, err)
	}
	return loc, nil
}
