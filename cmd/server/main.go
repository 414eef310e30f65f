package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"frontdesk/internal/lobby/handler"
	lobbymetrics "frontdesk/internal/lobby/metrics"
	"frontdesk/internal/lobby/service"
	"frontdesk/internal/lobby/timegate"
	"frontdesk/internal/platform/config"
	"frontdesk/internal/platform/httpserver"
	"frontdesk/internal/platform/logger"
	platformmetrics "frontdesk/internal/platform/metrics"
	"frontdesk/internal/platform/telemetry"
)

// main wires high-level dependencies and runs the servers until a signal
// arrives. Business logic lives in internal/lobby.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "frontdesk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	lobbyMetrics := lobbymetrics.New(reg)
	httpMetrics := platformmetrics.New(reg)

	locker, err := buildLocker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer locker.close()

	backend, err := buildBackend(ctx, cfg, locker.locker, log)
	if err != nil {
		return err
	}
	defer backend.close()

	sink, err := buildEventSink(ctx, cfg, log, lobbyMetrics)
	if err != nil {
		return err
	}

	loc, err := cfg.Lobby.Location()
	if err != nil {
		return err
	}
	lobby, err := service.New(backend.visitors, backend.badges, backend.tx,
		service.WithLogger(log),
		service.WithMetrics(lobbyMetrics),
		service.WithEventSink(sink.sink),
		service.WithTimeGate(timegate.New(
			timegate.WithLocation(loc),
			timegate.WithEarlyWindow(cfg.Lobby.EarlyCheckInWindow),
		)),
		service.WithConflictRetries(cfg.Lobby.ConflictRetries),
	)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	handler.New(lobby, log,
		handler.WithMetrics(httpMetrics),
		handler.WithRequestTimeout(cfg.Server.RequestTimeout),
	).Register(router)
	api := httpserver.New(cfg.Server.Addr, router)

	checks := healthChecks{}
	checks.merge(backend.checks)
	checks.merge(locker.checks)
	checks.merge(sink.checks)
	ops := httpserver.New(cfg.Server.MetricsAddr, opsRouter(reg, checks))

	log.Info("starting frontdesk",
		"addr", cfg.Server.Addr,
		"metrics_addr", cfg.Server.MetricsAddr,
		"backend", backend.name,
		"events", sink.name,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Stop accepting events only after in-flight requests are done.
		defer sink.stop()
		return httpserver.Run(gctx, api, cfg.Server.ShutdownTimeout, log)
	})
	g.Go(func() error {
		return httpserver.Run(gctx, ops, cfg.Server.ShutdownTimeout, log)
	})
	if sink.async != nil {
		g.Go(func() error {
			return sink.async.Run(context.WithoutCancel(gctx))
		})
	}
	err = g.Wait()

	if cerr := sink.close(context.WithoutCancel(ctx)); cerr != nil {
		log.Warn("event sink close failed", "error", cerr)
	}
	if err != nil {
		return err
	}
	log.Info("frontdesk stopped")
	return nil
}
