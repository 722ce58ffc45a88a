package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/bootstrap"
	"github.com/jwalitptl/clinic-admin/internal/config"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/worker"
	"github.com/jwalitptl/clinic-admin/pkg/logger"
	"github.com/jwalitptl/clinic-admin/pkg/messaging"
)

const healthPort = 8081

// setupHealthCheck serves liveness, readiness and metrics for the worker.
func setupHealthCheck(kv repository.KVStore, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := kv.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.Handle("/health/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: fmt.Sprintf(":%d", healthPort), Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
	return srv
}

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if cfg.Storage.Driver == "memory" {
		log.Fatal().Msg("the standalone worker needs a shared storage driver, not memory")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	core, err := bootstrap.NewCore(ctx, cfg, registry)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialize storage")
	}
	defer core.Close()

	processor := worker.NewIntakeWorker(
		core.Intake,
		messaging.NewBrokerAdapter(core.Broker),
		worker.IntakeWorkerConfig{
			PollInterval: cfg.Intake.PollInterval,
			Channel:      cfg.Intake.Channel,
		},
		core.Metrics,
	)

	healthSrv := setupHealthCheck(core.KV, registry)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	processor.Start(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}
}
