package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/crisismap/signal-aggregator/internal/adapter/cloudflare"
	"github.com/crisismap/signal-aggregator/internal/adapter/electricitymaps"
	"github.com/crisismap/signal-aggregator/internal/adapter/httpadapter"
	"github.com/crisismap/signal-aggregator/internal/adapter/ioda"
	kafkaadapter "github.com/crisismap/signal-aggregator/internal/adapter/kafka"
	"github.com/crisismap/signal-aggregator/internal/adapter/views"
	"github.com/crisismap/signal-aggregator/internal/adapter/watttime"
	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/cache"
	"github.com/crisismap/signal-aggregator/internal/config"
	"github.com/crisismap/signal-aggregator/internal/observability"
	"github.com/crisismap/signal-aggregator/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()
	sharedCache := cache.New(clock, metrics)

	// Register outage sources in precedence order: when two sources report
	// the same event, the earlier registration's record survives dedup.
	sources := []aggregate.OutageSource{
		ioda.NewClient(cfg.IODABaseURL, cfg.SourceTimeout, logger),
	}
	if cfg.CloudflareAPIToken != "" {
		sources = append(sources, cloudflare.NewClient("", cfg.CloudflareAPIToken, cfg.SourceTimeout, logger))
		logger.Info("cloudflare radar source enabled")
	} else {
		logger.Info("cloudflare radar source disabled")
	}
	if cfg.ElectricityMapsAPIKey != "" {
		sources = append(sources, electricitymaps.NewClient("", cfg.ElectricityMapsAPIKey, cfg.SourceTimeout, sharedCache, logger))
		logger.Info("electricity maps source enabled")
	} else {
		logger.Info("electricity maps source disabled")
	}
	if cfg.WattTimeUsername != "" && cfg.WattTimePassword != "" {
		sources = append(sources, watttime.NewClient("", cfg.WattTimeUsername, cfg.WattTimePassword, cfg.SourceTimeout, sharedCache, logger))
		logger.Info("watttime source enabled")
	} else {
		logger.Info("watttime source disabled")
	}

	conflictSource := views.NewClient(cfg.ViewsBaseURL, cfg.SourceTimeout, sharedCache, logger)

	memory := store.NewMemory()

	var publisher aggregate.SnapshotPublisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = kafkaWriter
		logger.Info("kafka snapshot publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka snapshot publishing disabled")
	}

	agg := aggregate.New(logger, metrics, cfg.SourceTimeout, cfg.MaxConcurrentFetches)
	runner := aggregate.NewRunner(agg, aggregate.RunnerOptions{
		OutageSources:  sources,
		ConflictSource: conflictSource,
		Store:          memory,
		Publisher:      publisher,
		Interval:       cfg.AggregationInterval,
		RunTimeout:     cfg.RunTimeout,
		Clock:          clock,
	}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, memory, runner, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start aggregation loop.
	go func() {
		if err := runner.Run(ctx); err != nil {
			logger.Error("runner error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
