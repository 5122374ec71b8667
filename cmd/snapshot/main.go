// Command snapshot performs a single aggregation run against the configured
// sources and prints the resulting snapshot as JSON. It is meant for smoke
// testing credentials and inspecting normalized output without running the
// full service.
//
// Usage:
//
//	go run ./cmd/snapshot [-pretty] [-timeout 60s]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/crisismap/signal-aggregator/internal/adapter/cloudflare"
	"github.com/crisismap/signal-aggregator/internal/adapter/electricitymaps"
	"github.com/crisismap/signal-aggregator/internal/adapter/ioda"
	"github.com/crisismap/signal-aggregator/internal/adapter/views"
	"github.com/crisismap/signal-aggregator/internal/adapter/watttime"
	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/cache"
	"github.com/crisismap/signal-aggregator/internal/config"
	"github.com/crisismap/signal-aggregator/internal/observability"
	"github.com/crisismap/signal-aggregator/internal/store"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent JSON output")
	timeout := flag.Duration("timeout", time.Minute, "overall run timeout")
	flag.Parse()

	if code := run(*pretty, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(pretty bool, timeout time.Duration) int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(cfg.LogLevel, "text")
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewRealClock()
	sharedCache := cache.New(clock, metrics)

	sources := []aggregate.OutageSource{
		ioda.NewClient(cfg.IODABaseURL, cfg.SourceTimeout, logger),
	}
	if cfg.CloudflareAPIToken != "" {
		sources = append(sources, cloudflare.NewClient("", cfg.CloudflareAPIToken, cfg.SourceTimeout, logger))
	}
	if cfg.ElectricityMapsAPIKey != "" {
		sources = append(sources, electricitymaps.NewClient("", cfg.ElectricityMapsAPIKey, cfg.SourceTimeout, sharedCache, logger))
	}
	if cfg.WattTimeUsername != "" && cfg.WattTimePassword != "" {
		sources = append(sources, watttime.NewClient("", cfg.WattTimeUsername, cfg.WattTimePassword, cfg.SourceTimeout, sharedCache, logger))
	}

	agg := aggregate.New(logger, metrics, cfg.SourceTimeout, cfg.MaxConcurrentFetches)
	runner := aggregate.NewRunner(agg, aggregate.RunnerOptions{
		OutageSources:  sources,
		ConflictSource: views.NewClient(cfg.ViewsBaseURL, cfg.SourceTimeout, sharedCache, logger),
		Store:          store.NewMemory(),
		RunTimeout:     timeout,
		Clock:          clock,
	}, logger, metrics)

	snap := runner.RunOnce(context.Background())

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(snap); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: encode snapshot: %v\n", err)
		return 1
	}
	return 0
}
