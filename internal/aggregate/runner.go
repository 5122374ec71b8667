package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/crisismap/signal-aggregator/internal/observability"
	"github.com/crisismap/signal-aggregator/internal/store"
)

// SnapshotPublisher hands a completed snapshot to an external collaborator
// (message bus, persistence). Publish failures are tolerated: the snapshot
// stays readable from the store either way.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap store.Snapshot) error
}

// RunnerOptions wires the sources and collaborators for a Runner.
// ConflictSource and Publisher may be nil; Clock defaults to the real clock.
type RunnerOptions struct {
	OutageSources  []OutageSource
	ConflictSource ConflictSource
	Store          *store.Memory
	Publisher      SnapshotPublisher
	Interval       time.Duration
	RunTimeout     time.Duration
	Clock          clockwork.Clock
}

// Runner executes aggregation runs on a fixed interval. Each run is an
// independent snapshot: there is no ordering or consistency guarantee between
// runs.
type Runner struct {
	agg     *Aggregator
	opts    RunnerOptions
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// NewRunner creates a Runner around an Aggregator.
func NewRunner(agg *Aggregator, opts RunnerOptions, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Runner{agg: agg, opts: opts, logger: logger, metrics: metrics}
}

// CheckReadiness returns nil once at least one aggregation run has completed.
// An empty snapshot still counts: all sources failing is a valid run.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no aggregation run has completed yet")
	}
	return nil
}

// Run performs an immediate aggregation run and then repeats on the
// configured interval until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("aggregation runner started",
		"interval", r.opts.Interval,
		"outage_sources", len(r.opts.OutageSources),
		"conflict_source", r.opts.ConflictSource != nil,
	)

	r.RunOnce(ctx)

	ticker := r.opts.Clock.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("aggregation runner stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			r.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single aggregation run: fan out to all sources, merge,
// store the snapshot, and hand it to the publisher. It never fails; a run
// where every source errored produces an empty snapshot.
func (r *Runner) RunOnce(ctx context.Context) store.Snapshot {
	runID := uuid.NewString()
	rctx, cancel := context.WithTimeout(ctx, r.opts.RunTimeout)
	defer cancel()

	start := time.Now()
	outages := r.agg.Outages(rctx, r.opts.OutageSources)
	hotspots, arcs := r.agg.Conflicts(rctx, r.opts.ConflictSource)

	snap := store.Snapshot{
		RunID:       runID,
		GeneratedAt: r.opts.Clock.Now(),
		Outages:     outages,
		Hotspots:    hotspots,
		Arcs:        arcs,
	}
	r.opts.Store.Set(snap)

	elapsed := time.Since(start)
	r.metrics.RunsTotal.Inc()
	r.metrics.RunDuration.Observe(elapsed.Seconds())
	r.metrics.LastRunUnix.Set(float64(snap.GeneratedAt.Unix()))
	r.metrics.SnapshotOutages.Set(float64(len(outages)))
	r.metrics.SnapshotHotspots.Set(float64(len(hotspots)))
	r.metrics.SnapshotArcs.Set(float64(len(arcs)))

	if r.opts.Publisher != nil {
		if err := r.opts.Publisher.PublishSnapshot(ctx, snap); err != nil {
			r.logger.Warn("snapshot publish failed", "run_id", runID, "error", err)
		}
	}

	r.ready.Store(true)
	r.logger.Info("aggregation run complete",
		"run_id", runID,
		"outages", len(outages),
		"hotspots", len(hotspots),
		"arcs", len(arcs),
		"duration", elapsed,
	)
	return snap
}
