package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crisismap/signal-aggregator/internal/domain"
	"github.com/crisismap/signal-aggregator/internal/observability"
)

const (
	defaultSourceTimeout = 15 * time.Second
	defaultMaxConcurrent = 4
)

// Aggregator runs a category's sources concurrently and merges their output
// into one canonical, deduplicated list. It never returns an error: failed
// sources contribute zero records and an all-failure run yields an empty
// slice. The aggregator is the single owner of the in-progress dedup set and
// output list within a run, so no locking is needed on that state.
type Aggregator struct {
	logger        *slog.Logger
	metrics       *observability.Metrics
	sourceTimeout time.Duration
	maxConcurrent int
}

// New creates an Aggregator. Non-positive timeout or concurrency fall back to
// defaults (15s per source, 4 concurrent fetches).
func New(logger *slog.Logger, metrics *observability.Metrics, sourceTimeout time.Duration, maxConcurrent int) *Aggregator {
	if sourceTimeout <= 0 {
		sourceTimeout = defaultSourceTimeout
	}
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Aggregator{
		logger:        logger,
		metrics:       metrics,
		sourceTimeout: sourceTimeout,
		maxConcurrent: maxConcurrent,
	}
}

// Outages fans out to all outage sources with bounded concurrency, merges
// their records in registration order, deduplicates first-inserted-wins, and
// applies radius estimation as a second pass over the merged set.
//
// Per-source timeouts are derived from the run context, so one slow source
// never cancels its siblings; cancelling ctx stops pending fetches but the
// records of sources that already completed are still merged and returned.
func (a *Aggregator) Outages(ctx context.Context, sources []OutageSource) []domain.Outage {
	results := make([][]domain.Outage, len(sources))

	var g errgroup.Group
	g.SetLimit(a.maxConcurrent)
	for i, src := range sources {
		g.Go(func() error {
			records, err := a.fetchOutages(ctx, src)
			if err != nil {
				return nil
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait() // fetch errors are handled per source, never returned

	merged := a.mergeOutages(results)
	domain.EstimateRadius(merged)

	a.metrics.RecordsMerged.WithLabelValues("outage").Add(float64(len(merged)))
	return merged
}

func (a *Aggregator) fetchOutages(ctx context.Context, src OutageSource) ([]domain.Outage, error) {
	fctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	start := time.Now()
	records, err := src.Fetch(fctx)
	a.metrics.SourceFetchDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		a.logger.Warn("outage source failed", "source", src.Name(), "error", err)
		a.metrics.SourceFetches.WithLabelValues(src.Name(), outcomeLabel(err)).Inc()
		return nil, err
	}
	a.metrics.SourceFetches.WithLabelValues(src.Name(), "success").Inc()
	return records, nil
}

// mergeOutages flattens per-source results in registration order and drops
// records whose dedup key was already inserted. First-inserted-wins: a later
// record with the same key is dropped even when it reports a different
// severity, so the order sources are registered in sets their precedence.
func (a *Aggregator) mergeOutages(results [][]domain.Outage) []domain.Outage {
	seen := make(map[string]struct{})
	merged := make([]domain.Outage, 0)

	for _, batch := range results {
		for _, o := range batch {
			key := domain.DedupKey(o)
			if _, dup := seen[key]; dup {
				a.metrics.DedupDropped.Inc()
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, o)
		}
	}
	return merged
}

// Conflicts fetches the conflict forecast, keeps one hotspot per country
// (first reported row wins), orders hotspots by forecasted fatalities for
// stable display priority, and derives arcs from the resulting set. A nil or
// failing source yields empty results, never an error.
func (a *Aggregator) Conflicts(ctx context.Context, src ConflictSource) ([]domain.ConflictHotspot, []domain.ConflictArc) {
	if src == nil {
		return nil, nil
	}

	fctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	start := time.Now()
	records, err := src.Fetch(fctx)
	a.metrics.SourceFetchDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		a.logger.Warn("conflict source failed", "source", src.Name(), "error", err)
		a.metrics.SourceFetches.WithLabelValues(src.Name(), outcomeLabel(err)).Inc()
		return nil, nil
	}
	a.metrics.SourceFetches.WithLabelValues(src.Name(), "success").Inc()

	seen := make(map[string]struct{}, len(records))
	hotspots := make([]domain.ConflictHotspot, 0, len(records))
	for _, h := range records {
		if _, dup := seen[h.ISOCode]; dup {
			a.metrics.DedupDropped.Inc()
			continue
		}
		seen[h.ISOCode] = struct{}{}
		hotspots = append(hotspots, h)
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].ForecastedFatalities > hotspots[j].ForecastedFatalities
	})

	arcs := domain.BuildConflictArcs(hotspots, domain.DefaultCorrelationPairs)
	a.metrics.RecordsMerged.WithLabelValues("conflict").Add(float64(len(hotspots)))
	return hotspots, arcs
}
