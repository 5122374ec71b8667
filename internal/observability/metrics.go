package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// aggregation service.
type Metrics struct {
	SourceFetches       *prometheus.CounterVec   // labels: source, outcome={success,unavailable,malformed,missing_config}
	SourceFetchDuration *prometheus.HistogramVec // label: source
	RecordsMerged       *prometheus.CounterVec   // label: category={outage,conflict}
	DedupDropped        prometheus.Counter

	RunsTotal   prometheus.Counter
	RunDuration prometheus.Histogram
	LastRunUnix prometheus.Gauge

	// Latest snapshot sizes, for dashboarding "fewer data points" regressions.
	SnapshotOutages  prometheus.Gauge
	SnapshotHotspots prometheus.Gauge
	SnapshotArcs     prometheus.Gauge

	CacheLookups *prometheus.CounterVec // labels: key, result={hit,miss,stale}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceFetches,
		m.SourceFetchDuration,
		m.RecordsMerged,
		m.DedupDropped,
		m.RunsTotal,
		m.RunDuration,
		m.LastRunUnix,
		m.SnapshotOutages,
		m.SnapshotHotspots,
		m.SnapshotArcs,
		m.CacheLookups,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "risk_agg",
			Name:      "source_fetches_total",
			Help:      "Source fetch attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "risk_agg",
			Name:      "source_fetch_duration_seconds",
			Help:      "Duration of one source fetch, including parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"source"}),
		RecordsMerged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "risk_agg",
			Name:      "records_merged_total",
			Help:      "Canonical records produced after deduplication, by category.",
		}, []string{"category"}),
		DedupDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_agg",
			Name:      "dedup_dropped_total",
			Help:      "Raw records dropped because an earlier record held the same dedup key.",
		}),
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_agg",
			Name:      "runs_total",
			Help:      "Completed aggregation runs.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "risk_agg",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete aggregation run across all categories.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastRunUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "risk_agg",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the most recently completed run.",
		}),
		SnapshotOutages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "risk_agg",
			Name:      "snapshot_outages",
			Help:      "Outage records in the latest snapshot.",
		}),
		SnapshotHotspots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "risk_agg",
			Name:      "snapshot_hotspots",
			Help:      "Conflict hotspots in the latest snapshot.",
		}),
		SnapshotArcs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "risk_agg",
			Name:      "snapshot_arcs",
			Help:      "Conflict arcs in the latest snapshot.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "risk_agg",
			Name:      "cache_lookups_total",
			Help:      "TTL cache lookups by key and result.",
		}, []string{"key", "result"}),
	}
}
