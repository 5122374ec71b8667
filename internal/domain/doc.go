// Package domain models canonical hazard and geopolitical-risk records
// aggregated from independently-operated public data providers.
//
// # Canonical records
//
// An Outage is a country-level internet or power disruption placed on the map
// by the static ISO-2 country table. A ConflictHotspot is a country-month
// armed-conflict fatality forecast placed by the ISO-3 centroid table.
// A ConflictArc is a derived edge between two hotspot countries; it has no
// independent existence and is rebuilt from scratch on every aggregation run.
//
// # Severity tiers
//
// Outage severity collapses a provider-normalized 0–1 score:
//
//	score ≥ 0.8 → total | score ≥ 0.5 → major | else partial
//
// Conflict intensity combines two independent forecast metrics with OR
// semantics: either metric alone can escalate the tier.
//
//	fatalities ≥ 100 OR probability ≥ 0.99 → critical
//	fatalities ≥ 25  OR probability ≥ 0.75 → high
//	fatalities ≥ 5   OR probability ≥ 0.25 → elevated
//	otherwise                              → low
//
// Hotspots are only emitted when fatalities ≥ 0.1 or probability ≥ 0.01;
// quieter forecasts are excluded entirely. See [NormalizeHotspot].
//
// # Deduplication
//
// Raw outage records collapse on (countryCode, type, lat, lon) with
// coordinates rounded to one decimal (~11 km cells). The first-inserted
// record wins; a later record with the same key is dropped even when it
// reports a different severity, so merge order sets source precedence.
// See [DedupKey].
//
// # Display radius
//
// Country-level outages scale a severity base radius (total 300 km, major
// 200 km, partial 100 km) by clamp(log10(population)/8, 0.5, 2.0). Records
// backed by a fixed grid region use min(sqrt(area/π), 500) km instead.
// See [EstimateRadius].
//
// # Grid stress
//
// Grid carbon-intensity percentiles are displayed through the outage
// severity tiers. The percentile is a relative carbon rank within the
// fetched zone set, not a reliability signal; the mapping exists purely so
// the visual layer can reuse one severity legend. See [GridStressToOutage].
//
// # ID generation
//
// Record IDs are deterministic SHA-256 hashes of the records' key fields, so
// reprocessing the same provider data yields the same IDs within a run.
// There is no identity across runs; every aggregation produces fresh records.
package domain
