// Package aggregate composes provider sources into canonical, deduplicated
// record sets. The Aggregator owns partial-failure isolation: source errors
// are logged and counted but never propagate to callers, so the user-visible
// failure mode is always "fewer data points", never an error.
package aggregate

import (
	"context"
	"errors"

	"github.com/crisismap/signal-aggregator/internal/domain"
)

// OutageSource is one provider-specific fetch+parse unit for the outage
// category. Implementations map a provider's feed into canonical records;
// an empty slice is a valid, non-error outcome. Fetch must honor context
// cancellation and must not leak provider-specific error types: failures are
// wrapped with one of the sentinel errors below.
type OutageSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Outage, error)
}

// ConflictSource fetches conflict fatality forecasts as canonical hotspots.
type ConflictSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.ConflictHotspot, error)
}

// Failure classes for source fetches. Adapters wrap their errors with one of
// these sentinels so the aggregator can label metrics without inspecting
// provider error types.
var (
	// ErrSourceUnavailable covers network failures and non-2xx responses.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedResponse covers bodies that cannot be decoded at all.
	// Individual bad records inside an otherwise valid body are skipped at
	// record granularity and do not produce this error.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMissingConfiguration marks a source whose credential is absent; the
	// source is skipped for the run without retry or alarm.
	ErrMissingConfiguration = errors.New("missing configuration")
)

// outcomeLabel classifies a fetch error for the source_fetches_total metric.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrMissingConfiguration):
		return "missing_config"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "unavailable"
	}
}
