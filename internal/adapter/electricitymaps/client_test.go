package electricitymaps

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/cache"
	"github.com/crisismap/signal-aggregator/internal/domain"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, apiKey, 5*time.Second, cache.New(clockwork.NewFakeClock(), nil), slog.Default())
}

// zoneHandler serves a distinct carbon intensity per zone.
func zoneHandler(t *testing.T, intensities map[string]float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()
		zone := r.URL.Query().Get("zone")
		ci, ok := intensities[zone]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"zone":%q,"carbonIntensity":%g,"updatedAt":"2026-08-23T09:00:00Z"}`, zone, ci)
	}
}

func allZoneIntensities(base float64) map[string]float64 {
	m := make(map[string]float64, len(zones))
	for i, z := range zones {
		m[z.id] = base + float64(i)*50
	}
	return m
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("missing API key skips the source", func(t *testing.T) {
		c := NewClient("", "", 5*time.Second, cache.New(clockwork.NewFakeClock(), nil), slog.Default())
		_, err := c.Fetch(ctx)
		assert.ErrorIs(t, err, aggregate.ErrMissingConfiguration)
	})

	t.Run("one power record per zone ranked by percentile", func(t *testing.T) {
		c := newTestClient(t, "key", zoneHandler(t, allZoneIntensities(100)))

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, outages, len(zones))

		for _, o := range outages {
			assert.Equal(t, domain.OutagePower, o.Type)
			assert.True(t, o.Active)
			assert.Positive(t, o.AreaKm2)
		}

		// Lowest intensity zone ranks at percentile 0: partial.
		assert.Equal(t, domain.SeverityPartial, outages[0].Severity)
		// Highest ranks at 1.0: total.
		assert.Equal(t, domain.SeverityTotal, outages[len(outages)-1].Severity)
	})

	t.Run("failed zones are skipped individually", func(t *testing.T) {
		intensities := allZoneIntensities(100)
		delete(intensities, "DE")
		c := newTestClient(t, "key", zoneHandler(t, intensities))

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		assert.Len(t, outages, len(zones)-1)
	})

	t.Run("all zones failing is unavailable", func(t *testing.T) {
		c := newTestClient(t, "key", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := c.Fetch(ctx)
		assert.ErrorIs(t, err, aggregate.ErrSourceUnavailable)
	})

	t.Run("sweep is cached across fetches", func(t *testing.T) {
		var requests atomic.Int32
		intensities := allZoneIntensities(100)
		c := newTestClient(t, "key", func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			zoneHandler(t, intensities)(w, r)
		})

		_, err := c.Fetch(ctx)
		require.NoError(t, err)
		first := requests.Load()

		_, err = c.Fetch(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, requests.Load())
	})

	t.Run("sends the auth token header", func(t *testing.T) {
		c := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "secret", r.Header.Get("auth-token"))
			zoneHandler(t, allZoneIntensities(100))(w, r)
		})

		_, err := c.Fetch(ctx)
		require.NoError(t, err)
	})
}

func TestRankPercentiles(t *testing.T) {
	t.Run("single zone ranks mid-scale", func(t *testing.T) {
		readings := []domain.GridStressReading{{Zone: "DE", CarbonIntensity: 400}}
		rankPercentiles(readings)
		assert.Equal(t, 0.5, readings[0].Percentile)
	})

	t.Run("ranks span zero to one", func(t *testing.T) {
		readings := []domain.GridStressReading{
			{Zone: "A", CarbonIntensity: 300},
			{Zone: "B", CarbonIntensity: 100},
			{Zone: "C", CarbonIntensity: 200},
		}
		rankPercentiles(readings)

		assert.Equal(t, 1.0, readings[0].Percentile)
		assert.Equal(t, 0.0, readings[1].Percentile)
		assert.Equal(t, 0.5, readings[2].Percentile)
	})
}
