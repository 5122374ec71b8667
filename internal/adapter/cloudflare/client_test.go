package cloudflare

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/domain"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, token, 5*time.Second, slog.Default())
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("missing token skips the source", func(t *testing.T) {
		c := NewClient("", "", 5*time.Second, slog.Default())
		_, err := c.Fetch(ctx)
		assert.ErrorIs(t, err, aggregate.ErrMissingConfiguration)
	})

	t.Run("one record per annotation location", func(t *testing.T) {
		c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "/annotations/outages", r.URL.Path)
			w.Write([]byte(`{"result":{"annotations":[
				{"id":"a1","locations":["IR","IQ"],"description":"Nationwide shutdown",
				 "startDate":"2026-08-20T10:00:00Z","endDate":"",
				 "outage":{"outageCause":"GOVERNMENT_DIRECTED","outageType":"NATIONWIDE"}}
			]}}`))
		})

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, outages, 2)
		assert.Equal(t, "IR", outages[0].CountryCode)
		assert.Equal(t, "IQ", outages[1].CountryCode)
		// NATIONWIDE scores 0.9: total.
		assert.Equal(t, domain.SeverityTotal, outages[0].Severity)
		assert.True(t, outages[0].Active)
		require.NotNil(t, outages[0].StartTime)
	})

	t.Run("ended annotation is inactive", func(t *testing.T) {
		c := newTestClient(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"result":{"annotations":[
				{"id":"a1","locations":["UA"],"startDate":"2026-08-20T10:00:00Z",
				 "endDate":"2026-08-21T10:00:00Z","outage":{"outageType":"REGIONAL"}}
			]}}`))
		})

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, outages, 1)
		assert.False(t, outages[0].Active)
		// REGIONAL scores 0.55: major.
		assert.Equal(t, domain.SeverityMajor, outages[0].Severity)
	})

	t.Run("unknown scope defaults to partial", func(t *testing.T) {
		c := newTestClient(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"result":{"annotations":[
				{"id":"a1","locations":["UA"],"outage":{"outageType":"NETWORK"}}
			]}}`))
		})

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, outages, 1)
		assert.Equal(t, domain.SeverityPartial, outages[0].Severity)
	})

	t.Run("annotations without locations are skipped", func(t *testing.T) {
		c := newTestClient(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"result":{"annotations":[
				{"id":"a1","locations":[],"outage":{"outageType":"NATIONWIDE"}}
			]}}`))
		})

		outages, err := c.Fetch(ctx)
		require.NoError(t, err)
		assert.Empty(t, outages)
	})

	t.Run("non-200 status is unavailable", func(t *testing.T) {
		c := newTestClient(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := c.Fetch(ctx)
		assert.ErrorIs(t, err, aggregate.ErrSourceUnavailable)
	})

	t.Run("undecodable body is malformed", func(t *testing.T) {
		c := newTestClient(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`<html>`))
		})

		_, err := c.Fetch(ctx)
		assert.ErrorIs(t, err, aggregate.ErrMalformedResponse)
	})
}

func TestScopeScore(t *testing.T) {
	assert.Equal(t, 0.9, scopeScore("NATIONWIDE"))
	assert.Equal(t, 0.55, scopeScore("REGIONAL"))
	assert.Equal(t, 0.3, scopeScore("NETWORK"))
	assert.Equal(t, 0.3, scopeScore(""))
}
