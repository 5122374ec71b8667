package ioda

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

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, slog.Default())
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("maps summary entries to internet outages", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/outages/summary", r.URL.Path)
			assert.Equal(t, "country", r.URL.Query().Get("entityType"))
			w.Write([]byte(`{"data":[
				{"entity":{"code":"IR","name":"Iran"},"scores":{"overall":250},"event":{"from":1755900000}},
				{"entity":{"code":"UA","name":"Ukraine"},"scores":{"overall":60},"event":{"from":0}}
			]}`))
		})

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, outages, 2)

		assert.Equal(t, "IR", outages[0].CountryCode)
		assert.Equal(t, domain.OutageInternet, outages[0].Type)
		// Score 250 clamps to 1.0: total.
		assert.Equal(t, domain.SeverityTotal, outages[0].Severity)
		require.NotNil(t, outages[0].StartTime)
		assert.Equal(t, time.Unix(1755900000, 0).UTC(), *outages[0].StartTime)

		// Score 60/200 = 0.3: partial, no event start.
		assert.Equal(t, domain.SeverityPartial, outages[1].Severity)
		assert.Nil(t, outages[1].StartTime)
	})

	t.Run("skips entries without a country code", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":[
				{"entity":{"code":"","name":"Unknown"},"scores":{"overall":100}},
				{"entity":{"code":"IR","name":"Iran"},"scores":{"overall":100}}
			]}`))
		})

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		assert.Len(t, outages, 1)
	})

	t.Run("skips entries for unknown countries", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":[{"entity":{"code":"XX","name":"Nowhere"},"scores":{"overall":100}}]}`))
		})

		outages, err := c.Fetch(ctx)

		require.NoError(t, err)
		assert.Empty(t, outages)
	})

	t.Run("non-200 status is unavailable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.Fetch(ctx)
		assert.ErrorIs(t, err, aggregate.ErrSourceUnavailable)
	})

	t.Run("undecodable body is malformed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`))
		})

		_, err := c.Fetch(ctx)
		assert.ErrorIs(t, err, aggregate.ErrMalformedResponse)
	})

	t.Run("empty data yields empty set", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		})

		outages, err := c.Fetch(ctx)
		require.NoError(t, err)
		assert.Empty(t, outages)
	})
}
