// Package views fetches country-month armed-conflict fatality forecasts from
// the VIEWS (Violence & Impacts Early-Warning System) API.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/cache"
	"github.com/crisismap/signal-aggregator/internal/domain"
)

const (
	defaultBaseURL = "https://api.viewsforecasting.org"

	// lastKnownGoodRun is used when the run listing is unavailable. Forecast
	// runs stay queryable long after publication, so a stale run id degrades
	// freshness, not correctness.
	lastKnownGoodRun = "fatalities002_2026_07_t01"

	forecastCacheKey = "views:forecast"
	forecastCacheTTL = 15 * time.Minute
)

// Client implements aggregate.ConflictSource against the VIEWS
// country-month state-based violence forecast.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates a VIEWS client. An empty baseURL selects the public API.
func NewClient(baseURL string, timeout time.Duration, c *cache.Cache, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		logger:     logger,
	}
}

func (c *Client) Name() string { return "views" }

// Fetch pulls the latest forecast run and normalizes each country row into a
// hotspot. Rows below the emission thresholds or with unknown ISO codes are
// excluded individually. The pull is cached; a failed pull serves the
// previous forecast when available.
func (c *Client) Fetch(ctx context.Context) ([]domain.ConflictHotspot, error) {
	v, err := c.cache.GetOrFill(ctx, forecastCacheKey, forecastCacheTTL, func(ctx context.Context) (any, error) {
		return c.fetchForecast(ctx)
	})
	if err != nil {
		return nil, err
	}
	rows := v.([]forecastRow)

	hotspots := make([]domain.ConflictHotspot, 0, len(rows))
	for _, row := range rows {
		h, ok := domain.NormalizeHotspot(domain.RawConflictRecord{
			ISOCode:     row.ISOAB,
			Fatalities:  row.MainMean,
			Probability: row.MainDich,
			Month:       row.Month,
			Year:        row.Year,
		})
		if !ok {
			continue
		}
		hotspots = append(hotspots, h)
	}
	return hotspots, nil
}

func (c *Client) fetchForecast(ctx context.Context) ([]forecastRow, error) {
	run := c.resolveRun(ctx)

	u := fmt.Sprintf("%s/%s/cm/sb?page_size=500", c.baseURL, run)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("views: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("views: forecast request: %v: %w", err, aggregate.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("views: forecast status %d: %w", resp.StatusCode, aggregate.ErrSourceUnavailable)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("views: decode forecast: %v: %w", err, aggregate.ErrMalformedResponse)
	}
	return body.Data, nil
}

// resolveRun asks the API for its most recent forecast run. Any failure falls
// back to the last known good run id rather than failing the fetch.
func (c *Client) resolveRun(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/runs", nil)
	if err != nil {
		return lastKnownGoodRun
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("views run listing failed, using last known run", "run", lastKnownGoodRun, "error", err)
		return lastKnownGoodRun
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("views run listing failed, using last known run", "run", lastKnownGoodRun, "status", resp.StatusCode)
		return lastKnownGoodRun
	}

	var body struct {
		Runs []string `json:"runs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Runs) == 0 {
		c.logger.Warn("views run listing unreadable, using last known run", "run", lastKnownGoodRun)
		return lastKnownGoodRun
	}
	return body.Runs[len(body.Runs)-1]
}

type forecastResponse struct {
	Data []forecastRow `json:"data"`
}

type forecastRow struct {
	Name     string  `json:"name"`
	ISOAB    string  `json:"isoab"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	MainMean float64 `json:"main_mean"`
	MainDich float64 `json:"main_dich"`
}
