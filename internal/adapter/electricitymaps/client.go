// Package electricitymaps fetches per-zone carbon intensity from the
// Electricity Maps API and converts the readings into power-layer outage
// records via the percentile mapping.
package electricitymaps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/cache"
	"github.com/crisismap/signal-aggregator/internal/domain"
)

const (
	defaultBaseURL = "https://api.electricitymap.org/v3"

	// cacheKey and cacheTTL bound how often the full zone sweep hits the
	// upstream; the free tier rate-limits aggressively.
	cacheKey = "electricitymaps:zones"
	cacheTTL = 15 * time.Minute
)

// zone is a fixed grid region of interest. Area drives the area-backed
// radius; the centroid places the record on the map.
type zone struct {
	id          string
	name        string
	countryCode string
	lat         float64
	lon         float64
	areaKm2     float64
}

var zones = []zone{
	{id: "DE", name: "Germany", countryCode: "DE", lat: 51.2, lon: 10.4, areaKm2: 357_600},
	{id: "FR", name: "France", countryCode: "FR", lat: 46.2, lon: 2.2, areaKm2: 643_800},
	{id: "GB", name: "Great Britain", countryCode: "GB", lat: 54.0, lon: -2.5, areaKm2: 209_300},
	{id: "ES", name: "Spain", countryCode: "ES", lat: 40.5, lon: -3.7, areaKm2: 505_900},
	{id: "IT", name: "Italy", countryCode: "IT", lat: 41.9, lon: 12.6, areaKm2: 302_100},
	{id: "PL", name: "Poland", countryCode: "PL", lat: 51.9, lon: 19.1, areaKm2: 312_700},
	{id: "SE", name: "Sweden", countryCode: "SE", lat: 60.1, lon: 18.6, areaKm2: 450_300},
	{id: "ZA", name: "South Africa", countryCode: "ZA", lat: -30.6, lon: 22.9, areaKm2: 1_221_000},
	{id: "IN-NO", name: "Northern India", countryCode: "IN", lat: 28.6, lon: 77.2, areaKm2: 638_500},
	{id: "JP-TK", name: "Tokyo Area", countryCode: "JP", lat: 35.7, lon: 139.7, areaKm2: 13_600},
}

// Client implements aggregate.OutageSource by sweeping the fixed zone set.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates an Electricity Maps client. An empty baseURL selects the
// public API.
func NewClient(baseURL, apiKey string, timeout time.Duration, c *cache.Cache, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		logger:     logger,
	}
}

func (c *Client) Name() string { return "electricitymaps" }

// Fetch returns one power-layer record per zone, ranked by carbon intensity
// percentile within the fetched set. The zone sweep is cached; a failed sweep
// serves the previous readings when available.
func (c *Client) Fetch(ctx context.Context) ([]domain.Outage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("electricitymaps: API key not set: %w", aggregate.ErrMissingConfiguration)
	}

	v, err := c.cache.GetOrFill(ctx, cacheKey, cacheTTL, func(ctx context.Context) (any, error) {
		return c.sweepZones(ctx)
	})
	if err != nil {
		return nil, err
	}
	readings := v.([]domain.GridStressReading)

	outages := make([]domain.Outage, 0, len(readings))
	for _, r := range readings {
		outages = append(outages, domain.GridStressToOutage(r, c.Name()))
	}
	return outages, nil
}

// sweepZones pulls the latest carbon intensity for every zone and computes
// each zone's percentile rank within the sweep. Zones that fail individually
// are skipped; the sweep only errors when no zone responds.
func (c *Client) sweepZones(ctx context.Context) ([]domain.GridStressReading, error) {
	readings := make([]domain.GridStressReading, 0, len(zones))
	for _, z := range zones {
		r, err := c.fetchZone(ctx, z)
		if err != nil {
			c.logger.Debug("electricitymaps zone skipped", "zone", z.id, "error", err)
			continue
		}
		readings = append(readings, r)
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("electricitymaps: no zone responded: %w", aggregate.ErrSourceUnavailable)
	}

	rankPercentiles(readings)
	return readings, nil
}

func (c *Client) fetchZone(ctx context.Context, z zone) (domain.GridStressReading, error) {
	u := fmt.Sprintf("%s/carbon-intensity/latest?zone=%s", c.baseURL, z.id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.GridStressReading{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("auth-token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GridStressReading{}, fmt.Errorf("zone request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GridStressReading{}, fmt.Errorf("zone status %d", resp.StatusCode)
	}

	var body zoneResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.GridStressReading{}, fmt.Errorf("decode zone: %w", err)
	}

	updatedAt, _ := time.Parse(time.RFC3339, body.UpdatedAt)
	return domain.GridStressReading{
		Zone:            z.id,
		ZoneName:        z.name,
		CountryCode:     z.countryCode,
		CarbonIntensity: body.CarbonIntensity,
		Lat:             z.lat,
		Lon:             z.lon,
		AreaKm2:         z.areaKm2,
		UpdatedAt:       updatedAt,
	}, nil
}

// rankPercentiles assigns each reading its carbon-intensity rank within the
// sweep, in 0–1. A single-zone sweep ranks at 0.5.
func rankPercentiles(readings []domain.GridStressReading) {
	if len(readings) == 1 {
		readings[0].Percentile = 0.5
		return
	}

	order := make([]int, len(readings))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return readings[order[a]].CarbonIntensity < readings[order[b]].CarbonIntensity
	})

	for rank, idx := range order {
		readings[idx].Percentile = float64(rank) / float64(len(readings)-1)
	}
}

type zoneResponse struct {
	Zone            string  `json:"zone"`
	CarbonIntensity float64 `json:"carbonIntensity"`
	UpdatedAt       string  `json:"updatedAt"`
}
