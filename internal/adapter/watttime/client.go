// Package watttime reports grid stress for a fixed set of balancing
// authorities using the WattTime signal index, a 0–100 relative stress
// percentile.
package watttime

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
	defaultBaseURL = "https://api.watttime.org"

	// Tokens hard-expire after 30 minutes; the shorter cache TTL refreshes
	// them proactively so a run never carries a token into its final minutes.
	tokenCacheKey = "watttime:token"
	tokenCacheTTL = 25 * time.Minute

	indexCacheKey = "watttime:index"
	indexCacheTTL = 5 * time.Minute
)

// region is a fixed balancing authority of interest.
type region struct {
	id          string
	name        string
	countryCode string
	lat         float64
	lon         float64
	areaKm2     float64
}

var regions = []region{
	{id: "CAISO_NORTH", name: "California ISO North", countryCode: "US", lat: 38.6, lon: -121.5, areaKm2: 207_000},
	{id: "ERCOT_EASTTX", name: "ERCOT East Texas", countryCode: "US", lat: 31.8, lon: -95.5, areaKm2: 176_000},
	{id: "PJM_DC", name: "PJM Mid-Atlantic", countryCode: "US", lat: 38.9, lon: -77.0, areaKm2: 94_000},
	{id: "NYISO_NYC", name: "New York ISO NYC", countryCode: "US", lat: 40.7, lon: -74.0, areaKm2: 12_000},
	{id: "IESO_NORTH", name: "Ontario IESO North", countryCode: "CA", lat: 48.4, lon: -84.6, areaKm2: 410_000},
}

// Client implements aggregate.OutageSource against the WattTime v3 API.
// Login tokens and the index sweep are held in the shared TTL cache.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates a WattTime client. An empty baseURL selects the public
// API.
func NewClient(baseURL, username, password string, timeout time.Duration, c *cache.Cache, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		logger:     logger,
	}
}

func (c *Client) Name() string { return "watttime" }

// Fetch returns one power-layer record per configured region. The index
// sweep is cached briefly; a failed sweep serves the previous readings when
// available.
func (c *Client) Fetch(ctx context.Context) ([]domain.Outage, error) {
	if c.username == "" || c.password == "" {
		return nil, fmt.Errorf("watttime: credentials not set: %w", aggregate.ErrMissingConfiguration)
	}

	v, err := c.cache.GetOrFill(ctx, indexCacheKey, indexCacheTTL, func(ctx context.Context) (any, error) {
		return c.sweepRegions(ctx)
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

// token returns a valid bearer token, logging in at most once across
// concurrent callers.
func (c *Client) token(ctx context.Context) (string, error) {
	v, err := c.cache.GetOrFill(ctx, tokenCacheKey, tokenCacheTTL, func(ctx context.Context) (any, error) {
		return c.login(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) login(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/login", nil)
	if err != nil {
		return "", fmt.Errorf("watttime: create login request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("watttime: login request: %v: %w", err, aggregate.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watttime: login status %d: %w", resp.StatusCode, aggregate.ErrSourceUnavailable)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("watttime: decode login: %v: %w", err, aggregate.ErrMalformedResponse)
	}
	if body.Token == "" {
		return "", fmt.Errorf("watttime: empty login token: %w", aggregate.ErrMalformedResponse)
	}
	return body.Token, nil
}

// sweepRegions pulls the signal index for every region. Regions that fail
// individually are skipped; the sweep only errors when no region responds.
func (c *Client) sweepRegions(ctx context.Context) ([]domain.GridStressReading, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	readings := make([]domain.GridStressReading, 0, len(regions))
	for _, reg := range regions {
		r, err := c.fetchRegion(ctx, tok, reg)
		if err != nil {
			c.logger.Debug("watttime region skipped", "region", reg.id, "error", err)
			continue
		}
		readings = append(readings, r)
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("watttime: no region responded: %w", aggregate.ErrSourceUnavailable)
	}
	return readings, nil
}

func (c *Client) fetchRegion(ctx context.Context, tok string, reg region) (domain.GridStressReading, error) {
	u := fmt.Sprintf("%s/v3/signal-index?region=%s&signal_type=co2_moer", c.baseURL, reg.id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.GridStressReading{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GridStressReading{}, fmt.Errorf("region request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// The cached token was rejected before its expected expiry; drop it
		// so the next sweep logs in again.
		c.cache.Invalidate(tokenCacheKey)
		return domain.GridStressReading{}, fmt.Errorf("token rejected")
	}
	if resp.StatusCode != http.StatusOK {
		return domain.GridStressReading{}, fmt.Errorf("region status %d", resp.StatusCode)
	}

	var body indexResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.GridStressReading{}, fmt.Errorf("decode region: %w", err)
	}
	if len(body.Data) == 0 {
		return domain.GridStressReading{}, fmt.Errorf("empty index data")
	}

	point := body.Data[0]
	updatedAt, _ := time.Parse(time.RFC3339, point.PointTime)
	return domain.GridStressReading{
		Zone:        reg.id,
		ZoneName:    reg.name,
		CountryCode: reg.countryCode,
		Percentile:  point.Value / 100,
		Lat:         reg.lat,
		Lon:         reg.lon,
		AreaKm2:     reg.areaKm2,
		UpdatedAt:   updatedAt,
	}, nil
}

type indexResponse struct {
	Data []struct {
		PointTime string  `json:"point_time"`
		Value     float64 `json:"value"`
	} `json:"data"`
}
