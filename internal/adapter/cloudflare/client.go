// Package cloudflare fetches internet outage annotations from the Cloudflare
// Radar API.
package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/domain"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4/radar"

// Client implements aggregate.OutageSource against the Radar outage
// annotations endpoint. Radar reports no numeric magnitude, so the outage
// scope stands in for the raw severity score.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Radar client. An empty baseURL selects the public API.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Name() string { return "cloudflare-radar" }

// Fetch pulls the last day of outage annotations. Each annotation may cover
// several locations; every location becomes its own raw record. Annotations
// without locations are skipped individually.
func (c *Client) Fetch(ctx context.Context) ([]domain.Outage, error) {
	if c.token == "" {
		return nil, fmt.Errorf("cloudflare radar: API token not set: %w", aggregate.ErrMissingConfiguration)
	}

	u := c.baseURL + "/annotations/outages?dateRange=1d&limit=100&format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("cloudflare radar: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudflare radar: annotations request: %v: %w", err, aggregate.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudflare radar: annotations status %d: %w", resp.StatusCode, aggregate.ErrSourceUnavailable)
	}

	var body annotationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cloudflare radar: decode annotations: %v: %w", err, aggregate.ErrMalformedResponse)
	}

	var outages []domain.Outage
	for _, ann := range body.Result.Annotations {
		if len(ann.Locations) == 0 {
			c.logger.Debug("radar annotation without locations skipped", "annotation", ann.ID)
			continue
		}

		var start *time.Time
		if t, err := time.Parse(time.RFC3339, ann.StartDate); err == nil {
			start = &t
		}

		for _, loc := range ann.Locations {
			o, ok := domain.NormalizeOutage(domain.RawOutageRecord{
				CountryCode: loc,
				Type:        domain.OutageInternet,
				Score:       scopeScore(ann.Outage.OutageType),
				Description: ann.Description,
				StartTime:   start,
				Source:      c.Name(),
				Active:      ann.EndDate == "",
			})
			if !ok {
				c.logger.Debug("radar annotation for unknown location dropped", "location", loc)
				continue
			}
			outages = append(outages, o)
		}
	}
	return outages, nil
}

// scopeScore maps the annotation's outage scope onto the 0–1 score scale the
// severity classifier expects.
func scopeScore(outageType string) float64 {
	switch outageType {
	case "NATIONWIDE":
		return 0.9
	case "REGIONAL":
		return 0.55
	default:
		return 0.3
	}
}

type annotationsResponse struct {
	Result struct {
		Annotations []annotation `json:"annotations"`
	} `json:"result"`
}

type annotation struct {
	ID          string   `json:"id"`
	Locations   []string `json:"locations"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Outage      struct {
		OutageCause string `json:"outageCause"`
		OutageType  string `json:"outageType"`
	} `json:"outage"`
}
