// Package ioda fetches country-level internet outage signals from the
// CAIDA IODA API.
package ioda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/crisismap/signal-aggregator/internal/aggregate"
	"github.com/crisismap/signal-aggregator/internal/domain"
)

const defaultBaseURL = "https://api.ioda.inetintel.cc.gatech.edu/v2"

// totalBlackoutScore is the IODA overall score treated as a full national
// blackout. IODA scores are unbounded; readings at or above this level
// reliably correspond to total connectivity loss.
const totalBlackoutScore = 200.0

// Client implements aggregate.OutageSource against the IODA outage summary
// endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an IODA client. An empty baseURL selects the public API.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Name() string { return "ioda" }

// Fetch pulls the current country outage summary and maps each entry into a
// canonical internet-outage record. Entries with an unknown or missing
// country code are skipped individually.
func (c *Client) Fetch(ctx context.Context) ([]domain.Outage, error) {
	u := c.baseURL + "/outages/summary?entityType=country&limit=200"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("ioda: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ioda: summary request: %v: %w", err, aggregate.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ioda: summary status %d: %w", resp.StatusCode, aggregate.ErrSourceUnavailable)
	}

	var body summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ioda: decode summary: %v: %w", err, aggregate.ErrMalformedResponse)
	}

	outages := make([]domain.Outage, 0, len(body.Data))
	for _, e := range body.Data {
		if e.Entity.Code == "" {
			c.logger.Debug("ioda entry without country code skipped")
			continue
		}

		var start *time.Time
		if e.Event.From > 0 {
			t := time.Unix(e.Event.From, 0).UTC()
			start = &t
		}

		o, ok := domain.NormalizeOutage(domain.RawOutageRecord{
			CountryCode: e.Entity.Code,
			Type:        domain.OutageInternet,
			Score:       math.Min(e.Scores.Overall/totalBlackoutScore, 1),
			Description: fmt.Sprintf("Internet connectivity disruption in %s", e.Entity.Name),
			StartTime:   start,
			Source:      c.Name(),
			Active:      true,
		})
		if !ok {
			c.logger.Debug("ioda entry for unknown country dropped", "code", e.Entity.Code)
			continue
		}
		outages = append(outages, o)
	}
	return outages, nil
}

type summaryResponse struct {
	Data []summaryEntry `json:"data"`
}

type summaryEntry struct {
	Entity struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"entity"`
	Scores struct {
		Overall float64 `json:"overall"`
	} `json:"scores"`
	Event struct {
		From int64 `json:"from"`
	} `json:"event"`
}
