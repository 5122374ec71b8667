package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/crisismap/signal-aggregator/internal/geo"
)

// OutageType distinguishes the disrupted infrastructure layer.
type OutageType string

const (
	OutageInternet OutageType = "internet"
	OutagePower    OutageType = "power"
	OutageBoth     OutageType = "both"
)

// Outage is a canonical, deduplicated disruption record ready for map display.
type Outage struct {
	ID                 string       `json:"id"`
	Country            string       `json:"country"`
	CountryCode        string       `json:"country_code"`
	Type               OutageType   `json:"type"`
	Severity           Severity     `json:"severity"`
	Lat                float64      `json:"lat"`
	Lon                float64      `json:"lon"`
	Description        string       `json:"description,omitempty"`
	AffectedPopulation int64        `json:"affected_population,omitempty"`
	StartTime          *time.Time   `json:"start_time,omitempty"`
	Source             string       `json:"source"`
	Active             bool         `json:"active"`
	RadiusKm           float64      `json:"radius_km"`
	BoundaryCoords     [][2]float64 `json:"boundary_coords,omitempty"`
	AreaKm2            float64      `json:"area_km2,omitempty"`
}

// RawOutageRecord is a provider adapter's field-mapped output before
// normalization. Score is the provider's raw severity signal rescaled to 0–1.
// Lat/Lon are only read when HasCoords is set; otherwise the record is placed
// by the country table entry.
type RawOutageRecord struct {
	CountryCode    string
	Type           OutageType
	Score          float64
	Description    string
	StartTime      *time.Time
	Source         string
	Active         bool
	HasCoords      bool
	Lat            float64
	Lon            float64
	BoundaryCoords [][2]float64
	AreaKm2        float64
}

// NormalizeOutage resolves coordinates and population from the ISO-2 table
// and classifies severity, producing a canonical outage. Records with an
// unknown country code are dropped (ok=false) rather than errored.
func NormalizeOutage(raw RawOutageRecord) (Outage, bool) {
	country, ok := geo.ResolveISO2(raw.CountryCode)
	if !ok {
		return Outage{}, false
	}

	lat, lon := raw.Lat, raw.Lon
	if !raw.HasCoords {
		lat, lon = country.Lat, country.Lon
	}

	return Outage{
		ID:                 outageID(raw.CountryCode, raw.Type, lat, lon, raw.Source),
		Country:            country.Name,
		CountryCode:        raw.CountryCode,
		Type:               raw.Type,
		Severity:           ClassifyOutageSeverity(raw.Score),
		Lat:                lat,
		Lon:                lon,
		Description:        raw.Description,
		AffectedPopulation: country.Population,
		StartTime:          raw.StartTime,
		Source:             raw.Source,
		Active:             raw.Active,
		BoundaryCoords:     raw.BoundaryCoords,
		AreaKm2:            raw.AreaKm2,
	}, true
}

// DedupKey returns the tuple that collapses raw records reported for the same
// country, outage type, and ~11 km coordinate cell (one decimal of lat/lon).
func DedupKey(o Outage) string {
	return fmt.Sprintf("%s|%s|%.1f|%.1f", o.CountryCode, o.Type, round1(o.Lat), round1(o.Lon))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// outageID produces a deterministic ID from the record's key fields, so the
// same provider data yields the same ID within a run.
func outageID(code string, typ OutageType, lat, lon float64, source string) string {
	input := fmt.Sprintf("%s|%s|%.4f|%.4f|%s", code, typ, lat, lon, source)
	hash := sha256.Sum256([]byte(input))
	return "out-" + hex.EncodeToString(hash[:8])
}
