package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/crisismap/signal-aggregator/internal/geo"
)

// ConflictHotspot is a canonical country-month fatality forecast placed on
// the map by the ISO-3 centroid table.
type ConflictHotspot struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Lat                  float64   `json:"lat"`
	Lon                  float64   `json:"lon"`
	ISOCode              string    `json:"iso_code"`
	Intensity            Intensity `json:"intensity"`
	ForecastedFatalities float64   `json:"forecasted_fatalities"`
	FatalityProbability  float64   `json:"fatality_probability"` // percentage, 0–100
	ForecastMonth        int       `json:"forecast_month"`
	ForecastYear         int       `json:"forecast_year"`
}

// RawConflictRecord is a forecast provider's field-mapped output. Probability
// is the raw 0–1 conflict probability; Fatalities is the expected count.
type RawConflictRecord struct {
	ISOCode     string
	Fatalities  float64
	Probability float64
	Month       int
	Year        int
}

// NormalizeHotspot gates, places, and classifies a raw forecast record.
// Forecasts below both emission thresholds (fatalities < 0.1 and
// probability < 0.01) are excluded, as are unknown ISO-3 codes.
func NormalizeHotspot(raw RawConflictRecord) (ConflictHotspot, bool) {
	if raw.Fatalities < 0.1 && raw.Probability < 0.01 {
		return ConflictHotspot{}, false
	}
	centroid, ok := geo.ResolveISO3(raw.ISOCode)
	if !ok {
		return ConflictHotspot{}, false
	}

	return ConflictHotspot{
		ID:                   hotspotID(raw.ISOCode, raw.Year, raw.Month),
		Name:                 centroid.Name,
		Lat:                  centroid.Lat,
		Lon:                  centroid.Lon,
		ISOCode:              raw.ISOCode,
		Intensity:            ClassifyConflictIntensity(raw.Fatalities, raw.Probability),
		ForecastedFatalities: raw.Fatalities,
		FatalityProbability:  raw.Probability * 100,
		ForecastMonth:        raw.Month,
		ForecastYear:         raw.Year,
	}, true
}

func hotspotID(iso string, year, month int) string {
	input := fmt.Sprintf("%s|%d|%d", iso, year, month)
	hash := sha256.Sum256([]byte(input))
	return "hot-" + hex.EncodeToString(hash[:8])
}
