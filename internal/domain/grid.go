package domain

import (
	"fmt"
	"math"
	"time"
)

// GridStressReading is a per-zone grid signal reported by a carbon-intensity
// or grid-stress provider. Percentile is the zone's relative rank within the
// fetched zone set, in 0–1.
type GridStressReading struct {
	Zone            string
	ZoneName        string
	CountryCode     string
	CarbonIntensity float64 // gCO2eq/kWh, zero when the provider has no carbon signal
	Percentile      float64
	Lat             float64
	Lon             float64
	AreaKm2         float64
	UpdatedAt       time.Time
}

// GridStressToOutage converts a grid reading into a power-layer outage record
// for the map. The carbon-intensity percentile is not a reliability signal;
// it is reused as a visual severity tier so the display can share one legend.
func GridStressToOutage(r GridStressReading, source string) Outage {
	desc := fmt.Sprintf("%s grid stress at the %s percentile", r.ZoneName, ordinal(int(math.Round(r.Percentile*100))))
	if r.CarbonIntensity > 0 {
		desc = fmt.Sprintf("%s (%.0f gCO2eq/kWh)", desc, r.CarbonIntensity)
	}

	var start *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		start = &t
	}

	return Outage{
		ID:          outageID(r.Zone, OutagePower, r.Lat, r.Lon, source),
		Country:     r.ZoneName,
		CountryCode: r.CountryCode,
		Type:        OutagePower,
		Severity:    ClassifyOutageSeverity(r.Percentile),
		Lat:         r.Lat,
		Lon:         r.Lon,
		Description: desc,
		StartTime:   start,
		Source:      source,
		Active:      true,
		AreaKm2:     r.AreaKm2,
	}
}

func ordinal(n int) string {
	if rem := n % 100; rem >= 11 && rem <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
