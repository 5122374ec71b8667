package domain

import "math"

var severityBaseRadiusKm = map[Severity]float64{
	SeverityTotal:   300,
	SeverityMajor:   200,
	SeverityPartial: 100,
}

// maxAreaRadiusKm caps the radius derived from very large grid regions so a
// single zone never dominates the map.
const maxAreaRadiusKm = 500

// RadiusKm derives a display radius from the severity base, scaled by
// population when known: base × clamp(log10(population)/8, 0.5, 2.0).
// Unknown population (≤ 0) returns the base unscaled.
func RadiusKm(severity Severity, population int64) float64 {
	base := severityBaseRadiusKm[severity]
	if population <= 0 {
		return base
	}
	scale := math.Log10(float64(population)) / 8
	if scale < 0.5 {
		scale = 0.5
	}
	if scale > 2.0 {
		scale = 2.0
	}
	return base * scale
}

// AreaRadiusKm derives a display radius for area-backed entities: the radius
// of the equivalent circle, capped at maxAreaRadiusKm.
func AreaRadiusKm(areaKm2 float64) float64 {
	return math.Min(math.Sqrt(areaKm2/math.Pi), maxAreaRadiusKm)
}

// EstimateRadius fills RadiusKm over a merged outage set. It runs as a second
// pass after deduplication because the choice of formula depends on record
// attributes only settled by then (area-backed grid regions vs country-level
// records).
func EstimateRadius(outages []Outage) {
	for i := range outages {
		o := &outages[i]
		if o.AreaKm2 > 0 {
			o.RadiusKm = AreaRadiusKm(o.AreaKm2)
			continue
		}
		o.RadiusKm = RadiusKm(o.Severity, o.AffectedPopulation)
	}
}
