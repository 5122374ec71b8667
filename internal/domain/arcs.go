package domain

import (
	"strings"

	"github.com/crisismap/signal-aggregator/internal/geo"
)

// ArcEndpoint is one end of a conflict arc, placed by the hotspot when the
// country is present in the current run, otherwise by its ISO-3 centroid.
type ArcEndpoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ConflictArc is a derived edge between two correlated conflict countries.
// Arcs exist only as a function of the current hotspot set; they are rebuilt
// on every run and carry no identity across runs.
type ConflictArc struct {
	ID          string      `json:"id"`
	From        ArcEndpoint `json:"from"`
	To          ArcEndpoint `json:"to"`
	Intensity   Intensity   `json:"intensity"`
	Color       string      `json:"color"`
	Description string      `json:"description,omitempty"`
}

// CorrelationPair names two ISO-3 countries whose conflict dynamics are
// linked closely enough to draw an edge between them.
type CorrelationPair struct {
	A           string
	B           string
	Description string
}

// DefaultCorrelationPairs is the static country-pairs-of-interest table.
var DefaultCorrelationPairs = []CorrelationPair{
	{A: "RUS", B: "UKR", Description: "Russia–Ukraine war"},
	{A: "ISR", B: "PSE", Description: "Israel–Palestine conflict"},
	{A: "ISR", B: "LBN", Description: "Israel–Lebanon border conflict"},
	{A: "ISR", B: "IRN", Description: "Israel–Iran confrontation"},
	{A: "ARM", B: "AZE", Description: "Armenia–Azerbaijan conflict"},
	{A: "IND", B: "PAK", Description: "India–Pakistan tensions"},
	{A: "AFG", B: "PAK", Description: "Afghanistan–Pakistan border conflict"},
	{A: "ETH", B: "ERI", Description: "Ethiopia–Eritrea tensions"},
	{A: "SDN", B: "SSD", Description: "Sudan–South Sudan conflict"},
	{A: "COD", B: "RWA", Description: "DR Congo–Rwanda tensions"},
	{A: "MLI", B: "BFA", Description: "Sahel insurgency corridor"},
	{A: "BFA", B: "NER", Description: "Sahel insurgency corridor"},
	{A: "YEM", B: "SAU", Description: "Yemen–Saudi Arabia conflict"},
	{A: "PRK", B: "KOR", Description: "Korean peninsula tensions"},
	{A: "CHN", B: "TWN", Description: "Taiwan strait tensions"},
}

var intensityColors = map[Intensity]string{
	IntensityLow:      "#facc15",
	IntensityElevated: "#fb923c",
	IntensityHigh:     "#ef4444",
	IntensityCritical: "#b91c1c",
}

// BuildConflictArcs derives edges from the correlation table and the current
// hotspot set. A pair is skipped when both endpoints are absent or low; an
// endpoint absent from the hotspot set is placed by its ISO-3 centroid and
// treated as low intensity. The arc takes the higher endpoint intensity, ties
// going to endpoint A by construction of the strict comparison. Pairs with an
// endpoint that resolves to no coordinates at all are skipped.
func BuildConflictArcs(hotspots []ConflictHotspot, pairs []CorrelationPair) []ConflictArc {
	byISO := make(map[string]ConflictHotspot, len(hotspots))
	for _, h := range hotspots {
		if _, dup := byISO[h.ISOCode]; !dup {
			byISO[h.ISOCode] = h
		}
	}

	var arcs []ConflictArc
	for _, p := range pairs {
		a, okA := byISO[p.A]
		b, okB := byISO[p.B]

		if quietEndpoint(a, okA) && quietEndpoint(b, okB) {
			continue
		}

		from, okFrom := arcEndpoint(a, okA, p.A)
		to, okTo := arcEndpoint(b, okB, p.B)
		if !okFrom || !okTo {
			continue
		}

		intensity := IntensityLow
		if okA {
			intensity = a.Intensity
		}
		if okB && b.Intensity.Rank() > intensity.Rank() {
			intensity = b.Intensity
		}

		arcs = append(arcs, ConflictArc{
			ID:          "arc-" + strings.ToLower(p.A) + "-" + strings.ToLower(p.B),
			From:        from,
			To:          to,
			Intensity:   intensity,
			Color:       intensityColors[intensity],
			Description: p.Description,
		})
	}
	return arcs
}

// quietEndpoint reports whether the endpoint is absent from the hotspot set
// or present at low intensity.
func quietEndpoint(h ConflictHotspot, present bool) bool {
	return !present || h.Intensity == IntensityLow
}

func arcEndpoint(h ConflictHotspot, present bool, iso string) (ArcEndpoint, bool) {
	if present {
		return ArcEndpoint{Name: h.Name, Lat: h.Lat, Lon: h.Lon}, true
	}
	centroid, ok := geo.ResolveISO3(iso)
	if !ok {
		return ArcEndpoint{}, false
	}
	return ArcEndpoint{Name: centroid.Name, Lat: centroid.Lat, Lon: centroid.Lon}, true
}
