// Package geo provides static country lookup tables used to place canonical
// records on the map. Outage providers report ISO 3166-1 alpha-2 codes;
// conflict forecast providers report alpha-3 codes, so the package keeps two
// separate tables keyed per calling convention.
//
// Unknown codes resolve to ok=false and callers drop the record. This is a
// deliberate data-loss point: a provider reporting a territory outside the
// tables simply contributes fewer map points, never an error.
package geo

import "strings"

// Country holds the display coordinates and population for an ISO-2 code.
type Country struct {
	Name       string
	Lat        float64
	Lon        float64
	Population int64
}

// Centroid holds the display coordinates for an ISO-3 code.
type Centroid struct {
	Name string
	Lat  float64
	Lon  float64
}

// ResolveISO2 looks up outage placement data by ISO 3166-1 alpha-2 code.
func ResolveISO2(code string) (Country, bool) {
	c, ok := countriesISO2[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// ResolveISO3 looks up a country centroid by ISO 3166-1 alpha-3 code.
func ResolveISO3(code string) (Centroid, bool) {
	c, ok := centroidsISO3[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}
