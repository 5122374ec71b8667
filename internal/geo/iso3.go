package geo

// centroidsISO3 maps ISO 3166-1 alpha-3 codes to country centroids. Conflict
// forecast providers key their country-month rows by alpha-3, so this table
// is kept separate from the alpha-2 outage table.
var centroidsISO3 = map[string]Centroid{
	"AFG": {Name: "Afghanistan", Lat: 33.94, Lon: 67.71},
	"ARM": {Name: "Armenia", Lat: 40.07, Lon: 45.04},
	"AZE": {Name: "Azerbaijan", Lat: 40.14, Lon: 47.58},
	"BDI": {Name: "Burundi", Lat: -3.37, Lon: 29.92},
	"BFA": {Name: "Burkina Faso", Lat: 12.24, Lon: -1.56},
	"CAF": {Name: "Central African Republic", Lat: 6.61, Lon: 20.94},
	"CHN": {Name: "China", Lat: 35.86, Lon: 104.20},
	"CMR": {Name: "Cameroon", Lat: 7.37, Lon: 12.35},
	"COD": {Name: "DR Congo", Lat: -4.04, Lon: 21.76},
	"COL": {Name: "Colombia", Lat: 4.57, Lon: -74.30},
	"ECU": {Name: "Ecuador", Lat: -1.83, Lon: -78.18},
	"EGY": {Name: "Egypt", Lat: 26.82, Lon: 30.80},
	"ERI": {Name: "Eritrea", Lat: 15.18, Lon: 39.78},
	"ETH": {Name: "Ethiopia", Lat: 9.15, Lon: 40.49},
	"GEO": {Name: "Georgia", Lat: 42.32, Lon: 43.36},
	"HTI": {Name: "Haiti", Lat: 18.97, Lon: -72.29},
	"IND": {Name: "India", Lat: 20.59, Lon: 78.96},
	"IRN": {Name: "Iran", Lat: 32.43, Lon: 53.69},
	"IRQ": {Name: "Iraq", Lat: 33.22, Lon: 43.68},
	"ISR": {Name: "Israel", Lat: 31.05, Lon: 34.85},
	"KEN": {Name: "Kenya", Lat: -0.02, Lon: 37.91},
	"LBN": {Name: "Lebanon", Lat: 33.85, Lon: 35.86},
	"LBY": {Name: "Libya", Lat: 26.34, Lon: 17.23},
	"MEX": {Name: "Mexico", Lat: 23.63, Lon: -102.55},
	"MLI": {Name: "Mali", Lat: 17.57, Lon: -4.00},
	"MMR": {Name: "Myanmar", Lat: 21.91, Lon: 95.96},
	"MOZ": {Name: "Mozambique", Lat: -18.67, Lon: 35.53},
	"NER": {Name: "Niger", Lat: 17.61, Lon: 8.08},
	"NGA": {Name: "Nigeria", Lat: 9.08, Lon: 8.68},
	"PAK": {Name: "Pakistan", Lat: 30.38, Lon: 69.35},
	"PHL": {Name: "Philippines", Lat: 12.88, Lon: 121.77},
	"PRK": {Name: "North Korea", Lat: 40.34, Lon: 127.51},
	"PSE": {Name: "Palestine", Lat: 31.95, Lon: 35.23},
	"KOR": {Name: "South Korea", Lat: 35.91, Lon: 127.77},
	"RUS": {Name: "Russia", Lat: 61.52, Lon: 105.32},
	"RWA": {Name: "Rwanda", Lat: -1.94, Lon: 29.87},
	"SAU": {Name: "Saudi Arabia", Lat: 23.89, Lon: 45.08},
	"SDN": {Name: "Sudan", Lat: 12.86, Lon: 30.22},
	"SOM": {Name: "Somalia", Lat: 5.15, Lon: 46.20},
	"SSD": {Name: "South Sudan", Lat: 6.88, Lon: 31.31},
	"SYR": {Name: "Syria", Lat: 34.80, Lon: 38.99},
	"TCD": {Name: "Chad", Lat: 15.45, Lon: 18.73},
	"TUR": {Name: "Turkey", Lat: 38.96, Lon: 35.24},
	"TWN": {Name: "Taiwan", Lat: 23.70, Lon: 120.96},
	"UGA": {Name: "Uganda", Lat: 1.37, Lon: 32.29},
	"UKR": {Name: "Ukraine", Lat: 48.38, Lon: 31.17},
	"VEN": {Name: "Venezuela", Lat: 6.42, Lon: -66.59},
	"YEM": {Name: "Yemen", Lat: 15.55, Lon: 48.52},
	"ZWE": {Name: "Zimbabwe", Lat: -19.02, Lon: 29.15},
}
