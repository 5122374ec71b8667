package geo

// countriesISO2 maps ISO 3166-1 alpha-2 codes to display coordinates and
// population. Coordinates are approximate country centroids; populations are
// rounded recent estimates, used only to scale display radii.
var countriesISO2 = map[string]Country{
	"AF": {Name: "Afghanistan", Lat: 33.94, Lon: 67.71, Population: 41_100_000},
	"AM": {Name: "Armenia", Lat: 40.07, Lon: 45.04, Population: 2_780_000},
	"AO": {Name: "Angola", Lat: -11.20, Lon: 17.87, Population: 36_700_000},
	"AR": {Name: "Argentina", Lat: -38.42, Lon: -63.62, Population: 46_200_000},
	"AU": {Name: "Australia", Lat: -25.27, Lon: 133.78, Population: 26_600_000},
	"AZ": {Name: "Azerbaijan", Lat: 40.14, Lon: 47.58, Population: 10_400_000},
	"BD": {Name: "Bangladesh", Lat: 23.68, Lon: 90.36, Population: 172_900_000},
	"BF": {Name: "Burkina Faso", Lat: 12.24, Lon: -1.56, Population: 23_300_000},
	"BR": {Name: "Brazil", Lat: -14.24, Lon: -51.93, Population: 216_400_000},
	"BY": {Name: "Belarus", Lat: 53.71, Lon: 27.95, Population: 9_200_000},
	"CA": {Name: "Canada", Lat: 56.13, Lon: -106.35, Population: 40_100_000},
	"CD": {Name: "DR Congo", Lat: -4.04, Lon: 21.76, Population: 102_300_000},
	"CF": {Name: "Central African Republic", Lat: 6.61, Lon: 20.94, Population: 5_700_000},
	"CL": {Name: "Chile", Lat: -35.68, Lon: -71.54, Population: 19_600_000},
	"CM": {Name: "Cameroon", Lat: 7.37, Lon: 12.35, Population: 28_600_000},
	"CN": {Name: "China", Lat: 35.86, Lon: 104.20, Population: 1_425_000_000},
	"CO": {Name: "Colombia", Lat: 4.57, Lon: -74.30, Population: 52_100_000},
	"CU": {Name: "Cuba", Lat: 21.52, Lon: -77.78, Population: 11_200_000},
	"DE": {Name: "Germany", Lat: 51.17, Lon: 10.45, Population: 84_500_000},
	"DZ": {Name: "Algeria", Lat: 28.03, Lon: 1.66, Population: 45_600_000},
	"EC": {Name: "Ecuador", Lat: -1.83, Lon: -78.18, Population: 18_200_000},
	"EG": {Name: "Egypt", Lat: 26.82, Lon: 30.80, Population: 112_700_000},
	"ER": {Name: "Eritrea", Lat: 15.18, Lon: 39.78, Population: 3_700_000},
	"ES": {Name: "Spain", Lat: 40.46, Lon: -3.75, Population: 47_500_000},
	"ET": {Name: "Ethiopia", Lat: 9.15, Lon: 40.49, Population: 126_500_000},
	"FR": {Name: "France", Lat: 46.23, Lon: 2.21, Population: 68_200_000},
	"GB": {Name: "United Kingdom", Lat: 55.38, Lon: -3.44, Population: 67_700_000},
	"GE": {Name: "Georgia", Lat: 42.32, Lon: 43.36, Population: 3_700_000},
	"HT": {Name: "Haiti", Lat: 18.97, Lon: -72.29, Population: 11_700_000},
	"ID": {Name: "Indonesia", Lat: -0.79, Lon: 113.92, Population: 277_500_000},
	"IL": {Name: "Israel", Lat: 31.05, Lon: 34.85, Population: 9_800_000},
	"IN": {Name: "India", Lat: 20.59, Lon: 78.96, Population: 1_428_600_000},
	"IQ": {Name: "Iraq", Lat: 33.22, Lon: 43.68, Population: 45_500_000},
	"IR": {Name: "Iran", Lat: 32.43, Lon: 53.69, Population: 89_200_000},
	"IT": {Name: "Italy", Lat: 41.87, Lon: 12.57, Population: 58_900_000},
	"JP": {Name: "Japan", Lat: 36.20, Lon: 138.25, Population: 123_300_000},
	"KE": {Name: "Kenya", Lat: -0.02, Lon: 37.91, Population: 55_100_000},
	"KP": {Name: "North Korea", Lat: 40.34, Lon: 127.51, Population: 26_200_000},
	"KR": {Name: "South Korea", Lat: 35.91, Lon: 127.77, Population: 51_700_000},
	"LB": {Name: "Lebanon", Lat: 33.85, Lon: 35.86, Population: 5_500_000},
	"LY": {Name: "Libya", Lat: 26.34, Lon: 17.23, Population: 6_900_000},
	"MA": {Name: "Morocco", Lat: 31.79, Lon: -7.09, Population: 37_800_000},
	"ML": {Name: "Mali", Lat: 17.57, Lon: -4.00, Population: 23_300_000},
	"MM": {Name: "Myanmar", Lat: 21.91, Lon: 95.96, Population: 54_600_000},
	"MX": {Name: "Mexico", Lat: 23.63, Lon: -102.55, Population: 128_500_000},
	"MZ": {Name: "Mozambique", Lat: -18.67, Lon: 35.53, Population: 33_900_000},
	"NE": {Name: "Niger", Lat: 17.61, Lon: 8.08, Population: 27_200_000},
	"NG": {Name: "Nigeria", Lat: 9.08, Lon: 8.68, Population: 223_800_000},
	"NI": {Name: "Nicaragua", Lat: 12.87, Lon: -85.21, Population: 7_000_000},
	"PK": {Name: "Pakistan", Lat: 30.38, Lon: 69.35, Population: 240_500_000},
	"PL": {Name: "Poland", Lat: 51.92, Lon: 19.15, Population: 36_800_000},
	"PS": {Name: "Palestine", Lat: 31.95, Lon: 35.23, Population: 5_400_000},
	"RU": {Name: "Russia", Lat: 61.52, Lon: 105.32, Population: 144_400_000},
	"SA": {Name: "Saudi Arabia", Lat: 23.89, Lon: 45.08, Population: 36_900_000},
	"SD": {Name: "Sudan", Lat: 12.86, Lon: 30.22, Population: 48_100_000},
	"SE": {Name: "Sweden", Lat: 60.13, Lon: 18.64, Population: 10_500_000},
	"SN": {Name: "Senegal", Lat: 14.50, Lon: -14.45, Population: 17_800_000},
	"SO": {Name: "Somalia", Lat: 5.15, Lon: 46.20, Population: 18_100_000},
	"SS": {Name: "South Sudan", Lat: 6.88, Lon: 31.31, Population: 11_100_000},
	"SY": {Name: "Syria", Lat: 34.80, Lon: 38.99, Population: 23_200_000},
	"TD": {Name: "Chad", Lat: 15.45, Lon: 18.73, Population: 18_300_000},
	"TR": {Name: "Turkey", Lat: 38.96, Lon: 35.24, Population: 85_800_000},
	"TW": {Name: "Taiwan", Lat: 23.70, Lon: 120.96, Population: 23_900_000},
	"UA": {Name: "Ukraine", Lat: 48.38, Lon: 31.17, Population: 36_700_000},
	"UG": {Name: "Uganda", Lat: 1.37, Lon: 32.29, Population: 48_600_000},
	"US": {Name: "United States", Lat: 37.09, Lon: -95.71, Population: 334_900_000},
	"VE": {Name: "Venezuela", Lat: 6.42, Lon: -66.59, Population: 28_400_000},
	"YE": {Name: "Yemen", Lat: 15.55, Lon: 48.52, Population: 34_400_000},
	"ZA": {Name: "South Africa", Lat: -30.56, Lon: 22.94, Population: 60_400_000},
	"ZW": {Name: "Zimbabwe", Lat: -19.02, Lon: 29.15, Population: 16_700_000},
}
