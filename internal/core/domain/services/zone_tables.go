package services

import (
	"regexp"

	"pricing/internal/core/domain/model/zone"
)

// DefaultDomesticCountry is the home market used when none is configured.
const DefaultDomesticCountry = "PL"

// MetroArea is a city served as the local zone: a set of postal ranges for
// postal resolution plus a centre and radius for coordinate resolution.
type MetroArea struct {
	Name     string
	Country  string
	Ranges   []zone.PostalRange
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// boundingBox is an inclusive latitude/longitude rectangle.
type boundingBox struct {
	minLat, maxLat float64
	minLng, maxLng float64
}

func (b boundingBox) contains(lat, lng float64) bool {
	return lat >= b.minLat && lat <= b.maxLat && lng >= b.minLng && lng <= b.maxLng
}

var defaultMetroAreas = []MetroArea{
	{Name: "Warszawa", Country: "PL", Ranges: []zone.PostalRange{zone.MustPostalRange("00-001", "04-999")}, Lat: 52.2297, Lng: 21.0122, RadiusKm: 25},
	{Name: "Krakow", Country: "PL", Ranges: []zone.PostalRange{zone.MustPostalRange("30-001", "31-999")}, Lat: 50.0647, Lng: 19.9450, RadiusKm: 20},
	{Name: "Wroclaw", Country: "PL", Ranges: []zone.PostalRange{zone.MustPostalRange("50-001", "54-999")}, Lat: 51.1079, Lng: 17.0385, RadiusKm: 20},
	{Name: "Poznan", Country: "PL", Ranges: []zone.PostalRange{zone.MustPostalRange("60-001", "61-999")}, Lat: 52.4064, Lng: 16.9252, RadiusKm: 20},
	{Name: "Gdansk", Country: "PL", Ranges: []zone.PostalRange{zone.MustPostalRange("80-001", "80-999")}, Lat: 54.3520, Lng: 18.6466, RadiusKm: 20},
	{Name: "Lodz", Country: "PL", Ranges: []zone.PostalRange{zone.MustPostalRange("90-001", "94-999")}, Lat: 51.7592, Lng: 19.4560, RadiusKm: 20},
}

// DefaultMetroAreas returns a copy of the built-in metro table.
func DefaultMetroAreas() []MetroArea {
	return append([]MetroArea(nil), defaultMetroAreas...)
}

// Normalized postal formats by country. Countries missing here accept any
// non-empty alphanumeric code.
var postalFormats = map[string]*regexp.Regexp{
	"PL": regexp.MustCompile(`^\d{5}$`),
	"DE": regexp.MustCompile(`^\d{5}$`),
	"FR": regexp.MustCompile(`^\d{5}$`),
	"CZ": regexp.MustCompile(`^\d{5}$`),
	"SK": regexp.MustCompile(`^\d{5}$`),
	"AT": regexp.MustCompile(`^\d{4}$`),
	"NL": regexp.MustCompile(`^\d{4}[A-Z]{2}$`),
	"GB": regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]?\d[A-Z]{2}$`),
}

var domesticBoxes = map[string]boundingBox{
	"PL": {minLat: 49.0, maxLat: 54.9, minLng: 14.1, maxLng: 24.2},
}

var (
	europeBox = boundingBox{minLat: 34.5, maxLat: 71.5, minLng: -25.0, maxLng: 45.0}
	// Meridian splitting eu-west from eu-east for coordinate resolution.
	europeSplitLng = 15.0
)

// Countries forced to the world zone regardless of continent.
var zoneOverrides = map[string]string{
	"RU": zone.CodeWorld,
	"BY": zone.CodeWorld,
	"KP": zone.CodeWorld,
	"IR": zone.CodeWorld,
	"SY": zone.CodeWorld,
	"CU": zone.CodeWorld,
}

var continentalZones = map[string]string{
	"AT": zone.CodeEUWest, "BE": zone.CodeEUWest, "DE": zone.CodeEUWest, "DK": zone.CodeEUWest,
	"ES": zone.CodeEUWest, "FI": zone.CodeEUWest, "FR": zone.CodeEUWest, "IE": zone.CodeEUWest,
	"IT": zone.CodeEUWest, "LU": zone.CodeEUWest, "NL": zone.CodeEUWest, "PT": zone.CodeEUWest,
	"SE": zone.CodeEUWest, "MT": zone.CodeEUWest, "CY": zone.CodeEUWest, "GR": zone.CodeEUWest,

	"BG": zone.CodeEUEast, "CZ": zone.CodeEUEast, "EE": zone.CodeEUEast, "HR": zone.CodeEUEast,
	"HU": zone.CodeEUEast, "LT": zone.CodeEUEast, "LV": zone.CodeEUEast, "PL": zone.CodeEUEast,
	"RO": zone.CodeEUEast, "SI": zone.CodeEUEast, "SK": zone.CodeEUEast,

	"AD": zone.CodeEurope, "AL": zone.CodeEurope, "BA": zone.CodeEurope, "CH": zone.CodeEurope,
	"GB": zone.CodeEurope, "IS": zone.CodeEurope, "LI": zone.CodeEurope, "MC": zone.CodeEurope,
	"MD": zone.CodeEurope, "ME": zone.CodeEurope, "MK": zone.CodeEurope, "NO": zone.CodeEurope,
	"RS": zone.CodeEurope, "SM": zone.CodeEurope, "UA": zone.CodeEurope, "VA": zone.CodeEurope,
	"TR": zone.CodeEurope, "XK": zone.CodeEurope,
}
