package curated

import "math"

// Coordinate is a city center point used before asking a geocoding provider.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

var cityCoordinates = map[string]Coordinate{
	"Istanbul":      {41.0082, 28.9784},
	"Ankara":        {39.9334, 32.8597},
	"Izmir":         {38.4237, 27.1428},
	"Antalya":       {36.8969, 30.7133},
	"Kapadokya":     {38.6431, 34.8289},
	"New York City": {40.7128, -74.0060},
	"Londra":        {51.5074, -0.1278},
	"Paris":         {48.8566, 2.3522},
	"Roma":          {41.9028, 12.4964},
	"Barselona":     {41.3874, 2.1686},
}

// CityCoordinates returns the static center coordinate for a canonical city
// key, if one is on record.
func CityCoordinates(cityKey string) (Coordinate, bool) {
	c, ok := cityCoordinates[cityKey]
	return c, ok
}

// NearestCity returns the canonical key of the closest known city center
// within maxDistanceKm of the given point, or "" when none is that close.
func NearestCity(lat, lng, maxDistanceKm float64) string {
	best := ""
	bestDist := maxDistanceKm
	for key, c := range cityCoordinates {
		d := haversineKm(lat, lng, c.Latitude, c.Longitude)
		if d <= bestDist {
			best = key
			bestDist = d
		}
	}
	return best
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
