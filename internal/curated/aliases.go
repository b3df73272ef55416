// Package curated holds the hand-authored lookup tables the resolution
// pipeline consults before touching any external provider: city name aliases,
// per-city landmark lists, city center coordinates, landmark keyword lists and
// canned description text. All tables are immutable package-level maps.
package curated

import (
	"sort"
	"strings"
)

// cityAliases maps lowercase user spellings to the canonical city key used to
// index every other table in this package. Keys must be lowercase.
var cityAliases = map[string]string{
	"istanbul":       "Istanbul",
	"constantinople": "Istanbul",
	"ankara":         "Ankara",
	"izmir":          "Izmir",
	"smyrna":         "Izmir",
	"antalya":        "Antalya",
	"kapadokya":      "Kapadokya",
	"cappadocia":     "Kapadokya",
	"goreme":         "Kapadokya",
	"nyc":            "New York City",
	"new york":       "New York City",
	"new-york":       "New York City",
	"new york city":  "New York City",
	"london":         "Londra",
	"londra":         "Londra",
	"londres":        "Londra",
	"paris":          "Paris",
	"rome":           "Roma",
	"roma":           "Roma",
	"barcelona":      "Barselona",
	"barselona":      "Barselona",
}

// NormalizeCityName resolves a free-text city name to a canonical city key.
// Lookup order: exact alias, substring containment over the alias table, then
// substring containment over the curated landmark city keys. The containment
// passes walk their tables in sorted key order, so an input matching several
// entries always resolves to the same one. There is no fuzzy or edit-distance
// matching. Returns "" when unrecognized.
func NormalizeCityName(name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}

	if key, ok := cityAliases[needle]; ok {
		return key
	}

	aliases := make([]string, 0, len(cityAliases))
	for alias := range cityAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		if strings.Contains(needle, alias) || strings.Contains(alias, needle) {
			return cityAliases[alias]
		}
	}

	keys := make([]string, 0, len(cityLandmarks))
	for key := range cityLandmarks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		lowered := strings.ToLower(key)
		if strings.Contains(needle, lowered) || strings.Contains(lowered, needle) {
			return key
		}
	}
	return ""
}

// cityIDs maps the stable city identifiers the mobile client ships with to
// canonical city keys.
var cityIDs = map[string]string{
	"city-istanbul":  "Istanbul",
	"city-ankara":    "Ankara",
	"city-izmir":     "Izmir",
	"city-antalya":   "Antalya",
	"city-kapadokya": "Kapadokya",
	"city-newyork":   "New York City",
	"city-london":    "Londra",
	"city-paris":     "Paris",
	"city-rome":      "Roma",
	"city-barcelona": "Barselona",
}

// CityKeyByID resolves a known city identifier to its canonical key.
// Returns "" when the identifier is not a known one.
func CityKeyByID(id string) string {
	return cityIDs[strings.ToLower(strings.TrimSpace(id))]
}
