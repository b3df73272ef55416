package curated

import "strings"

// genericLandmarkKeywords matches landmark-sounding names in any city.
var genericLandmarkKeywords = []string{
	"tower", "kule", "palace", "saray", "museum", "muze", "müze",
	"mosque", "cami", "bridge", "kopru", "köprü", "castle", "kale",
	"cathedral", "church", "basilica", "square", "meydan", "park",
	"bazaar", "carsi", "çarşı", "monument", "anit", "anıt", "temple",
	"fountain", "gate", "statue", "opera",
}

// cityLandmarkKeywords adds per-city terms the generic list cannot know.
var cityLandmarkKeywords = map[string][]string{
	"Istanbul":      {"ayasofya", "galata", "topkapi", "sultanahmet", "dolmabahce", "kapali", "yerebatan", "bogazici"},
	"Ankara":        {"anitkabir", "anadolu"},
	"Izmir":         {"efes", "kemeralti", "kordon"},
	"Kapadokya":     {"goreme", "peri", "derinkuyu", "uchisar"},
	"Paris":         {"eiffel", "louvre", "notre", "triomphe", "montmartre"},
	"Londra":        {"big ben", "westminster", "buckingham", "thames"},
	"Roma":          {"colosseum", "trevi", "pantheon", "vatican", "forum"},
	"New York City": {"liberty", "empire", "brooklyn", "times"},
	"Barselona":     {"sagrada", "guell", "batllo", "rambla"},
}

// LandmarkKeywords returns the keyword list used to spot landmark names for a
// canonical city key: the city-specific terms, if any, followed by the
// generic ones.
func LandmarkKeywords(cityKey string) []string {
	specific := cityLandmarkKeywords[cityKey]
	out := make([]string, 0, len(specific)+len(genericLandmarkKeywords))
	out = append(out, specific...)
	out = append(out, genericLandmarkKeywords...)
	return out
}

// MatchesLandmarkKeyword reports whether name contains any keyword for the
// city. Matching is case-insensitive substring containment.
func MatchesLandmarkKeyword(name, cityKey string) bool {
	lowered := strings.ToLower(name)
	for _, kw := range LandmarkKeywords(cityKey) {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
