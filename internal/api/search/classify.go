package search

import (
	"strings"

	"github.com/emirduygulu/wanderland-api/internal/types"
)

// categoryRule pairs detection keywords with the category label and result
// type they imply. Rules are evaluated in order; the first hit wins.
type categoryRule struct {
	keywords []string
	category string
	typ      types.ResultType
}

var categoryRules = []categoryRule{
	{[]string{"mosque", "cami"}, "mosque", types.ResultTypeLandmark},
	{[]string{"palace", "saray"}, "palace", types.ResultTypeLandmark},
	{[]string{"tower", "kule"}, "tower", types.ResultTypeLandmark},
	{[]string{"bridge", "kopru", "köprü"}, "bridge", types.ResultTypeLandmark},
	{[]string{"museum", "muze", "müze"}, "museum", types.ResultTypeLandmark},
	{[]string{"monument", "anit", "anıt", "statue", "memorial"}, "monument", types.ResultTypeMonument},
	{[]string{"park", "garden", "bahce", "bahçe"}, "park", types.ResultTypePlace},
	{[]string{"ancient", "antik", "ruins", "archaeological", "harabe"}, "ancient", types.ResultTypeMonument},
	{[]string{"bazaar", "market", "carsi", "çarşı", "pazar"}, "market", types.ResultTypePlace},
	{[]string{"restaurant", "restoran", "lokanta"}, "restaurant", types.ResultTypePlace},
	{[]string{"cafe", "kafe", "bar", "pub"}, "cafe", types.ResultTypePlace},
	{[]string{"city", "sehir", "şehir", "capital", "baskent", "başkent", "town", "metropolis"}, "city", types.ResultTypeCity},
}

// Classify derives the category label and result type from title+extract via
// ordered keyword checks, defaulting to a plain landmark.
func Classify(title, extract string) (string, types.ResultType) {
	combined := strings.ToLower(title + " " + extract)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				return rule.category, rule.typ
			}
		}
	}
	return "landmark", types.ResultTypeLandmark
}

// DeriveRating computes the synthetic rating for a resolved result: base 4.0
// plus up to 1.0 from the relevance score, with small bonuses for a long
// extract, an image, coordinates and a Turkish-language source, capped at 5.0.
func DeriveRating(score, extractLen int, hasImage, hasCoordinates, turkish bool) float64 {
	rating := 4.0 + float64(score)/100.0
	if extractLen > 300 {
		rating += 0.2
	}
	if hasImage {
		rating += 0.1
	}
	if hasCoordinates {
		rating += 0.1
	}
	if turkish {
		rating += 0.1
	}
	if rating > 5.0 {
		rating = 5.0
	}
	return rating
}

// DerivePopularity computes the synthetic popularity: extract length divided
// by ten plus the relevance score plus an image bonus, capped at 100.
func DerivePopularity(score, extractLen int, hasImage bool) int {
	popularity := extractLen/10 + score
	if hasImage {
		popularity += 10
	}
	if popularity > 100 {
		popularity = 100
	}
	return popularity
}
