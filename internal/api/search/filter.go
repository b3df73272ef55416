package search

import (
	"regexp"
	"strings"
)

// priorityKeywords immediately accept a candidate when found anywhere in
// title+extract. These are unambiguous travel terms.
var priorityKeywords = []string{
	"palace", "saray", "museum", "muze", "müze", "bridge", "kopru", "köprü",
	"tower", "kule", "monument", "anit", "anıt", "mosque", "cami", "church",
	"kilise", "park", "beach", "plaj", "waterfall", "selale", "şelale",
	"lake", "gol", "göl", "market", "bazaar", "carsi", "çarşı", "castle",
	"kale", "ancient", "antik", "cathedral", "temple",
}

// allowedKeywords is the broader accept list: settlements, historic, natural,
// entertainment, dining, shopping, lodging and transport terms.
var allowedKeywords = []string{
	"city", "sehir", "şehir", "town", "kasaba", "village", "koy", "köy",
	"district", "ilce", "ilçe", "capital", "baskent", "başkent",
	"historic", "tarihi", "ottoman", "osmanli", "byzantine", "bizans",
	"roman", "medieval", "heritage", "unesco",
	"mountain", "dag", "dağ", "valley", "vadi", "island", "ada",
	"forest", "orman", "cave", "magara", "mağara", "bay", "coast", "river",
	"aquarium", "theme park", "festival", "opera", "theatre",
	"restaurant", "restoran", "cafe", "kafe", "cuisine",
	"shopping", "mall", "avm",
	"hotel", "otel", "resort", "hostel",
	"airport", "havalimani", "station", "istasyon", "port", "liman",
	"ferry", "vapur", "square", "meydan",
}

// turkishPlaceNames rescue candidates that mention a well-known Turkish
// destination without using any generic travel term.
var turkishPlaceNames = []string{
	"istanbul", "ankara", "izmir", "antalya", "kapadokya", "bursa",
	"trabzon", "konya", "efes", "pamukkale", "bodrum", "fethiye",
	"safranbolu", "mardin",
}

// blockedKeywords indicate biography, politics, science, media or
// zoology/botany content. More than three distinct hits reject the candidate.
var blockedKeywords = []string{
	"born", "dogdu", "doğdu", "biography", "biyografi", "career", "kariyer",
	"politician", "siyasetci", "siyasetçi", "election", "secim", "seçim",
	"parliament", "parlamento", "minister", "bakan",
	"physics", "chemistry", "biology", "theorem", "equation", "scientist",
	"album", "albüm", "film", "series", "dizi", "sitcom", "television",
	"singer", "sarkici", "şarkıcı", "band",
	"species", "tür", "genus", "cins", "familya", "habitat", "mammal",
	"footballer", "futbolcu", "basketball",
}

// sportsClubPattern matches club-style titles ("... F.C.", "... S.K.",
// "Fenerbahce Spor Kulubu").
var sportsClubPattern = regexp.MustCompile(`(?i)\b(f\.?c\.?|s\.?k\.?|spor kul[uü]b[uü]|football club|basketball club)\b`)

// titleRejectWords reject on the title alone: animal/plant terms
// (whole-word only) and political/celebrity role words.
var titleRejectWords = []string{
	"cat", "dog", "bird", "fish", "snake", "flower", "tree", "plant",
	"species", "kedi", "kopek", "köpek", "kus", "kuş",
	"politician", "president", "cumhurbaskani", "cumhurbaşkanı",
	"minister", "bakan", "singer", "actor", "actress", "footballer",
	"futbolcu", "author", "yazar",
}

var wordBoundary = regexp.MustCompile(`\pL+`)

// IsTravelRelated classifies a candidate title and extract as travel content.
// Checks run in order; the first conclusive one wins, and ambiguous cases
// lean permissive.
func IsTravelRelated(title, extract string) bool {
	combined := strings.ToLower(title + " " + extract)
	loweredTitle := strings.ToLower(title)

	// 1. Priority travel keyword anywhere.
	for _, kw := range priorityKeywords {
		if strings.Contains(combined, kw) {
			return true
		}
	}

	// 2. Title-only rejects, unless the title itself carries an allowed term.
	if sportsClubPattern.MatchString(loweredTitle) || titleHasRejectWord(loweredTitle) {
		titleAllowed := false
		for _, kw := range allowedKeywords {
			if strings.Contains(loweredTitle, kw) {
				titleAllowed = true
				break
			}
		}
		if !titleAllowed {
			return false
		}
	}

	// 3. Broader allowed list.
	for _, kw := range allowedKeywords {
		if strings.Contains(combined, kw) {
			return true
		}
	}

	// 4. Known Turkish destinations.
	for _, name := range turkishPlaceNames {
		if strings.Contains(combined, name) {
			return true
		}
	}

	// 5. Too many blocked-topic hits.
	blocked := 0
	for _, kw := range blockedKeywords {
		if strings.Contains(combined, kw) {
			blocked++
		}
	}
	if blocked > 3 {
		return false
	}

	// 6. Default accept.
	return true
}

// titleHasRejectWord does whole-word matching so "Catania" is not rejected
// for containing "cat".
func titleHasRejectWord(loweredTitle string) bool {
	words := wordBoundary.FindAllString(loweredTitle, -1)
	for _, w := range words {
		for _, reject := range titleRejectWords {
			if w == reject {
				return true
			}
		}
	}
	return false
}
