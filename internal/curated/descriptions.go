package curated

import (
	"fmt"
	"strings"
)

// landmarkDescriptions maps canonical city keys to keyword-indexed canned
// description text, used when neither the curated entry nor a provider
// supplies a usable description. Keys are lowercase substrings matched
// against the landmark name.
var landmarkDescriptions = map[string]map[string]string{
	"Istanbul": {
		"ayasofya":    "Bizans doneminden kalma, hem kilise hem cami olarak kullanilmis dunyaca unlu yapi. Bugun ziyarete acik olan yapi Istanbul'un en cok gezilen noktasidir.",
		"galata":      "Istanbul'un en taninmis kulelerinden biri. Ceneviz doneminden kalan kule, sehrin panoramik manzarasini sunar.",
		"topkapi":     "Osmanli padisahlarinin yuzyillar boyunca yasadigi saray kompleksi. Hazine dairesi ve kutsal emanetleriyle unludur.",
		"sultanahmet": "Alti minaresiyle taninan, mavi cinileriyle unlu tarihi cami. Sultanahmet Meydani'nin simgesidir.",
		"kapali":      "Dunyanin en eski ve en buyuk kapali carsilarindan biri. Binlerce dukkaniyla essiz bir alisveris deneyimi sunar.",
		"kiz":         "Bogazin girisinde kucuk bir adacik uzerinde yer alan efsanelere konu olmus kule.",
		"dolmabahce":  "Osmanli'nin son doneminde insa edilen, Bogaz kiyisindaki gorkemli saray.",
		"yerebatan":   "Bizans doneminden kalma yeralti su sarnici. Sutunlari ve Medusa basi kabartmalariyla unludur.",
	},
	"Ankara": {
		"anitkabir": "Mustafa Kemal Ataturk'un anit mezari. Turkiye'nin en cok ziyaret edilen anitlarindan biridir.",
		"kale":      "Ankara'nin en eski yerlesim bolgesinde yer alan tarihi kale. Sehrin panoramik manzarasini sunar.",
	},
	"Kapadokya": {
		"goreme": "Kayalara oyulmus kiliseleri ve freskleriyle unlu acik hava muzesi. UNESCO Dunya Mirasi listesindedir.",
		"peri":   "Volkanik tuflarin asinmasiyla olusan essiz kaya olusumlari. Balon turlarinin vazgecilmez manzarasidir.",
	},
}

// categoryDescriptions provides a fallback sentence template per category
// keyword when no city-specific canned text exists.
var categoryDescriptions = map[string]string{
	"museum":    "%s, zengin koleksiyonuyla %s sehrinin onde gelen muzelerinden biridir.",
	"mosque":    "%s, %s sehrinin tarihi dokusunu yansitan onemli bir camidir.",
	"palace":    "%s, %s sehrinde ziyaret edilebilecek gorkemli bir saraydir.",
	"tower":     "%s, %s silueti icinde one cikan tarihi bir kuledir.",
	"bridge":    "%s, %s sehrinin simgelerinden biri olan koprudur.",
	"castle":    "%s, %s sehrine hakim bir noktada yer alan tarihi kaledir.",
	"market":    "%s, %s sehrinin geleneksel alisveris kulturunu yasatan carsidir.",
	"park":      "%s, %s sehrinin en sevilen yesil alanlarindan biridir.",
	"ancient":   "%s, %s yakinlarinda yer alan onemli bir antik alandir.",
	"monument":  "%s, %s sehrinin taninmis anitlarindan biridir.",
	"church":    "%s, %s sehrinde yer alan tarihi bir kilisedir.",
	"waterfall": "%s, %s yakinlarindaki dogal guzellikleriyle unlu selaledir.",
}

// DescribeLandmark returns the best canned description for a landmark: the
// city's keyword table first, then the category template, then a generic
// sentence. Never returns "".
func DescribeLandmark(name, category, cityKey string) string {
	lowered := strings.ToLower(name)
	if byKeyword, ok := landmarkDescriptions[cityKey]; ok {
		for kw, text := range byKeyword {
			if strings.Contains(lowered, kw) {
				return text
			}
		}
	}
	if tmpl, ok := categoryDescriptions[category]; ok {
		return fmt.Sprintf(tmpl, name, cityKey)
	}
	return fmt.Sprintf("%s, %s sehrinde gezilebilecek populer noktalardan biridir.", name, cityKey)
}

// cityDescriptions is the canned blurb per canonical city key used when no
// provider description is available.
var cityDescriptions = map[string]string{
	"Istanbul":      "Iki kitayi birbirine baglayan, tarihi ve kulturel zenginligiyle dunyanin en etkileyici sehirlerinden biri.",
	"Ankara":        "Turkiye'nin baskenti; muzeleri, anitlari ve tarihi kalesiyle taninir.",
	"Izmir":         "Ege'nin incisi; kordon boyu, tarihi carsilari ve antik kentleriyle unludur.",
	"Antalya":       "Akdeniz kiyisinda antik kentleri ve plajlariyla unlu tatil sehri.",
	"Kapadokya":     "Peri bacalari, yeralti sehirleri ve balon turlariyla dunyaca unlu bolge.",
	"New York City": "Gokdelenleri, muzeleri ve parklariyla dunyanin en hareketli sehirlerinden biri.",
	"Londra":        "Tarihi yapilari, muzeleri ve parklariyla Avrupa'nin en cok ziyaret edilen baskenti.",
	"Paris":         "Sanat, mimari ve gastronomisiyle unlu isiklar sehri.",
	"Roma":          "Antik kalintilari ve meydanlariyla acik hava muzesini andiran ebedi sehir.",
	"Barselona":     "Gaudi'nin eserleri ve Akdeniz atmosferiyle taninan canli sehir.",
}

// DescribeCity returns the canned city blurb, or a generic sentence for
// unknown cities.
func DescribeCity(cityKey string) string {
	if text, ok := cityDescriptions[cityKey]; ok {
		return text
	}
	return fmt.Sprintf("%s, kesfedilmeyi bekleyen gezilecek noktalara sahip bir sehirdir.", cityKey)
}
