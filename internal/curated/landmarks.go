package curated

// Entry is one hand-authored landmark belonging to a curated city list.
// Description and ImageURL may be empty; the city orchestrator enriches them.
type Entry struct {
	Name        string
	Category    string
	Description string
	ImageURL    string
}

// cityLandmarks maps canonical city keys to their curated landmark lists.
// Cities present here bypass provider queries entirely.
var cityLandmarks = map[string][]Entry{
	"Istanbul": {
		{Name: "Ayasofya", Category: "museum"},
		{Name: "Galata Kulesi", Category: "tower"},
		{Name: "Topkapi Sarayi", Category: "palace"},
		{Name: "Sultanahmet Camii", Category: "mosque"},
		{Name: "Kapali Carsi", Category: "market"},
		{Name: "Kiz Kulesi", Category: "tower"},
		{Name: "Dolmabahce Sarayi", Category: "palace"},
		{Name: "Yerebatan Sarnici", Category: "ancient"},
	},
	"Ankara": {
		{Name: "Anitkabir", Category: "monument"},
		{Name: "Ankara Kalesi", Category: "castle"},
		{Name: "Anadolu Medeniyetleri Muzesi", Category: "museum"},
	},
	"Izmir": {
		{Name: "Saat Kulesi", Category: "tower"},
		{Name: "Kemeralti Carsisi", Category: "market"},
		{Name: "Efes Antik Kenti", Category: "ancient"},
	},
	"Antalya": {
		{Name: "Kaleici", Category: "ancient"},
		{Name: "Duden Selalesi", Category: "waterfall"},
		{Name: "Aspendos Antik Tiyatrosu", Category: "ancient"},
	},
	"Kapadokya": {
		{Name: "Goreme Acik Hava Muzesi", Category: "museum"},
		{Name: "Peri Bacalari", Category: "ancient"},
		{Name: "Derinkuyu Yeralti Sehri", Category: "ancient"},
		{Name: "Uchisar Kalesi", Category: "castle"},
	},
	"New York City": {
		{Name: "Statue of Liberty", Category: "monument"},
		{Name: "Empire State Building", Category: "tower"},
		{Name: "Central Park", Category: "park"},
		{Name: "Times Square", Category: "place"},
		{Name: "Brooklyn Bridge", Category: "bridge"},
	},
	"Londra": {
		{Name: "Big Ben", Category: "tower"},
		{Name: "Tower Bridge", Category: "bridge"},
		{Name: "British Museum", Category: "museum"},
		{Name: "London Eye", Category: "tower"},
		{Name: "Buckingham Palace", Category: "palace"},
	},
	"Paris": {
		{Name: "Eiffel Tower", Category: "tower"},
		{Name: "Louvre Museum", Category: "museum"},
		{Name: "Notre-Dame", Category: "church"},
		{Name: "Arc de Triomphe", Category: "monument"},
	},
	"Roma": {
		{Name: "Colosseum", Category: "ancient"},
		{Name: "Trevi Fountain", Category: "monument"},
		{Name: "Pantheon", Category: "ancient"},
		{Name: "Roman Forum", Category: "ancient"},
	},
	"Barselona": {
		{Name: "Sagrada Familia", Category: "church"},
		{Name: "Park Guell", Category: "park"},
		{Name: "Casa Batllo", Category: "place"},
	},
}

// Landmarks returns the curated landmark list for a canonical city key, or
// nil when the city has none.
func Landmarks(cityKey string) []Entry {
	return cityLandmarks[cityKey]
}

// HasLandmarks reports whether the canonical city key carries a curated list.
func HasLandmarks(cityKey string) bool {
	return len(cityLandmarks[cityKey]) > 0
}
