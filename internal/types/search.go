package types

// ResultType classifies a SearchResult.
type ResultType string

const (
	ResultTypeLandmark ResultType = "landmark"
	ResultTypeMonument ResultType = "monument"
	ResultTypePlace    ResultType = "place"
	ResultTypeCity     ResultType = "city"
)

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResultLocation describes where a result is. At most one of City/Country,
// Address, or Coordinates is meaningfully populated.
type ResultLocation struct {
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Address     string    `json:"address,omitempty"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

// ExtraInfo carries provenance details for a SearchResult.
type ExtraInfo struct {
	SourceURL string `json:"source_url,omitempty"`
	Language  string `json:"language,omitempty"`
}

// SearchResult is one resolved place. Rating stays within [0,5];
// Popularity and Score within [0,100].
type SearchResult struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Category    string         `json:"category"`
	Location    ResultLocation `json:"location"`
	Rating      float64        `json:"rating,omitempty"`
	Popularity  int            `json:"popularity,omitempty"`
	Type        ResultType     `json:"type"`
	Source      string         `json:"source"`
	Score       int            `json:"score,omitempty"`
	ExtraInfo   *ExtraInfo     `json:"extra_info,omitempty"`
}

// SearchFilters is applied as a post-filter over already-fetched results,
// never pushed down into provider queries.
type SearchFilters struct {
	Categories []string     `json:"categories,omitempty"`
	MinRating  float64      `json:"min_rating,omitempty"`
	Types      []ResultType `json:"types,omitempty"`
}

// AllowsType reports whether t passes the filter's type allow-list.
// An empty allow-list allows everything.
func (f SearchFilters) AllowsType(t ResultType) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, allowed := range f.Types {
		if allowed == t {
			return true
		}
	}
	return false
}
