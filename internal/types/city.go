package types

// City is the assembled result of a city-detail lookup. Instances are built
// per request and never persisted.
type City struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Landmarks   []Landmark `json:"landmarks,omitempty"`
}

// Landmark is a single point of interest belonging to a City. It never
// carries a relevance score or source tag; those exist only on SearchResult.
type Landmark struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category,omitempty"`
}
