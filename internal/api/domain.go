package api

import "github.com/emirduygulu/wanderland-api/internal/types"

// SearchResponse is the envelope returned by the place-search endpoint.
type SearchResponse struct {
	Query   string               `json:"query"`
	Results []types.SearchResult `json:"results"`
}

// HistoryResponse is the envelope returned by the search-history endpoint.
type HistoryResponse struct {
	Entries []string `json:"entries"`
}

// CitiesResponse is the envelope returned by the default-cities endpoint.
type CitiesResponse struct {
	Cities []types.City `json:"cities"`
}

// LandmarksResponse is the envelope returned by the city-landmarks endpoint.
type LandmarksResponse struct {
	City      string           `json:"city"`
	Landmarks []types.Landmark `json:"landmarks"`
}
