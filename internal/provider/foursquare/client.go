package foursquare

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/emirduygulu/wanderland-api/internal/curated"
	"github.com/emirduygulu/wanderland-api/internal/types"
)

// tourismCategories is the fixed allow-list of Foursquare category codes the
// pipeline queries: landmarks/outdoors, museums, historic sites, monuments,
// places of worship and scenic lookouts.
const tourismCategories = "16000,10027,16007,16026,12106,16020"

// Place is one point of interest as returned by the Foursquare search API,
// flattened for the pipeline. Popularity is normalized to 0-100 and Rating
// to 0-5.
type Place struct {
	ID         string
	Name       string
	Category   string
	Address    string
	City       string
	Country    string
	Latitude   float64
	Longitude  float64
	Rating     float64
	Popularity int
}

type searchResponse struct {
	Results []placePayload `json:"results"`
}

type placePayload struct {
	FsqID      string  `json:"fsq_id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Popularity float64 `json:"popularity"`
	Categories []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
		Locality         string `json:"locality"`
		Country          string `json:"country"`
	} `json:"location"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
}

func (p placePayload) toPlace() Place {
	place := Place{
		ID:         p.FsqID,
		Name:       p.Name,
		Address:    p.Location.FormattedAddress,
		City:       p.Location.Locality,
		Country:    p.Location.Country,
		Latitude:   p.Geocodes.Main.Latitude,
		Longitude:  p.Geocodes.Main.Longitude,
		Rating:     p.Rating / 2, // Foursquare rates 0-10
		Popularity: int(p.Popularity * 100),
	}
	if len(p.Categories) > 0 {
		place.Category = p.Categories[0].Name
	}
	return place
}

// Client wraps the Foursquare Places API, the pipeline's primary
// points-of-interest provider.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchPlaces runs a text search around a coordinate, restricted to the
// tourism category allow-list and sorted by provider-side popularity.
func (c *Client) SearchPlaces(ctx context.Context, query string, lat, lng float64, radiusMeters int) ([]Place, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("categories", tourismCategories)
	params.Set("sort", "POPULARITY")
	params.Set("limit", "20")
	return c.search(ctx, params)
}

// PopularLandmarks fetches popular places around a coordinate and re-ranks
// them client-side: sort by popularity and rating descending, then keep only
// names matching the city's landmark keyword list. If the keyword filter
// leaves nothing, the full popularity-sorted list is returned instead, so a
// non-empty provider response never collapses to an empty result.
func (c *Client) PopularLandmarks(ctx context.Context, lat, lng float64, radiusMeters int, cityKey string) ([]Place, error) {
	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("categories", tourismCategories)
	params.Set("sort", "POPULARITY")
	params.Set("limit", "50")

	places, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}
	return RerankLandmarks(places, cityKey), nil
}

// RerankLandmarks applies the client-side two-tier re-rank described above.
func RerankLandmarks(places []Place, cityKey string) []Place {
	sorted := make([]Place, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Popularity != sorted[j].Popularity {
			return sorted[i].Popularity > sorted[j].Popularity
		}
		return sorted[i].Rating > sorted[j].Rating
	})

	filtered := make([]Place, 0, len(sorted))
	for _, p := range sorted {
		if curated.MatchesLandmarkKeyword(p.Name, cityKey) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return sorted
	}
	return filtered
}

// PlaceDetails fetches a single place by its Foursquare id.
func (c *Client) PlaceDetails(ctx context.Context, id string) (*Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, types.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: foursquare returned status %d", types.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload placePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse foursquare response: %w", err)
	}
	place := payload.toPlace()
	return &place, nil
}

func (c *Client) search(ctx context.Context, params url.Values) ([]Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: foursquare returned status %d", types.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse foursquare response: %w", err)
	}

	places := make([]Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		places = append(places, r.toPlace())
	}
	return places, nil
}
