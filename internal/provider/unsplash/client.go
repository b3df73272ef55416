package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emirduygulu/wanderland-api/internal/types"
)

// queryOverrides maps well-known landmark names to search queries that return
// an accurate photo. The raw Turkish names pull in unrelated results without it.
var queryOverrides = map[string]string{
	"ayasofya":        "hagia sophia istanbul",
	"galata kulesi":   "galata tower istanbul",
	"kiz kulesi":      "maiden's tower istanbul bosphorus",
	"topkapi sarayi":  "topkapi palace istanbul",
	"sultanahmet":     "blue mosque istanbul",
	"kapali carsi":    "grand bazaar istanbul",
	"dolmabahce":      "dolmabahce palace istanbul",
	"anitkabir":       "anitkabir ankara mausoleum",
	"peri bacalari":   "cappadocia fairy chimneys",
	"pamukkale":       "pamukkale travertine pools",
	"efes":            "ephesus ancient city",
	"eiffel":          "eiffel tower paris",
	"colosseum":       "colosseum rome",
	"big ben":         "big ben london westminster",
	"sagrada familia": "sagrada familia barcelona",
}

type searchResponse struct {
	Results []photo `json:"results"`
}

type photo struct {
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Full    string `json:"full"`
		Regular string `json:"regular"`
		Small   string `json:"small"`
	} `json:"urls"`
}

// Client wraps the Unsplash photo search API.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

func NewClient(baseURL, accessKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		logger:    logger,
		baseURL:   baseURL,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FindImage resolves an image URL for a place, optionally disambiguated by a
// city name. It walks successively broader queries and returns
// types.ErrNotFound only after every attempt is exhausted. Results are not
// cached; every call re-fetches.
func (c *Client) FindImage(ctx context.Context, place, city string) (string, error) {
	queries := buildQueries(place, city)

	for _, q := range queries {
		imageURL, err := c.searchPhoto(ctx, q)
		if err != nil {
			c.logger.DebugContext(ctx, "unsplash query failed, trying broader query",
				slog.String("query", q), slog.Any("error", err))
			continue
		}
		if imageURL != "" {
			return imageURL, nil
		}
	}
	return "", types.ErrNotFound
}

// buildQueries returns the fallback query ladder: override or place+city first,
// then the place alone, then a generic attraction query.
func buildQueries(place, city string) []string {
	var queries []string

	key := strings.ToLower(strings.TrimSpace(place))
	if override, ok := queryOverrides[key]; ok {
		queries = append(queries, override)
	} else if city != "" {
		queries = append(queries, place+" "+city)
	}
	queries = append(queries, place)
	queries = append(queries, "city tourist attraction")
	return queries
}

// searchPhoto issues a single search request. A result whose description
// textually contains the query wins; otherwise the first result does.
func (c *Client) searchPhoto(ctx context.Context, query string) (string, error) {
	u, err := url.Parse(c.baseURL + "/search/photos")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("query", query)
	q.Set("per_page", "5")
	q.Set("orientation", "landscape")
	q.Set("content_filter", "high")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", types.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unsplash returned status %d", types.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to parse unsplash response: %w", err)
	}
	if len(payload.Results) == 0 {
		return "", nil
	}

	lowered := strings.ToLower(query)
	for _, p := range payload.Results {
		desc := strings.ToLower(p.Description + " " + p.AltDescription)
		if strings.Contains(desc, lowered) {
			return p.URLs.Regular, nil
		}
	}
	return payload.Results[0].URLs.Regular, nil
}
