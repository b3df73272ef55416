package wikipedia

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

// turkishToEnglish maps well-known Turkish landmark names to their English
// article titles, used to generate lookup alternates for the English
// endpoint.
var turkishToEnglish = map[string]string{
	"ayasofya":          "Hagia Sophia",
	"galata kulesi":     "Galata Tower",
	"kiz kulesi":        "Maiden's Tower (Istanbul)",
	"topkapi sarayi":    "Topkapi Palace",
	"sultanahmet camii": "Blue Mosque, Istanbul",
	"kapali carsi":      "Grand Bazaar, Istanbul",
	"dolmabahce sarayi": "Dolmabahce Palace",
	"yerebatan sarnici": "Basilica Cistern",
	"anitkabir":         "Anitkabir",
	"peri bacalari":     "Fairy chimney",
	"pamukkale":         "Pamukkale",
	"efes":              "Ephesus",
	"kiz kalesi":        "Kizkalesi",
}

// Summary is a resolved encyclopedia page summary. Extract is already
// truncated to the configured character cap.
type Summary struct {
	Title       string
	Extract     string
	ImageURL    string
	SourceURL   string
	Coordinates *types.GeoPoint
	Language    string
}

type summaryPayload struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
	Lang    string `json:"lang"`
	// ContentURLs carries the canonical page link.
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
	Coordinates *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
}

// Client wraps the Wikipedia REST summary endpoints, Turkish first with an
// English fallback.
type Client struct {
	logger          *slog.Logger
	turkishBaseURL  string
	englishBaseURL  string
	extractMaxChars int
	httpClient      *http.Client
}

func NewClient(turkishBaseURL, englishBaseURL string, extractMaxChars int, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		logger:          logger,
		turkishBaseURL:  turkishBaseURL,
		englishBaseURL:  englishBaseURL,
		extractMaxChars: extractMaxChars,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type lookupTarget struct {
	baseURL string
	lang    string
}

// Lookup resolves a title to a page summary. Every alternate of the title is
// tried against the Turkish endpoint first, then the English one; the first
// non-disambiguation hit with a non-empty extract wins. The optional city
// name generates an extra disambiguating alternate. Fails with
// types.ErrNotFound only after every alternate on both endpoints missed.
func (c *Client) Lookup(ctx context.Context, title, city string) (*Summary, error) {
	alternates := buildAlternates(title, city)
	targets := []lookupTarget{
		{c.turkishBaseURL, "tr"},
		{c.englishBaseURL, "en"},
	}

	for _, target := range targets {
		for _, alt := range alternates {
			summary, err := c.fetchSummary(ctx, target.baseURL, alt)
			if err != nil {
				c.logger.DebugContext(ctx, "wikipedia lookup miss",
					slog.String("title", alt),
					slog.String("lang", target.lang),
					slog.Any("error", err))
				continue
			}
			summary.Language = target.lang
			return summary, nil
		}
	}
	return nil, fmt.Errorf("%w: no summary for %q", types.ErrNotFound, title)
}

// buildAlternates generates the lookup candidates for a title: the title
// verbatim, the known English name if the title is a mapped Turkish landmark,
// an underscore-normalized variant, and a city-suffixed variant when a city
// is supplied.
func buildAlternates(title, city string) []string {
	trimmed := strings.TrimSpace(title)
	alternates := []string{trimmed}

	if english, ok := turkishToEnglish[strings.ToLower(trimmed)]; ok {
		alternates = append(alternates, english)
	}
	if underscored := strings.ReplaceAll(trimmed, " ", "_"); underscored != trimmed {
		alternates = append(alternates, underscored)
	}
	if city != "" {
		alternates = append(alternates, trimmed+", "+city)
	}
	return alternates
}

func (c *Client) fetchSummary(ctx context.Context, baseURL, title string) (*Summary, error) {
	target := baseURL + "/page/summary/" + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
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
		return nil, fmt.Errorf("%w: wikipedia returned status %d", types.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload summaryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse wikipedia response: %w", err)
	}
	if payload.Type == "disambiguation" || strings.TrimSpace(payload.Extract) == "" {
		return nil, types.ErrNotFound
	}

	summary := &Summary{
		Title:     payload.Title,
		Extract:   TruncateExtract(payload.Extract, c.extractMaxChars),
		SourceURL: payload.ContentURLs.Desktop.Page,
	}
	// Original image preferred over the thumbnail.
	if payload.OriginalImage.Source != "" {
		summary.ImageURL = payload.OriginalImage.Source
	} else {
		summary.ImageURL = payload.Thumbnail.Source
	}
	if payload.Coordinates != nil {
		summary.Coordinates = &types.GeoPoint{
			Latitude:  payload.Coordinates.Lat,
			Longitude: payload.Coordinates.Lon,
		}
	}
	return summary, nil
}

// TruncateExtract cuts text to at most maxChars characters, preferring the
// last sentence boundary before the cap and falling back to a hard cut with
// an ellipsis.
func TruncateExtract(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cut := string(runes[:maxChars])
	if idx := strings.LastIndex(cut, ". "); idx > 0 {
		return cut[:idx+1]
	}
	if strings.HasSuffix(cut, ".") {
		return cut
	}
	return strings.TrimRight(cut, " ") + "..."
}
