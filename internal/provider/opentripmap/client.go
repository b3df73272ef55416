package opentripmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/emirduygulu/wanderland-api/internal/curated"
	"github.com/emirduygulu/wanderland-api/internal/types"
)

// interestingKinds is the fixed category set queried on radius searches.
const interestingKinds = "interesting_places,historic,cultural"

// ImageResolver supplies a fallback image when a place payload lacks one.
// Satisfied by the unsplash client.
type ImageResolver interface {
	FindImage(ctx context.Context, place, city string) (string, error)
}

// Place is one point of interest from the OpenTripMap API, enriched so that
// Description and ImageURL are never empty after a successful detail fetch.
type Place struct {
	XID         string
	Name        string
	Kinds       []string
	Rate        int
	Latitude    float64
	Longitude   float64
	Description string
	ImageURL    string
}

type geonamePayload struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type radiusFeature struct {
	XID   string `json:"xid"`
	Name  string `json:"name"`
	Kinds string `json:"kinds"`
	Rate  int    `json:"rate"`
	Point struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"point"`
}

type detailPayload struct {
	XID   string `json:"xid"`
	Name  string `json:"name"`
	Kinds string `json:"kinds"`
	Rate  int    `json:"rate"`
	Point struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"point"`
	Preview struct {
		Source string `json:"source"`
	} `json:"preview"`
	WikipediaExtracts struct {
		Text string `json:"text"`
	} `json:"wikipedia_extracts"`
	Info struct {
		Descr string `json:"descr"`
	} `json:"info"`
}

// Options carries the tunables the client needs beyond connection details.
type Options struct {
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	ProximityKm      float64
}

// Client wraps the OpenTripMap API, the pipeline's secondary
// points-of-interest provider.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
	images     ImageResolver
	opts       Options

	// geoCache holds geocoding results; place data itself is never cached.
	geoCache *cache.Cache
}

func NewClient(baseURL, apiKey string, timeout time.Duration, images ImageResolver, opts Options, logger *slog.Logger) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		images:   images,
		opts:     opts,
		geoCache: cache.New(12*time.Hour, 1*time.Hour),
	}
}

// Geocode resolves a city name to coordinates. The static coordinate table is
// consulted first, then the provider's geoname endpoint, with successful
// provider lookups cached.
func (c *Client) Geocode(ctx context.Context, cityName string) (types.GeoPoint, error) {
	if key := curated.NormalizeCityName(cityName); key != "" {
		if coord, ok := curated.CityCoordinates(key); ok {
			return types.GeoPoint{Latitude: coord.Latitude, Longitude: coord.Longitude}, nil
		}
	}

	cacheKey := "geocode:" + strings.ToLower(strings.TrimSpace(cityName))
	if cached, found := c.geoCache.Get(cacheKey); found {
		return cached.(types.GeoPoint), nil
	}

	params := url.Values{}
	params.Set("name", cityName)
	params.Set("apikey", c.apiKey)

	var payload geonamePayload
	status, err := c.getJSON(ctx, c.baseURL+"/places/geoname?"+params.Encode(), &payload)
	if err != nil {
		return types.GeoPoint{}, err
	}
	if status != http.StatusOK || (payload.Lat == 0 && payload.Lon == 0) {
		return types.GeoPoint{}, fmt.Errorf("%w: no geocode result for %q", types.ErrNotFound, cityName)
	}

	point := types.GeoPoint{Latitude: payload.Lat, Longitude: payload.Lon}
	c.geoCache.Set(cacheKey, point, cache.DefaultExpiration)
	return point, nil
}

// ReverseGeocode maps coordinates back to a canonical city key using the
// static city center table. Returns "" when no known center is within the
// configured proximity.
func (c *Client) ReverseGeocode(lat, lng float64) string {
	return curated.NearestCity(lat, lng, c.opts.ProximityKm)
}

// LandmarksAround finds landmarks near a coordinate. Cities with a curated
// landmark list (either the reverse-geocoded city itself or any known city
// center within the proximity radius) bypass the provider entirely; the
// provider is only queried for everything else, with the same two-tier
// keyword re-rank the primary provider applies. Radius features carry no
// description or image, so every kept place is run through PlaceDetails,
// falling back to local synthesis when the detail fetch fails.
func (c *Client) LandmarksAround(ctx context.Context, lat, lng float64, radiusMeters int) ([]Place, error) {
	if cityKey := c.ReverseGeocode(lat, lng); cityKey != "" && curated.HasLandmarks(cityKey) {
		return c.curatedPlaces(ctx, cityKey), nil
	}

	params := url.Values{}
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lng))
	params.Set("kinds", interestingKinds)
	params.Set("rate", "2")
	params.Set("format", "json")
	params.Set("limit", "30")
	params.Set("apikey", c.apiKey)

	var features []radiusFeature
	status, err := c.getJSON(ctx, c.baseURL+"/places/radius?"+params.Encode(), &features)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: opentripmap returned status %d", types.ErrProviderUnavailable, status)
	}

	places := make([]Place, 0, len(features))
	for _, f := range features {
		if f.Name == "" {
			continue
		}
		places = append(places, Place{
			XID:       f.XID,
			Name:      f.Name,
			Kinds:     splitKinds(f.Kinds),
			Rate:      f.Rate,
			Latitude:  f.Point.Lat,
			Longitude: f.Point.Lon,
		})
	}
	ranked := rerankByKeyword(places, "")
	enriched := make([]Place, 0, len(ranked))
	for _, p := range ranked {
		if p.XID == "" {
			c.fillDefaults(ctx, &p)
			enriched = append(enriched, p)
			continue
		}
		detail, err := c.PlaceDetails(ctx, p.XID)
		if err != nil {
			c.logger.DebugContext(ctx, "opentripmap detail enrichment failed",
				slog.String("xid", p.XID), slog.Any("error", err))
			c.fillDefaults(ctx, &p)
			enriched = append(enriched, p)
			continue
		}
		if detail.Name == "" {
			detail.Name = p.Name
		}
		enriched = append(enriched, *detail)
	}
	return enriched, nil
}

// PlaceDetails fetches one place by xid. On HTTP 429 it retries with
// exponential backoff (base delay before the first retry, doubled for every
// retry after) up to the configured attempt cap; the attempt counter is local
// to this call, so concurrent or subsequent calls never inherit another
// call's backoff state. Any other non-success status returns nil without
// retrying.
func (c *Client) PlaceDetails(ctx context.Context, xid string) (*Place, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	target := c.baseURL + "/places/xid/" + url.PathEscape(xid) + "?" + params.Encode()

	for attempt := 0; attempt < c.opts.RetryMaxAttempts; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(c.opts.RetryBaseDelay, attempt)
			c.logger.DebugContext(ctx, "opentripmap rate limited, backing off",
				slog.String("xid", xid),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var payload detailPayload
		status, err := c.getJSON(ctx, target, &payload)
		if err != nil {
			return nil, err
		}
		switch {
		case status == http.StatusOK:
			return c.enrich(ctx, payload), nil
		case status == http.StatusTooManyRequests:
			continue
		default:
			c.logger.WarnContext(ctx, "opentripmap detail fetch failed",
				slog.String("xid", xid), slog.Int("status", status))
			return nil, fmt.Errorf("%w: opentripmap returned status %d", types.ErrProviderUnavailable, status)
		}
	}
	return nil, fmt.Errorf("%w: opentripmap detail fetch for %q", types.ErrRateLimited, xid)
}

// backoffDelay is the wait before retry number attempt: base for the first
// retry, doubled for each one after.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<uint(attempt-1))
}

// enrich fills in a description and image when the provider supplied none.
func (c *Client) enrich(ctx context.Context, payload detailPayload) *Place {
	place := &Place{
		XID:         payload.XID,
		Name:        payload.Name,
		Kinds:       splitKinds(payload.Kinds),
		Rate:        payload.Rate,
		Latitude:    payload.Point.Lat,
		Longitude:   payload.Point.Lon,
		Description: payload.WikipediaExtracts.Text,
		ImageURL:    payload.Preview.Source,
	}
	if place.Description == "" {
		place.Description = payload.Info.Descr
	}
	c.fillDefaults(ctx, place)
	return place
}

// fillDefaults backfills the description and image a provider left empty,
// keeping the detail path's non-empty guarantees.
func (c *Client) fillDefaults(ctx context.Context, place *Place) {
	if place.Description == "" {
		place.Description = synthesizeDescription(place)
	}
	if place.ImageURL == "" && c.images != nil {
		city := c.ReverseGeocode(place.Latitude, place.Longitude)
		if imageURL, err := c.images.FindImage(ctx, place.Name, city); err == nil {
			place.ImageURL = imageURL
		}
	}
}

// synthesizeDescription builds a templated description out of the name,
// category tags and rating when the provider has no text at all.
func synthesizeDescription(p *Place) string {
	kind := "gezilecek yer"
	if len(p.Kinds) > 0 {
		kind = strings.ReplaceAll(p.Kinds[0], "_", " ")
	}
	if p.Rate >= 3 {
		return fmt.Sprintf("%s, bolgenin one cikan %s noktalarindan biridir ve ziyaretciler tarafindan sik tercih edilir.", p.Name, kind)
	}
	return fmt.Sprintf("%s, %s kategorisinde kesfedilmeyi bekleyen bir duraktir.", p.Name, kind)
}

// curatedPlaces converts a curated landmark list to provider places so both
// paths hand the orchestrator the same shape.
func (c *Client) curatedPlaces(ctx context.Context, cityKey string) []Place {
	entries := curated.Landmarks(cityKey)
	coord, _ := curated.CityCoordinates(cityKey)
	places := make([]Place, 0, len(entries))
	for _, e := range entries {
		p := Place{
			Name:        e.Name,
			Kinds:       []string{e.Category},
			Rate:        3,
			Latitude:    coord.Latitude,
			Longitude:   coord.Longitude,
			Description: e.Description,
			ImageURL:    e.ImageURL,
		}
		if p.Description == "" {
			p.Description = curated.DescribeLandmark(e.Name, e.Category, cityKey)
		}
		if p.ImageURL == "" && c.images != nil {
			if imageURL, err := c.images.FindImage(ctx, e.Name, cityKey); err == nil {
				p.ImageURL = imageURL
			}
		}
		places = append(places, p)
	}
	return places
}

// rerankByKeyword keeps keyword-matching names sorted by rate, falling back
// to the full rate-sorted list when the filter matches nothing.
func rerankByKeyword(places []Place, cityKey string) []Place {
	sorted := make([]Place, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rate > sorted[j].Rate
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

func splitKinds(kinds string) []string {
	if kinds == "" {
		return nil
	}
	return strings.Split(kinds, ",")
}

// getJSON issues one GET and decodes the body when the status is 2xx. The
// status code is always returned so callers can branch on 429 and friends.
func (c *Client) getJSON(ctx context.Context, target string, dst any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", types.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse opentripmap response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
