package city

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/emirduygulu/wanderland-api/app/observability/metrics"
	"github.com/emirduygulu/wanderland-api/internal/curated"
	"github.com/emirduygulu/wanderland-api/internal/provider/foursquare"
	"github.com/emirduygulu/wanderland-api/internal/provider/opentripmap"
	"github.com/emirduygulu/wanderland-api/internal/types"
)

// landmarkSearchRadiusMeters bounds the provider radius queries around a
// city center.
const landmarkSearchRadiusMeters = 15000

var _ Service = (*ServiceImpl)(nil)

// PrimaryPOIProvider is the first provider asked for a city's landmarks.
type PrimaryPOIProvider interface {
	PopularLandmarks(ctx context.Context, lat, lng float64, radiusMeters int, cityKey string) ([]foursquare.Place, error)
}

// SecondaryPOIProvider geocodes cities and serves as the landmark fallback.
type SecondaryPOIProvider interface {
	Geocode(ctx context.Context, cityName string) (types.GeoPoint, error)
	LandmarksAround(ctx context.Context, lat, lng float64, radiusMeters int) ([]opentripmap.Place, error)
}

// ImageProvider resolves a place name to an image URL.
type ImageProvider interface {
	FindImage(ctx context.Context, place, city string) (string, error)
}

// Service assembles City and Landmark domain objects for the presentation
// layer.
type Service interface {
	FetchCityDetails(ctx context.Context, id, name string) (*types.City, error)
	FetchCityLandmarks(ctx context.Context, cityName string) ([]types.Landmark, error)
	DefaultCities(ctx context.Context) ([]types.City, error)
}

type ServiceImpl struct {
	logger        *slog.Logger
	primary       PrimaryPOIProvider
	secondary     SecondaryPOIProvider
	images        ImageProvider
	landmarkLimit int
}

func NewServiceImpl(primary PrimaryPOIProvider, secondary SecondaryPOIProvider, images ImageProvider, landmarkLimit int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:        logger,
		primary:       primary,
		secondary:     secondary,
		images:        images,
		landmarkLimit: landmarkLimit,
	}
}

// FetchCityDetails resolves a city identifier and display name to a full City
// object. Any unexpected failure degrades to a minimal City with empty
// landmarks and a generic description; callers never see an error from this
// path.
func (s *ServiceImpl) FetchCityDetails(ctx context.Context, id, name string) (*types.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "FetchCityDetails", trace.WithAttributes(
		attribute.String("city.id", id),
		attribute.String("city.name", name),
	))
	defer span.End()

	metrics.Get().CityLookupsTotal.Add(ctx, 1)

	key := curated.CityKeyByID(id)
	if key == "" {
		key = curated.NormalizeCityName(name)
	}
	display := key
	if display == "" {
		display = strings.TrimSpace(name)
	}

	city := &types.City{
		ID:          cityID(id, display),
		Name:        display,
		Description: curated.DescribeCity(display),
		Landmarks:   []types.Landmark{},
	}

	if imageURL, err := s.images.FindImage(ctx, display, ""); err == nil {
		city.ImageURL = imageURL
	}

	landmarks, err := s.FetchCityLandmarks(ctx, display)
	if err != nil {
		// Degrade instead of propagating; the contract is a minimal City.
		s.logger.WarnContext(ctx, "landmark resolution failed, returning minimal city",
			slog.String("city", display), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "Minimal city returned")
		return city, nil
	}
	city.Landmarks = landmarks

	span.SetStatus(codes.Ok, "City details resolved")
	return city, nil
}

// FetchCityLandmarks resolves the landmark list for a city name. Curated
// cities are served straight from the curated tables; everything else is
// geocoded and run through the primary provider with the secondary as
// fallback. The result is never nil and never longer than the configured
// landmark cap.
func (s *ServiceImpl) FetchCityLandmarks(ctx context.Context, cityName string) ([]types.Landmark, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "FetchCityLandmarks", trace.WithAttributes(
		attribute.String("city.name", cityName),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "FetchCityLandmarks"), slog.String("city", cityName))

	key := curated.NormalizeCityName(cityName)
	if key != "" && curated.HasLandmarks(key) {
		landmarks := s.curatedLandmarks(ctx, key)
		span.SetStatus(codes.Ok, "Curated landmarks returned")
		return s.cap(landmarks), nil
	}

	point, err := s.secondary.Geocode(ctx, cityName)
	if err != nil {
		l.InfoContext(ctx, "geocoding failed, returning empty landmark list", slog.Any("error", err))
		span.SetStatus(codes.Ok, "City not geocodable")
		return []types.Landmark{}, nil
	}

	places, err := s.primary.PopularLandmarks(ctx, point.Latitude, point.Longitude, landmarkSearchRadiusMeters, key)
	if err != nil {
		l.WarnContext(ctx, "primary landmark provider failed", slog.Any("error", err))
		span.RecordError(err)
	}
	if len(places) > 0 {
		span.SetStatus(codes.Ok, "Primary provider landmarks returned")
		return s.cap(s.fromFoursquare(ctx, places, key, cityName)), nil
	}

	metrics.Get().ProviderFallbackTotal.Add(ctx, 1)
	fallback, err := s.secondary.LandmarksAround(ctx, point.Latitude, point.Longitude, landmarkSearchRadiusMeters)
	if err != nil {
		l.WarnContext(ctx, "secondary landmark provider failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "All providers exhausted")
		return []types.Landmark{}, nil
	}

	span.SetStatus(codes.Ok, "Fallback provider landmarks returned")
	return s.cap(s.fromOpenTripMap(ctx, fallback, key, cityName)), nil
}

// DefaultCities returns the curated discovery list shown before any search.
// Images are the only per-city provider work, so they are fetched in one
// parallel batch.
func (s *ServiceImpl) DefaultCities(ctx context.Context) ([]types.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "DefaultCities")
	defer span.End()

	keys := []string{
		"Istanbul", "Kapadokya", "Ankara", "Izmir", "Antalya",
		"Paris", "Londra", "Roma", "Barselona", "New York City",
	}

	cities := make([]types.City, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		cities[i] = types.City{
			ID:          cityID("", key),
			Name:        key,
			Description: curated.DescribeCity(key),
		}
		g.Go(func() error {
			imageURL, err := s.images.FindImage(gctx, key, "")
			if err != nil {
				// A missing image never fails the whole list.
				return nil
			}
			cities[i].ImageURL = imageURL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
	}

	span.SetStatus(codes.Ok, "Default cities returned")
	return cities, nil
}

func (s *ServiceImpl) curatedLandmarks(ctx context.Context, cityKey string) []types.Landmark {
	entries := curated.Landmarks(cityKey)
	landmarks := make([]types.Landmark, 0, len(entries))
	for _, e := range entries {
		lm := types.Landmark{
			ID:          landmarkID(cityKey, e.Name),
			Name:        e.Name,
			Description: e.Description,
			ImageURL:    e.ImageURL,
			Category:    e.Category,
		}
		if lm.Description == "" || len(lm.Description) < 40 {
			lm.Description = curated.DescribeLandmark(e.Name, e.Category, cityKey)
		}
		if lm.ImageURL == "" {
			if imageURL, err := s.images.FindImage(ctx, e.Name, cityKey); err == nil {
				lm.ImageURL = imageURL
			}
		}
		landmarks = append(landmarks, lm)
	}
	return landmarks
}

func (s *ServiceImpl) fromFoursquare(ctx context.Context, places []foursquare.Place, cityKey, cityName string) []types.Landmark {
	landmarks := make([]types.Landmark, 0, len(places))
	for _, p := range places {
		lm := types.Landmark{
			ID:       landmarkID(cityName, p.Name),
			Name:     p.Name,
			Category: strings.ToLower(p.Category),
		}
		lm.Description = curated.DescribeLandmark(p.Name, lm.Category, firstNonEmpty(cityKey, cityName))
		if imageURL, err := s.images.FindImage(ctx, p.Name, cityName); err == nil {
			lm.ImageURL = imageURL
		}
		landmarks = append(landmarks, lm)
	}
	return landmarks
}

func (s *ServiceImpl) fromOpenTripMap(ctx context.Context, places []opentripmap.Place, cityKey, cityName string) []types.Landmark {
	landmarks := make([]types.Landmark, 0, len(places))
	for _, p := range places {
		lm := types.Landmark{
			ID:          landmarkID("otm", p.Name),
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
		}
		if len(p.Kinds) > 0 {
			lm.Category = p.Kinds[0]
		}
		if lm.Description == "" {
			lm.Description = curated.DescribeLandmark(p.Name, lm.Category, firstNonEmpty(cityKey, cityName))
		}
		if lm.ImageURL == "" {
			if imageURL, err := s.images.FindImage(ctx, p.Name, cityName); err == nil {
				lm.ImageURL = imageURL
			}
		}
		landmarks = append(landmarks, lm)
	}
	return landmarks
}

func (s *ServiceImpl) cap(landmarks []types.Landmark) []types.Landmark {
	if len(landmarks) > s.landmarkLimit {
		return landmarks[:s.landmarkLimit]
	}
	return landmarks
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func cityID(id, name string) string {
	if id != "" {
		return id
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("wanderland://city/"+normalized)).String()
}

func landmarkID(scope, name string) string {
	normalized := strings.ToLower(strings.TrimSpace(scope + "/" + name))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("wanderland://landmark/"+normalized)).String()
}
