package city

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emirduygulu/wanderland-api/app/observability/metrics"
	"github.com/emirduygulu/wanderland-api/internal/provider/foursquare"
	"github.com/emirduygulu/wanderland-api/internal/provider/opentripmap"
	"github.com/emirduygulu/wanderland-api/internal/types"
)

// MockPrimary is a mock implementation of PrimaryPOIProvider.
type MockPrimary struct {
	mock.Mock
}

func (m *MockPrimary) PopularLandmarks(ctx context.Context, lat, lng float64, radiusMeters int, cityKey string) ([]foursquare.Place, error) {
	args := m.Called(ctx, lat, lng, radiusMeters, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]foursquare.Place), args.Error(1)
}

// MockSecondary is a mock implementation of SecondaryPOIProvider.
type MockSecondary struct {
	mock.Mock
}

func (m *MockSecondary) Geocode(ctx context.Context, cityName string) (types.GeoPoint, error) {
	args := m.Called(ctx, cityName)
	return args.Get(0).(types.GeoPoint), args.Error(1)
}

func (m *MockSecondary) LandmarksAround(ctx context.Context, lat, lng float64, radiusMeters int) ([]opentripmap.Place, error) {
	args := m.Called(ctx, lat, lng, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]opentripmap.Place), args.Error(1)
}

// MockImages is a mock implementation of ImageProvider.
type MockImages struct {
	mock.Mock
}

func (m *MockImages) FindImage(ctx context.Context, place, city string) (string, error) {
	args := m.Called(ctx, place, city)
	return args.String(0), args.Error(1)
}

func newTestService(primary *MockPrimary, secondary *MockSecondary, images *MockImages) *ServiceImpl {
	metrics.InitAppMetrics()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewServiceImpl(primary, secondary, images, 10, logger)
}

func TestFetchCityLandmarksCuratedBypass(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	images.On("FindImage", mock.Anything, mock.Anything, mock.Anything).Return("https://images.example.com/x.jpg", nil)

	landmarks, err := svc.FetchCityLandmarks(context.Background(), "istanbul")

	require.NoError(t, err)
	require.NotEmpty(t, landmarks)
	assert.LessOrEqual(t, len(landmarks), 10)
	for _, lm := range landmarks {
		assert.NotEmpty(t, lm.Name)
		assert.NotEmpty(t, lm.Description)
		assert.NotEmpty(t, lm.ID)
	}
	// Curated cities never touch the POI providers.
	secondary.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	primary.AssertNotCalled(t, "PopularLandmarks", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchCityLandmarksPrimaryProvider(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	point := types.GeoPoint{Latitude: 52.52, Longitude: 13.405}
	secondary.On("Geocode", mock.Anything, "Berlin").Return(point, nil)
	primary.On("PopularLandmarks", mock.Anything, point.Latitude, point.Longitude, landmarkSearchRadiusMeters, "").
		Return([]foursquare.Place{
			{Name: "Brandenburg Gate", Category: "Monument", Rating: 4.7, Popularity: 95},
			{Name: "Museum Island", Category: "Museum", Rating: 4.5, Popularity: 90},
		}, nil)
	images.On("FindImage", mock.Anything, mock.Anything, "Berlin").Return("https://images.example.com/x.jpg", nil)

	landmarks, err := svc.FetchCityLandmarks(context.Background(), "Berlin")

	require.NoError(t, err)
	require.Len(t, landmarks, 2)
	assert.Equal(t, "Brandenburg Gate", landmarks[0].Name)
	assert.Equal(t, "monument", landmarks[0].Category)
	assert.NotEmpty(t, landmarks[0].Description)
	secondary.AssertNotCalled(t, "LandmarksAround", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchCityLandmarksFallsBackToSecondary(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	point := types.GeoPoint{Latitude: 52.52, Longitude: 13.405}
	secondary.On("Geocode", mock.Anything, "Berlin").Return(point, nil)
	primary.On("PopularLandmarks", mock.Anything, point.Latitude, point.Longitude, landmarkSearchRadiusMeters, "").
		Return([]foursquare.Place{}, nil)
	// A bare radius feature: no description, no image.
	secondary.On("LandmarksAround", mock.Anything, point.Latitude, point.Longitude, landmarkSearchRadiusMeters).
		Return([]opentripmap.Place{
			{XID: "W1", Name: "Siegessäule", Kinds: []string{"monuments"}, Rate: 3},
		}, nil)
	images.On("FindImage", mock.Anything, "Siegessäule", "Berlin").
		Return("https://images.example.com/column.jpg", nil)

	landmarks, err := svc.FetchCityLandmarks(context.Background(), "Berlin")

	require.NoError(t, err)
	require.Len(t, landmarks, 1)
	assert.Equal(t, "Siegessäule", landmarks[0].Name)
	assert.Equal(t, "monuments", landmarks[0].Category)
	// Fallback landmarks get the same enrichment as every other path.
	assert.NotEmpty(t, landmarks[0].Description)
	assert.Equal(t, "https://images.example.com/column.jpg", landmarks[0].ImageURL)
	secondary.AssertCalled(t, "LandmarksAround", mock.Anything, point.Latitude, point.Longitude, landmarkSearchRadiusMeters)
}

func TestFetchCityLandmarksNeverNil(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	point := types.GeoPoint{Latitude: 52.52, Longitude: 13.405}
	secondary.On("Geocode", mock.Anything, "Berlin").Return(point, nil)
	primary.On("PopularLandmarks", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("provider down"))
	secondary.On("LandmarksAround", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("provider down"))

	landmarks, err := svc.FetchCityLandmarks(context.Background(), "Berlin")

	require.NoError(t, err)
	assert.NotNil(t, landmarks)
	assert.Empty(t, landmarks)
}

func TestFetchCityLandmarksGeocodeFailure(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	secondary.On("Geocode", mock.Anything, "Atlantis").Return(types.GeoPoint{}, types.ErrNotFound)

	landmarks, err := svc.FetchCityLandmarks(context.Background(), "Atlantis")

	require.NoError(t, err)
	assert.NotNil(t, landmarks)
	assert.Empty(t, landmarks)
	primary.AssertNotCalled(t, "PopularLandmarks", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchCityDetailsDegradesToMinimalCity(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	images.On("FindImage", mock.Anything, mock.Anything, mock.Anything).Return("", types.ErrNotFound)
	secondary.On("Geocode", mock.Anything, mock.Anything).Return(types.GeoPoint{}, types.ErrProviderUnavailable)

	city, err := svc.FetchCityDetails(context.Background(), "", "Atlantis")

	require.NoError(t, err)
	require.NotNil(t, city)
	assert.Equal(t, "Atlantis", city.Name)
	assert.NotEmpty(t, city.ID)
	assert.NotEmpty(t, city.Description)
	assert.NotNil(t, city.Landmarks)
}

func TestFetchCityDetailsResolvesAliasAndID(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	images.On("FindImage", mock.Anything, mock.Anything, mock.Anything).Return("https://images.example.com/ist.jpg", nil)

	city, err := svc.FetchCityDetails(context.Background(), "city-istanbul", "")

	require.NoError(t, err)
	assert.Equal(t, "city-istanbul", city.ID)
	assert.Equal(t, "Istanbul", city.Name)
	assert.NotEmpty(t, city.Landmarks)
	assert.Equal(t, "https://images.example.com/ist.jpg", city.ImageURL)
}

func TestDefaultCities(t *testing.T) {
	primary := new(MockPrimary)
	secondary := new(MockSecondary)
	images := new(MockImages)
	svc := newTestService(primary, secondary, images)

	images.On("FindImage", mock.Anything, mock.Anything, "").Return("https://images.example.com/c.jpg", nil)

	cities, err := svc.DefaultCities(context.Background())

	require.NoError(t, err)
	require.Len(t, cities, 10)
	assert.Equal(t, "Istanbul", cities[0].Name)
	for _, c := range cities {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Description)
		assert.Equal(t, "https://images.example.com/c.jpg", c.ImageURL)
	}
}
