package search

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emirduygulu/wanderland-api/app/observability/metrics"
	"github.com/emirduygulu/wanderland-api/internal/provider/wikipedia"
	"github.com/emirduygulu/wanderland-api/internal/types"
)

// MockEncyclopedia is a mock implementation of EncyclopediaProvider.
type MockEncyclopedia struct {
	mock.Mock
}

func (m *MockEncyclopedia) Lookup(ctx context.Context, title, city string) (*wikipedia.Summary, error) {
	args := m.Called(ctx, title, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wikipedia.Summary), args.Error(1)
}

// MockImages is a mock implementation of ImageProvider.
type MockImages struct {
	mock.Mock
}

func (m *MockImages) FindImage(ctx context.Context, place, city string) (string, error) {
	args := m.Called(ctx, place, city)
	return args.String(0), args.Error(1)
}

// MockHistory is a mock implementation of history.Service.
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Save(ctx context.Context, query string) {
	m.Called(ctx, query)
}

func (m *MockHistory) Get(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockHistory) Clear(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockHistory) Remove(ctx context.Context, query string) {
	m.Called(ctx, query)
}

func newTestService(encyclopedia *MockEncyclopedia, images *MockImages, hist *MockHistory) *ServiceImpl {
	metrics.InitAppMetrics()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewServiceImpl(encyclopedia, images, hist, Options{
		MinRelevanceScore: 25,
		DefaultImageURL:   "https://example.com/default.jpg",
	}, logger)
}

func TestSearchPlacesShortQueryGuard(t *testing.T) {
	encyclopedia := new(MockEncyclopedia)
	images := new(MockImages)
	hist := new(MockHistory)
	svc := newTestService(encyclopedia, images, hist)

	results, err := svc.SearchPlaces(context.Background(), "a", types.SearchFilters{})

	require.NoError(t, err)
	assert.Empty(t, results)
	// No history write and no provider call for a one-character query.
	encyclopedia.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
	hist.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSearchPlacesNotFoundYieldsEmpty(t *testing.T) {
	encyclopedia := new(MockEncyclopedia)
	images := new(MockImages)
	hist := new(MockHistory)
	svc := newTestService(encyclopedia, images, hist)

	hist.On("Save", mock.Anything, "nonexistent place").Return()
	encyclopedia.On("Lookup", mock.Anything, "nonexistent place", "").Return(nil, types.ErrNotFound)

	results, err := svc.SearchPlaces(context.Background(), "nonexistent place", types.SearchFilters{})

	require.NoError(t, err)
	assert.Empty(t, results)
	hist.AssertCalled(t, "Save", mock.Anything, "nonexistent place")
}

func TestSearchPlacesRejectsNonTravelContent(t *testing.T) {
	encyclopedia := new(MockEncyclopedia)
	images := new(MockImages)
	hist := new(MockHistory)
	svc := newTestService(encyclopedia, images, hist)

	hist.On("Save", mock.Anything, mock.Anything).Return()
	encyclopedia.On("Lookup", mock.Anything, "Lionel Messi", "").Return(&wikipedia.Summary{
		Title: "Lionel Messi",
		Extract: "Argentine footballer regarded as one of the greatest. His biography covers " +
			"a career that began after he was born in Rosario.",
		Language: "en",
	}, nil)

	results, err := svc.SearchPlaces(context.Background(), "Lionel Messi", types.SearchFilters{})

	require.NoError(t, err)
	assert.Empty(t, results)
	// Rejection happens before any image work.
	images.AssertNotCalled(t, "FindImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchPlacesLowScoreYieldsEmpty(t *testing.T) {
	encyclopedia := new(MockEncyclopedia)
	images := new(MockImages)
	hist := new(MockHistory)
	svc := newTestService(encyclopedia, images, hist)

	hist.On("Save", mock.Anything, mock.Anything).Return()
	encyclopedia.On("Lookup", mock.Anything, "xyzquery", "").Return(&wikipedia.Summary{
		Title:    "Completely Unrelated Palace",
		Extract:  "A palace with no relation to the query text",
		Language: "en",
	}, nil)

	results, err := svc.SearchPlaces(context.Background(), "xyzquery", types.SearchFilters{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchPlacesEndToEnd(t *testing.T) {
	encyclopedia := new(MockEncyclopedia)
	images := new(MockImages)
	hist := new(MockHistory)
	svc := newTestService(encyclopedia, images, hist)

	extract := strings.Repeat("Galata Kulesi Istanbul'un tarihi kulesidir. ", 7) // ~300 chars
	hist.On("Save", mock.Anything, "Galata Kulesi").Return()
	encyclopedia.On("Lookup", mock.Anything, "Galata Kulesi", "").Return(&wikipedia.Summary{
		Title:     "Galata Kulesi",
		Extract:   extract,
		Language:  "tr",
		SourceURL: "https://tr.wikipedia.org/wiki/Galata_Kulesi",
	}, nil)
	images.On("FindImage", mock.Anything, "Galata Kulesi", "").Return("https://images.example.com/galata.jpg", nil)

	results, err := svc.SearchPlaces(context.Background(), "Galata Kulesi", types.SearchFilters{})

	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, "wikipedia", result.Source)
	assert.Equal(t, types.ResultTypeLandmark, result.Type)
	assert.Equal(t, "tower", result.Category)
	assert.GreaterOrEqual(t, result.Score, 25)
	assert.GreaterOrEqual(t, result.Rating, 4.0)
	assert.LessOrEqual(t, result.Rating, 5.0)
	assert.NotEmpty(t, result.ImageURL)
	assert.Equal(t, "tr", result.ExtraInfo.Language)
	assert.NotEmpty(t, result.ID)

	// Same query always derives the same identifier.
	again, err := svc.SearchPlaces(context.Background(), "Galata Kulesi", types.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, result.ID, again[0].ID)
}

func TestSearchPlacesDefaultImageFallback(t *testing.T) {
	encyclopedia := new(MockEncyclopedia)
	images := new(MockImages)
	hist := new(MockHistory)
	svc := newTestService(encyclopedia, images, hist)

	hist.On("Save", mock.Anything, mock.Anything).Return()
	encyclopedia.On("Lookup", mock.Anything, "Galata Kulesi", "").Return(&wikipedia.Summary{
		Title:    "Galata Kulesi",
		Extract:  "Istanbul'un tarihi kulesi",
		Language: "tr",
	}, nil)
	images.On("FindImage", mock.Anything, mock.Anything, mock.Anything).Return("", types.ErrNotFound)

	results, err := svc.SearchPlaces(context.Background(), "Galata Kulesi", types.SearchFilters{})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.com/default.jpg", results[0].ImageURL)
}

func TestSearchPlacesPostFilters(t *testing.T) {
	encyclopedia := new(MockEncyclopedia)
	images := new(MockImages)
	hist := new(MockHistory)
	svc := newTestService(encyclopedia, images, hist)

	hist.On("Save", mock.Anything, mock.Anything).Return()
	encyclopedia.On("Lookup", mock.Anything, "Galata Kulesi", "").Return(&wikipedia.Summary{
		Title:    "Galata Kulesi",
		Extract:  "Istanbul'un tarihi kulesi",
		Language: "tr",
	}, nil)
	images.On("FindImage", mock.Anything, mock.Anything, mock.Anything).Return("https://images.example.com/galata.jpg", nil)

	// Type allow-list excludes landmarks entirely.
	results, err := svc.SearchPlaces(context.Background(), "Galata Kulesi", types.SearchFilters{
		Types: []types.ResultType{types.ResultTypeCity},
	})
	require.NoError(t, err)
	assert.Empty(t, results)

	// An impossible rating floor excludes the single result too.
	results, err = svc.SearchPlaces(context.Background(), "Galata Kulesi", types.SearchFilters{
		MinRating: 5.1,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
