package opentripmap

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirduygulu/wanderland-api/internal/types"
)

func newTestClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewClient(baseURL, "test-key", 2*time.Second, nil, Options{
		RetryMaxAttempts: 5,
		RetryBaseDelay:   time.Millisecond,
		ProximityKm:      50,
	}, logger)
}

func TestPlaceDetailsRetriesOnRateLimit(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	place, err := client.PlaceDetails(context.Background(), "W123")
	require.ErrorIs(t, err, types.ErrRateLimited)
	assert.Nil(t, place)
	assert.Equal(t, int64(5), requests.Load())

	// The attempt counter is call-local: a second call gets its own
	// five fresh attempts.
	place, err = client.PlaceDetails(context.Background(), "W123")
	require.ErrorIs(t, err, types.ErrRateLimited)
	assert.Nil(t, place)
	assert.Equal(t, int64(10), requests.Load())
}

func TestPlaceDetailsRecoversAfterRateLimit(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"xid":"W123","name":"Alte Oper","kinds":"historic,architecture","rate":3,"point":{"lat":50.11,"lon":8.67}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	place, err := client.PlaceDetails(context.Background(), "W123")
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, "Alte Oper", place.Name)
	assert.Equal(t, []string{"historic", "architecture"}, place.Kinds)
	assert.NotEmpty(t, place.Description)
	assert.Equal(t, int64(3), requests.Load())
}

func TestPlaceDetailsDoesNotRetryOtherErrors(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	place, err := client.PlaceDetails(context.Background(), "W123")
	require.ErrorIs(t, err, types.ErrProviderUnavailable)
	assert.Nil(t, place)
	assert.Equal(t, int64(1), requests.Load())
}

func TestPlaceDetailsSynthesizesDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"xid":"W9","name":"Unknown Spot","kinds":"interesting_places","rate":1,"point":{"lat":1,"lon":1}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	place, err := client.PlaceDetails(context.Background(), "W9")
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Contains(t, place.Description, "Unknown Spot")
}

func TestGeocodeUsesStaticTableFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("known cities must not reach the provider")
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	point, err := client.Geocode(context.Background(), "istanbul")
	require.NoError(t, err)
	assert.InDelta(t, 41.0, point.Latitude, 0.5)
	assert.InDelta(t, 28.9, point.Longitude, 0.5)
}

func TestGeocodeCachesProviderResults(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Berlin","lat":52.52,"lon":13.405}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	first, err := client.Geocode(context.Background(), "Berlin")
	require.NoError(t, err)
	second, err := client.Geocode(context.Background(), "Berlin")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), requests.Load())
}

func TestGeocodeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Geocode(context.Background(), "Atlantis")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestLandmarksAroundCuratedBypass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("curated city coordinates must not reach the provider")
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	// Istanbul city center.
	places, err := client.LandmarksAround(context.Background(), 41.0082, 28.9784, 15000)
	require.NoError(t, err)
	require.NotEmpty(t, places)
	for _, p := range places {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
	}
}

func TestLandmarksAroundProviderPath(t *testing.T) {
	var detailRequests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/places/radius":
			_, _ = w.Write([]byte(`[
				{"xid":"W1","name":"Old Castle","kinds":"castles,historic","rate":3,"point":{"lat":48.1,"lon":11.5}},
				{"xid":"W2","name":"","kinds":"historic","rate":7,"point":{"lat":48.1,"lon":11.5}},
				{"xid":"W3","name":"Some Office","kinds":"interesting_places","rate":1,"point":{"lat":48.1,"lon":11.5}}
			]`))
		case "/places/xid/W1":
			detailRequests.Add(1)
			_, _ = w.Write([]byte(`{"xid":"W1","name":"Old Castle","kinds":"castles,historic","rate":3,
				"point":{"lat":48.1,"lon":11.5},
				"preview":{"source":"https://img.example.org/castle.jpg"},
				"wikipedia_extracts":{"text":"A medieval castle above the old town."}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	// Munich is not in the static city table.
	places, err := client.LandmarksAround(context.Background(), 48.1351, 11.582, 15000)
	require.NoError(t, err)
	require.Len(t, places, 1)
	// Nameless features are dropped, the keyword re-rank keeps only the
	// castle, and the detail fetch supplies its description and image.
	assert.Equal(t, "Old Castle", places[0].Name)
	assert.Equal(t, "A medieval castle above the old town.", places[0].Description)
	assert.Equal(t, "https://img.example.org/castle.jpg", places[0].ImageURL)
	assert.Equal(t, int64(1), detailRequests.Load())
}

func TestLandmarksAroundSynthesizesWhenDetailUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/places/radius":
			_, _ = w.Write([]byte(`[
				{"xid":"W1","name":"Old Castle","kinds":"castles,historic","rate":3,"point":{"lat":48.1,"lon":11.5}}
			]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	places, err := client.LandmarksAround(context.Background(), 48.1351, 11.582, 15000)
	require.NoError(t, err)
	require.Len(t, places, 1)
	// The failed detail fetch still leaves a synthesized description.
	assert.Contains(t, places[0].Description, "Old Castle")
}

func TestBackoffDelay(t *testing.T) {
	base := 10 * time.Millisecond
	// First retry waits the base delay, each later one doubles it.
	assert.Equal(t, base, backoffDelay(base, 1))
	assert.Equal(t, 2*base, backoffDelay(base, 2))
	assert.Equal(t, 4*base, backoffDelay(base, 3))
}

func TestRerankByKeywordFallsBackToFullList(t *testing.T) {
	places := []Place{
		{Name: "Alpha", Rate: 1},
		{Name: "Beta", Rate: 5},
	}
	ranked := rerankByKeyword(places, "")
	require.Len(t, ranked, 2)
	assert.Equal(t, "Beta", ranked[0].Name)
}
