package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emirduygulu/wanderland-api/internal/api/city"
	"github.com/emirduygulu/wanderland-api/internal/api/history"
	"github.com/emirduygulu/wanderland-api/internal/api/search"
)

// Config contains dependencies needed for the router setup
type Config struct {
	SearchHandler  *search.Handler
	CityHandler    *city.Handler
	HistoryHandler *history.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", cfg.SearchHandler.SearchPlaces)

		r.Route("/cities", func(r chi.Router) {
			r.Get("/", cfg.CityHandler.GetDefaultCities)
			r.Get("/{name}", cfg.CityHandler.GetCityDetails)
			r.Get("/{name}/landmarks", cfg.CityHandler.GetCityLandmarks)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", cfg.HistoryHandler.GetHistory)
			r.Delete("/", cfg.HistoryHandler.ClearHistory)
			r.Delete("/{query}", cfg.HistoryHandler.RemoveEntry)
		})
	})

	return r
}
