package city

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/emirduygulu/wanderland-api/internal/api"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetDefaultCities handles GET /cities - the discovery list shown before any search.
func (h *Handler) GetDefaultCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetDefaultCities")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetDefaultCities"))

	cities, err := h.service.DefaultCities(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to resolve default cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to resolve cities")
		return
	}

	span.SetStatus(codes.Ok, "Default cities returned")
	api.WriteJSONResponse(w, r, http.StatusOK, api.CitiesResponse{Cities: cities})
}

// GetCityDetails handles GET /cities/{name} - full city detail with landmarks.
// The optional id query parameter carries the client's stable city identifier.
func (h *Handler) GetCityDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCityDetails")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetCityDetails"))

	name := chi.URLParam(r, "name")
	if name == "" {
		span.SetStatus(codes.Error, "Missing city name")
		api.ErrorResponse(w, r, http.StatusBadRequest, "City name is required")
		return
	}
	id := r.URL.Query().Get("id")

	city, err := h.service.FetchCityDetails(ctx, id, name)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch city details", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch city details")
		return
	}

	l.InfoContext(ctx, "City details resolved",
		slog.String("city", city.Name), slog.Int("landmarks", len(city.Landmarks)))
	span.SetStatus(codes.Ok, "City details returned")
	api.WriteJSONResponse(w, r, http.StatusOK, city)
}

// GetCityLandmarks handles GET /cities/{name}/landmarks.
func (h *Handler) GetCityLandmarks(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCityLandmarks")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetCityLandmarks"))

	name := chi.URLParam(r, "name")
	if name == "" {
		span.SetStatus(codes.Error, "Missing city name")
		api.ErrorResponse(w, r, http.StatusBadRequest, "City name is required")
		return
	}

	landmarks, err := h.service.FetchCityLandmarks(ctx, name)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch city landmarks", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch landmarks")
		return
	}

	span.SetStatus(codes.Ok, "Landmarks returned")
	api.WriteJSONResponse(w, r, http.StatusOK, api.LandmarksResponse{City: name, Landmarks: landmarks})
}
