package search

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/emirduygulu/wanderland-api/internal/api"
	"github.com/emirduygulu/wanderland-api/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewSearchHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// SearchPlaces handles GET /search?q=...&min_rating=...&types=...&categories=...
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchHandler").Start(r.Context(), "SearchPlaces")
	defer span.End()

	l := h.logger.With(slog.String("method", "SearchPlaces"))

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		span.SetStatus(codes.Error, "Missing query")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	filters := parseFilters(r)

	results, err := h.service.SearchPlaces(ctx, query, filters)
	if err != nil {
		l.ErrorContext(ctx, "Search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Search failed")
		return
	}

	l.InfoContext(ctx, "Search completed", slog.String("query", query), slog.Int("results", len(results)))
	span.SetStatus(codes.Ok, "Search completed")
	api.WriteJSONResponse(w, r, http.StatusOK, api.SearchResponse{Query: query, Results: results})
}

func parseFilters(r *http.Request) types.SearchFilters {
	var filters types.SearchFilters
	q := r.URL.Query()

	if raw := q.Get("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinRating = v
		}
	}
	if raw := q.Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			filters.Types = append(filters.Types, types.ResultType(strings.TrimSpace(t)))
		}
	}
	if raw := q.Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			filters.Categories = append(filters.Categories, strings.TrimSpace(c))
		}
	}
	return filters
}
