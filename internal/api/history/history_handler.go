package history

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/emirduygulu/wanderland-api/internal/api"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHistoryHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetHistory handles GET /history - the stored queries, most recent first.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HistoryHandler").Start(r.Context(), "GetHistory")
	defer span.End()

	entries := h.service.Get(ctx)

	span.SetStatus(codes.Ok, "History returned")
	api.WriteJSONResponse(w, r, http.StatusOK, api.HistoryResponse{Entries: entries})
}

// ClearHistory handles DELETE /history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HistoryHandler").Start(r.Context(), "ClearHistory")
	defer span.End()

	h.service.Clear(ctx)
	h.logger.InfoContext(ctx, "Search history cleared")

	span.SetStatus(codes.Ok, "History cleared")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// RemoveEntry handles DELETE /history/{query} - case-insensitive exact removal.
func (h *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HistoryHandler").Start(r.Context(), "RemoveEntry")
	defer span.End()

	raw := chi.URLParam(r, "query")
	query, err := url.PathUnescape(raw)
	if err != nil {
		query = raw
	}
	if query == "" {
		span.SetStatus(codes.Error, "Missing query")
		api.ErrorResponse(w, r, http.StatusBadRequest, "History entry is required")
		return
	}

	h.service.Remove(ctx, query)

	span.SetStatus(codes.Ok, "History entry removed")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
