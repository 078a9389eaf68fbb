package handler

import (
	"net/http"

	"backr/internal/api/v1/dto"
	"backr/internal/middleware"
	"backr/internal/model"
	"backr/internal/service"

	"github.com/rs/zerolog"
)

// StatsHandler serves the creator dashboard projection.
type StatsHandler struct {
	stats  service.StatsService
	logger zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger.With().Str("handler", "StatsHandler").Logger()}
}

// RegisterRoutes mounts the stats endpoint. Creators may only read their own
// dashboard.
func (h *StatsHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /stats", authMw(http.HandlerFunc(h.get)))
}

func (h *StatsHandler) get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	creator := r.URL.Query().Get("creator")
	if creator == "" {
		creator = actor
	}
	if !model.SameAddress(actor, creator) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	stats, err := h.stats.Stats(r.Context(), creator)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewStatsResponse(stats))
}
