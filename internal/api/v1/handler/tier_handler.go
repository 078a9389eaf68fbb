package handler

import (
	"encoding/json"
	"net/http"

	"backr/internal/api/v1/dto"
	"backr/internal/middleware"
	"backr/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TierHandler handles tier catalog endpoints.
type TierHandler struct {
	tiers    service.TierService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewTierHandler creates a new TierHandler.
func NewTierHandler(tiers service.TierService, validate *validator.Validate, logger zerolog.Logger) *TierHandler {
	return &TierHandler{tiers: tiers, validate: validate, logger: logger.With().Str("handler", "TierHandler").Logger()}
}

// RegisterRoutes mounts tier routes. Listing a creator's catalog is public;
// every mutation acts on the caller's own catalog.
func (h *TierHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /tiers", h.list)
	mux.Handle("POST /tiers", authMw(http.HandlerFunc(h.create)))
	mux.Handle("PUT /tiers/reorder", authMw(http.HandlerFunc(h.reorder)))
	mux.Handle("PUT /tiers/{id}", authMw(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /tiers/{id}", authMw(http.HandlerFunc(h.delete)))
}

func (h *TierHandler) list(w http.ResponseWriter, r *http.Request) {
	creator := r.URL.Query().Get("creator")
	if creator == "" {
		http.Error(w, "creator query parameter required", http.StatusBadRequest)
		return
	}
	tiers, err := h.tiers.ListByCreator(r.Context(), creator)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewTierListResponse(tiers))
}

func (h *TierHandler) create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.TierCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	created, err := h.tiers.Create(r.Context(), actor, service.TierInput{
		Name:     req.Name,
		Price:    req.Price,
		Perks:    req.Perks,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewTierResponse(created))
}

func (h *TierHandler) update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.TierCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	updated, err := h.tiers.Update(r.Context(), actor, r.PathValue("id"), service.TierInput{
		Name:     req.Name,
		Price:    req.Price,
		Perks:    req.Perks,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewTierResponse(updated))
}

func (h *TierHandler) delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.tiers.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TierHandler) reorder(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.TierReorderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	reordered, err := h.tiers.Reorder(r.Context(), actor, req.OrderedIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewTierListResponse(reordered))
}
