package handler

import (
	"encoding/json"
	"net/http"

	"backr/internal/api/v1/dto"
	"backr/internal/middleware"
	"backr/internal/model"
	"backr/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CreatorHandler handles creator profile endpoints.
type CreatorHandler struct {
	creators service.CreatorService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCreatorHandler creates a new CreatorHandler.
func NewCreatorHandler(creators service.CreatorService, validate *validator.Validate, logger zerolog.Logger) *CreatorHandler {
	return &CreatorHandler{creators: creators, validate: validate, logger: logger.With().Str("handler", "CreatorHandler").Logger()}
}

// RegisterRoutes mounts creator routes. Profile reads are public; saves
// require the authenticated wallet to match the addressed profile.
func (h *CreatorHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /creators", h.getByUsername)
	mux.HandleFunc("GET /creators/{address}", h.getByAddress)
	mux.Handle("PUT /creators/{address}", authMw(http.HandlerFunc(h.save)))
}

func (h *CreatorHandler) getByAddress(w http.ResponseWriter, r *http.Request) {
	c, err := h.creators.GetByAddress(r.Context(), r.PathValue("address"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCreatorResponse(c))
}

func (h *CreatorHandler) getByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username query parameter required", http.StatusBadRequest)
		return
	}
	c, err := h.creators.GetByUsername(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCreatorResponse(c))
}

func (h *CreatorHandler) save(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if !model.SameAddress(actor, r.PathValue("address")) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	var req dto.CreatorSaveDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	saved, err := h.creators.Save(r.Context(), actor, service.ProfileInput{
		Name:            req.Name,
		Bio:             req.Bio,
		Username:        req.Username,
		AvatarURL:       req.AvatarURL,
		CoverURL:        req.CoverURL,
		ContractAddress: req.ContractAddress,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCreatorResponse(saved))
}
