package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"backr/internal/api/v1/dto"
	"backr/internal/middleware"
	"backr/internal/model"
	"backr/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles membership ledger endpoints.
type SubscriptionHandler struct {
	memberships service.MembershipService
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(memberships service.MembershipService, validate *validator.Validate, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		memberships: memberships,
		validate:    validate,
		logger:      logger.With().Str("handler", "SubscriptionHandler").Logger(),
	}
}

// RegisterRoutes mounts subscription routes. Both require auth: memberships
// are personal data.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /subscriptions", authMw(http.HandlerFunc(h.list)))
	mux.Handle("POST /subscriptions", authMw(http.HandlerFunc(h.subscribe)))
}

// list serves both "is this user subscribed to creator X" (with creator=)
// and "list my memberships" (without).
func (h *SubscriptionHandler) list(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	subscriber := r.URL.Query().Get("subscriber")
	if subscriber == "" {
		subscriber = actor
	}
	if !model.SameAddress(actor, subscriber) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	now := time.Now()
	if creator := r.URL.Query().Get("creator"); creator != "" {
		current, err := h.memberships.Current(r.Context(), subscriber, creator)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if current == nil {
			writeJSON(w, http.StatusOK, map[string]any{"subscribed": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"subscribed": true,
			"membership": dto.NewMembershipResponse(current, now),
		})
		return
	}
	ms, err := h.memberships.ListBySubscriber(r.Context(), subscriber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewMembershipListResponse(ms, now))
}

func (h *SubscriptionHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.SubscribeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if !model.SameAddress(actor, req.SubscriberAddress) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	m, err := h.memberships.Subscribe(r.Context(), actor, req.CreatorAddress, req.TierID, req.TxHash)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewMembershipResponse(m, time.Now()))
}
