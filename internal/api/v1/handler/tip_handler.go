package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"backr/internal/api/v1/dto"
	"backr/internal/middleware"
	"backr/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TipHandler handles tip ledger endpoints.
type TipHandler struct {
	tips     service.TipService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewTipHandler creates a new TipHandler.
func NewTipHandler(tips service.TipService, validate *validator.Validate, logger zerolog.Logger) *TipHandler {
	return &TipHandler{tips: tips, validate: validate, logger: logger.With().Str("handler", "TipHandler").Logger()}
}

// RegisterRoutes mounts tip routes. Reads are public; recording a tip
// requires the caller to be its sender.
func (h *TipHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /tips", h.list)
	mux.HandleFunc("GET /tips/leaderboard", h.leaderboard)
	mux.Handle("POST /tips", authMw(http.HandlerFunc(h.create)))
}

func (h *TipHandler) list(w http.ResponseWriter, r *http.Request) {
	receiver := r.URL.Query().Get("receiver")
	sender := r.URL.Query().Get("sender")
	switch {
	case receiver != "":
		tips, err := h.tips.ListByReceiver(r.Context(), receiver)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.NewTipListResponse(tips))
	case sender != "":
		tips, err := h.tips.ListBySender(r.Context(), sender)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.NewTipListResponse(tips))
	default:
		http.Error(w, "receiver or sender query parameter required", http.StatusBadRequest)
	}
}

func (h *TipHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	receiver := r.URL.Query().Get("receiver")
	if receiver == "" {
		http.Error(w, "receiver query parameter required", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	board, err := h.tips.Leaderboard(r.Context(), receiver, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSupporterListResponse(board))
}

func (h *TipHandler) create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.TipCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	tip, err := h.tips.Record(r.Context(), actor, service.TipInput{
		Sender:   req.Sender,
		Receiver: req.Receiver,
		Amount:   req.Amount,
		Currency: req.Currency,
		Message:  req.Message,
		TxHash:   req.TxHash,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewTipResponse(tip))
}
