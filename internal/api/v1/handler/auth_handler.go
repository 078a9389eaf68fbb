package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"backr/internal/api/v1/dto"
	"backr/internal/auth"
	"backr/internal/model"
	"backr/internal/security"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AuthHandler issues login challenges and session tokens.
type AuthHandler struct {
	challenges *auth.ChallengeStore
	jwtSecret  string
	sessionTTL time.Duration
	validate   *validator.Validate
	seclog     security.Log
	logger     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(challenges *auth.ChallengeStore, jwtSecret string, sessionTTL time.Duration, validate *validator.Validate, seclog security.Log, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		challenges: challenges,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		validate:   validate,
		seclog:     seclog,
		logger:     logger.With().Str("handler", "AuthHandler").Logger(),
	}
}

// RegisterRoutes mounts the auth endpoints. Both are public.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/challenge", h.challenge)
	mux.HandleFunc("POST /auth/verify", h.verify)
}

func (h *AuthHandler) challenge(w http.ResponseWriter, r *http.Request) {
	var req dto.ChallengeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	msg, err := h.challenges.Issue(req.Address)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue challenge")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.ChallengeResponseDTO{Message: msg})
}

func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	message, ok := h.challenges.Redeem(req.Address)
	if !ok {
		http.Error(w, "no pending challenge for address", http.StatusUnauthorized)
		return
	}
	valid, err := auth.VerifySignature(req.Address, message, req.Signature)
	if err != nil || !valid {
		h.seclog.Record(security.Event{Kind: security.KindAuthFailure, Address: req.Address, Detail: "signature mismatch"})
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}
	token, err := auth.IssueSessionToken(req.Address, h.jwtSecret, h.sessionTTL)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue session token")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.SessionResponseDTO{
		Token:     token,
		Address:   model.NormalizeAddress(req.Address),
		ExpiresIn: int(h.sessionTTL.Seconds()),
	})
}
