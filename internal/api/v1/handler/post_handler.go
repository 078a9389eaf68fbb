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

// PostHandler handles post, like, and comment endpoints.
type PostHandler struct {
	posts    service.PostService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts service.PostService, validate *validator.Validate, logger zerolog.Logger) *PostHandler {
	return &PostHandler{posts: posts, validate: validate, logger: logger.With().Str("handler", "PostHandler").Logger()}
}

// RegisterRoutes mounts post routes. Reads go through optional auth so
// entitlement can be evaluated per viewer; gated bodies degrade to teasers
// for everyone else.
func (h *PostHandler) RegisterRoutes(mux *http.ServeMux, authMw, optionalMw func(http.Handler) http.Handler) {
	mux.Handle("GET /posts", optionalMw(http.HandlerFunc(h.list)))
	mux.Handle("GET /posts/{id}", optionalMw(http.HandlerFunc(h.get)))
	mux.Handle("POST /posts", authMw(http.HandlerFunc(h.create)))
	mux.Handle("PUT /posts/{id}", authMw(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /posts/{id}", authMw(http.HandlerFunc(h.delete)))
	mux.HandleFunc("POST /posts/{id}/like", h.like)
	mux.HandleFunc("GET /posts/{id}/comments", h.listComments)
	mux.Handle("POST /posts/{id}/comments", authMw(http.HandlerFunc(h.addComment)))
}

// list serves a creator's posts (gated per viewer) or, without a creator
// parameter, the public feed.
func (h *PostHandler) list(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.WalletFromContext(r.Context())
	if creator := r.URL.Query().Get("creator"); creator != "" {
		gated, err := h.posts.ListForViewer(r.Context(), viewer, creator)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.NewGatedPostListResponse(gated))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	feed, err := h.posts.Feed(r.Context(), r.URL.Query().Get("category"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]dto.PostResponseDTO, 0, len(feed))
	for i := range feed {
		out = append(out, dto.NewPostResponse(&feed[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PostHandler) get(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.WalletFromContext(r.Context())
	gated, err := h.posts.GetForViewer(r.Context(), viewer, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewGatedPostResponse(gated))
}

func (h *PostHandler) create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.PostCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	created, err := h.posts.Create(r.Context(), actor, postInputFromDTO(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewPostResponse(created))
}

func (h *PostHandler) update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.PostCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	updated, err := h.posts.Update(r.Context(), actor, r.PathValue("id"), postInputFromDTO(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewPostResponse(updated))
}

func (h *PostHandler) delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.posts.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) like(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Like(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.posts.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]dto.CommentResponseDTO, 0, len(comments))
	for i := range comments {
		out = append(out, dto.NewCommentResponse(&comments[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PostHandler) addComment(w http.ResponseWriter, r *http.Request) {
	actor := middleware.WalletFromContext(r.Context())
	if actor == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.CommentCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	c, err := h.posts.AddComment(r.Context(), actor, r.PathValue("id"), req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewCommentResponse(c))
}

func postInputFromDTO(req dto.PostCreateDTO) service.PostInput {
	return service.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		Teaser:   req.Teaser,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		MinTier:  req.MinTier,
		IsPublic: req.IsPublic,
		Category: req.Category,
		Hashtags: req.Hashtags,
	}
}
