package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/auth"
	"github.com/affirmly/affirmly-be/internal/models"
	"github.com/affirmly/affirmly-be/internal/services"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePostPayload defines the structure for post creation requests. An
// author field in the payload is ignored: the author is always the caller.
type CreatePostPayload struct {
	Content string `json:"content"`
}

// GetAll handles the request to list all posts, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.GetAllPosts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Create handles the request to create a new post for the authenticated caller.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	var payload CreatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(claims.UserID, payload.Content)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Get handles the request to retrieve a single post by its ID.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Update handles PUT and PATCH requests for a post. PUT requires the content
// field; PATCH treats an absent field as "leave unchanged".
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if r.Method == http.MethodPut && !patch.Content.Set {
		writeJSON(w, http.StatusBadRequest, map[string]string{"content": "Content is required."})
		return
	}

	id := chi.URLParam(r, "id")
	post, err := h.service.UpdatePost(id, claims.UserID, patch)
	if err != nil {
		log.Warn().Err(err).Str("post_id", id).Str("user_id", claims.UserID).Msg("Post update rejected")
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles the request to delete a post owned by the caller.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeletePost(id, claims.UserID); err != nil {
		log.Warn().Err(err).Str("post_id", id).Str("user_id", claims.UserID).Msg("Post delete rejected")
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
