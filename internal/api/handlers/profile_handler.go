package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/auth"
	"github.com/affirmly/affirmly-be/internal/services"
)

// Uploads above this size are rejected before reaching the media store.
const maxImageUploadBytes = 10 << 20 // 10 MiB

// ProfileHandler handles HTTP requests for the caller's profile image.
type ProfileHandler struct {
	service services.ProfileServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.ProfileServiceProvider) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get returns the authenticated caller's profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	profile, err := h.service.GetProfile(claims.UserID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image": profile.Image})
}

// Update replaces the caller's profile image from a multipart "image" field.
// The update always targets the authenticated caller's own profile, so no
// separate ownership check is needed.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"image": "Image file too large."})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"image": "No image file submitted."})
		return
	}
	defer file.Close()

	profile, err := h.service.UpdateImage(claims.UserID, header.Filename, file)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Str("filename", header.Filename).Msg("Profile image update rejected")
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image": profile.Image})
}
