package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/apperror"
)

// writeJSON writes a JSON response with a status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAppError maps a service error to its HTTP response. Validation
// failures respond with the bare field-keyed message map; everything else
// responds with a single error message. This is the only place status codes
// are derived from error kinds.
func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.Internal {
		log.Error().Err(err).Msg("Unhandled service error")
		writeError(w, appErr.StatusCode(), "internal server error")
		return
	}
	if appErr.Kind == apperror.Validation && appErr.Fields != nil {
		writeJSON(w, appErr.StatusCode(), appErr.Fields)
		return
	}
	writeError(w, appErr.StatusCode(), appErr.Message)
}
