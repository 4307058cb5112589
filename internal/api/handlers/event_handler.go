package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/models"
	"github.com/affirmly/affirmly-be/internal/services"
)

const recentEventLimit = 50

// EventHandler serves the recent activity feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent returns the most recent activity events, newest first.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetRecentEvents(recentEventLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recent events")
		writeAppError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
