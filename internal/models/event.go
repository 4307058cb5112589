package models

import "time"

// Event records a single activity entry (post created, user registered, ...).
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ActorID   *string   `json:"actor_id,omitempty"`
	SubjectID *string   `json:"subject_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
