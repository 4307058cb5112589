package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/affirmly/affirmly-be/internal/models"
)

// Event types recorded by the other services.
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventUserRegistered = "user_registered"
)

// EventServiceProvider defines the interface for activity event services.
type EventServiceProvider interface {
	CreateEvent(eventType, message string, actorID, subjectID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records and lists activity events.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent logs a new activity event to the database.
func (s *EventService) CreateEvent(eventType, message string, actorID, subjectID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		ActorID:   actorID,
		SubjectID: subjectID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, type, actor_id, subject_id, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.ActorID, event.SubjectID, event.Message, formatTime(event.CreatedAt),
	)
	return err
}

// GetRecentEvents retrieves the most recent events, newest first.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query(
		"SELECT id, type, actor_id, subject_id, message, created_at FROM events ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var createdAt string
		if err := rows.Scan(&event.ID, &event.Type, &event.ActorID, &event.SubjectID, &event.Message, &createdAt); err != nil {
			return nil, err
		}
		event.CreatedAt = parseTime(createdAt)
		events = append(events, event)
	}
	return events, rows.Err()
}
