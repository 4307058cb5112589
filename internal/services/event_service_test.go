package services

import (
	"errors"
	"testing"

	"github.com/affirmly/affirmly-be/internal/models"
)

func TestEventServiceRecordsActivity(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	alice := newTestUser(t, db, "alice")
	posts := NewPostService(db, nil, events)

	post, err := posts.CreatePost(alice.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := posts.UpdatePost(post.ID, alice.ID, setContent("hello again")); err != nil {
		t.Fatal(err)
	}
	if err := posts.DeletePost(post.ID, alice.ID); err != nil {
		t.Fatal(err)
	}

	recent, err := events.GetRecentEvents(10)
	if err != nil {
		t.Fatalf("GetRecentEvents: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("event count = %d, want 3", len(recent))
	}
	// Newest first.
	wantTypes := []string{EventPostDeleted, EventPostUpdated, EventPostCreated}
	for i, want := range wantTypes {
		if recent[i].Type != want {
			t.Fatalf("recent[%d].Type = %s, want %s", i, recent[i].Type, want)
		}
		if recent[i].ActorID == nil || *recent[i].ActorID != alice.ID {
			t.Fatalf("recent[%d].ActorID = %v, want %s", i, recent[i].ActorID, alice.ID)
		}
	}
}

type failingEvents struct{}

func (failingEvents) CreateEvent(eventType, message string, actorID, subjectID *string) error {
	return errors.New("events store down")
}

func (failingEvents) GetRecentEvents(limit int) ([]models.Event, error) {
	return nil, nil
}

func TestPostMutationsSurviveEventFailure(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice")
	posts := NewPostService(db, nil, failingEvents{})

	post, err := posts.CreatePost(alice.ID, "hello")
	if err != nil {
		t.Fatalf("CreatePost with failing audit trail: %v", err)
	}
	if _, err := posts.UpdatePost(post.ID, alice.ID, setContent("edited")); err != nil {
		t.Fatalf("UpdatePost with failing audit trail: %v", err)
	}
	if err := posts.DeletePost(post.ID, alice.ID); err != nil {
		t.Fatalf("DeletePost with failing audit trail: %v", err)
	}
}
