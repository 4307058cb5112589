package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/apperror"
	"github.com/affirmly/affirmly-be/internal/models"
	"github.com/affirmly/affirmly-be/internal/validation"
	"github.com/affirmly/affirmly-be/internal/websocket"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	GetAllPosts() ([]models.Post, error)
	CreatePost(authorID, content string) (models.Post, error)
	GetPostByID(id string) (models.Post, error)
	UpdatePost(id, callerID string, patch models.PostPatch) (models.Post, error)
	DeletePost(id, callerID string) error
}

// PostService provides the ownership-scoped CRUD logic for posts. Ownership
// is decided per request by comparing the caller's identity against the
// stored author; nothing is cached between requests.
type PostService struct {
	db     *sql.DB
	hub    *websocket.Hub
	events EventServiceProvider
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB, hub *websocket.Hub, events EventServiceProvider) *PostService {
	return &PostService{db: db, hub: hub, events: events}
}

// GetAllPosts retrieves every post, newest first. The list is global, not
// filtered by caller.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	rows, err := s.db.Query("SELECT id, author_id, content, created_at FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// CreatePost validates the content and writes a new post. The author is
// always the caller; any author supplied by the client is ignored upstream.
func (s *PostService) CreatePost(authorID, content string) (models.Post, error) {
	content, ok := validation.Content(content)
	if !ok {
		return models.Post{}, apperror.NewFieldValidation("content", "Content cannot be empty.")
	}

	post := models.Post{
		ID:        uuid.New().String(),
		Author:    authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO posts (id, author_id, content, created_at) VALUES (?, ?, ?, ?)",
		post.ID, post.Author, post.Content, formatTime(post.CreatedAt),
	)
	if err != nil {
		return models.Post{}, err
	}

	s.hub.BroadcastEvent("post_created", post)
	s.recordEvent(EventPostCreated, "post created", post)
	return post, nil
}

// GetPostByID retrieves a single post. Any authenticated caller may read any
// post; only mutation is restricted to the author.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	row := s.db.QueryRow("SELECT id, author_id, content, created_at FROM posts WHERE id = ?", id)
	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, apperror.NewNotFound(fmt.Sprintf("post with ID %s not found", id))
		}
		return models.Post{}, err
	}
	return post, nil
}

// UpdatePost applies a partial update to a post owned by the caller. Content
// is the only mutable field: absent leaves it unchanged, null is rejected,
// and a supplied value is re-validated for non-emptiness. Author and
// created_at never change.
func (s *PostService) UpdatePost(id, callerID string, patch models.PostPatch) (models.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}
	if post.Author != callerID {
		return models.Post{}, apperror.NewForbidden("You do not have permission to edit this post.")
	}

	if !patch.Content.Set {
		return post, nil
	}
	if !patch.Content.Valid {
		return models.Post{}, apperror.NewFieldValidation("content", "Content may not be null.")
	}
	content, ok := validation.Content(patch.Content.Value)
	if !ok {
		return models.Post{}, apperror.NewFieldValidation("content", "Content cannot be empty.")
	}

	if _, err := s.db.Exec("UPDATE posts SET content = ? WHERE id = ?", content, post.ID); err != nil {
		return models.Post{}, err
	}
	post.Content = content

	s.hub.BroadcastEvent("post_updated", post)
	s.recordEvent(EventPostUpdated, "post updated", post)
	return post, nil
}

// DeletePost removes a post owned by the caller. A second delete of the same
// id reports NotFound.
func (s *PostService) DeletePost(id, callerID string) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if post.Author != callerID {
		return apperror.NewForbidden("You do not have permission to delete this post.")
	}

	if _, err := s.db.Exec("DELETE FROM posts WHERE id = ?", post.ID); err != nil {
		return err
	}

	s.hub.BroadcastEvent("post_deleted", map[string]string{"id": post.ID})
	s.recordEvent(EventPostDeleted, "post deleted", post)
	return nil
}

// recordEvent writes an activity entry for a post mutation. The audit trail
// is best-effort: a failure is logged but never fails the request.
func (s *PostService) recordEvent(eventType, message string, post models.Post) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, message, &post.Author, &post.ID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Str("post_id", post.ID).Msg("Failed to record activity event")
	}
}

// scanPost reads a post row from either *sql.Row or *sql.Rows.
func scanPost(row interface{ Scan(dest ...any) error }) (models.Post, error) {
	var post models.Post
	var createdAt string
	if err := row.Scan(&post.ID, &post.Author, &post.Content, &createdAt); err != nil {
		return models.Post{}, err
	}
	post.CreatedAt = parseTime(createdAt)
	return post, nil
}
