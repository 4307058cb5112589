package models

import "time"

// Post represents a single user-authored post.
// Author and CreatedAt are set once at creation and never change.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostPatch carries the mutable fields of a post update. Content is the
// only field a client may change.
type PostPatch struct {
	Content OptionalString `json:"content"`
}
