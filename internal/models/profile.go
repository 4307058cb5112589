package models

// Profile holds the per-user profile data. One row per user, created
// lazily on the first image upload.
type Profile struct {
	UserID string `json:"user_id"`
	Image  string `json:"image"`
}
