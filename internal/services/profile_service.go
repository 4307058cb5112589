package services

import (
	"database/sql"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/apperror"
	"github.com/affirmly/affirmly-be/internal/media"
	"github.com/affirmly/affirmly-be/internal/models"
	"github.com/affirmly/affirmly-be/internal/validation"
)

// ProfileServiceProvider defines the interface for profile services.
type ProfileServiceProvider interface {
	GetProfile(userID string) (models.Profile, error)
	UpdateImage(userID, filename string, file io.Reader) (models.Profile, error)
}

// ProfileService manages the per-user profile image. Callers can only touch
// their own profile: the handler resolves userID from the authenticated
// identity, never from the request path.
type ProfileService struct {
	db    *sql.DB
	store *media.Store
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *sql.DB, store *media.Store) *ProfileService {
	return &ProfileService{db: db, store: store}
}

// GetProfile retrieves a user's profile. A profile exists only after the
// first image upload.
func (s *ProfileService) GetProfile(userID string) (models.Profile, error) {
	var profile models.Profile
	row := s.db.QueryRow("SELECT user_id, image FROM profiles WHERE user_id = ?", userID)
	if err := row.Scan(&profile.UserID, &profile.Image); err != nil {
		if err == sql.ErrNoRows {
			return models.Profile{}, apperror.NewNotFound("profile not found")
		}
		return models.Profile{}, err
	}
	return profile, nil
}

// UpdateImage validates the filename, stores the file, and points the
// caller's profile at it, creating the profile row on first upload. The
// previously stored image, if any, is removed.
func (s *ProfileService) UpdateImage(userID, filename string, file io.Reader) (models.Profile, error) {
	if !validation.ImageFilename(filename) {
		return models.Profile{}, apperror.NewFieldValidation("image", "Image must be a PNG or JPEG file.")
	}

	old, err := s.GetProfile(userID)
	if err != nil && !apperror.IsKind(err, apperror.NotFound) {
		return models.Profile{}, err
	}

	stored, err := s.store.Save(filename, file)
	if err != nil {
		return models.Profile{}, err
	}

	_, err = s.db.Exec(
		"INSERT INTO profiles (user_id, image) VALUES (?, ?) ON CONFLICT(user_id) DO UPDATE SET image = excluded.image",
		userID, stored,
	)
	if err != nil {
		// Don't leave the freshly written file orphaned until the sweep.
		if rmErr := s.store.Remove(stored); rmErr != nil {
			log.Warn().Err(rmErr).Str("file", stored).Msg("Failed to remove stored image after db error")
		}
		return models.Profile{}, err
	}

	if old.Image != "" && old.Image != stored {
		if err := s.store.Remove(old.Image); err != nil {
			log.Warn().Err(err).Str("file", old.Image).Msg("Failed to remove replaced profile image")
		}
	}

	return models.Profile{UserID: userID, Image: stored}, nil
}
