package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/affirmly/affirmly-be/internal/apperror"
	"github.com/affirmly/affirmly-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	CreateUser(firstName, lastName, email, username, password string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
}

// UserService provides business logic for registration and identity lookup.
type UserService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, events EventServiceProvider) *UserService {
	return &UserService{db: db, events: events}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var createdAt string
	row := s.db.QueryRow(
		"SELECT id, username, email, first_name, last_name, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NewNotFound(fmt.Sprintf("user with ID %s not found", id))
		}
		return models.User{}, err
	}
	user.CreatedAt = parseTime(createdAt)
	return user, nil
}

// getUserByUsername retrieves a user by username, including the password hash.
func (s *UserService) getUserByUsername(username string) (models.User, error) {
	var user models.User
	var createdAt string
	row := s.db.QueryRow(
		"SELECT id, username, email, first_name, last_name, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.PasswordHash, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NewNotFound(fmt.Sprintf("user %s not found", username))
		}
		return models.User{}, err
	}
	user.CreatedAt = parseTime(createdAt)
	return user, nil
}

// usernameTaken reports whether a user with the given username already exists.
func (s *UserService) usernameTaken(username string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	return exists, err
}

// CreateUser registers a new user. The username must be unique; the check
// runs before any persistence attempt. The password is hashed here and the
// plaintext is never stored or returned.
func (s *UserService) CreateUser(firstName, lastName, email, username, password string) (models.User, error) {
	taken, err := s.usernameTaken(username)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, apperror.NewFieldValidation("username", "Username already exists.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Exec(
		"INSERT INTO users (id, username, email, first_name, last_name, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, string(hashedPassword), formatTime(user.CreatedAt),
	)
	if err != nil {
		return models.User{}, err
	}

	if s.events != nil {
		if err := s.events.CreateEvent(EventUserRegistered, fmt.Sprintf("%s joined", user.Username), &user.ID, nil); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record registration event")
		}
	}

	return user, nil
}

// AuthenticateUser verifies a user's credentials. Both an unknown username
// and a wrong password report the same error so credentials are not probeable.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	user, err := s.getUserByUsername(username)
	if err != nil {
		return models.User{}, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperror.NewUnauthorized("invalid credentials")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
