package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/affirmly/affirmly-be/internal/apperror"
)

func TestCreateUserHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil)

	user, err := svc.CreateUser("Alice", "Smith", "alice@example.com", "alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked on the returned user")
	}

	var stored string
	if err := db.QueryRow("SELECT password_hash FROM users WHERE id = ?", user.ID).Scan(&stored); err != nil {
		t.Fatal(err)
	}
	if stored == "s3cret-pw" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("s3cret-pw")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil)

	if _, err := svc.CreateUser("Alice", "Smith", "alice@example.com", "alice", "pw-one"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CreateUser("Other", "Alice", "other@example.com", "alice", "pw-two")
	if !apperror.IsKind(err, apperror.Validation) {
		t.Fatalf("duplicate username err = %v, want validation error", err)
	}
	appErr := apperror.From(err)
	if appErr.Fields["username"] != "Username already exists." {
		t.Fatalf("field map = %v", appErr.Fields)
	}

	if n := countRows(t, db, "users"); n != 1 {
		t.Fatalf("user count = %d, want 1", n)
	}
}

func TestAuthenticateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil)

	created, err := svc.CreateUser("Alice", "Smith", "alice@example.com", "alice", "s3cret-pw")
	if err != nil {
		t.Fatal(err)
	}

	user, err := svc.AuthenticateUser("alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("authenticated user id = %s, want %s", user.ID, created.ID)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked on login")
	}

	if _, err := svc.AuthenticateUser("alice", "wrong"); !apperror.IsKind(err, apperror.Unauthorized) {
		t.Fatalf("wrong password err = %v, want unauthorized", err)
	}
	if _, err := svc.AuthenticateUser("nobody", "s3cret-pw"); !apperror.IsKind(err, apperror.Unauthorized) {
		t.Fatalf("unknown user err = %v, want unauthorized", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil)

	created, err := svc.CreateUser("Alice", "Smith", "alice@example.com", "alice", "s3cret-pw")
	if err != nil {
		t.Fatal(err)
	}

	user, err := svc.GetUserByID(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "alice" || user.FirstName != "Alice" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetUserByID("missing"); !apperror.IsKind(err, apperror.NotFound) {
		t.Fatalf("unknown id err = %v, want not found", err)
	}
}
