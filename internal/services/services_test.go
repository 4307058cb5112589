package services

import (
	"database/sql"
	"testing"

	"github.com/affirmly/affirmly-be/internal/database"
	"github.com/affirmly/affirmly-be/internal/models"
)

// newTestDB opens an in-memory database with the full schema applied. A
// single connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New("file::memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, db *sql.DB, username string) models.User {
	t.Helper()
	user, err := NewUserService(db, nil).CreateUser("Test", "User", username+"@example.com", username, "hunter2!")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
