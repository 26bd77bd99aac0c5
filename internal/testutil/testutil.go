package testutil

import (
	"database/sql"
	"testing"

	"adminSeeder/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so that every pooled connection sees the same in-memory DB.
	d, err := db.OpenAndMigrate("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// OpenEmptyDB opens an in-memory SQLite database without any schema.
func OpenEmptyDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// CountUsers returns the number of rows in users with the given username.
func CountUsers(t *testing.T, d *sql.DB, username string) int {
	t.Helper()
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n); err != nil {
		t.Fatalf("count users: %v", err)
	}
	return n
}
