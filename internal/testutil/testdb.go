package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rueda/internal/db"
)

// NewTestDB opens a migrated in-memory run store that is closed with the test.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return OpenTestDB(t, ":memory:")
}

// NewFileDBPath returns a database path inside the test's temp directory, for
// tests that close and reopen the store.
func NewFileDBPath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "store", "rueda.db")
}

// OpenTestDB opens path through db.OpenDB and closes it on cleanup.
func OpenTestDB(t testing.TB, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
