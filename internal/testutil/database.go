// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/shelf/internal/storage"
)

// SetupTestJournal creates a migrated in-memory journal that is closed when
// the test ends.
func SetupTestJournal(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	journal, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := journal.Migrate(context.Background()); err != nil {
		_ = journal.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = journal.Close()
	})

	return journal
}
