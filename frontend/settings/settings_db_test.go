package settings

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/sqlite"
)

func openSettingsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "settings-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestDefaultPageSize_FallsBackWhenUnset(t *testing.T) {
	db := openSettingsTestDB(t)
	if got := DefaultPageSize(context.Background(), db); got != listpage.DefaultPageSize {
		t.Fatalf("expected fallback %d, got %d", listpage.DefaultPageSize, got)
	}
}

func TestSavePageSizeRoundTrip(t *testing.T) {
	db := openSettingsTestDB(t)

	if err := SavePageSize(context.Background(), db, 50); err != nil {
		t.Fatalf("save page size: %v", err)
	}
	if got := DefaultPageSize(context.Background(), db); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}

	// Upsert replaces the previous value.
	if err := SavePageSize(context.Background(), db, 100); err != nil {
		t.Fatalf("save page size again: %v", err)
	}
	if got := DefaultPageSize(context.Background(), db); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}
