package exports

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uptrace/bun"

	"stockboard/infrastructure/sqlite"
	"stockboard/models"
)

func openExportsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "exports-test.db")
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

func seedRun(t *testing.T, db *sqlite.DB, pageKey, exportType string, rows int64) {
	t.Helper()
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		run := &models.ExportRun{UserID: 1, PageKey: pageKey, ExportType: exportType, Scope: "all", RowCount: rows}
		_, err := tx.NewInsert().Model(run).Exec(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("seed export run: %v", err)
	}
}

func TestLoadRecentRuns_NewestFirstWithUnknownUser(t *testing.T) {
	db := openExportsTestDB(t)

	seedRun(t, db, "batches", "csv", 12)
	seedRun(t, db, "products", "pdf", 40)

	runs, err := LoadRecentRuns(context.Background(), db, 10)
	if err != nil {
		t.Fatalf("load runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].PageKey != "products" {
		t.Fatalf("expected newest run first, got %s", runs[0].PageKey)
	}
	if runs[0].Username != "unknown" {
		t.Fatalf("expected unknown username for missing user, got %q", runs[0].Username)
	}
	if runs[0].RowCount != 40 {
		t.Fatalf("expected 40 rows, got %d", runs[0].RowCount)
	}
}

func TestLoadRecentRuns_HonorsLimit(t *testing.T) {
	db := openExportsTestDB(t)

	for i := 0; i < 5; i++ {
		seedRun(t, db, "moves", "csv", int64(i))
	}

	runs, err := LoadRecentRuns(context.Background(), db, 3)
	if err != nil {
		t.Fatalf("load runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
}
