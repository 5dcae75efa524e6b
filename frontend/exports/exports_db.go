package exports

import (
	"context"

	"github.com/uptrace/bun"

	"stockboard/infrastructure/sqlite"
)

// RunView is one row of the export history table.
type RunView struct {
	ID         int64  `bun:"id"`
	Username   string `bun:"username"`
	PageKey    string `bun:"page_key"`
	ExportType string `bun:"export_type"`
	Scope      string `bun:"scope"`
	RowCount   int64  `bun:"row_count"`
	CreatedAt  string `bun:"created_at"`
}

// LoadRecentRuns returns the newest export runs, capped at limit.
func LoadRecentRuns(ctx context.Context, db *sqlite.DB, limit int) ([]RunView, error) {
	if limit <= 0 {
		limit = 200
	}
	runs := make([]RunView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT er.id, COALESCE(u.username, 'unknown') AS username, er.page_key,
       er.export_type, er.scope, er.row_count, er.created_at
FROM export_runs er
LEFT JOIN users u ON u.id = er.user_id
ORDER BY er.id DESC
LIMIT ?`, limit).Scan(ctx, &runs)
	})
	return runs, err
}
