package settings

import (
	"context"
	"strconv"

	"github.com/uptrace/bun"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/sqlite"
	"stockboard/models"
)

const pageSizeKey = "default_page_size"

// DefaultPageSize returns the stored rows-per-page preference, falling
// back to the list-page default when unset or unreadable.
func DefaultPageSize(ctx context.Context, db *sqlite.DB) int {
	var value string
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT value FROM settings WHERE key = ?`, pageSizeKey).Scan(ctx, &value)
	})
	if err != nil {
		return listpage.DefaultPageSize
	}
	size, err := strconv.Atoi(value)
	if err != nil || size < 1 {
		return listpage.DefaultPageSize
	}
	return size
}

// SavePageSize upserts the rows-per-page preference.
func SavePageSize(ctx context.Context, db *sqlite.DB, size int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		setting := &models.Setting{Key: pageSizeKey, Value: strconv.Itoa(size)}
		_, err := tx.NewInsert().
			Model(setting).
			On("CONFLICT (key) DO UPDATE").
			Set("value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP").
			Exec(ctx)
		return err
	})
}
