package tenant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"stockboard/infrastructure/sqlite"
	"stockboard/models"
)

// ErrNoActiveLink means no tenant link row is marked active.
var ErrNoActiveLink = errors.New("no active tenant link configured")

// LoadActiveLink returns the single active backend connection.
func LoadActiveLink(ctx context.Context, db *sqlite.DB) (models.TenantLink, error) {
	var link models.TenantLink
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&link).Where("active = 1").Limit(1).Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return link, ErrNoActiveLink
	}
	return link, err
}

// UpsertLink stores a tenant link and makes it the active one. Used at
// startup when the connection is supplied through the environment.
func UpsertLink(ctx context.Context, db *sqlite.DB, link models.TenantLink) error {
	link.Active = true
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE tenant_links SET active = 0"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM tenant_links WHERE tenant_id = ?", link.TenantID); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&link).Exec(ctx)
		return err
	})
}
