package postgres

import (
	"context"
	"database/sql"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
)

// AuditPostgres is the read side of the audit_log table. Writes go through
// insertAudit inside the store/document mutator transactions only.
type AuditPostgres struct {
	db *sql.DB
}

// NewAuditPostgres creates a new AuditPostgres repository.
func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

// ListByStore returns a store's history newest first. The BIGSERIAL id
// reflects insertion order, which per store equals acceptance order.
func (r *AuditPostgres) ListByStore(ctx context.Context, storeID string) ([]model.AuditLogEntry, error) {
	const q = `
		SELECT id, store_id, action, COALESCE(actor, ''), created_at
		FROM audit_log
		WHERE store_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AuditLogEntry, 0)
	for rows.Next() {
		var e model.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.StoreID, &e.Action, &e.Actor, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
