package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
)

// IsNoRowsError reports whether err means an empty result set.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// insertAudit appends one history entry inside the caller's transaction.
// Every state-changing statement in this package pairs with exactly one call;
// if the append fails the surrounding transaction rolls back, so a committed
// transition is never missing from the log.
func insertAudit(ctx context.Context, tx *sql.Tx, e model.AuditLogEntry) error {
	const q = `
		INSERT INTO audit_log (store_id, action, actor, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)
	`
	_, err := tx.ExecContext(ctx, q, e.StoreID, e.Action, e.Actor, e.CreatedAt)
	return err
}
