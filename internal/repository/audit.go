package repository

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
)

// AuditRepository is the read side of the append-only verification history.
// Entries are written exclusively by the store/document mutators as part of
// their transactions; nothing edits or removes them afterwards.
type AuditRepository interface {
	// ListByStore returns a store's audit entries newest first.
	ListByStore(ctx context.Context, storeID string) ([]model.AuditLogEntry, error)
}
