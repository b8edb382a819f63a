package repository

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
)

// DocumentRepository defines data access for document records. Mutators
// persist their audit entry in the same transaction as the record change.
type DocumentRepository interface {
	// Upsert writes the record for (store, kind). For a required kind the
	// write is guarded: it succeeds only when no record exists yet or the
	// existing record is rejected, in which case the row is replaced in place
	// (status reset, rejection note cleared). A locked record yields
	// ErrConditionFailed. Kind "other" always inserts a new row.
	// A first successful write also moves a pending store to under_review.
	Upsert(ctx context.Context, doc *model.DocumentRecord, audit model.AuditLogEntry) (*model.DocumentRecord, error)

	// FindByID returns a document record by its ID.
	FindByID(ctx context.Context, id string) (*model.DocumentRecord, error)

	// FindByStoreKind returns the live record for (store, kind).
	// Only meaningful for required kinds, which hold at most one live record.
	FindByStoreKind(ctx context.Context, storeID string, kind model.DocumentKind) (*model.DocumentRecord, error)

	// ListByStore returns all document records for a store, oldest first.
	ListByStore(ctx context.Context, storeID string) ([]model.DocumentRecord, error)

	// UpdateStatus moves a record from one status to another, guarded by the
	// current status. The note is stored as the rejection note (empty
	// permitted). Returns ErrConditionFailed when the record exists but is
	// not in the from status, sql.ErrNoRows when it does not exist.
	UpdateStatus(ctx context.Context, id string, from, to model.DocumentStatus, note string, audit model.AuditLogEntry) (*model.DocumentRecord, error)

	// Delete removes a record by ID. Returns sql.ErrNoRows if the row did
	// not exist.
	Delete(ctx context.Context, id string, audit model.AuditLogEntry) error
}
