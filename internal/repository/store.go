package repository

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
)

// StoreRepository defines data access for stores using SQL queries only.
// No business logic here — strictly persistence operations. Mutators take the
// audit entry describing the change and must persist it in the same
// transaction as the state change itself; an operation whose audit write
// fails is a failed operation.
type StoreRepository interface {
	// Create inserts a new store row together with its registration audit
	// entry. Returns the stored record.
	Create(ctx context.Context, store *model.Store, audit model.AuditLogEntry) (*model.Store, error)

	// FindByID returns a store by its ID.
	FindByID(ctx context.Context, id string) (*model.Store, error)

	// List returns a paginated list of stores and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Store], error)

	// UpdateStatus moves a store to the given status, guarded by the set of
	// statuses the store is allowed to move from. Reason is stored as the
	// rejection reason (empty clears it). Returns ErrConditionFailed when the
	// store exists but is not in any of the from statuses, sql.ErrNoRows when
	// it does not exist.
	UpdateStatus(ctx context.Context, id string, from []model.StoreStatus, to model.StoreStatus, reason string, audit model.AuditLogEntry) (*model.Store, error)

	// ApproveIfEligible atomically sets the store to approved, guarded by the
	// store being pending or under review AND every required kind having an
	// approved document at the moment of the update. The eligibility check and
	// the status write happen in one statement so a concurrent document
	// rejection or re-upload cannot slip in between. Returns
	// ErrConditionFailed when the guard fails, sql.ErrNoRows when the store
	// does not exist.
	ApproveIfEligible(ctx context.Context, id string, required []model.DocumentKind, audit model.AuditLogEntry) (*model.Store, error)
}
