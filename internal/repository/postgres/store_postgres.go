package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
)

// StorePostgres is a PostgreSQL implementation of repository.StoreRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type StorePostgres struct {
	db *sql.DB
}

// NewStorePostgres creates a new StorePostgres repository.
func NewStorePostgres(db *sql.DB) *StorePostgres {
	return &StorePostgres{db: db}
}

var _ repository.StoreRepository = (*StorePostgres)(nil)

const storeColumns = `id, name, owner, category, verification_status, COALESCE(rejection_reason, ''), created_at, updated_at`

func scanStore(row interface{ Scan(...any) error }) (*model.Store, error) {
	var s model.Store
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Owner,
		&s.Category,
		&s.Status,
		&s.RejectionReason,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new store row and its registration audit entry in one
// transaction.
func (r *StorePostgres) Create(ctx context.Context, store *model.Store, audit model.AuditLogEntry) (*model.Store, error) {
	const q = `
		INSERT INTO stores (id, name, owner, category, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + storeColumns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out, err := scanStore(tx.QueryRowContext(ctx, q,
		store.ID,
		store.Name,
		store.Owner,
		store.Category,
		store.Status,
		store.CreatedAt,
		store.UpdatedAt,
	))
	if err != nil {
		return nil, err
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single store by its ID.
func (r *StorePostgres) FindByID(ctx context.Context, id string) (*model.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return scanStore(r.db.QueryRowContext(ctx, q, id))
}

// List returns stores using LIMIT/OFFSET pagination and a total count.
func (r *StorePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Store], error) {
	const qCount = `SELECT COUNT(*) FROM stores`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + storeColumns + `
		FROM stores
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Store]{Items: items, Total: total}, nil
}

// UpdateStatus performs a guarded status change: the UPDATE only matches when
// the store currently is in one of the from statuses, so two racing callers
// cannot both win.
func (r *StorePostgres) UpdateStatus(ctx context.Context, id string, from []model.StoreStatus, to model.StoreStatus, reason string, audit model.AuditLogEntry) (*model.Store, error) {
	placeholders := make([]string, len(from))
	args := []any{id, to, reason, time.Now().UTC()}
	for i, st := range from {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, st)
	}
	q := `
		UPDATE stores
		SET verification_status = $2, rejection_reason = NULLIF($3, ''), updated_at = $4
		WHERE id = $1 AND verification_status IN (` + strings.Join(placeholders, ", ") + `)
		RETURNING ` + storeColumns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out, err := scanStore(tx.QueryRowContext(ctx, q, args...))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, err
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveIfEligible flips the store to approved in a single guarded UPDATE:
// the statement itself re-checks that every required kind has an approved
// document, so the eligibility snapshot and the status write cannot be
// interleaved by a concurrent rejection or re-upload.
func (r *StorePostgres) ApproveIfEligible(ctx context.Context, id string, required []model.DocumentKind, audit model.AuditLogEntry) (*model.Store, error) {
	placeholders := make([]string, len(required))
	args := []any{id, time.Now().UTC()}
	for i, k := range required {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, k)
	}
	args = append(args, len(required))
	q := `
		UPDATE stores
		SET verification_status = 'approved', rejection_reason = NULL, updated_at = $2
		WHERE id = $1
		  AND verification_status IN ('pending', 'under_review')
		  AND (
			SELECT COUNT(DISTINCT kind) FROM store_documents
			WHERE store_id = $1 AND status = 'approved'
			  AND kind IN (` + strings.Join(placeholders, ", ") + `)
		  ) = $` + fmt.Sprintf("%d", len(args)) + `
		RETURNING ` + storeColumns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out, err := scanStore(tx.QueryRowContext(ctx, q, args...))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, err
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// classifyMiss tells a missing row apart from a failed guard after a
// conditional UPDATE matched nothing.
func (r *StorePostgres) classifyMiss(ctx context.Context, id string) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM stores WHERE id = $1`, id).Scan(&one); err != nil {
		return err
	}
	return repository.ErrConditionFailed
}
