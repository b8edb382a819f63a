package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic;
// the upload lock and transition guards are expressed as WHERE clauses so the
// precondition check and the write are one atomic statement.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, store_id, kind, storage_path, size, content_type, status, COALESCE(rejection_note, ''), uploaded_by, uploaded_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.DocumentRecord, error) {
	var d model.DocumentRecord
	if err := row.Scan(
		&d.ID,
		&d.StoreID,
		&d.Kind,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.Status,
		&d.RejectionNote,
		&d.UploadedBy,
		&d.UploadedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Upsert writes a document record. Required kinds go through a guarded upsert
// against the partial unique index on (store_id, kind): the conflict branch
// only fires while the existing row is rejected, which is exactly the upload
// lock rule. A re-upload keeps the original row ID. Kind "other" has no
// uniqueness and always inserts.
func (r *DocumentPostgres) Upsert(ctx context.Context, doc *model.DocumentRecord, audit model.AuditLogEntry) (*model.DocumentRecord, error) {
	const qInsert = `
		INSERT INTO store_documents (id, store_id, kind, storage_path, size, content_type, status, uploaded_by, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns

	const qUpsert = `
		INSERT INTO store_documents (id, store_id, kind, storage_path, size, content_type, status, uploaded_by, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (store_id, kind) WHERE kind <> 'other'
		DO UPDATE SET
			storage_path = EXCLUDED.storage_path,
			size = EXCLUDED.size,
			content_type = EXCLUDED.content_type,
			status = EXCLUDED.status,
			rejection_note = NULL,
			uploaded_by = EXCLUDED.uploaded_by,
			uploaded_at = EXCLUDED.uploaded_at,
			updated_at = EXCLUDED.updated_at
		WHERE store_documents.status = 'rejected'
		RETURNING ` + documentColumns

	q := qUpsert
	if doc.Kind == model.KindOther {
		q = qInsert
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out, err := scanDocument(tx.QueryRowContext(ctx, q,
		doc.ID,
		doc.StoreID,
		doc.Kind,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.Status,
		doc.UploadedBy,
		doc.UploadedAt,
		doc.UpdatedAt,
	))
	if err != nil {
		if IsNoRowsError(err) {
			// Conflict row exists but is not rejected: upload is locked.
			return nil, repository.ErrConditionFailed
		}
		return nil, err
	}

	// A store enters review with its first document.
	const qReview = `
		UPDATE stores SET verification_status = 'under_review', updated_at = $2
		WHERE id = $1 AND verification_status = 'pending'
	`
	if _, err := tx.ExecContext(ctx, qReview, doc.StoreID, time.Now().UTC()); err != nil {
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

// FindByID fetches a single document record by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.DocumentRecord, error) {
	const q = `SELECT ` + documentColumns + ` FROM store_documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindByStoreKind fetches the live record for (store, kind).
func (r *DocumentPostgres) FindByStoreKind(ctx context.Context, storeID string, kind model.DocumentKind) (*model.DocumentRecord, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM store_documents
		WHERE store_id = $1 AND kind = $2
		ORDER BY uploaded_at DESC
		LIMIT 1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, storeID, kind))
}

// ListByStore returns all of a store's document records, oldest upload first.
func (r *DocumentPostgres) ListByStore(ctx context.Context, storeID string) ([]model.DocumentRecord, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM store_documents
		WHERE store_id = $1
		ORDER BY uploaded_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentRecord, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus performs a guarded transition: of two racing reviewers only
// the first to observe the from status matches the WHERE clause; the loser
// gets ErrConditionFailed instead of silently overwriting.
func (r *DocumentPostgres) UpdateStatus(ctx context.Context, id string, from, to model.DocumentStatus, note string, audit model.AuditLogEntry) (*model.DocumentRecord, error) {
	const q = `
		UPDATE store_documents
		SET status = $2, rejection_note = NULLIF($3, ''), updated_at = $4
		WHERE id = $1 AND status = $5
		RETURNING ` + documentColumns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out, err := scanDocument(tx.QueryRowContext(ctx, q, id, to, note, time.Now().UTC(), from))
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

// Delete removes a record by ID together with its audit entry.
func (r *DocumentPostgres) Delete(ctx context.Context, id string, audit model.AuditLogEntry) error {
	const q = `DELETE FROM store_documents WHERE id = $1`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

// classifyMiss tells a missing row apart from a failed guard after a
// conditional UPDATE matched nothing.
func (r *DocumentPostgres) classifyMiss(ctx context.Context, id string) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM store_documents WHERE id = $1`, id).Scan(&one); err != nil {
		return err
	}
	return repository.ErrConditionFailed
}
