package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/storage"
)

// VerificationView is the read model for the admin review screen: the store,
// its documents, the freshly evaluated eligibility, and the audit history
// newest first.
type VerificationView struct {
	Store     model.Store            `json:"store"`
	Documents []model.DocumentRecord `json:"documents"`
	Eligible  bool                   `json:"eligible"`
	Missing   []model.DocumentKind   `json:"missing_kinds,omitempty"`
	AuditLog  []model.AuditLogEntry  `json:"audit_log"`
}

// VerificationService orchestrates the store verification workflow. It is
// the sole writer of document statuses and store verification statuses; all
// operations take an explicit actor identity, never ambient state.
type VerificationService interface {
	// UploadDocument stores the file in object storage and writes/replaces
	// the document record with status pending. Allowed only when no record
	// of the kind exists yet or the existing record is rejected; otherwise
	// it fails with ErrDocumentLocked. The blob write is rolled back if the
	// record write does not take effect.
	UploadDocument(ctx context.Context, storeID string, kind model.DocumentKind, r io.Reader, originalFilename, contentType string, size int64, actor string) (*model.DocumentRecord, error)

	// ApproveDocument moves a pending document to approved.
	ApproveDocument(ctx context.Context, docID, actor string) (*model.DocumentRecord, error)

	// RejectDocument moves a pending document to rejected and stores the
	// reason (empty permitted).
	RejectDocument(ctx context.Context, docID, actor, reason string) (*model.DocumentRecord, error)

	// RemoveDocument deletes a document record together with its underlying
	// blob.
	RemoveDocument(ctx context.Context, docID, actor string) error

	// ApproveStore marks the store approved. Eligibility is re-evaluated at
	// call time; failure yields a NotEligibleError listing the blocking kinds.
	ApproveStore(ctx context.Context, storeID, actor string) (*model.Store, error)

	// RejectStore marks the store rejected with a reason. Allowed while the
	// store is not approved; individual document statuses are untouched.
	RejectStore(ctx context.Context, storeID, actor, reason string) (*model.Store, error)

	// View returns the verification read model. No side effects.
	View(ctx context.Context, storeID string) (*VerificationView, error)

	// DocumentDownloadURL returns a presigned URL for a document's file.
	DocumentDownloadURL(ctx context.Context, docID string, expiry time.Duration) (string, error)
}

type verificationService struct {
	stores   repository.StoreRepository
	docs     repository.DocumentRepository
	history  repository.AuditRepository
	blobs    storage.Storage
	required []model.DocumentKind
}

// NewVerificationService constructs a VerificationService over the given
// collaborators. The required document set is fixed at construction.
func NewVerificationService(blobs storage.Storage, stores repository.StoreRepository, docs repository.DocumentRepository, history repository.AuditRepository) VerificationService {
	return &verificationService{
		stores:   stores,
		docs:     docs,
		history:  history,
		blobs:    blobs,
		required: model.RequiredKinds(),
	}
}

func auditEntry(storeID, actor, action string) model.AuditLogEntry {
	return model.AuditLogEntry{
		StoreID:   storeID,
		Actor:     actor,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *verificationService) UploadDocument(ctx context.Context, storeID string, kind model.DocumentKind, r io.Reader, originalFilename, contentType string, size int64, actor string) (*model.DocumentRecord, error) {
	if storeID == "" {
		return nil, ErrIDRequired
	}
	if actor == "" {
		return nil, ErrActorRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	// Cheap lock check before touching object storage. The guarded upsert
	// below remains the authoritative, race-safe check.
	var prior *model.DocumentRecord
	if kind != model.KindOther {
		existing, err := s.docs.FindByStoreKind(ctx, storeID, kind)
		switch {
		case err == nil:
			if existing.Locked() {
				return nil, ErrDocumentLocked
			}
			prior = existing
		case errors.Is(err, sql.ErrNoRows):
			// First upload of this kind.
		default:
			return nil, err
		}
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("stores", storeID, string(kind), uuid.New().String()+ext))

	objInfo, err := s.blobs.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	action := fmt.Sprintf("document %s uploaded", kind)
	if prior != nil {
		action = fmt.Sprintf("document %s re-uploaded", kind)
	}

	now := time.Now().UTC()
	doc := &model.DocumentRecord{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		Kind:        kind,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		Status:      model.DocumentPending,
		UploadedBy:  actor,
		UploadedAt:  now,
		UpdatedAt:   now,
	}
	stored, err := s.docs.Upsert(ctx, doc, auditEntry(storeID, actor, action))
	if err != nil {
		// The record did not change; remove the blob we just wrote so no
		// orphaned object stays behind.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("save document record failed: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, repository.ErrConditionFailed) {
			return nil, ErrDocumentLocked
		}
		return nil, fmt.Errorf("save document record: %w", err)
	}

	// A replacement leaves the previous blob unreferenced; clean it up
	// best-effort now that the new record is committed.
	if prior != nil && prior.StoragePath != stored.StoragePath {
		_ = s.blobs.Delete(ctx, prior.StoragePath)
	}
	return stored, nil
}

func (s *verificationService) ApproveDocument(ctx context.Context, docID, actor string) (*model.DocumentRecord, error) {
	if docID == "" {
		return nil, ErrIDRequired
	}
	if actor == "" {
		return nil, ErrActorRequired
	}

	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	action := fmt.Sprintf("document %s approved", doc.Kind)
	out, err := s.docs.UpdateStatus(ctx, docID, model.DocumentPending, model.DocumentApproved, "", auditEntry(doc.StoreID, actor, action))
	if err != nil {
		return nil, mapDocumentWriteErr(err)
	}
	return out, nil
}

func (s *verificationService) RejectDocument(ctx context.Context, docID, actor, reason string) (*model.DocumentRecord, error) {
	if docID == "" {
		return nil, ErrIDRequired
	}
	if actor == "" {
		return nil, ErrActorRequired
	}

	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	action := fmt.Sprintf("document %s rejected", doc.Kind)
	if reason != "" {
		action = fmt.Sprintf("document %s rejected: %s", doc.Kind, reason)
	}
	out, err := s.docs.UpdateStatus(ctx, docID, model.DocumentPending, model.DocumentRejected, reason, auditEntry(doc.StoreID, actor, action))
	if err != nil {
		return nil, mapDocumentWriteErr(err)
	}
	return out, nil
}

func (s *verificationService) RemoveDocument(ctx context.Context, docID, actor string) error {
	if docID == "" {
		return ErrIDRequired
	}
	if actor == "" {
		return ErrActorRequired
	}

	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDocumentNotFound
		}
		return err
	}

	// Blob first: a record pointing at a missing blob is recoverable by
	// re-upload, an unreferenced blob is not.
	if err := s.blobs.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}

	action := fmt.Sprintf("document %s removed", doc.Kind)
	if err := s.docs.Delete(ctx, docID, auditEntry(doc.StoreID, actor, action)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDocumentNotFound
		}
		return err
	}
	return nil
}

func (s *verificationService) ApproveStore(ctx context.Context, storeID, actor string) (*model.Store, error) {
	if storeID == "" {
		return nil, ErrIDRequired
	}
	if actor == "" {
		return nil, ErrActorRequired
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	// Evaluate on a fresh read so the caller gets the blocking kinds; the
	// guarded update below re-checks atomically and remains authoritative.
	records, err := s.docs.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if missing := MissingKinds(records, s.required); len(missing) > 0 {
		return nil, &NotEligibleError{Missing: missing}
	}

	out, err := s.stores.ApproveIfEligible(ctx, storeID, s.required, auditEntry(storeID, actor, "store approved"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		if errors.Is(err, repository.ErrConditionFailed) {
			// Lost a race: either a required document changed under us or
			// the store is already decided. Re-read to report which.
			records, lerr := s.docs.ListByStore(ctx, storeID)
			if lerr != nil {
				return nil, lerr
			}
			if missing := MissingKinds(records, s.required); len(missing) > 0 {
				return nil, &NotEligibleError{Missing: missing}
			}
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return out, nil
}

func (s *verificationService) RejectStore(ctx context.Context, storeID, actor, reason string) (*model.Store, error) {
	if storeID == "" {
		return nil, ErrIDRequired
	}
	if actor == "" {
		return nil, ErrActorRequired
	}

	action := "store rejected"
	if reason != "" {
		action = fmt.Sprintf("store rejected: %s", reason)
	}
	from := []model.StoreStatus{model.StorePending, model.StoreUnderReview, model.StoreRejected}
	out, err := s.stores.UpdateStatus(ctx, storeID, from, model.StoreRejected, reason, auditEntry(storeID, actor, action))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		if errors.Is(err, repository.ErrConditionFailed) {
			// Only an approved store refuses rejection.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return out, nil
}

func (s *verificationService) View(ctx context.Context, storeID string) (*VerificationView, error) {
	if storeID == "" {
		return nil, ErrIDRequired
	}

	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	records, err := s.docs.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	entries, err := s.history.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	missing := MissingKinds(records, s.required)
	return &VerificationView{
		Store:     *store,
		Documents: records,
		Eligible:  len(missing) == 0,
		Missing:   missing,
		AuditLog:  entries,
	}, nil
}

func (s *verificationService) DocumentDownloadURL(ctx context.Context, docID string, expiry time.Duration) (string, error) {
	if docID == "" {
		return "", ErrIDRequired
	}

	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrDocumentNotFound
		}
		return "", err
	}
	return s.blobs.PresignGet(ctx, doc.StoragePath, expiry)
}

func mapDocumentWriteErr(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrDocumentNotFound
	case errors.Is(err, repository.ErrConditionFailed):
		return ErrInvalidTransition
	default:
		return err
	}
}
