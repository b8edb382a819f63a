package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory stand-in for the postgres repositories and the
// object store, with the same guarded-write semantics. A single mutex plays
// the role of the database's row locks, which makes it usable from concurrent
// tests.
type fakeBackend struct {
	mu      sync.Mutex
	stores  map[string]model.Store
	docs    map[string]model.DocumentRecord
	blobs   map[string][]byte
	audit   []model.AuditLogEntry
	auditID int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		stores: make(map[string]model.Store),
		docs:   make(map[string]model.DocumentRecord),
		blobs:  make(map[string][]byte),
	}
}

func (f *fakeBackend) appendAudit(e model.AuditLogEntry) {
	f.auditID++
	e.ID = f.auditID
	f.audit = append(f.audit, e)
}

func (f *fakeBackend) seedStore(id string, status model.StoreStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores[id] = model.Store{ID: id, Name: "Store " + id, Status: status}
}

// storage.Storage

func (f *fakeBackend) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return storage.ObjectInfo{Key: key, Size: int64(len(data)), ContentType: opt.ContentType}, nil
}

func (f *fakeBackend) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, key)
	return nil
}

func (f *fakeBackend) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blobs[key]; !ok {
		return "", errors.New("no such object")
	}
	return "https://blobs.test/" + key, nil
}

// repository.StoreRepository

type fakeStoreRepo struct{ b *fakeBackend }

func (r fakeStoreRepo) Create(ctx context.Context, store *model.Store, audit model.AuditLogEntry) (*model.Store, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.stores[store.ID] = *store
	r.b.appendAudit(audit)
	out := *store
	return &out, nil
}

func (r fakeStoreRepo) FindByID(ctx context.Context, id string) (*model.Store, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	s, ok := r.b.stores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r fakeStoreRepo) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Store], error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	out := &repository.PageResult[model.Store]{Total: len(r.b.stores)}
	for _, s := range r.b.stores {
		out.Items = append(out.Items, s)
	}
	return out, nil
}

func (r fakeStoreRepo) UpdateStatus(ctx context.Context, id string, from []model.StoreStatus, to model.StoreStatus, reason string, audit model.AuditLogEntry) (*model.Store, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	s, ok := r.b.stores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	allowed := false
	for _, st := range from {
		if s.Status == st {
			allowed = true
		}
	}
	if !allowed {
		return nil, repository.ErrConditionFailed
	}
	s.Status = to
	s.RejectionReason = reason
	r.b.stores[id] = s
	r.b.appendAudit(audit)
	return &s, nil
}

func (r fakeStoreRepo) ApproveIfEligible(ctx context.Context, id string, required []model.DocumentKind, audit model.AuditLogEntry) (*model.Store, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	s, ok := r.b.stores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if s.Status == model.StoreApproved {
		return nil, repository.ErrConditionFailed
	}
	approved := make(map[model.DocumentKind]bool)
	for _, d := range r.b.docs {
		if d.StoreID == id && d.Status == model.DocumentApproved {
			approved[d.Kind] = true
		}
	}
	for _, k := range required {
		if !approved[k] {
			return nil, repository.ErrConditionFailed
		}
	}
	s.Status = model.StoreApproved
	s.RejectionReason = ""
	r.b.stores[id] = s
	r.b.appendAudit(audit)
	return &s, nil
}

// repository.DocumentRepository

type fakeDocRepo struct{ b *fakeBackend }

func (r fakeDocRepo) Upsert(ctx context.Context, doc *model.DocumentRecord, audit model.AuditLogEntry) (*model.DocumentRecord, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	stored := *doc
	if doc.Kind != model.KindOther {
		for id, existing := range r.b.docs {
			if existing.StoreID == doc.StoreID && existing.Kind == doc.Kind {
				if existing.Status != model.DocumentRejected {
					return nil, repository.ErrConditionFailed
				}
				stored.ID = id
			}
		}
	}
	r.b.docs[stored.ID] = stored
	if s, ok := r.b.stores[doc.StoreID]; ok && s.Status == model.StorePending {
		s.Status = model.StoreUnderReview
		r.b.stores[doc.StoreID] = s
	}
	r.b.appendAudit(audit)
	return &stored, nil
}

func (r fakeDocRepo) FindByID(ctx context.Context, id string) (*model.DocumentRecord, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	d, ok := r.b.docs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (r fakeDocRepo) FindByStoreKind(ctx context.Context, storeID string, kind model.DocumentKind) (*model.DocumentRecord, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, d := range r.b.docs {
		if d.StoreID == storeID && d.Kind == kind {
			out := d
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r fakeDocRepo) ListByStore(ctx context.Context, storeID string) ([]model.DocumentRecord, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	var out []model.DocumentRecord
	for _, d := range r.b.docs {
		if d.StoreID == storeID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r fakeDocRepo) UpdateStatus(ctx context.Context, id string, from, to model.DocumentStatus, note string, audit model.AuditLogEntry) (*model.DocumentRecord, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	d, ok := r.b.docs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if d.Status != from {
		return nil, repository.ErrConditionFailed
	}
	d.Status = to
	d.RejectionNote = note
	r.b.docs[id] = d
	r.b.appendAudit(audit)
	return &d, nil
}

func (r fakeDocRepo) Delete(ctx context.Context, id string, audit model.AuditLogEntry) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if _, ok := r.b.docs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.b.docs, id)
	r.b.appendAudit(audit)
	return nil
}

// repository.AuditRepository

type fakeAuditRepo struct{ b *fakeBackend }

func (r fakeAuditRepo) ListByStore(ctx context.Context, storeID string) ([]model.AuditLogEntry, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	var out []model.AuditLogEntry
	for i := len(r.b.audit) - 1; i >= 0; i-- {
		if r.b.audit[i].StoreID == storeID {
			out = append(out, r.b.audit[i])
		}
	}
	return out, nil
}

func newWorkflow(b *fakeBackend) VerificationService {
	return NewVerificationService(b, fakeStoreRepo{b}, fakeDocRepo{b}, fakeAuditRepo{b})
}

func upload(t *testing.T, svc VerificationService, storeID string, kind model.DocumentKind) *model.DocumentRecord {
	t.Helper()
	doc, err := svc.UploadDocument(context.Background(), storeID, kind, strings.NewReader("file "+string(kind)), string(kind)+".pdf", "application/pdf", 9, testOwner)
	require.NoError(t, err)
	return doc
}

func TestWorkflow_FullApprovalPath(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seedStore(testStoreID, model.StorePending)
	svc := newWorkflow(b)

	var docIDs []string
	for _, kind := range model.RequiredKinds() {
		docIDs = append(docIDs, upload(t, svc, testStoreID, kind).ID)
	}

	// First upload moves the store out of pending.
	view, err := svc.View(ctx, testStoreID)
	require.NoError(t, err)
	assert.Equal(t, model.StoreUnderReview, view.Store.Status)
	assert.False(t, view.Eligible)

	// Store approval must fail while anything is still pending.
	_, err = svc.ApproveStore(ctx, testStoreID, testAdmin)
	assert.ErrorIs(t, err, ErrNotEligible)

	for _, id := range docIDs {
		_, err := svc.ApproveDocument(ctx, id, testAdmin)
		require.NoError(t, err)
	}

	store, err := svc.ApproveStore(ctx, testStoreID, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.StoreApproved, store.Status)

	// Every accepted operation left exactly one history line, newest first:
	// 4 uploads + 4 document approvals + 1 store approval.
	view, err = svc.View(ctx, testStoreID)
	require.NoError(t, err)
	require.Len(t, view.AuditLog, 9)
	assert.Equal(t, "store approved", view.AuditLog[0].Action)
	for i := 1; i < len(view.AuditLog); i++ {
		assert.Greater(t, view.AuditLog[i-1].ID, view.AuditLog[i].ID)
	}
}

func TestWorkflow_RejectionAndReupload(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seedStore(testStoreID, model.StoreUnderReview)
	svc := newWorkflow(b)

	doc := upload(t, svc, testStoreID, model.KindTaxProof)
	firstPath := doc.StoragePath

	// Locked while pending.
	_, err := svc.UploadDocument(ctx, testStoreID, model.KindTaxProof, strings.NewReader("x"), "t.pdf", "application/pdf", 1, testOwner)
	assert.ErrorIs(t, err, ErrDocumentLocked)

	_, err = svc.RejectDocument(ctx, doc.ID, testAdmin, "unreadable")
	require.NoError(t, err)

	// Rejection unlocks the slot; the replacement keeps one live record of
	// the kind and the superseded blob is cleaned up.
	replaced := upload(t, svc, testStoreID, model.KindTaxProof)
	assert.Equal(t, doc.ID, replaced.ID)
	assert.Equal(t, model.DocumentPending, replaced.Status)
	assert.NotEqual(t, firstPath, replaced.StoragePath)

	b.mu.Lock()
	_, oldBlob := b.blobs[firstPath]
	_, newBlob := b.blobs[replaced.StoragePath]
	b.mu.Unlock()
	assert.False(t, oldBlob)
	assert.True(t, newBlob)

	// Approval locks the slot for good.
	_, err = svc.ApproveDocument(ctx, replaced.ID, testAdmin)
	require.NoError(t, err)
	_, err = svc.UploadDocument(ctx, testStoreID, model.KindTaxProof, strings.NewReader("x"), "t.pdf", "application/pdf", 1, testOwner)
	assert.ErrorIs(t, err, ErrDocumentLocked)
}

func TestWorkflow_StoreRejectionLeavesDocuments(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seedStore(testStoreID, model.StoreUnderReview)
	svc := newWorkflow(b)

	doc := upload(t, svc, testStoreID, model.KindIdentityProof)
	_, err := svc.ApproveDocument(ctx, doc.ID, testAdmin)
	require.NoError(t, err)

	store, err := svc.RejectStore(ctx, testStoreID, testAdmin, "mismatched owner details")
	require.NoError(t, err)
	assert.Equal(t, model.StoreRejected, store.Status)
	assert.Equal(t, "mismatched owner details", store.RejectionReason)

	view, err := svc.View(ctx, testStoreID)
	require.NoError(t, err)
	require.Len(t, view.Documents, 1)
	assert.Equal(t, model.DocumentApproved, view.Documents[0].Status)

	// Re-rejecting a non-approved store is allowed.
	_, err = svc.RejectStore(ctx, testStoreID, testAdmin, "second look, still no")
	assert.NoError(t, err)
}

func TestWorkflow_ApprovedStoreRefusesRejection(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seedStore(testStoreID, model.StoreUnderReview)
	svc := newWorkflow(b)

	for _, kind := range model.RequiredKinds() {
		doc := upload(t, svc, testStoreID, kind)
		_, err := svc.ApproveDocument(context.Background(), doc.ID, testAdmin)
		require.NoError(t, err)
	}
	_, err := svc.ApproveStore(ctx, testStoreID, testAdmin)
	require.NoError(t, err)

	_, err = svc.RejectStore(ctx, testStoreID, testAdmin, "too late")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.ApproveStore(ctx, testStoreID, testAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWorkflow_OtherDocumentsNeverGateApproval(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seedStore(testStoreID, model.StoreUnderReview)
	svc := newWorkflow(b)

	for _, kind := range model.RequiredKinds() {
		doc := upload(t, svc, testStoreID, kind)
		_, err := svc.ApproveDocument(ctx, doc.ID, testAdmin)
		require.NoError(t, err)
	}

	// Supplementary files may repeat and stay pending without blocking.
	upload(t, svc, testStoreID, model.KindOther)
	other := upload(t, svc, testStoreID, model.KindOther)
	_, err := svc.RejectDocument(ctx, other.ID, testAdmin, "not needed")
	require.NoError(t, err)

	store, err := svc.ApproveStore(ctx, testStoreID, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.StoreApproved, store.Status)
}

func TestWorkflow_ConcurrentDocumentDecisions(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seedStore(testStoreID, model.StoreUnderReview)
	svc := newWorkflow(b)

	doc := upload(t, svc, testStoreID, model.KindBusinessLicense)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = svc.ApproveDocument(ctx, doc.ID, testAdmin)
			} else {
				_, err = svc.RejectDocument(ctx, doc.ID, testAdmin, fmt.Sprintf("reviewer %d", i))
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	// Exactly one decision wins; every loser sees the transition refusal.
	won := 0
	for err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, won)

	stored, err := fakeDocRepo{b}.FindByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, []model.DocumentStatus{model.DocumentApproved, model.DocumentRejected}, stored.Status)

	// One upload plus exactly one decision in the history.
	view, err := svc.View(ctx, testStoreID)
	require.NoError(t, err)
	assert.Len(t, view.AuditLog, 2)
}

func TestWorkflow_ConcurrentUploadsOfSameKind(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.seedStore(testStoreID, model.StoreUnderReview)
	svc := newWorkflow(b)

	const attempts = 6
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UploadDocument(ctx, testStoreID, model.KindStorefrontPhoto, strings.NewReader("scan"), "s.jpg", "image/jpeg", 4, testOwner)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	won := 0
	for err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrDocumentLocked)
		}
	}
	assert.Equal(t, 1, won)

	// Exactly one live record of the kind, and losers' blobs were rolled
	// back so storage holds just the winner's object.
	records, err := fakeDocRepo{b}.ListByStore(ctx, testStoreID)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	b.mu.Lock()
	blobCount := len(b.blobs)
	b.mu.Unlock()
	assert.Equal(t, 1, blobCount)
}
