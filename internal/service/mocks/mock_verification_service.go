package mocks

import (
	"context"
	"io"
	"time"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) UploadDocument(ctx context.Context, storeID string, kind model.DocumentKind, r io.Reader, originalFilename, contentType string, size int64, actor string) (*model.DocumentRecord, error) {
	args := m.Called(ctx, storeID, kind, r, originalFilename, contentType, size, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRecord), args.Error(1)
}

func (m *MockVerificationService) ApproveDocument(ctx context.Context, docID, actor string) (*model.DocumentRecord, error) {
	args := m.Called(ctx, docID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRecord), args.Error(1)
}

func (m *MockVerificationService) RejectDocument(ctx context.Context, docID, actor, reason string) (*model.DocumentRecord, error) {
	args := m.Called(ctx, docID, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRecord), args.Error(1)
}

func (m *MockVerificationService) RemoveDocument(ctx context.Context, docID, actor string) error {
	args := m.Called(ctx, docID, actor)
	return args.Error(0)
}

func (m *MockVerificationService) ApproveStore(ctx context.Context, storeID, actor string) (*model.Store, error) {
	args := m.Called(ctx, storeID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockVerificationService) RejectStore(ctx context.Context, storeID, actor, reason string) (*model.Store, error) {
	args := m.Called(ctx, storeID, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockVerificationService) View(ctx context.Context, storeID string) (*service.VerificationView, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerificationView), args.Error(1)
}

func (m *MockVerificationService) DocumentDownloadURL(ctx context.Context, docID string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, docID, expiry)
	return args.String(0), args.Error(1)
}
