package mocks

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Upsert(ctx context.Context, doc *model.DocumentRecord, audit model.AuditLogEntry) (*model.DocumentRecord, error) {
	args := m.Called(ctx, doc, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.DocumentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentRepository) FindByStoreKind(ctx context.Context, storeID string, kind model.DocumentKind) (*model.DocumentRecord, error) {
	args := m.Called(ctx, storeID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentRepository) ListByStore(ctx context.Context, storeID string) ([]model.DocumentRecord, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentRepository) UpdateStatus(ctx context.Context, id string, from, to model.DocumentStatus, note string, audit model.AuditLogEntry) (*model.DocumentRecord, error) {
	args := m.Called(ctx, id, from, to, note, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string, audit model.AuditLogEntry) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}
