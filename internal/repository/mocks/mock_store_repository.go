package mocks

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, store *model.Store, audit model.AuditLogEntry) (*model.Store, error) {
	args := m.Called(ctx, store, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Store], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Store]), args.Error(1)
}

func (m *MockStoreRepository) UpdateStatus(ctx context.Context, id string, from []model.StoreStatus, to model.StoreStatus, reason string, audit model.AuditLogEntry) (*model.Store, error) {
	args := m.Called(ctx, id, from, to, reason, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) ApproveIfEligible(ctx context.Context, id string, required []model.DocumentKind, audit model.AuditLogEntry) (*model.Store, error) {
	args := m.Called(ctx, id, required, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}
