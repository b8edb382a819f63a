package mocks

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) Register(ctx context.Context, name, owner, category string) (*model.Store, error) {
	args := m.Called(ctx, name, owner, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreService) Get(ctx context.Context, id string) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreService) List(ctx context.Context, limit, offset int) (*service.StoreListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StoreListResult), args.Error(1)
}
