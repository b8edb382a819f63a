package mocks

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) ListByStore(ctx context.Context, storeID string) ([]model.AuditLogEntry, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogEntry), args.Error(1)
}
