package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
)

// StoreListResult is the service-level DTO for paginated stores.
type StoreListResult struct {
	Items []model.Store `json:"data"`
	Total int           `json:"total"`
}

// StoreService covers the onboarding glue around the verification core:
// registering a store and browsing the store roster.
type StoreService interface {
	// Register creates a store with verification status pending.
	Register(ctx context.Context, name, owner, category string) (*model.Store, error)

	// Get returns a single store by its ID.
	Get(ctx context.Context, id string) (*model.Store, error)

	// List returns stores using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*StoreListResult, error)
}

type storeService struct {
	repo repository.StoreRepository
}

// NewStoreService constructs a new StoreService.
func NewStoreService(repo repository.StoreRepository) StoreService {
	return &storeService{repo: repo}
}

var ErrNameRequired = errors.New("name is required")

func (s *storeService) Register(ctx context.Context, name, owner, category string) (*model.Store, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if owner == "" {
		return nil, ErrActorRequired
	}

	now := time.Now().UTC()
	store := &model.Store{
		ID:        uuid.New().String(),
		Name:      name,
		Owner:     owner,
		Category:  category,
		Status:    model.StorePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, store, auditEntry(store.ID, owner, "store registered"))
}

func (s *storeService) Get(ctx context.Context, id string) (*model.Store, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) List(ctx context.Context, limit, offset int) (*StoreListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &StoreListResult{Items: res.Items, Total: res.Total}, nil
}
