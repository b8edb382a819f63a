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

// ProductInput carries the mutable fields of an inventory item.
type ProductInput struct {
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	InStock    bool   `json:"in_stock"`
}

// ProductListResult is the service-level DTO for paginated products.
type ProductListResult struct {
	Items []model.Product `json:"data"`
	Total int             `json:"total"`
}

// ProductService is plain inventory CRUD scoped to a store.
type ProductService interface {
	Create(ctx context.Context, storeID string, in ProductInput) (*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	ListByStore(ctx context.Context, storeID string, limit, offset int) (*ProductListResult, error)
	Update(ctx context.Context, id string, in ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	products repository.ProductRepository
	stores   repository.StoreRepository
}

// NewProductService constructs a new ProductService.
func NewProductService(products repository.ProductRepository, stores repository.StoreRepository) ProductService {
	return &productService{products: products, stores: stores}
}

func (s *productService) Create(ctx context.Context, storeID string, in ProductInput) (*model.Product, error) {
	if storeID == "" {
		return nil, ErrIDRequired
	}
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Product{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		Name:       in.Name,
		SKU:        in.SKU,
		PriceCents: in.PriceCents,
		Quantity:   in.Quantity,
		InStock:    in.InStock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.products.Create(ctx, p)
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) ListByStore(ctx context.Context, storeID string, limit, offset int) (*ProductListResult, error) {
	if storeID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.products.ListByStore(ctx, storeID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *productService) Update(ctx context.Context, id string, in ProductInput) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	p := &model.Product{
		ID:         id,
		Name:       in.Name,
		SKU:        in.SKU,
		PriceCents: in.PriceCents,
		Quantity:   in.Quantity,
		InStock:    in.InStock,
		UpdatedAt:  time.Now().UTC(),
	}
	out, err := s.products.Update(ctx, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.products.Delete(ctx, id)
}
