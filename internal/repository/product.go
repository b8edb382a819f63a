package repository

import (
	"context"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
)

// ProductRepository defines data access for store inventory items.
type ProductRepository interface {
	// Create inserts a new product row and returns the stored record.
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	// FindByID returns a product by its ID.
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// ListByStore returns a paginated list of a store's products and the
	// total row count.
	ListByStore(ctx context.Context, storeID string, pq PageQuery) (*PageResult[model.Product], error)

	// Update overwrites the mutable fields of a product and returns the
	// stored record. Returns sql.ErrNoRows if the row does not exist.
	Update(ctx context.Context, p *model.Product) (*model.Product, error)

	// Delete removes a product by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}
