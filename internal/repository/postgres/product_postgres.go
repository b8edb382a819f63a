package postgres

import (
	"context"
	"database/sql"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository"
)

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

const productColumns = `id, store_id, name, COALESCE(sku, ''), price_cents, quantity, in_stock, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(
		&p.ID,
		&p.StoreID,
		&p.Name,
		&p.SKU,
		&p.PriceCents,
		&p.Quantity,
		&p.InStock,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product row and returns the stored record.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (id, store_id, name, sku, price_cents, quantity, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
		RETURNING ` + productColumns
	return scanProduct(r.db.QueryRowContext(ctx, q,
		p.ID,
		p.StoreID,
		p.Name,
		p.SKU,
		p.PriceCents,
		p.Quantity,
		p.InStock,
		p.CreatedAt,
		p.UpdatedAt,
	))
}

// FindByID fetches a single product by its ID.
func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

// ListByStore returns a store's products using LIMIT/OFFSET pagination.
func (r *ProductPostgres) ListByStore(ctx context.Context, storeID string, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	const qCount = `SELECT COUNT(*) FROM products WHERE store_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, storeID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + productColumns + `
		FROM products
		WHERE store_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, storeID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Product]{Items: items, Total: total}, nil
}

// Update overwrites the mutable fields of a product.
func (r *ProductPostgres) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		UPDATE products
		SET name = $2, sku = NULLIF($3, ''), price_cents = $4, quantity = $5, in_stock = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + productColumns
	return scanProduct(r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Name,
		p.SKU,
		p.PriceCents,
		p.Quantity,
		p.InStock,
		p.UpdatedAt,
	))
}

// Delete removes a product by ID. It does not return an error if the row does not exist.
func (r *ProductPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM products WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
