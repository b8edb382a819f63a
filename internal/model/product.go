package model

import "time"

// Product is a store-scoped inventory item. Plain CRUD data; no workflow
// rules attach to it.
type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"store_id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku,omitempty"`
	PriceCents int64     `json:"price_cents"`
	Quantity   int       `json:"quantity"`
	InStock    bool      `json:"in_stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
