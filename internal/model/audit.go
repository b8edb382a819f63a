package model

import "time"

// AuditLogEntry is one immutable line of a store's verification history.
// Entries are append-only; the sequence preserves the order in which
// transitions were accepted.
type AuditLogEntry struct {
	ID        int64     `json:"id"`
	StoreID   string    `json:"store_id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
