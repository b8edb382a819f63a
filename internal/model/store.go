package model

import "time"

// Store represents a merchant going through marketplace onboarding.
// This is a pure domain model with no database-specific dependencies or tags.
type Store struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Owner           string      `json:"owner"`
	Category        string      `json:"category"`
	Status          StoreStatus `json:"status"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
