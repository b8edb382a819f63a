package model

import "time"

// DocumentRecord is the review metadata for one uploaded piece of evidence.
// For required kinds there is at most one live record per (store, kind);
// re-uploads replace the record in place. Kind "other" may repeat.
type DocumentRecord struct {
	ID            string         `json:"id"`
	StoreID       string         `json:"store_id"`
	Kind          DocumentKind   `json:"kind"`
	StoragePath   string         `json:"storage_path"`
	Size          int64          `json:"size"`
	ContentType   string         `json:"content_type"`
	Status        DocumentStatus `json:"status"`
	RejectionNote string         `json:"rejection_note,omitempty"`
	UploadedBy    string         `json:"uploaded_by"`
	UploadedAt    time.Time      `json:"uploaded_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Locked reports whether the record blocks a new upload of its kind.
// A document under review or already approved must not be overwritten.
func (d DocumentRecord) Locked() bool {
	return d.Status == DocumentPending || d.Status == DocumentApproved
}
