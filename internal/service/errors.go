package service

import (
	"errors"
	"fmt"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrActorRequired = errors.New("actor is required")
	ErrReaderNil     = errors.New("reader is nil")

	ErrStoreNotFound    = errors.New("store not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrProductNotFound  = errors.New("product not found")

	// ErrDocumentLocked means an upload was attempted while the document is
	// pending review or already approved. Only rejected (or absent) documents
	// accept an upload.
	ErrDocumentLocked = errors.New("document is locked for upload")

	// ErrInvalidTransition means an approve/reject was attempted outside the
	// pending status, including losing a double-submission race.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotEligible means store approval was attempted while at least one
	// required document kind is missing or not approved.
	ErrNotEligible = errors.New("store is not eligible for approval")
)

// NotEligibleError wraps ErrNotEligible with the required kinds that still
// block approval, so callers can show the missing-document list.
type NotEligibleError struct {
	Missing []model.DocumentKind
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("store is not eligible for approval: missing approved %v", e.Missing)
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}
