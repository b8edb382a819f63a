package model

import (
	"fmt"
	"strings"
)

// DocumentStatus is the review state of a single uploaded document.
// Values are canonical lowercase; external input is normalized via ParseDocumentStatus.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// ParseDocumentStatus normalizes an externally supplied status string.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case DocumentPending:
		return DocumentPending, nil
	case DocumentApproved:
		return DocumentApproved, nil
	case DocumentRejected:
		return DocumentRejected, nil
	}
	return "", fmt.Errorf("unknown document status %q", s)
}

// StoreStatus is the verification state of a store as a whole.
type StoreStatus string

const (
	StorePending     StoreStatus = "pending"
	StoreUnderReview StoreStatus = "under_review"
	StoreApproved    StoreStatus = "approved"
	StoreRejected    StoreStatus = "rejected"
)

// ParseStoreStatus normalizes an externally supplied store status string.
func ParseStoreStatus(s string) (StoreStatus, error) {
	switch StoreStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StorePending:
		return StorePending, nil
	case StoreUnderReview:
		return StoreUnderReview, nil
	case StoreApproved:
		return StoreApproved, nil
	case StoreRejected:
		return StoreRejected, nil
	}
	return "", fmt.Errorf("unknown store status %q", s)
}
