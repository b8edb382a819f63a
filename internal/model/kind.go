package model

import (
	"fmt"
	"strings"
)

// DocumentKind is a category of onboarding evidence a store can submit.
type DocumentKind string

const (
	KindIdentityProof   DocumentKind = "identity_proof"
	KindTaxProof        DocumentKind = "tax_proof"
	KindBusinessLicense DocumentKind = "business_license"
	KindStorefrontPhoto DocumentKind = "storefront_photo"
	// KindOther is a catch-all for supporting material. It is never part of the
	// required set and a store may hold any number of records of this kind.
	KindOther DocumentKind = "other"
)

// RequiredKinds returns the document kinds that must all be approved before a
// store itself can be approved. The slice is a fresh copy on every call.
func RequiredKinds() []DocumentKind {
	return []DocumentKind{
		KindIdentityProof,
		KindTaxProof,
		KindBusinessLicense,
		KindStorefrontPhoto,
	}
}

// ParseDocumentKind normalizes an externally supplied kind string.
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIdentityProof:
		return KindIdentityProof, nil
	case KindTaxProof:
		return KindTaxProof, nil
	case KindBusinessLicense:
		return KindBusinessLicense, nil
	case KindStorefrontPhoto:
		return KindStorefrontPhoto, nil
	case KindOther:
		return KindOther, nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// IsRequired reports whether k belongs to the required set.
func (k DocumentKind) IsRequired() bool {
	for _, rk := range RequiredKinds() {
		if k == rk {
			return true
		}
	}
	return false
}
