package service

import "github.com/NoirPrimordial7/nearnest-sub000/internal/model"

// Eligible reports whether every required kind has an approved document
// record. It is a pure function over the given records: nothing is cached,
// so the answer always reflects the snapshot the caller just read.
// Non-required records never affect the result.
func Eligible(records []model.DocumentRecord, required []model.DocumentKind) bool {
	return len(MissingKinds(records, required)) == 0
}

// MissingKinds returns the required kinds that still block store approval:
// kinds with no record at all, or whose record is not approved. The result
// preserves the order of the required set.
func MissingKinds(records []model.DocumentRecord, required []model.DocumentKind) []model.DocumentKind {
	approved := make(map[model.DocumentKind]bool, len(required))
	for _, rec := range records {
		if rec.Status == model.DocumentApproved {
			approved[rec.Kind] = true
		}
	}

	var missing []model.DocumentKind
	for _, k := range required {
		if !approved[k] {
			missing = append(missing, k)
		}
	}
	return missing
}
