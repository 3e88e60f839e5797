package domain

import "regexp"

// Property ids are restricted to a conservative charset before they reach
// the core, and re-checked during cache key derivation.
var propertyIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,50}$`)

// ValidatePropertyID rejects property ids outside the allowed charset.
func ValidatePropertyID(propertyID string) error {
	if !propertyIDPattern.MatchString(propertyID) {
		return ErrInvalidPropertyID
	}
	return nil
}

// RevenueSummary is the per-property monthly revenue aggregate. It is the
// value cached under a tenant-scoped key and returned to the API layer.
type RevenueSummary struct {
	PropertyID string `json:"property_id"`
	TenantID   string `json:"tenant_id"`
	Total      Money  `json:"total"`
	Currency   string `json:"currency"`
	Count      int    `json:"count"`
	Period     string `json:"period"` // "YYYY-MM"
}
