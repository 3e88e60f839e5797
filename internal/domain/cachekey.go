package domain

import "strings"

const cacheKeyPrefix = "revenue:"

// Sentinel values that indicate a fallback placeholder rather than a real
// tenant id. A key derived from one of these would collide across tenants,
// so derivation fails fast instead.
var sentinelTenantIDs = map[string]struct{}{
	"default_tenant": {},
	"null":           {},
	"undefined":      {},
	"none":           {},
	"":               {},
}

// DeriveCacheKey builds the tenant-scoped cache key for a property's
// revenue summary. It is a pure function of (tenantID, propertyID) and is
// the invariant protecting cross-tenant cache isolation: no key is ever
// derived from an empty, whitespace-only, or sentinel-like tenant id.
func DeriveCacheKey(tenantID, propertyID string) (string, error) {
	if strings.TrimSpace(tenantID) == "" {
		return "", ErrInvalidTenant
	}
	if _, bad := sentinelTenantIDs[strings.ToLower(tenantID)]; bad {
		return "", ErrInvalidTenant
	}
	// Defense in depth: the API layer already validated the property id.
	if err := ValidatePropertyID(propertyID); err != nil {
		return "", err
	}
	return cacheKeyPrefix + tenantID + ":" + propertyID, nil
}

// TenantKeyPrefix returns the key prefix covering every cached entry of a
// tenant, used for invalidation.
func TenantKeyPrefix(tenantID string) string {
	return cacheKeyPrefix + tenantID + ":"
}
