package domain

import (
	"context"
	"time"
)

// ReservationRepository is the relational source of truth for revenue data.
// Both queries are scoped to exactly one tenant and one property per call.
type ReservationRepository interface {
	// PropertyTimezone returns the IANA timezone identifier of the property.
	// An unknown property yields an empty string and no error; the caller
	// falls back to UTC.
	PropertyTimezone(ctx context.Context, propertyID, tenantID string) (string, error)

	// SumReservations returns the exact decimal sum and count of reservation
	// amounts whose check-in instant falls in [startUTC, endUTC). Zero
	// matching rows yields (0.00, 0, nil).
	SumReservations(ctx context.Context, propertyID, tenantID string, startUTC, endUTC time.Time) (Money, int, error)
}

// CacheStore is the transport-level key/value store fronting the
// aggregator. Implementations bound each operation by a short timeout;
// absence of a key is signalled with ErrCacheMiss.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeleteByPrefix removes every key under the prefix and returns the
	// number of entries removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// IdentityRepository resolves an API credential to a caller identity.
// Implementations should cache lookups to reduce database load.
type IdentityRepository interface {
	// Lookup returns the identity for an active API key. The second return
	// value is false when the key is unknown or inactive.
	Lookup(ctx context.Context, apiKey string) (Identity, bool, error)
}
