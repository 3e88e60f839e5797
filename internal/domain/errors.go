package domain

import "errors"

var (
	// ErrInvalidPropertyID indicates a malformed property identifier from
	// external input. User-correctable.
	ErrInvalidPropertyID = errors.New("invalid property id")

	// ErrNoTenant indicates the caller's identity carries no tenant.
	// Requests without a tenant are rejected, never defaulted.
	ErrNoTenant = errors.New("caller is not associated with a tenant")

	// ErrInvalidTenant indicates an empty or sentinel-like tenant id reached
	// cache key derivation. Security-relevant: surfaced to callers as an
	// opaque internal error, logged with full detail server-side.
	ErrInvalidTenant = errors.New("invalid tenant id")

	// ErrDataSourceUnavailable indicates a transient data source failure.
	// Callers may retry; the service never substitutes data for it.
	ErrDataSourceUnavailable = errors.New("data source unavailable")

	// ErrCacheMiss signals an absent cache entry. Internal to the cache
	// read-through path, never surfaced to callers.
	ErrCacheMiss = errors.New("cache miss")

	// ErrTenantMismatch indicates a summary carrying a different tenant than
	// the one requested. A fatal integrity fault: never served, never
	// auto-corrected.
	ErrTenantMismatch = errors.New("summary tenant does not match requested tenant")
)
