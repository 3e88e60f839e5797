package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/propstack/revenue-summary/internal/adapter/metrics"
	"github.com/propstack/revenue-summary/internal/domain"
)

type identityCacheEntry struct {
	identity  domain.Identity
	found     bool
	expiresAt time.Time
}

// IdentityRepository implements domain.IdentityRepository using PostgreSQL
// as the source of truth and an in-memory, time-based cache.
//
// tenant_id is nullable in the schema: a caller provisioned without a
// tenant resolves to an identity with an empty TenantID, which downstream
// layers reject explicitly. It is never substituted with a placeholder.
type IdentityRepository struct {
	db       *sql.DB
	logger   *slog.Logger
	cache    map[string]identityCacheEntry
	mu       sync.RWMutex
	cacheTTL time.Duration
	metrics  *metrics.RevenueMetrics
}

// NewIdentityRepository creates a new PostgreSQL identity repository.
func NewIdentityRepository(db *sql.DB, logger *slog.Logger, cacheTTL time.Duration, m *metrics.RevenueMetrics) *IdentityRepository {
	return &IdentityRepository{
		db:       db,
		logger:   logger.With("component", "identity_repository"),
		cache:    make(map[string]identityCacheEntry),
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

// Lookup resolves an API key to a caller identity. It first checks the
// local cache and falls back to the database when the key is not cached or
// the entry has expired.
func (r *IdentityRepository) Lookup(ctx context.Context, apiKey string) (domain.Identity, bool, error) {
	// 1. Check cache with a read lock
	r.mu.RLock()
	entry, cached := r.cache[apiKey]
	r.mu.RUnlock()

	if cached && time.Now().Before(entry.expiresAt) {
		if r.metrics != nil {
			r.metrics.IdentityCacheHits.Inc()
		}
		return entry.identity, entry.found, nil
	}

	if r.metrics != nil {
		r.metrics.IdentityCacheMisses.Inc()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check in case another goroutine populated it while waiting for
	// the lock
	entry, cached = r.cache[apiKey]
	if cached && time.Now().Before(entry.expiresAt) {
		return entry.identity, entry.found, nil
	}

	// 2. Query the database. A key is usable if it exists, is active, and
	// has not expired.
	query := `SELECT email, COALESCE(tenant_id, '') FROM api_keys
		WHERE key = $1 AND is_active = true AND (expires_at IS NULL OR expires_at > NOW())`

	var identity domain.Identity
	found := true
	err := r.db.QueryRowContext(ctx, query, apiKey).Scan(&identity.Email, &identity.TenantID)
	if errors.Is(err, sql.ErrNoRows) {
		identity, found = domain.Identity{}, false
	} else if err != nil {
		r.logger.Error("failed to look up API key in database", "error", err)
		// Don't cache errors, let the next request retry from the DB
		return domain.Identity{}, false, err
	}

	// 3. Update cache
	r.cache[apiKey] = identityCacheEntry{
		identity:  identity,
		found:     found,
		expiresAt: time.Now().Add(r.cacheTTL),
	}

	return identity, found, nil
}
