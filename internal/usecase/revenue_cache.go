package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/propstack/revenue-summary/internal/adapter/metrics"
	"github.com/propstack/revenue-summary/internal/domain"
)

// RevenueCacheUseCase is the tenant-scoped read-through cache in front of
// the aggregator. Store unavailability degrades to direct aggregation;
// key-derivation failures never do.
type RevenueCacheUseCase struct {
	store   domain.CacheStore
	agg     *AggregateRevenueUseCase
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.RevenueMetrics
}

// NewRevenueCacheUseCase creates a new RevenueCacheUseCase.
func NewRevenueCacheUseCase(store domain.CacheStore, agg *AggregateRevenueUseCase, ttl time.Duration, logger *slog.Logger, m *metrics.RevenueMetrics) *RevenueCacheUseCase {
	return &RevenueCacheUseCase{
		store:   store,
		agg:     agg,
		ttl:     ttl,
		logger:  logger.With("component", "revenue_cache"),
		metrics: m,
	}
}

// Get returns the revenue summary for (propertyID, tenantID), served from
// the cache when possible. An invalid tenant id fails immediately: it is a
// security error, never swallowed as a cache miss. Any store failure is
// logged and treated as a miss, and a failed write-back after a fresh
// aggregation is non-fatal.
func (uc *RevenueCacheUseCase) Get(ctx context.Context, propertyID, tenantID string, year int, month time.Month) (domain.RevenueSummary, error) {
	key, err := domain.DeriveCacheKey(tenantID, propertyID)
	if err != nil {
		uc.logger.Error("cache key derivation rejected request",
			"property_id", propertyID, "error", err)
		return domain.RevenueSummary{}, err
	}

	payload, err := uc.store.Get(ctx, key)
	switch {
	case err == nil:
		var summary domain.RevenueSummary
		if jerr := json.Unmarshal(payload, &summary); jerr == nil {
			uc.logger.Debug("cache hit", "key", key)
			if uc.metrics != nil {
				uc.metrics.CacheHits.Inc()
			}
			return summary, nil
		}
		// Corrupt entries never surface as corrupt results.
		uc.logger.Warn("corrupt cache entry, recomputing", "key", key)
	case errors.Is(err, domain.ErrCacheMiss):
		uc.logger.Debug("cache miss", "key", key)
	default:
		uc.logger.Warn("cache read failed, falling back to direct aggregation",
			"key", key, "error", err)
		if uc.metrics != nil {
			uc.metrics.CacheReadErrors.Inc()
		}
	}
	if uc.metrics != nil {
		uc.metrics.CacheMisses.Inc()
	}

	summary, err := uc.agg.Compute(ctx, propertyID, tenantID, year, month)
	if err != nil {
		return domain.RevenueSummary{}, err
	}

	if encoded, jerr := json.Marshal(summary); jerr == nil {
		if serr := uc.store.SetWithTTL(ctx, key, encoded, uc.ttl); serr != nil {
			uc.logger.Warn("cache write failed, serving fresh result anyway",
				"key", key, "error", serr)
			if uc.metrics != nil {
				uc.metrics.CacheWriteErrors.Inc()
			}
		}
	}

	return summary, nil
}

// Invalidate removes every cached entry scoped to the tenant and returns
// the number of entries removed. Called by external collaborators when a
// tenant's underlying data changes; there is no automatic trigger.
func (uc *RevenueCacheUseCase) Invalidate(ctx context.Context, tenantID string) (int, error) {
	if strings.TrimSpace(tenantID) == "" {
		return 0, domain.ErrInvalidTenant
	}

	removed, err := uc.store.DeleteByPrefix(ctx, domain.TenantKeyPrefix(tenantID))
	if err != nil {
		uc.logger.Error("cache invalidation failed", "tenant_id", tenantID, "error", err)
		return 0, err
	}

	uc.logger.Info("invalidated tenant cache", "tenant_id", tenantID, "removed", removed)
	if uc.metrics != nil {
		uc.metrics.InvalidatedEntries.Add(float64(removed))
	}
	return removed, nil
}
