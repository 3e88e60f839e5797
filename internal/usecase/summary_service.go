package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/propstack/revenue-summary/internal/adapter/metrics"
	"github.com/propstack/revenue-summary/internal/domain"
)

// SummaryService is the single entry point consumed by the API layer. It
// orchestrates the cached aggregation and performs the final tenant
// integrity check on whatever comes back.
type SummaryService struct {
	cache       *RevenueCacheUseCase
	reportYear  int
	reportMonth time.Month
	now         func() time.Time
	logger      *slog.Logger
	metrics     *metrics.RevenueMetrics
}

// NewSummaryService creates a new SummaryService. A zero reportYear or
// reportMonth selects the current UTC month at request time.
func NewSummaryService(cache *RevenueCacheUseCase, reportYear int, reportMonth time.Month, logger *slog.Logger, m *metrics.RevenueMetrics) *SummaryService {
	return &SummaryService{
		cache:       cache,
		reportYear:  reportYear,
		reportMonth: reportMonth,
		now:         time.Now,
		logger:      logger.With("component", "summary_service"),
		metrics:     m,
	}
}

// GetSummary returns the revenue summary for (propertyID, tenantID).
//
// A summary that comes back carrying a different tenant id than the one
// requested means the cache isolation invariant was violated upstream; it
// is a fatal integrity fault, logged with full detail and never served.
func (s *SummaryService) GetSummary(ctx context.Context, propertyID, tenantID string) (domain.RevenueSummary, error) {
	if err := domain.ValidatePropertyID(propertyID); err != nil {
		return domain.RevenueSummary{}, err
	}
	if strings.TrimSpace(tenantID) == "" {
		return domain.RevenueSummary{}, domain.ErrNoTenant
	}

	year, month := s.reportPeriod()
	summary, err := s.cache.Get(ctx, propertyID, tenantID, year, month)
	if err != nil {
		return domain.RevenueSummary{}, err
	}

	if summary.TenantID != "" && summary.TenantID != tenantID {
		s.logger.Error("tenant mismatch in summary, refusing to serve",
			"requested_tenant", tenantID,
			"summary_tenant", summary.TenantID,
			"property_id", propertyID,
		)
		if s.metrics != nil {
			s.metrics.IntegrityFaults.Inc()
		}
		return domain.RevenueSummary{}, domain.ErrTenantMismatch
	}

	return summary, nil
}

// InvalidateTenant removes every cached summary for the tenant and returns
// the number of entries removed.
func (s *SummaryService) InvalidateTenant(ctx context.Context, tenantID string) (int, error) {
	return s.cache.Invalidate(ctx, tenantID)
}

func (s *SummaryService) reportPeriod() (int, time.Month) {
	if s.reportYear != 0 && s.reportMonth != 0 {
		return s.reportYear, s.reportMonth
	}
	now := s.now().UTC()
	return now.Year(), now.Month()
}
