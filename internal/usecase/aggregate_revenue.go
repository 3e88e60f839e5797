package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/propstack/revenue-summary/internal/domain"
	"github.com/propstack/revenue-summary/internal/period"
)

// AggregateRevenueUseCase computes a property's revenue summary for a
// calendar month directly from the data source, bypassing any cache.
type AggregateRevenueUseCase struct {
	repo    domain.ReservationRepository
	periods *period.Resolver
	logger  *slog.Logger
}

// NewAggregateRevenueUseCase creates a new AggregateRevenueUseCase.
func NewAggregateRevenueUseCase(repo domain.ReservationRepository, periods *period.Resolver, logger *slog.Logger) *AggregateRevenueUseCase {
	return &AggregateRevenueUseCase{
		repo:    repo,
		periods: periods,
		logger:  logger.With("component", "aggregator"),
	}
}

// Compute resolves the month's UTC bounds in the property's timezone and
// reduces the matching reservations into a total amount and count. Zero
// matching reservations is a valid result, not an error. A failing data
// source propagates as domain.ErrDataSourceUnavailable; no data is ever
// substituted for it here.
func (uc *AggregateRevenueUseCase) Compute(ctx context.Context, propertyID, tenantID string, year int, month time.Month) (domain.RevenueSummary, error) {
	timezoneID, err := uc.repo.PropertyTimezone(ctx, propertyID, tenantID)
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("resolving property timezone: %w", err)
	}

	startUTC, endUTC := uc.periods.Resolve(year, month, timezoneID)

	total, count, err := uc.repo.SumReservations(ctx, propertyID, tenantID, startUTC, endUTC)
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("summing reservations: %w", err)
	}

	uc.logger.Debug("aggregated revenue",
		"property_id", propertyID,
		"timezone", timezoneID,
		"start_utc", startUTC,
		"end_utc", endUTC,
		"count", count,
	)

	return domain.RevenueSummary{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Total:      total,
		Currency:   "USD",
		Count:      count,
		Period:     fmt.Sprintf("%04d-%02d", year, int(month)),
	}, nil
}
