// Package period computes the half-open UTC instant range covering a
// calendar month in a property's local timezone.
package period

import (
	"log/slog"
	"time"

	"github.com/propstack/revenue-summary/internal/adapter/metrics"
)

// Resolver converts (year, month, timezone) into UTC query bounds.
//
// The month runs from local midnight of its first day to local midnight of
// the first day of the following month, both converted to UTC using the
// zone's offset at that specific local instant. DST edges exactly at a
// month boundary are resolved by time.Date's normalization: a midnight
// inside a DST gap resolves to the equivalent instant after the
// transition, and an ambiguous midnight during a fold resolves to its
// first occurrence. Both outcomes are deterministic.
type Resolver struct {
	logger  *slog.Logger
	metrics *metrics.RevenueMetrics
}

// NewResolver creates a new Resolver.
func NewResolver(logger *slog.Logger, m *metrics.RevenueMetrics) *Resolver {
	return &Resolver{
		logger:  logger.With("component", "period_resolver"),
		metrics: m,
	}
}

// Resolve returns [startUTC, endUTC) for the given local month. An
// unresolvable timezone identifier degrades to UTC; the degradation is
// logged and metered, never a request failure.
func (r *Resolver) Resolve(year int, month time.Month, timezoneID string) (time.Time, time.Time) {
	loc := time.UTC
	if timezoneID != "" && timezoneID != "UTC" {
		parsed, err := time.LoadLocation(timezoneID)
		if err != nil {
			r.logger.Warn("unknown timezone, falling back to UTC",
				"timezone", timezoneID, "year", year, "month", int(month), "error", err)
			if r.metrics != nil {
				r.metrics.TimezoneFallbacks.Inc()
			}
		} else {
			loc = parsed
		}
	}

	nextMonth, nextYear := month+1, year
	if month == time.December {
		nextMonth, nextYear = time.January, year+1
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc).UTC()
	end := time.Date(nextYear, nextMonth, 1, 0, 0, 0, 0, loc).UTC()
	return start, end
}
