// Package demo provides a fixed-figure reservation repository for
// environments without a provisioned database. It is only wired when the
// service is explicitly configured with DEMO_MODE=true; the production
// path never falls back to it.
package demo

import (
	"context"
	"log/slog"
	"time"

	"github.com/propstack/revenue-summary/internal/domain"
)

type fixture struct {
	timezone string
	total    string
	count    int
}

// Figures are keyed by (propertyID, tenantID). Tenant isolation still
// holds in demo mode: tenant-b sees nothing under prop-001.
var fixtures = map[[2]string]fixture{
	{"prop-001", "tenant-a"}: {timezone: "Europe/Paris", total: "2250.00", count: 4},
	{"prop-001", "tenant-b"}: {timezone: "Europe/Paris", total: "0.00", count: 0},
	{"prop-002", "tenant-a"}: {timezone: "America/New_York", total: "4975.50", count: 4},
}

// ReservationRepository implements domain.ReservationRepository with
// canned figures.
type ReservationRepository struct {
	logger *slog.Logger
}

// NewReservationRepository creates a demo repository. The warning at
// construction keeps the mode visible in logs.
func NewReservationRepository(logger *slog.Logger) *ReservationRepository {
	logger.Warn("DEMO MODE: serving fixed demo figures, not database data")
	return &ReservationRepository{logger: logger.With("component", "demo_repository")}
}

func (r *ReservationRepository) PropertyTimezone(ctx context.Context, propertyID, tenantID string) (string, error) {
	if f, ok := fixtures[[2]string{propertyID, tenantID}]; ok {
		return f.timezone, nil
	}
	return "", nil
}

func (r *ReservationRepository) SumReservations(ctx context.Context, propertyID, tenantID string, startUTC, endUTC time.Time) (domain.Money, int, error) {
	f, ok := fixtures[[2]string{propertyID, tenantID}]
	if !ok {
		return domain.ZeroMoney(), 0, nil
	}
	total, err := domain.ParseMoney(f.total)
	if err != nil {
		return domain.ZeroMoney(), 0, err
	}
	return total, f.count, nil
}
