package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/propstack/revenue-summary/internal/domain"
)

const (
	propertyTimezoneQuery = `SELECT timezone FROM properties WHERE id = $1 AND tenant_id = $2`

	// SUM is scanned as text and parsed into a decimal; the amount never
	// passes through float64 on its way out of the database.
	revenueSumQuery = `SELECT SUM(total_amount), COUNT(*) FROM reservations
		WHERE property_id = $1 AND tenant_id = $2 AND check_in >= $3 AND check_in < $4`
)

// ReservationRepository implements domain.ReservationRepository using
// PostgreSQL as the source of truth.
type ReservationRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	logger       *slog.Logger
}

// NewReservationRepository creates a new PostgreSQL reservation repository.
func NewReservationRepository(db *sql.DB, queryTimeout time.Duration, logger *slog.Logger) *ReservationRepository {
	return &ReservationRepository{
		db:           db,
		queryTimeout: queryTimeout,
		logger:       logger.With("component", "postgres_repository"),
	}
}

// PropertyTimezone returns the property's IANA timezone identifier scoped
// to the tenant, or an empty string when the property is unknown.
func (r *ReservationRepository) PropertyTimezone(ctx context.Context, propertyID, tenantID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var timezoneID string
	err := r.db.QueryRowContext(ctx, propertyTimezoneQuery, propertyID, tenantID).Scan(&timezoneID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		r.logger.Error("property timezone query failed", "property_id", propertyID, "error", err)
		return "", fmt.Errorf("%w: property timezone query: %v", domain.ErrDataSourceUnavailable, err)
	}
	return timezoneID, nil
}

// SumReservations reduces the reservations with a check-in instant in
// [startUTC, endUTC) into an exact decimal total and a count. A NULL sum
// (no matching rows) yields 0.00 with the row's count.
func (r *ReservationRepository) SumReservations(ctx context.Context, propertyID, tenantID string, startUTC, endUTC time.Time) (domain.Money, int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var (
		sum   sql.NullString
		count int
	)
	err := r.db.QueryRowContext(ctx, revenueSumQuery, propertyID, tenantID, startUTC, endUTC).Scan(&sum, &count)
	if err != nil {
		r.logger.Error("revenue sum query failed", "property_id", propertyID, "error", err)
		return domain.ZeroMoney(), 0, fmt.Errorf("%w: revenue sum query: %v", domain.ErrDataSourceUnavailable, err)
	}

	if !sum.Valid {
		return domain.ZeroMoney(), 0, nil
	}
	total, err := domain.ParseMoney(sum.String)
	if err != nil {
		return domain.ZeroMoney(), 0, fmt.Errorf("parsing revenue sum: %w", err)
	}
	return total, count, nil
}
