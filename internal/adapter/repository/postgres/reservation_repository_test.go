package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/propstack/revenue-summary/internal/domain"
)

func newTestRepo(t *testing.T) (*ReservationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReservationRepository(db, time.Second, logger), mock
}

func TestPropertyTimezone(t *testing.T) {
	ctx := context.Background()
	queryPattern := regexp.QuoteMeta("SELECT timezone FROM properties WHERE id = $1 AND tenant_id = $2")

	t.Run("Known Property", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(queryPattern).
			WithArgs("prop-001", "tenant-a").
			WillReturnRows(sqlmock.NewRows([]string{"timezone"}).AddRow("Europe/Paris"))

		timezoneID, err := repo.PropertyTimezone(ctx, "prop-001", "tenant-a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if timezoneID != "Europe/Paris" {
			t.Errorf("unexpected timezone: %s", timezoneID)
		}
	})

	t.Run("Unknown Property Yields Empty", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(queryPattern).
			WithArgs("prop-404", "tenant-a").
			WillReturnRows(sqlmock.NewRows([]string{"timezone"}))

		timezoneID, err := repo.PropertyTimezone(ctx, "prop-404", "tenant-a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if timezoneID != "" {
			t.Errorf("expected empty timezone, got %s", timezoneID)
		}
	})

	t.Run("Unavailable Database", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(queryPattern).
			WithArgs("prop-001", "tenant-a").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.PropertyTimezone(ctx, "prop-001", "tenant-a")
		if !errors.Is(err, domain.ErrDataSourceUnavailable) {
			t.Errorf("expected ErrDataSourceUnavailable, got %v", err)
		}
	})
}

func TestSumReservations(t *testing.T) {
	ctx := context.Background()
	queryPattern := regexp.QuoteMeta("SELECT SUM(total_amount), COUNT(*) FROM reservations")
	start := time.Date(2024, time.March, 1, 5, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.April, 1, 4, 0, 0, 0, time.UTC)

	t.Run("Sum Stays Decimal End To End", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		// The driver hands numerics back as text; the repository must parse
		// them without a float64 detour.
		mock.ExpectQuery(queryPattern).
			WithArgs("prop-001", "tenant-a", start, end).
			WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow("2250.00", 4))

		total, count, err := repo.SumReservations(ctx, "prop-001", "tenant-a", start, end)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := total.String(); got != "2250.00" {
			t.Errorf("unexpected total: %s", got)
		}
		if count != 4 {
			t.Errorf("unexpected count: %d", count)
		}
	})

	t.Run("Null Sum Means Zero Revenue", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(queryPattern).
			WithArgs("prop-001", "tenant-b", start, end).
			WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(nil, 0))

		total, count, err := repo.SumReservations(ctx, "prop-001", "tenant-b", start, end)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := total.String(); got != "0.00" {
			t.Errorf("unexpected total: %s", got)
		}
		if count != 0 {
			t.Errorf("unexpected count: %d", count)
		}
	})

	t.Run("Unavailable Database", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(queryPattern).
			WithArgs("prop-001", "tenant-a", start, end).
			WillReturnError(errors.New("timeout"))

		_, _, err := repo.SumReservations(ctx, "prop-001", "tenant-a", start, end)
		if !errors.Is(err, domain.ErrDataSourceUnavailable) {
			t.Errorf("expected ErrDataSourceUnavailable, got %v", err)
		}
	})
}
