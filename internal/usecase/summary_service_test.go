package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/propstack/revenue-summary/internal/domain"
	"github.com/propstack/revenue-summary/internal/domain/mocks"
)

func newServiceUnderTest(t *testing.T, repo *mocks.MockReservationRepository, store *mocks.MockCacheStore) *SummaryService {
	t.Helper()
	cache := newCacheUnderTest(t, repo, store)
	return NewSummaryService(cache, 2024, time.March, discardLogger(), nil)
}

func TestSummaryServiceGetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy Path", func(t *testing.T) {
		repo := &mocks.MockReservationRepository{
			Timezone: "Europe/Paris",
			Total:    mustMoney(t, "2250.00"),
			Count:    4,
		}
		svc := newServiceUnderTest(t, repo, &mocks.MockCacheStore{})

		summary, err := svc.GetSummary(ctx, "prop-001", "tenant-a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := summary.Total.String(); got != "2250.00" {
			t.Errorf("unexpected total: %s", got)
		}
		if summary.TenantID != "tenant-a" {
			t.Errorf("unexpected tenant: %s", summary.TenantID)
		}

		// The configured period drove the query bounds: Paris local
		// midnight of March 1, 2024 is 23:00 UTC the day before.
		want := time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)
		if !repo.LastStartUTC.Equal(want) {
			t.Errorf("unexpected query start: %s", repo.LastStartUTC)
		}
	})

	t.Run("Idempotent Within TTL", func(t *testing.T) {
		repo := &mocks.MockReservationRepository{
			Timezone: "UTC",
			Total:    mustMoney(t, "450.00"),
			Count:    4,
		}
		svc := newServiceUnderTest(t, repo, &mocks.MockCacheStore{})

		first, err := svc.GetSummary(ctx, "prop-001", "tenant-a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := svc.GetSummary(ctx, "prop-001", "tenant-a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !first.Total.Equal(second.Total) || first.Count != second.Count || first.Period != second.Period {
			t.Errorf("results differ: %+v vs %+v", first, second)
		}
		if repo.SumCalls != 1 {
			t.Errorf("expected the second call to be served from cache, got %d aggregations", repo.SumCalls)
		}
	})

	t.Run("Invalid Property Rejected", func(t *testing.T) {
		svc := newServiceUnderTest(t, &mocks.MockReservationRepository{}, &mocks.MockCacheStore{})

		_, err := svc.GetSummary(ctx, "prop 001; DROP TABLE", "tenant-a")
		if !errors.Is(err, domain.ErrInvalidPropertyID) {
			t.Errorf("expected ErrInvalidPropertyID, got %v", err)
		}
	})

	t.Run("Missing Tenant Rejected", func(t *testing.T) {
		svc := newServiceUnderTest(t, &mocks.MockReservationRepository{}, &mocks.MockCacheStore{})

		_, err := svc.GetSummary(ctx, "prop-001", "")
		if !errors.Is(err, domain.ErrNoTenant) {
			t.Errorf("expected ErrNoTenant, got %v", err)
		}
	})

	t.Run("Sentinel Tenant Surfaces As Invalid Tenant", func(t *testing.T) {
		svc := newServiceUnderTest(t, &mocks.MockReservationRepository{}, &mocks.MockCacheStore{})

		_, err := svc.GetSummary(ctx, "prop-001", "default_tenant")
		if !errors.Is(err, domain.ErrInvalidTenant) {
			t.Errorf("expected ErrInvalidTenant, got %v", err)
		}
	})

	t.Run("Tenant Mismatch Is A Fatal Integrity Fault", func(t *testing.T) {
		// Simulate a poisoned store: tenant-b's summary sitting under
		// tenant-a's key. It must never be served, let alone corrected.
		poisoned := domain.RevenueSummary{
			PropertyID: "prop-001",
			TenantID:   "tenant-b",
			Total:      mustMoney(t, "9999.99"),
			Currency:   "USD",
			Count:      42,
			Period:     "2024-03",
		}
		payload, err := json.Marshal(poisoned)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		store := &mocks.MockCacheStore{Entries: map[string][]byte{
			"revenue:tenant-a:prop-001": payload,
		}}
		svc := newServiceUnderTest(t, &mocks.MockReservationRepository{}, store)

		_, err = svc.GetSummary(ctx, "prop-001", "tenant-a")
		if !errors.Is(err, domain.ErrTenantMismatch) {
			t.Errorf("expected ErrTenantMismatch, got %v", err)
		}
	})
}

func TestSummaryServiceReportPeriod(t *testing.T) {
	t.Run("Defaults To Current UTC Month", func(t *testing.T) {
		cache := newCacheUnderTest(t, &mocks.MockReservationRepository{}, &mocks.MockCacheStore{})
		svc := NewSummaryService(cache, 0, 0, discardLogger(), nil)
		svc.now = func() time.Time {
			return time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)
		}

		year, month := svc.reportPeriod()
		if year != 2024 || month != time.December {
			t.Errorf("expected 2024-12, got %d-%d", year, int(month))
		}
	})

	t.Run("Fixed Period Wins", func(t *testing.T) {
		cache := newCacheUnderTest(t, &mocks.MockReservationRepository{}, &mocks.MockCacheStore{})
		svc := NewSummaryService(cache, 2024, time.March, discardLogger(), nil)

		year, month := svc.reportPeriod()
		if year != 2024 || month != time.March {
			t.Errorf("expected 2024-03, got %d-%d", year, int(month))
		}
	})
}
