package postgres

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestIdentityRepo(t *testing.T, cacheTTL time.Duration) (*IdentityRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewIdentityRepository(db, logger, cacheTTL, nil), mock
}

func TestIdentityLookup(t *testing.T) {
	ctx := context.Background()
	queryPattern := regexp.QuoteMeta("SELECT email, COALESCE(tenant_id, '') FROM api_keys")

	t.Run("Found With Tenant", func(t *testing.T) {
		repo, mock := newTestIdentityRepo(t, time.Minute)
		mock.ExpectQuery(queryPattern).
			WithArgs("key-1").
			WillReturnRows(sqlmock.NewRows([]string{"email", "tenant_id"}).AddRow("owner@a.example", "tenant-a"))

		identity, found, err := repo.Lookup(ctx, "key-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !found {
			t.Fatal("expected the key to be found")
		}
		if identity.TenantID != "tenant-a" || identity.Email != "owner@a.example" {
			t.Errorf("unexpected identity: %+v", identity)
		}
	})

	t.Run("Null Tenant Stays Empty", func(t *testing.T) {
		// A key provisioned without a tenant resolves to an identity whose
		// TenantID is empty, never a placeholder.
		repo, mock := newTestIdentityRepo(t, time.Minute)
		mock.ExpectQuery(queryPattern).
			WithArgs("key-2").
			WillReturnRows(sqlmock.NewRows([]string{"email", "tenant_id"}).AddRow("orphan@example.com", ""))

		identity, found, err := repo.Lookup(ctx, "key-2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !found {
			t.Fatal("expected the key to be found")
		}
		if identity.HasTenant() {
			t.Errorf("expected no tenant, got %q", identity.TenantID)
		}
	})

	t.Run("Unknown Key", func(t *testing.T) {
		repo, mock := newTestIdentityRepo(t, time.Minute)
		mock.ExpectQuery(queryPattern).
			WithArgs("bogus").
			WillReturnRows(sqlmock.NewRows([]string{"email", "tenant_id"}))

		_, found, err := repo.Lookup(ctx, "bogus")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found {
			t.Error("expected the key to be unknown")
		}
	})

	t.Run("Second Lookup Served From Cache", func(t *testing.T) {
		repo, mock := newTestIdentityRepo(t, time.Minute)
		// Only one database round trip is expected for two lookups.
		mock.ExpectQuery(queryPattern).
			WithArgs("key-1").
			WillReturnRows(sqlmock.NewRows([]string{"email", "tenant_id"}).AddRow("owner@a.example", "tenant-a"))

		if _, _, err := repo.Lookup(ctx, "key-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, found, err := repo.Lookup(ctx, "key-1"); err != nil || !found {
			t.Fatalf("expected cached hit, got found=%v err=%v", found, err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unexpected database access: %v", err)
		}
	})
}
