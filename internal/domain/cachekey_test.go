package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestDeriveCacheKey(t *testing.T) {
	t.Run("Tenant Scoped Format", func(t *testing.T) {
		key, err := DeriveCacheKey("tenant-a", "prop-001")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if key != "revenue:tenant-a:prop-001" {
			t.Errorf("unexpected key: %s", key)
		}
	})

	t.Run("Distinct Tenants Get Distinct Keys", func(t *testing.T) {
		keyA, err := DeriveCacheKey("tenant-a", "prop-001")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		keyB, err := DeriveCacheKey("tenant-b", "prop-001")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if keyA == keyB {
			t.Errorf("tenant isolation broken: %s == %s", keyA, keyB)
		}
	})

	t.Run("Sentinel And Empty Tenants Rejected", func(t *testing.T) {
		rejected := []string{
			"default_tenant",
			"DEFAULT_TENANT",
			"Default_Tenant",
			"null",
			"NULL",
			"undefined",
			"none",
			"None",
			"",
			"   ",
			"\t\n",
		}
		for _, tenantID := range rejected {
			if _, err := DeriveCacheKey(tenantID, "prop-001"); !errors.Is(err, ErrInvalidTenant) {
				t.Errorf("tenant %q: expected ErrInvalidTenant, got %v", tenantID, err)
			}
		}
	})

	t.Run("Property Charset Reasserted", func(t *testing.T) {
		for _, propertyID := range []string{"", "../etc/passwd", "prop 001", "prop;drop", strings.Repeat("a", 51)} {
			if _, err := DeriveCacheKey("tenant-a", propertyID); !errors.Is(err, ErrInvalidPropertyID) {
				t.Errorf("property %q: expected ErrInvalidPropertyID, got %v", propertyID, err)
			}
		}
	})
}

func TestTenantKeyPrefix(t *testing.T) {
	prefix := TenantKeyPrefix("tenant-a")
	if prefix != "revenue:tenant-a:" {
		t.Errorf("unexpected prefix: %s", prefix)
	}

	key, err := DeriveCacheKey("tenant-a", "prop-001")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(key, prefix) {
		t.Errorf("key %s not covered by tenant prefix %s", key, prefix)
	}
}
