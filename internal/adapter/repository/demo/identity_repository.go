package demo

import (
	"context"
	"log/slog"

	"github.com/propstack/revenue-summary/internal/domain"
)

// Well-known demo credentials. "demo-no-tenant" exists to exercise the
// not-authorized path: its identity is valid but carries no tenant.
var identities = map[string]domain.Identity{
	"demo-tenant-a":  {Email: "demo-a@example.com", TenantID: "tenant-a"},
	"demo-tenant-b":  {Email: "demo-b@example.com", TenantID: "tenant-b"},
	"demo-no-tenant": {Email: "demo-orphan@example.com"},
}

// IdentityRepository implements domain.IdentityRepository with fixed demo
// credentials.
type IdentityRepository struct {
	logger *slog.Logger
}

// NewIdentityRepository creates a demo identity repository.
func NewIdentityRepository(logger *slog.Logger) *IdentityRepository {
	return &IdentityRepository{logger: logger.With("component", "demo_identity_repository")}
}

func (r *IdentityRepository) Lookup(ctx context.Context, apiKey string) (domain.Identity, bool, error) {
	identity, ok := identities[apiKey]
	return identity, ok, nil
}
