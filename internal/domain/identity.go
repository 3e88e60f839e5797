package domain

// Identity is an authenticated caller. TenantID may be empty: "no tenant"
// is a representable state, distinct from any real tenant and never
// collapsed into a placeholder value.
type Identity struct {
	Email    string
	TenantID string
}

// HasTenant reports whether the identity is associated with a tenant.
func (i Identity) HasTenant() bool {
	return i.TenantID != ""
}
