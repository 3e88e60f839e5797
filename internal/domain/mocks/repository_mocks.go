package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/propstack/revenue-summary/internal/domain"
)

// MockReservationRepository is a mock implementation of
// domain.ReservationRepository for testing.
type MockReservationRepository struct {
	mu           sync.Mutex
	Timezone     string
	TimezoneErr  error
	Total        domain.Money
	Count        int
	SumErr       error
	SumCalls     int
	LastStartUTC time.Time
	LastEndUTC   time.Time
}

func (m *MockReservationRepository) PropertyTimezone(ctx context.Context, propertyID, tenantID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TimezoneErr != nil {
		return "", m.TimezoneErr
	}
	return m.Timezone, nil
}

func (m *MockReservationRepository) SumReservations(ctx context.Context, propertyID, tenantID string, startUTC, endUTC time.Time) (domain.Money, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SumCalls++
	m.LastStartUTC = startUTC
	m.LastEndUTC = endUTC
	if m.SumErr != nil {
		return domain.ZeroMoney(), 0, m.SumErr
	}
	return m.Total, m.Count, nil
}

// MockCacheStore is an in-memory mock implementation of domain.CacheStore.
type MockCacheStore struct {
	mu        sync.Mutex
	Entries   map[string][]byte
	GetErr    error
	SetErr    error
	DeleteErr error
	SetCalls  int
	LastTTL   time.Duration
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	payload, ok := m.Entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return payload, nil
}

func (m *MockCacheStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.LastTTL = ttl
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Entries == nil {
		m.Entries = make(map[string][]byte)
	}
	m.Entries[key] = value
	return nil
}

func (m *MockCacheStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	removed := 0
	for key := range m.Entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.Entries, key)
			removed++
		}
	}
	return removed, nil
}

// MockIdentityRepository is a mock implementation of
// domain.IdentityRepository.
type MockIdentityRepository struct {
	mu         sync.Mutex
	Identities map[string]domain.Identity
	LookupErr  error
}

func (m *MockIdentityRepository) Lookup(ctx context.Context, apiKey string) (domain.Identity, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LookupErr != nil {
		return domain.Identity{}, false, m.LookupErr
	}
	identity, ok := m.Identities[apiKey]
	return identity, ok, nil
}
