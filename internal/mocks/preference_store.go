package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/store"
)

// MockPreferenceStore implements store.PreferenceStore for testing.
type MockPreferenceStore struct {
	// Function fields for customizable behavior
	GetFn    func(ctx context.Context, userID string) (*domain.UserPreference, error)
	UpsertFn func(ctx context.Context, userID string, update domain.PreferenceUpdate) error
	DeleteFn func(ctx context.Context, userID string) error

	mu          sync.Mutex
	Preferences map[string]*domain.UserPreference
}

// NewMockPreferenceStore creates a new mock store with initialized defaults.
func NewMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{
		Preferences: make(map[string]*domain.UserPreference),
	}
}

var _ store.PreferenceStore = (*MockPreferenceStore)(nil)

// Get implements the PreferenceStore interface.
func (m *MockPreferenceStore) Get(
	ctx context.Context,
	userID string,
) (*domain.UserPreference, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	pref, exists := m.Preferences[userID]
	if !exists {
		return nil, store.ErrPreferenceNotFound
	}
	copied := *pref
	return &copied, nil
}

// Upsert implements the PreferenceStore interface with the same
// merge-on-write semantics as the real store.
func (m *MockPreferenceStore) Upsert(
	ctx context.Context,
	userID string,
	update domain.PreferenceUpdate,
) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, userID, update)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	pref, exists := m.Preferences[userID]
	if !exists {
		pref = domain.DefaultPreference(userID)
		pref.CreatedAt = time.Now().UTC()
		m.Preferences[userID] = pref
	}
	update.ApplyTo(pref)
	pref.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements the PreferenceStore interface.
func (m *MockPreferenceStore) Delete(ctx context.Context, userID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Preferences, userID)
	return nil
}

// WithTx returns the mock itself; the in-memory store has no transactions.
func (m *MockPreferenceStore) WithTx(tx *sql.Tx) store.PreferenceStore {
	return m
}
