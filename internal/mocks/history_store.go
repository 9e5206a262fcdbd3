package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/store"
)

// MockHistoryStore implements store.HistoryStore for testing.
type MockHistoryStore struct {
	// Function fields for customizable behavior
	AppendFn        func(ctx context.Context, entry *domain.ReadingHistoryEntry) error
	QueryFn         func(ctx context.Context, userID string, limit int) ([]*domain.ReadingHistoryEntry, error)
	DeleteForUserFn func(ctx context.Context, userID string) error

	mu      sync.Mutex
	Entries []*domain.ReadingHistoryEntry
}

// NewMockHistoryStore creates a new mock store with initialized defaults.
func NewMockHistoryStore() *MockHistoryStore {
	return &MockHistoryStore{}
}

var _ store.HistoryStore = (*MockHistoryStore)(nil)

// Append implements the HistoryStore interface.
func (m *MockHistoryStore) Append(
	ctx context.Context,
	entry *domain.ReadingHistoryEntry,
) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, entry)
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.Entries = append(m.Entries, &copied)
	return nil
}

// Query implements the HistoryStore interface, returning entries newest
// first up to limit rows.
func (m *MockHistoryStore) Query(
	ctx context.Context,
	userID string,
	limit int,
) ([]*domain.ReadingHistoryEntry, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, userID, limit)
	}

	if limit <= 0 {
		limit = 10
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []*domain.ReadingHistoryEntry{}
	for _, entry := range m.Entries {
		if entry.UserID == userID {
			copied := *entry
			matched = append(matched, &copied)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// DeleteForUser implements the HistoryStore interface.
func (m *MockHistoryStore) DeleteForUser(ctx context.Context, userID string) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Entries[:0]
	for _, entry := range m.Entries {
		if entry.UserID != userID {
			kept = append(kept, entry)
		}
	}
	m.Entries = kept
	return nil
}

// WithTx returns the mock itself; the in-memory store has no transactions.
func (m *MockHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return m
}
