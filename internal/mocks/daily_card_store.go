package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/store"
)

// MockDailyCardStore implements store.DailyCardStore for testing.
type MockDailyCardStore struct {
	// Function fields for customizable behavior
	GetFn            func(ctx context.Context, userID, day string) (*domain.DailyCardRecord, error)
	InsertIfAbsentFn func(ctx context.Context, rec *domain.DailyCardRecord) (bool, error)
	DeleteForUserFn  func(ctx context.Context, userID string) error

	mu      sync.Mutex
	Records map[string]*domain.DailyCardRecord
}

// NewMockDailyCardStore creates a new mock store with initialized defaults.
func NewMockDailyCardStore() *MockDailyCardStore {
	return &MockDailyCardStore{
		Records: make(map[string]*domain.DailyCardRecord),
	}
}

var _ store.DailyCardStore = (*MockDailyCardStore)(nil)

func dailyKey(userID, day string) string {
	return userID + "|" + day
}

// Get implements the DailyCardStore interface.
func (m *MockDailyCardStore) Get(
	ctx context.Context,
	userID, day string,
) (*domain.DailyCardRecord, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, day)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, exists := m.Records[dailyKey(userID, day)]
	if !exists {
		return nil, store.ErrDailyCardNotFound
	}
	copied := *rec
	return &copied, nil
}

// InsertIfAbsent implements the DailyCardStore interface. The single mutex
// makes the check-and-insert atomic, matching the real store's ON CONFLICT
// DO NOTHING behavior.
func (m *MockDailyCardStore) InsertIfAbsent(
	ctx context.Context,
	rec *domain.DailyCardRecord,
) (bool, error) {
	if m.InsertIfAbsentFn != nil {
		return m.InsertIfAbsentFn(ctx, rec)
	}

	if err := rec.Validate(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := dailyKey(rec.UserID, rec.Day)
	if _, exists := m.Records[key]; exists {
		return false, nil
	}
	copied := *rec
	copied.CreatedAt = time.Now().UTC()
	m.Records[key] = &copied
	return true, nil
}

// DeleteForUser implements the DailyCardStore interface.
func (m *MockDailyCardStore) DeleteForUser(ctx context.Context, userID string) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, rec := range m.Records {
		if rec.UserID == userID {
			delete(m.Records, key)
		}
	}
	return nil
}

// WithTx returns the mock itself; the in-memory store has no transactions.
func (m *MockDailyCardStore) WithTx(tx *sql.Tx) store.DailyCardStore {
	return m
}
