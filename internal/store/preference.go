package store

import (
	"context"
	"database/sql"

	"github.com/arcanara/arcanara/internal/domain"
)

// PreferenceStore defines the interface for user preference persistence.
type PreferenceStore interface {
	// Get retrieves the preference record for a user.
	// Returns ErrPreferenceNotFound if the user has no stored record;
	// callers fall back to domain.DefaultPreference in that case.
	Get(ctx context.Context, userID string) (*domain.UserPreference, error)

	// Upsert applies a partial update with merge-on-write semantics:
	// fields not set in the update retain their current value, or the
	// documented default if no record existed yet.
	Upsert(ctx context.Context, userID string, update domain.PreferenceUpdate) error

	// Delete removes the user's preference record. Deleting an absent
	// record is not an error.
	Delete(ctx context.Context, userID string) error

	// WithTx returns a PreferenceStore bound to the given transaction.
	WithTx(tx *sql.Tx) PreferenceStore
}

// DailyCardStore defines the interface for idempotent daily-card records.
type DailyCardStore interface {
	// Get retrieves the stored daily card for (user, day).
	// Returns ErrDailyCardNotFound if none has been recorded.
	Get(ctx context.Context, userID, day string) (*domain.DailyCardRecord, error)

	// InsertIfAbsent atomically records the daily card for (user, day)
	// unless one already exists. Returns true if this call inserted the
	// record, false if a record was already present (including a
	// concurrent winner's). It must never produce two stored results for
	// the same key.
	InsertIfAbsent(ctx context.Context, rec *domain.DailyCardRecord) (bool, error)

	// DeleteForUser removes all daily-card records for the user.
	DeleteForUser(ctx context.Context, userID string) error

	// WithTx returns a DailyCardStore bound to the given transaction.
	WithTx(tx *sql.Tx) DailyCardStore
}

// HistoryStore defines the interface for the append-only reading log.
type HistoryStore interface {
	// Append inserts one history row. Rows are never mutated after insert.
	// Implementations may prune the oldest rows beyond a fixed per-user
	// cap within the same operation.
	Append(ctx context.Context, entry *domain.ReadingHistoryEntry) error

	// Query returns the user's most recent entries, newest first, at most
	// limit rows.
	Query(ctx context.Context, userID string, limit int) ([]*domain.ReadingHistoryEntry, error)

	// DeleteForUser removes all history rows for the user.
	DeleteForUser(ctx context.Context, userID string) error

	// WithTx returns a HistoryStore bound to the given transaction.
	WithTx(tx *sql.Tx) HistoryStore
}
