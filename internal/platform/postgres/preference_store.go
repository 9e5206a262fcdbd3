package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/platform/logger"
	"github.com/arcanara/arcanara/internal/store"
)

// PostgresPreferenceStore implements the store.PreferenceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPreferenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPreferenceStore creates a new PostgreSQL implementation of the
// PreferenceStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPreferenceStore(db store.DBTX, log *slog.Logger) *PostgresPreferenceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresPreferenceStore{
		db:     db,
		logger: log.With(slog.String("component", "preference_store")),
	}
}

// Ensure PostgresPreferenceStore implements store.PreferenceStore
var _ store.PreferenceStore = (*PostgresPreferenceStore)(nil)

// Get implements store.PreferenceStore.Get.
// Returns store.ErrPreferenceNotFound if the user has no stored record.
func (s *PostgresPreferenceStore) Get(
	ctx context.Context,
	userID string,
) (*domain.UserPreference, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, tone, history_opt_in, images_enabled, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	var pref domain.UserPreference
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&pref.UserID,
		&pref.Tone,
		&pref.HistoryOptIn,
		&pref.ImagesEnabled,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPreferenceNotFound
		}
		log.Error("failed to get preference",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("preference", "get", "query failed", err)
	}
	return &pref, nil
}

// Upsert implements store.PreferenceStore.Upsert with merge-on-write
// semantics: only the fields carried by the update change; an absent row
// is created from the documented defaults first.
func (s *PostgresPreferenceStore) Upsert(
	ctx context.Context,
	userID string,
	update domain.PreferenceUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == "" {
		return domain.ErrEmptyUserID
	}
	if update.Empty() {
		log.Debug("preference upsert with no fields", slog.String("user_id", userID))
		return nil
	}

	now := time.Now().UTC()

	// COALESCE merges: a NULL argument leaves the stored (or default)
	// value in place, so unspecified fields are never clobbered.
	query := `
		INSERT INTO user_preferences (user_id, tone, history_opt_in, images_enabled, created_at, updated_at)
		VALUES (
			$1,
			COALESCE($2, 'classic'),
			COALESCE($3, FALSE),
			COALESCE($4, TRUE),
			$5, $5
		)
		ON CONFLICT (user_id) DO UPDATE SET
			tone           = COALESCE($2, user_preferences.tone),
			history_opt_in = COALESCE($3, user_preferences.history_opt_in),
			images_enabled = COALESCE($4, user_preferences.images_enabled),
			updated_at     = $5
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		userID,
		update.Tone,
		update.HistoryOptIn,
		update.ImagesEnabled,
		now,
	)
	if err != nil {
		log.Error("failed to upsert preference",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return store.NewStoreError("preference", "upsert", "exec failed", err)
	}

	log.Info("preference updated", slog.String("user_id", userID))
	return nil
}

// Delete implements store.PreferenceStore.Delete.
// Deleting an absent record is not an error.
func (s *PostgresPreferenceStore) Delete(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_preferences WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete preference",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return store.NewStoreError("preference", "delete", "exec failed", err)
	}
	return nil
}

// WithTx implements store.PreferenceStore.WithTx.
func (s *PostgresPreferenceStore) WithTx(tx *sql.Tx) store.PreferenceStore {
	return &PostgresPreferenceStore{db: tx, logger: s.logger}
}
