package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/platform/logger"
	"github.com/arcanara/arcanara/internal/store"
)

// PostgresDailyCardStore implements the store.DailyCardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDailyCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDailyCardStore creates a new PostgreSQL implementation of the
// DailyCardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDailyCardStore(db store.DBTX, log *slog.Logger) *PostgresDailyCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresDailyCardStore{
		db:     db,
		logger: log.With(slog.String("component", "daily_card_store")),
	}
}

// Ensure PostgresDailyCardStore implements store.DailyCardStore
var _ store.DailyCardStore = (*PostgresDailyCardStore)(nil)

// Get implements store.DailyCardStore.Get.
// Returns store.ErrDailyCardNotFound if no record exists for (user, day).
func (s *PostgresDailyCardStore) Get(
	ctx context.Context,
	userID, day string,
) (*domain.DailyCardRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, day, card_name, orientation, created_at
		FROM daily_cards
		WHERE user_id = $1 AND day = $2
	`

	var rec domain.DailyCardRecord
	var orientation string
	err := s.db.QueryRowContext(ctx, query, userID, day).Scan(
		&rec.UserID,
		&rec.Day,
		&rec.CardName,
		&orientation,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDailyCardNotFound
		}
		log.Error("failed to get daily card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.String("day", day))
		return nil, store.NewStoreError("daily_card", "get", "query failed", err)
	}
	rec.Orientation = domain.Orientation(orientation)
	return &rec, nil
}

// InsertIfAbsent implements store.DailyCardStore.InsertIfAbsent.
// The primary key on (user_id, day) plus ON CONFLICT DO NOTHING makes the
// insert atomic: concurrent first-time calls for the same key store exactly
// one row, and every caller can read back the winner.
func (s *PostgresDailyCardStore) InsertIfAbsent(
	ctx context.Context,
	rec *domain.DailyCardRecord,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rec.Validate(); err != nil {
		log.Warn("daily card validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", rec.UserID))
		return false, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO daily_cards (user_id, day, card_name, orientation, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day) DO NOTHING
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		rec.UserID,
		rec.Day,
		rec.CardName,
		string(rec.Orientation),
		time.Now().UTC(),
	)
	if err != nil {
		// Serializable isolation can still surface the conflict as a
		// unique violation; treat it the same as "already present".
		if isUniqueViolation(err) {
			return false, nil
		}
		log.Error("failed to insert daily card",
			slog.String("error", err.Error()),
			slog.String("user_id", rec.UserID),
			slog.String("day", rec.Day))
		return false, store.NewStoreError("daily_card", "insert", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("daily_card", "insert", "rows affected", err)
	}
	return rows > 0, nil
}

// DeleteForUser implements store.DailyCardStore.DeleteForUser.
func (s *PostgresDailyCardStore) DeleteForUser(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM daily_cards WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete daily cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return store.NewStoreError("daily_card", "delete", "exec failed", err)
	}
	return nil
}

// WithTx implements store.DailyCardStore.WithTx.
func (s *PostgresDailyCardStore) WithTx(tx *sql.Tx) store.DailyCardStore {
	return &PostgresDailyCardStore{db: tx, logger: s.logger}
}
