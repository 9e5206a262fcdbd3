package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/platform/logger"
	"github.com/arcanara/arcanara/internal/store"
)

// historyCapPerUser bounds reading-history growth. Append prunes the
// oldest rows beyond the cap so the opt-in log cannot grow without bound.
const historyCapPerUser = 500

// PostgresHistoryStore implements the store.HistoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the
// HistoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresHistoryStore(db store.DBTX, log *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresHistoryStore{
		db:     db,
		logger: log.With(slog.String("component", "history_store")),
	}
}

// Ensure PostgresHistoryStore implements store.HistoryStore
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// Append implements store.HistoryStore.Append.
// Rows are insert-only; after inserting, rows past the per-user cap are
// pruned oldest-first.
func (s *PostgresHistoryStore) Append(
	ctx context.Context,
	entry *domain.ReadingHistoryEntry,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("history entry validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	insert := `
		INSERT INTO reading_history (id, user_id, command, tone, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		insert,
		entry.ID,
		entry.UserID,
		entry.Command,
		entry.Tone,
		nullableJSON(entry.Payload),
		entry.CreatedAt,
	)
	if err != nil {
		log.Error("failed to append history entry",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID))
		return store.NewStoreError("history", "append", "exec failed", err)
	}

	prune := `
		DELETE FROM reading_history
		WHERE user_id = $1
		  AND id NOT IN (
			SELECT id FROM reading_history
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		  )
	`
	if _, err := s.db.ExecContext(ctx, prune, entry.UserID, historyCapPerUser); err != nil {
		// The row is stored; a failed prune only delays the cap.
		log.Warn("failed to prune history",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID))
	}
	return nil
}

// Query implements store.HistoryStore.Query.
// Returns the user's entries newest first, at most limit rows. An empty
// result is an empty slice, not nil.
func (s *PostgresHistoryStore) Query(
	ctx context.Context,
	userID string,
	limit int,
) ([]*domain.ReadingHistoryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, user_id, command, tone, payload, created_at
		FROM reading_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to query history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("history", "query", "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	entries := []*domain.ReadingHistoryEntry{}
	for rows.Next() {
		var entry domain.ReadingHistoryEntry
		var payload sql.Null[[]byte]
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Command,
			&entry.Tone,
			&payload,
			&entry.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan history row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("history", "query", "scan failed", err)
		}
		if payload.Valid {
			entry.Payload = payload.V
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("history", "query", "row iteration failed", err)
	}
	return entries, nil
}

// DeleteForUser implements store.HistoryStore.DeleteForUser.
func (s *PostgresHistoryStore) DeleteForUser(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM reading_history WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return store.NewStoreError("history", "delete", "exec failed", err)
	}
	return nil
}

// WithTx implements store.HistoryStore.WithTx.
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{db: tx, logger: s.logger}
}

// nullableJSON maps an empty payload to SQL NULL.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return []byte(b)
}
