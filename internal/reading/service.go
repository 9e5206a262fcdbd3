// Package reading orchestrates per-user reading state: tone and settings
// persistence, the opt-in reading log, the cached daily card, and the
// cascading erase of everything a user has accumulated.
package reading

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/arcanara/arcanara/internal/deck"
	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/platform/logger"
	"github.com/arcanara/arcanara/internal/session"
	"github.com/arcanara/arcanara/internal/store"
	"github.com/arcanara/arcanara/internal/tone"
)

// Service coordinates the stores and session state behind the user-facing
// commands. All persistence round-trips are bounded by storeTimeout.
type Service struct {
	deck         *deck.Engine
	db           *sql.DB
	prefs        store.PreferenceStore
	dailies      store.DailyCardStore
	history      store.HistoryStore
	sessions     *session.Store
	defaultTone  string
	historyLimit int
	storeTimeout time.Duration
	logger       *slog.Logger
}

// NewService creates a reading service. db may be nil (in-memory stores);
// when present, Forget erases all user data in one transaction.
// defaultTone is the configured fallback tone; an unknown name falls back
// to the built-in default. If historyLimit or storeTimeout are
// non-positive, conservative defaults are used. If log is nil the default
// logger is used.
func NewService(
	engine *deck.Engine,
	db *sql.DB,
	prefs store.PreferenceStore,
	dailies store.DailyCardStore,
	history store.HistoryStore,
	sessions *session.Store,
	defaultTone string,
	historyLimit int,
	storeTimeout time.Duration,
	log *slog.Logger,
) *Service {
	if !tone.Known(defaultTone) {
		defaultTone = tone.DefaultTone
	}
	if historyLimit <= 0 {
		historyLimit = 50
	}
	if storeTimeout <= 0 {
		storeTimeout = 3 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		deck:         engine,
		db:           db,
		prefs:        prefs,
		dailies:      dailies,
		history:      history,
		sessions:     sessions,
		defaultTone:  defaultTone,
		historyLimit: historyLimit,
		storeTimeout: storeTimeout,
		logger:       log.With(slog.String("component", "reading_service")),
	}
}

// DefaultTone returns the configured fallback tone name.
func (s *Service) DefaultTone() string {
	return s.defaultTone
}

// Deck exposes the draw engine for callers that draw directly.
func (s *Service) Deck() *deck.Engine {
	return s.deck
}

// Sessions exposes the transient per-user session state.
func (s *Service) Sessions() *session.Store {
	return s.sessions
}

// Settings returns the user's stored preferences, or the documented
// defaults when no record exists. A store failure also degrades to the
// defaults: reading commands must keep working when settings are
// unreachable.
func (s *Service) Settings(ctx context.Context, userID string) *domain.UserPreference {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	defaults := func() *domain.UserPreference {
		pref := domain.DefaultPreference(userID)
		pref.Tone = s.defaultTone
		return pref
	}

	pref, err := s.prefs.Get(ctx, userID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Warn("settings lookup failed, using defaults",
				slog.String("error", err.Error()),
				slog.String("user_id", userID))
		}
		return defaults()
	}
	if err := pref.Validate(); err != nil {
		log.Warn("stored preference is invalid, using defaults",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return defaults()
	}
	if !tone.Known(pref.Tone) {
		// A stored tone the presets no longer recognize falls back rather
		// than breaking every subsequent reading.
		pref.Tone = s.defaultTone
	}
	return pref
}

// Tone returns the user's effective tone name.
func (s *Service) Tone(ctx context.Context, userID string) string {
	return s.Settings(ctx, userID).Tone
}

// SetTone persists the user's tone choice. Returns ErrUnknownTone for a
// name that is not a known preset; the write is not attempted.
func (s *Service) SetTone(ctx context.Context, userID, name string) error {
	if !tone.Known(name) {
		return ErrUnknownTone
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	update := domain.PreferenceUpdate{Tone: &name}
	if err := s.prefs.Upsert(ctx, userID, update); err != nil {
		return NewServiceError("set_tone", "failed to store tone", err)
	}
	return nil
}

// ResetTone restores the default tone. The record is updated, not deleted,
// so other settings survive.
func (s *Service) ResetTone(ctx context.Context, userID string) error {
	name := s.defaultTone
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	update := domain.PreferenceUpdate{Tone: &name}
	if err := s.prefs.Upsert(ctx, userID, update); err != nil {
		return NewServiceError("reset_tone", "failed to reset tone", err)
	}
	return nil
}

// UpdateSettings merges a partial settings change into the user's record.
// Fields the update leaves nil keep their current values. An empty update
// is a no-op.
func (s *Service) UpdateSettings(
	ctx context.Context,
	userID string,
	update domain.PreferenceUpdate,
) error {
	if update.Empty() {
		return nil
	}
	if update.Tone != nil && !tone.Known(*update.Tone) {
		return ErrUnknownTone
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.prefs.Upsert(ctx, userID, update); err != nil {
		return NewServiceError("update_settings", "failed to store settings", err)
	}
	return nil
}

// DailyCard returns the user's card of the day for the given time,
// drawing and recording one if today's is not yet stored. The day key is
// derived in UTC so every caller agrees on the boundary.
func (s *Service) DailyCard(ctx context.Context, userID string, now time.Time) (domain.DrawResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	result, err := s.deck.DrawDaily(ctx, userID, domain.DayKey(now))
	if err != nil {
		return domain.DrawResult{}, NewServiceError("daily_card", "failed to resolve daily card", err)
	}
	return result, nil
}

// HistoryPayload is the JSON document stored with each logged reading.
type HistoryPayload struct {
	Command string        `json:"command"`
	Cards   []HistoryCard `json:"cards,omitempty"`
	Focus   string        `json:"focus,omitempty"`
}

// HistoryCard is one drawn card inside a history payload.
type HistoryCard struct {
	Name        string `json:"name"`
	Orientation string `json:"orientation"`
}

// LogHistory appends a reading to the user's log if, and only if, their
// history opt-in is true at write time. Logging is best-effort: every
// failure is logged and swallowed so a history problem can never break the
// reading itself.
func (s *Service) LogHistory(
	ctx context.Context,
	userID, command string,
	results []domain.DrawResult,
	focus string,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pref := s.Settings(ctx, userID)
	if !pref.HistoryOptIn {
		return
	}

	payload := HistoryPayload{Command: command, Focus: focus}
	for _, r := range results {
		payload.Cards = append(payload.Cards, HistoryCard{
			Name:        r.Card.Name,
			Orientation: string(r.Orientation),
		})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to encode history payload",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return
	}

	entry, err := domain.NewReadingHistoryEntry(userID, command, pref.Tone, raw)
	if err != nil {
		log.Error("failed to build history entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return
	}

	// The write outlives the triggering request's cancellation but stays
	// bounded by the store timeout.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()
	if err := s.history.Append(writeCtx, entry); err != nil {
		log.Error("failed to append history entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
	}
}

// History returns the user's logged readings, newest first. Users who are
// currently opted out get an empty result even if older rows exist. The
// requested limit is clamped to the configured maximum.
func (s *Service) History(
	ctx context.Context,
	userID string,
	limit int,
) ([]*domain.ReadingHistoryEntry, error) {
	pref := s.Settings(ctx, userID)
	if !pref.HistoryOptIn {
		return []*domain.ReadingHistoryEntry{}, nil
	}

	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	entries, err := s.history.Query(ctx, userID, limit)
	if err != nil {
		return nil, NewServiceError("history", "failed to query history", err)
	}
	return entries, nil
}

// Forget erases everything stored for the user: preferences, daily cards,
// history rows, and transient session state. With a database attached the
// three deletes commit or roll back together; otherwise each store is
// attempted even if an earlier one fails and the first failure is
// returned.
func (s *Service) Forget(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if s.db != nil {
		err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			if err := s.prefs.WithTx(tx).Delete(ctx, userID); err != nil {
				return err
			}
			if err := s.dailies.WithTx(tx).DeleteForUser(ctx, userID); err != nil {
				return err
			}
			return s.history.WithTx(tx).DeleteForUser(ctx, userID)
		})
		if err != nil {
			log.Error("transactional forget failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID))
			return NewServiceError("forget", "failed to erase user data", err)
		}
		s.sessions.Forget(userID)
		log.Info("user data erased", slog.String("user_id", userID))
		return nil
	}

	var firstErr error
	record := func(what string, err error) {
		if err == nil {
			return
		}
		log.Error("forget step failed",
			slog.String("step", what),
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		if firstErr == nil {
			firstErr = NewServiceError("forget", "failed to delete "+what, err)
		}
	}

	record("preferences", s.prefs.Delete(ctx, userID))
	record("daily cards", s.dailies.DeleteForUser(ctx, userID))
	record("history", s.history.DeleteForUser(ctx, userID))
	s.sessions.Forget(userID)

	if firstErr == nil {
		log.Info("user data erased", slog.String("user_id", userID))
	}
	return firstErr
}
