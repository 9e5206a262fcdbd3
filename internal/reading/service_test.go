package reading

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanara/arcanara/internal/catalog"
	"github.com/arcanara/arcanara/internal/deck"
	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/mocks"
	"github.com/arcanara/arcanara/internal/session"
	"github.com/arcanara/arcanara/internal/tone"
)

type serviceFixture struct {
	svc      *Service
	prefs    *mocks.MockPreferenceStore
	dailies  *mocks.MockDailyCardStore
	history  *mocks.MockHistoryStore
	sessions *session.Store
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	prefs := mocks.NewMockPreferenceStore()
	dailies := mocks.NewMockDailyCardStore()
	history := mocks.NewMockHistoryStore()
	sessions := session.NewStore()
	engine := deck.NewEngine(cat, dailies, nil, nil)

	return &serviceFixture{
		svc:      NewService(engine, nil, prefs, dailies, history, sessions, tone.DefaultTone, 50, 3*time.Second, nil),
		prefs:    prefs,
		dailies:  dailies,
		history:  history,
		sessions: sessions,
	}
}

func optIn(t *testing.T, f *serviceFixture, userID string) {
	t.Helper()
	enabled := true
	err := f.svc.UpdateSettings(context.Background(), userID,
		domain.PreferenceUpdate{HistoryOptIn: &enabled})
	require.NoError(t, err)
}

func TestSettingsDefaultsWhenAbsent(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)

	pref := f.svc.Settings(context.Background(), "user-1")
	assert.Equal(t, tone.DefaultTone, pref.Tone)
	assert.False(t, pref.HistoryOptIn)
	assert.True(t, pref.ImagesEnabled)
}

func TestSettingsDegradeToDefaultsOnStoreFailure(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)

	f.prefs.GetFn = func(ctx context.Context, userID string) (*domain.UserPreference, error) {
		return nil, errors.New("connection refused")
	}

	pref := f.svc.Settings(context.Background(), "user-1")
	assert.Equal(t, tone.DefaultTone, pref.Tone)
}

func TestSettingsDefaultsWhenStoredRecordInvalid(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)

	// A record that fails validation must not leak to callers.
	f.prefs.GetFn = func(ctx context.Context, userID string) (*domain.UserPreference, error) {
		return &domain.UserPreference{UserID: userID, Tone: ""}, nil
	}

	pref := f.svc.Settings(context.Background(), "user-1")
	assert.Equal(t, tone.DefaultTone, pref.Tone)
	assert.False(t, pref.HistoryOptIn)
	assert.True(t, pref.ImagesEnabled)
}

func TestConfiguredDefaultTone(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	svc := NewService(f.svc.Deck(), nil, f.prefs, f.dailies, f.history, f.sessions,
		"poetic", 50, 3*time.Second, nil)

	assert.Equal(t, "poetic", svc.DefaultTone())
	assert.Equal(t, "poetic", svc.Settings(ctx, "user-1").Tone,
		"absent record falls back to the configured tone")

	require.NoError(t, svc.SetTone(ctx, "user-1", "deep"))
	require.NoError(t, svc.ResetTone(ctx, "user-1"))
	assert.Equal(t, "poetic", svc.Tone(ctx, "user-1"))
}

func TestConfiguredDefaultToneMustBeKnown(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)

	svc := NewService(f.svc.Deck(), nil, f.prefs, f.dailies, f.history, f.sessions,
		"sarcastic", 50, 3*time.Second, nil)
	assert.Equal(t, tone.DefaultTone, svc.DefaultTone())
}

func TestSetToneAndReset(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SetTone(ctx, "user-1", "poetic"))
	assert.Equal(t, "poetic", f.svc.Tone(ctx, "user-1"))

	require.NoError(t, f.svc.ResetTone(ctx, "user-1"))
	assert.Equal(t, tone.DefaultTone, f.svc.Tone(ctx, "user-1"))
}

func TestSetToneRejectsUnknown(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)

	err := f.svc.SetTone(context.Background(), "user-1", "sarcastic")
	assert.ErrorIs(t, err, ErrUnknownTone)

	// Nothing was written.
	assert.Empty(t, f.prefs.Preferences)
}

func TestUpdateSettingsMergesFields(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SetTone(ctx, "user-1", "deep"))

	// Toggling history must not disturb the stored tone.
	optIn(t, f, "user-1")

	pref := f.svc.Settings(ctx, "user-1")
	assert.Equal(t, "deep", pref.Tone)
	assert.True(t, pref.HistoryOptIn)
	assert.True(t, pref.ImagesEnabled)
}

func TestUpdateSettingsEmptyIsNoOp(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)

	require.NoError(t, f.svc.UpdateSettings(context.Background(), "user-1", domain.PreferenceUpdate{}))
	assert.Empty(t, f.prefs.Preferences)
}

func TestLogHistoryRequiresOptIn(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	result := f.svc.Deck().DrawOne()
	f.svc.LogHistory(ctx, "user-1", "draw", []domain.DrawResult{result}, "")
	assert.Empty(t, f.history.Entries, "opted-out users are never logged")

	optIn(t, f, "user-1")
	f.svc.LogHistory(ctx, "user-1", "draw", []domain.DrawResult{result}, "")
	require.Len(t, f.history.Entries, 1)

	entry := f.history.Entries[0]
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, "draw", entry.Command)

	var payload HistoryPayload
	require.NoError(t, json.Unmarshal(entry.Payload, &payload))
	require.Len(t, payload.Cards, 1)
	assert.Equal(t, result.Card.Name, payload.Cards[0].Name)
	assert.Equal(t, string(result.Orientation), payload.Cards[0].Orientation)
}

func TestLogHistorySwallowsStoreFailure(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	optIn(t, f, "user-1")
	f.history.AppendFn = func(ctx context.Context, entry *domain.ReadingHistoryEntry) error {
		return errors.New("disk full")
	}

	// Must not panic or surface the failure.
	result := f.svc.Deck().DrawOne()
	f.svc.LogHistory(ctx, "user-1", "draw", []domain.DrawResult{result}, "")
}

func TestHistoryEmptyWhenOptedOut(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	// Rows written while opted in become invisible after opting out.
	optIn(t, f, "user-1")
	result := f.svc.Deck().DrawOne()
	f.svc.LogHistory(ctx, "user-1", "draw", []domain.DrawResult{result}, "")

	disabled := false
	require.NoError(t, f.svc.UpdateSettings(ctx, "user-1",
		domain.PreferenceUpdate{HistoryOptIn: &disabled}))

	entries, err := f.svc.History(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryClampsLimit(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	optIn(t, f, "user-1")
	for i := 0; i < 60; i++ {
		result := f.svc.Deck().DrawOne()
		f.svc.LogHistory(ctx, "user-1", "draw", []domain.DrawResult{result}, "")
	}

	entries, err := f.svc.History(ctx, "user-1", 1000)
	require.NoError(t, err)
	assert.Len(t, entries, 50, "requested limit is clamped to the configured maximum")
}

func TestDailyCardUsesUTCDayKey(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	// Same instant in different zones resolves to the same stored card.
	utc := time.Date(2026, 8, 23, 23, 30, 0, 0, time.UTC)
	east := utc.In(time.FixedZone("UTC+10", 10*60*60))

	first, err := f.svc.DailyCard(ctx, "user-1", utc)
	require.NoError(t, err)
	second, err := f.svc.DailyCard(ctx, "user-1", east)
	require.NoError(t, err)
	assert.Equal(t, first.Card.Name, second.Card.Name)
	assert.Len(t, f.dailies.Records, 1)
}

func TestForgetErasesEverything(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	optIn(t, f, "user-1")
	result := f.svc.Deck().DrawOne()
	f.svc.LogHistory(ctx, "user-1", "draw", []domain.DrawResult{result}, "")
	_, err := f.svc.DailyCard(ctx, "user-1", time.Now())
	require.NoError(t, err)
	f.sessions.SetIntention("user-1", "focus")

	require.NoError(t, f.svc.Forget(ctx, "user-1"))

	assert.Empty(t, f.prefs.Preferences)
	assert.Empty(t, f.dailies.Records)
	assert.Empty(t, f.history.Entries)
	_, ok := f.sessions.Intention("user-1")
	assert.False(t, ok)
}

func TestForgetReportsFirstFailureButTriesAll(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t)
	ctx := context.Background()

	optIn(t, f, "user-1")
	result := f.svc.Deck().DrawOne()
	f.svc.LogHistory(ctx, "user-1", "draw", []domain.DrawResult{result}, "")

	prefErr := errors.New("prefs unavailable")
	f.prefs.DeleteFn = func(ctx context.Context, userID string) error {
		return prefErr
	}

	err := f.svc.Forget(ctx, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, prefErr)

	// Later steps still ran.
	assert.Empty(t, f.history.Entries)
}
