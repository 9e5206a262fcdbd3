package deck

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanara/arcanara/internal/catalog"
	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/mocks"
)

func newTestEngine(t *testing.T) (*Engine, *mocks.MockDailyCardStore) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	dailies := mocks.NewMockDailyCardStore()
	rng := rand.New(rand.NewPCG(1, 2))
	return NewEngine(cat, dailies, rng, nil), dailies
}

func TestDrawOne(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	result := engine.DrawOne()
	require.NotNil(t, result.Card)
	assert.True(t, result.Orientation.Valid())
}

func TestDrawOneProducesBothOrientations(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	seen := map[domain.Orientation]bool{}
	for i := 0; i < 200; i++ {
		seen[engine.DrawOne().Orientation] = true
	}
	assert.True(t, seen[domain.Upright], "upright never drawn in 200 tries")
	assert.True(t, seen[domain.Reversed], "reversed never drawn in 200 tries")
}

func TestDrawOneMajorStaysInMajorArcana(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	for i := 0; i < 100; i++ {
		result := engine.DrawOneMajor()
		assert.Equal(t, domain.SuitMajorArcana, result.Card.Suit)
	}
}

func TestDrawManyReturnsDistinctCards(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	for i := 0; i < 1000; i++ {
		results, err := engine.DrawMany(10)
		require.NoError(t, err)
		require.Len(t, results, 10)

		seen := map[string]bool{}
		for _, r := range results {
			assert.False(t, seen[r.Card.Name], "card %q drawn twice", r.Card.Name)
			seen[r.Card.Name] = true
		}
	}
}

func TestDrawManyBounds(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	_, err := engine.DrawMany(0)
	assert.Error(t, err)

	_, err = engine.DrawMany(-3)
	assert.Error(t, err)

	_, err = engine.DrawMany(79)
	assert.ErrorIs(t, err, ErrDrawTooLarge)

	results, err := engine.DrawMany(78)
	require.NoError(t, err)
	assert.Len(t, results, 78)
}

func TestDrawDailyIsIdempotent(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.DrawDaily(ctx, "user-1", "2026-08-23")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := engine.DrawDaily(ctx, "user-1", "2026-08-23")
		require.NoError(t, err)
		assert.Equal(t, first.Card.Name, again.Card.Name)
		assert.Equal(t, first.Orientation, again.Orientation)
	}
}

func TestDrawDailyVariesByUserAndDay(t *testing.T) {
	t.Parallel()
	engine, dailies := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.DrawDaily(ctx, "user-1", "2026-08-23")
	require.NoError(t, err)
	_, err = engine.DrawDaily(ctx, "user-2", "2026-08-23")
	require.NoError(t, err)
	_, err = engine.DrawDaily(ctx, "user-1", "2026-08-24")
	require.NoError(t, err)

	assert.Len(t, dailies.Records, 3, "each (user, day) pair stores its own row")
}

func TestDrawDailyConcurrentFirstCallsAgree(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	const callers = 16
	results := make([]domain.DrawResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.DrawDaily(ctx, "user-race", "2026-08-23")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}
	for i := 1; i < callers; i++ {
		assert.Equal(t, results[0].Card.Name, results[i].Card.Name)
		assert.Equal(t, results[0].Orientation, results[i].Orientation)
	}
}

func TestDrawDailyPropagatesStoreErrors(t *testing.T) {
	t.Parallel()
	engine, dailies := newTestEngine(t)

	storeErr := errors.New("connection refused")
	dailies.GetFn = func(ctx context.Context, userID, day string) (*domain.DailyCardRecord, error) {
		return nil, storeErr
	}

	_, err := engine.DrawDaily(context.Background(), "user-1", "2026-08-23")
	assert.ErrorIs(t, err, storeErr)
}

func TestDrawDailyErrorsWhenStoredCardUnknown(t *testing.T) {
	t.Parallel()
	engine, dailies := newTestEngine(t)
	ctx := context.Background()

	_, err := dailies.InsertIfAbsent(ctx, &domain.DailyCardRecord{
		UserID:      "user-1",
		Day:         "2026-08-23",
		CardName:    "The Card That Never Was",
		Orientation: domain.Upright,
	})
	require.NoError(t, err)

	_, err = engine.DrawDaily(ctx, "user-1", "2026-08-23")
	assert.Error(t, err)
}
