// Package deck samples cards from the catalog: single draws, distinct
// multi-card draws for spreads, and the idempotent per-user daily card.
package deck

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/arcanara/arcanara/internal/catalog"
	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/platform/logger"
	"github.com/arcanara/arcanara/internal/store"
)

// ErrDrawTooLarge is returned when a multi-card draw requests more cards
// than the catalog holds. The request is rejected, never silently clamped.
var ErrDrawTooLarge = fmt.Errorf("requested draw exceeds catalog size")

// Engine performs draws against an immutable catalog. Draw orientation is
// uniform and independent per card. The engine itself is stateless apart
// from its random source; DrawDaily consults the daily-card store for
// caching.
type Engine struct {
	catalog *catalog.Catalog
	dailies store.DailyCardStore
	logger  *slog.Logger

	// rng is guarded by mu; commands for different users draw concurrently.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates a draw engine over the given catalog.
// If rng is nil a source seeded from the runtime is used; tests inject a
// fixed seed. If logger is nil the default logger is used.
func NewEngine(
	cat *catalog.Catalog,
	dailies store.DailyCardStore,
	rng *rand.Rand,
	log *slog.Logger,
) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		catalog: cat,
		dailies: dailies,
		rng:     rng,
		logger:  log.With(slog.String("component", "deck")),
	}
}

// DrawOne uniformly selects one card (with replacement across calls) and an
// independent uniformly-random orientation.
func (e *Engine) DrawOne() domain.DrawResult {
	cards := e.catalog.Cards()
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.DrawResult{
		Card:        cards[e.rng.IntN(len(cards))],
		Orientation: e.randomOrientationLocked(),
	}
}

// DrawOneMajor draws a single card restricted to the Major Arcana.
func (e *Engine) DrawOneMajor() domain.DrawResult {
	majors := e.catalog.MajorArcana()
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.DrawResult{
		Card:        majors[e.rng.IntN(len(majors))],
		Orientation: e.randomOrientationLocked(),
	}
}

// DrawMany returns n distinct cards, sampled without replacement from a
// shuffled copy of the full catalog, each with an independent random
// orientation. Returns ErrDrawTooLarge if n exceeds the catalog size.
func (e *Engine) DrawMany(n int) ([]domain.DrawResult, error) {
	size := e.catalog.Size()
	if n <= 0 {
		return nil, fmt.Errorf("draw count must be positive, got %d", n)
	}
	if n > size {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrDrawTooLarge, n, size)
	}

	deckCopy := make([]*domain.Card, size)
	copy(deckCopy, e.catalog.Cards())

	e.mu.Lock()
	e.rng.Shuffle(size, func(i, j int) {
		deckCopy[i], deckCopy[j] = deckCopy[j], deckCopy[i]
	})
	results := make([]domain.DrawResult, 0, n)
	for _, card := range deckCopy[:n] {
		results = append(results, domain.DrawResult{
			Card:        card,
			Orientation: e.randomOrientationLocked(),
		})
	}
	e.mu.Unlock()
	return results, nil
}

// DrawDaily returns the cached daily card for (user, day) if present;
// otherwise it draws one, records it with an atomic insert-if-absent, and
// returns the now-stored value. Under concurrent first calls every caller
// observes the single stored winner.
func (e *Engine) DrawDaily(ctx context.Context, userID, day string) (domain.DrawResult, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	rec, err := e.dailies.Get(ctx, userID, day)
	if err == nil {
		return e.resolve(rec)
	}
	if !store.IsNotFoundError(err) {
		return domain.DrawResult{}, err
	}

	drawn := e.DrawOne()
	inserted, err := e.dailies.InsertIfAbsent(ctx, &domain.DailyCardRecord{
		UserID:      userID,
		Day:         day,
		CardName:    drawn.Card.Name,
		Orientation: drawn.Orientation,
	})
	if err != nil {
		return domain.DrawResult{}, err
	}
	if inserted {
		log.Debug("daily card recorded",
			slog.String("user_id", userID),
			slog.String("day", day),
			slog.String("card", drawn.Card.Name))
		return drawn, nil
	}

	// A concurrent first call won the insert; return its stored result.
	rec, err = e.dailies.Get(ctx, userID, day)
	if err != nil {
		return domain.DrawResult{}, err
	}
	return e.resolve(rec)
}

// resolve maps a stored daily record back onto the catalog card.
func (e *Engine) resolve(rec *domain.DailyCardRecord) (domain.DrawResult, error) {
	card, ok := e.catalog.ByName(rec.CardName)
	if !ok {
		// A stored name missing from the catalog means the dataset shrank
		// underneath persisted data; surface it rather than guessing.
		return domain.DrawResult{}, fmt.Errorf(
			"stored daily card %q not in catalog", rec.CardName)
	}
	return domain.DrawResult{Card: card, Orientation: rec.Orientation}, nil
}

func (e *Engine) randomOrientationLocked() domain.Orientation {
	if e.rng.IntN(2) == 0 {
		return domain.Upright
	}
	return domain.Reversed
}
