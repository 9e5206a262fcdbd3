// Package catalog loads the static tarot dataset and answers name lookups.
// The catalog is immutable after Load; a failed load is an operator-level
// problem and fatal at startup.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/arcanara/arcanara/internal/domain"
)

//go:embed data/cards.json
var cardData []byte

// Catalog is the indexed, immutable card collection.
type Catalog struct {
	cards  []*domain.Card
	byNorm map[string]*domain.Card
	majors []*domain.Card
}

// Load parses the embedded dataset into an indexed catalog.
// It validates every card and rejects duplicate normalized names.
func Load() (*Catalog, error) {
	return load(cardData)
}

func load(data []byte) (*Catalog, error) {
	var cards []*domain.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse card dataset: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("card dataset is empty")
	}

	cat := &Catalog{
		cards:  cards,
		byNorm: make(map[string]*domain.Card, len(cards)),
	}
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("invalid card %q: %w", card.Name, err)
		}
		key := Normalize(card.Name)
		if _, exists := cat.byNorm[key]; exists {
			return nil, fmt.Errorf("duplicate card name %q", card.Name)
		}
		cat.byNorm[key] = card
		if card.Suit == domain.SuitMajorArcana {
			cat.majors = append(cat.majors, card)
		}
	}
	return cat, nil
}

// Size returns the number of cards in the catalog.
func (c *Catalog) Size() int {
	return len(c.cards)
}

// Cards returns all cards in dataset order. Callers must not modify the
// returned slice or the cards it points to.
func (c *Catalog) Cards() []*domain.Card {
	return c.cards
}

// MajorArcana returns the Major Arcana subset in dataset order.
func (c *Catalog) MajorArcana() []*domain.Card {
	return c.majors
}

// ByName returns the card whose normalized name equals the normalized
// query, if any.
func (c *Catalog) ByName(name string) (*domain.Card, bool) {
	card, ok := c.byNorm[Normalize(name)]
	return card, ok
}
