package catalog

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/arcanara/arcanara/internal/domain"
)

// maxFuzzyDistance bounds the nearest-name fallback. Anything further than
// this many edits from every card name is treated as "not found".
const maxFuzzyDistance = 3

// Lookup resolves a free-text query to candidate cards with fixed
// precedence: exact normalized-name match, then normalized-name prefix,
// then all-tokens-contained, then bounded fuzzy nearest-name. The result
// may be empty (nothing close enough) or multi-valued (ambiguous); callers
// surface ambiguity to the user rather than guessing.
func (c *Catalog) Lookup(query string) []*domain.Card {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	// 1. Exact match is unique by construction.
	if card, ok := c.byNorm[q]; ok {
		return []*domain.Card{card}
	}

	// 2. Prefix matches.
	var prefix []*domain.Card
	for key, card := range c.byNorm {
		if strings.HasPrefix(key, q) {
			prefix = append(prefix, card)
		}
	}
	if len(prefix) > 0 {
		sortByName(prefix)
		return prefix
	}

	// 3. Every query token appears in the name's token set.
	qTokens := strings.Fields(q)
	var contained []*domain.Card
	for key, card := range c.byNorm {
		nameTokens := strings.Fields(key)
		if containsAll(nameTokens, qTokens) {
			contained = append(contained, card)
		}
	}
	if len(contained) > 0 {
		sortByName(contained)
		return contained
	}

	// 4. Bounded fuzzy nearest-name match. All names at the minimal
	// distance are returned; several equally-near names is an ambiguity
	// the caller reports, not a coin flip.
	best := maxFuzzyDistance + 1
	var fuzzy []*domain.Card
	for key, card := range c.byNorm {
		d := levenshtein.Distance(q, key, nil)
		switch {
		case d < best:
			best = d
			fuzzy = fuzzy[:0]
			fuzzy = append(fuzzy, card)
		case d == best:
			fuzzy = append(fuzzy, card)
		}
	}
	if best > maxFuzzyDistance {
		return nil
	}
	sortByName(fuzzy)
	return fuzzy
}

func containsAll(haystack, needles []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortByName(cards []*domain.Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Name < cards[j].Name
	})
}
