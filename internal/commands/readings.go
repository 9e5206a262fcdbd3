package commands

import (
	"context"
	"fmt"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/message"
	"github.com/arcanara/arcanara/internal/tone"
)

// Spread positions, in draw order.
var (
	threeCardPositions = []string{"Past", "Present", "Future"}

	readPositions = []string{"Situation", "Obstacle", "Guidance"}

	celticPositions = []string{
		"1. Present Situation", "2. Challenge", "3. Root Cause", "4. Past",
		"5. Conscious Goal", "6. Near Future", "7. Self",
		"8. External Influence", "9. Hopes & Fears", "10. Outcome",
	}
)

// draw pulls a single card from the full deck.
func (h *Handler) draw(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	pref := h.svc.Settings(ctx, inv.UserID)
	result := h.svc.Deck().DrawOne()

	sections := []message.Section{
		cardSection(cardHeading(result), result, pref.Tone),
	}
	sections = h.intentionFooter(inv.UserID, sections)

	h.svc.LogHistory(ctx, inv.UserID, "draw", []domain.DrawResult{result}, "")
	return h.paginate("Single Card Draw", sections, h.imageFor(pref, result)), nil
}

// daily returns the user's card of the day, drawing one if today's is not
// yet stored. Repeat calls on the same UTC day return the same card.
func (h *Handler) daily(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	pref := h.svc.Settings(ctx, inv.UserID)
	result, err := h.svc.DailyCard(ctx, inv.UserID, h.now())
	if err != nil {
		return nil, err
	}

	sections := []message.Section{
		cardSection(cardHeading(result), result, pref.Tone),
	}
	h.svc.LogHistory(ctx, inv.UserID, "daily", []domain.DrawResult{result}, "")
	return h.paginate("Card of the Day", sections, h.imageFor(pref, result)), nil
}

// threeCard lays a Past / Present / Future spread of three distinct cards.
func (h *Handler) threeCard(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	return h.spread(ctx, inv, "threecard", "Three-Card Spread", threeCardPositions, "")
}

// read sets the user's focus and lays a three-card spread around it. The
// focus overwrites any prior intention. Without a focus, nothing is drawn.
func (h *Handler) read(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	if inv.Arg == "" {
		return []message.Unit{{
			Title: "Focused Reading",
			Body:  "Please include a question or focus after the command. Example: `read my career path`.",
		}}, nil
	}
	h.svc.Sessions().SetIntention(inv.UserID, inv.Arg)
	return h.spread(ctx, inv, "read", "Focused Reading", readPositions, inv.Arg)
}

// celticCross lays the ten-position Celtic Cross spread.
func (h *Handler) celticCross(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	return h.spread(ctx, inv, "celtic", "Celtic Cross Spread", celticPositions, "")
}

// spread is the shared multi-card layout behind threecard, read, and
// celtic: distinct cards, one labeled section per position.
func (h *Handler) spread(
	ctx context.Context,
	inv Invocation,
	command, title string,
	positions []string,
	focus string,
) ([]message.Unit, error) {
	pref := h.svc.Settings(ctx, inv.UserID)
	results, err := h.svc.Deck().DrawMany(len(positions))
	if err != nil {
		return nil, err
	}

	sections := make([]message.Section, 0, len(results)+1)
	for i, r := range results {
		heading := message.FormatSpreadLabel(positions[i], r.Card, r.Orientation)
		sections = append(sections, message.Section{
			Heading: heading,
			Body:    tone.Render(r.Card, r.Orientation, pref.Tone),
		})
	}
	sections = h.intentionFooter(inv.UserID, sections)

	h.svc.LogHistory(ctx, inv.UserID, command, results, focus)
	return h.paginate(title, sections, ""), nil
}

// wisdom draws a single card restricted to the Major Arcana.
func (h *Handler) wisdom(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	pref := h.svc.Settings(ctx, inv.UserID)
	result := h.svc.Deck().DrawOneMajor()

	sections := []message.Section{
		cardSection(cardHeading(result), result, pref.Tone),
	}
	h.svc.LogHistory(ctx, inv.UserID, "wisdom", []domain.DrawResult{result}, "")
	return h.paginate("Collective Wisdom", sections, h.imageFor(pref, result)), nil
}

// clarify pulls one extra card to shed light on the previous reading.
func (h *Handler) clarify(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	pref := h.svc.Settings(ctx, inv.UserID)
	result := h.svc.Deck().DrawOne()

	heading := message.FormatSpreadLabel("Clarifier", result.Card, result.Orientation)
	sections := []message.Section{{
		Heading: heading,
		Body:    tone.Render(result.Card, result.Orientation, pref.Tone),
	}}
	sections = h.intentionFooter(inv.UserID, sections)
	h.svc.LogHistory(ctx, inv.UserID, "clarify", []domain.DrawResult{result}, "")
	return h.paginate("Clarifying Card", sections, h.imageFor(pref, result)), nil
}

// mystery draws a card and names it, but keeps the meaning hidden until
// reveal. A pending mystery is silently replaced.
func (h *Handler) mystery(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	result := h.svc.Deck().DrawOne()
	h.svc.Sessions().BeginMystery(inv.UserID, result.Card.Name, result.Orientation)

	body := fmt.Sprintf(
		"**%s**\n\nThe meaning of this card is hidden. Use `reveal` when you are ready.",
		cardHeading(result),
	)
	return []message.Unit{{Title: "Mystery Card", Body: body}}, nil
}

// reveal turns over the pending mystery card, if any. The pending draw is
// consumed either way.
func (h *Handler) reveal(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	m, ok := h.svc.Sessions().ConsumeMystery(inv.UserID)
	if !ok {
		return []message.Unit{{
			Title: "Nothing to Reveal",
			Body:  "No mystery card is waiting. Draw one with `mystery`.",
		}}, nil
	}

	card, found := h.catalog.ByName(m.CardName)
	if !found {
		return nil, fmt.Errorf("pending mystery card %q not in catalog", m.CardName)
	}
	result := domain.DrawResult{Card: card, Orientation: m.Orientation}
	pref := h.svc.Settings(ctx, inv.UserID)

	sections := []message.Section{
		cardSection(cardHeading(result), result, pref.Tone),
	}
	h.svc.LogHistory(ctx, inv.UserID, "reveal", []domain.DrawResult{result}, "")
	return h.paginate("The Mystery Revealed", sections, h.imageFor(pref, result)), nil
}

// meaning looks up a card by name and shows both orientations. Ambiguous
// queries list the candidates instead of guessing.
func (h *Handler) meaning(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	if inv.Arg == "" {
		return []message.Unit{{
			Title: "Card Meaning",
			Body:  "Name a card, for example `meaning the tower` or `meaning 3 of cups`.",
		}}, nil
	}

	matches := h.catalog.Lookup(inv.Arg)
	switch len(matches) {
	case 0:
		return []message.Unit{{
			Title: "Card Not Found",
			Body:  fmt.Sprintf("I couldn't find a card matching %q.", inv.Arg),
		}}, nil
	case 1:
		// fall through to render below
	default:
		body := fmt.Sprintf("%q could mean any of these; be more specific:\n", inv.Arg)
		for _, card := range matches {
			body += "\n- " + card.Name
		}
		return []message.Unit{{Title: "Which Card?", Body: body}}, nil
	}

	card := matches[0]
	pref := h.svc.Settings(ctx, inv.UserID)
	sections := []message.Section{
		{
			Heading: "Upright",
			Body:    tone.Render(card, domain.Upright, pref.Tone),
		},
		{
			Heading: "Reversed",
			Body:    tone.Render(card, domain.Reversed, pref.Tone),
		},
	}
	imageRef := h.imageFor(pref, domain.DrawResult{Card: card, Orientation: domain.Upright})
	return h.paginate(card.Name, sections, imageRef), nil
}

func cardHeading(r domain.DrawResult) string {
	return fmt.Sprintf("%s (%s)", r.Card.Name, r.Orientation)
}
