package tone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanara/arcanara/internal/domain"
)

func testCard() *domain.Card {
	number := 1
	return &domain.Card{
		Name:     "Ace of Cups",
		Suit:     domain.SuitCups,
		Number:   &number,
		Upright:  "An overflowing cup offered freely.",
		Reversed: "A blocked well.",
		Guidance: domain.Guidance{
			Theme:        "Emotional beginnings",
			Guidance:     "Let yourself receive as readily as you pour.",
			CallToAction: "Tell someone, plainly, that they matter to you.",
			Mantra:       "My heart is not a finite resource.",
			Shadow:       "Offering the cup only where refusal is guaranteed.",
			Relationship: "An opening: lead with sincerity, not strategy.",
			GreenFlag:    "Affection expressed without prompting.",
			RedFlag:      "A connection that only flows when convenient.",
		},
	}
}

func TestKnownAndNames(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		assert.True(t, Known(name), "advertised tone %q must exist", name)
	}
	assert.False(t, Known("sarcastic"))
	assert.False(t, Known(""))
}

func TestBlocksFallsBackToDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Blocks(DefaultTone), Blocks("no-such-tone"))
	assert.Equal(t, Blocks(DefaultTone), Blocks(""))
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	card := testCard()
	first := Render(card, domain.Upright, "classic")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Render(card, domain.Upright, "classic"))
	}
}

func TestRenderQuickToneSelectsBlocks(t *testing.T) {
	t.Parallel()

	card := testCard()
	out := Render(card, domain.Upright, "quick")

	assert.Contains(t, out, card.Upright)
	assert.Contains(t, out, "**Call to Action:** "+card.Guidance.CallToAction)

	// Blocks outside the preset never leak in.
	assert.NotContains(t, out, card.Guidance.Mantra)
	assert.NotContains(t, out, card.Guidance.Shadow)
	assert.NotContains(t, out, card.Guidance.Relationship)
}

func TestRenderRespectsOrientation(t *testing.T) {
	t.Parallel()

	card := testCard()
	upright := Render(card, domain.Upright, "quick")
	reversed := Render(card, domain.Reversed, "quick")

	assert.Contains(t, upright, card.Upright)
	assert.NotContains(t, upright, card.Reversed)
	assert.Contains(t, reversed, card.Reversed)
	assert.NotContains(t, reversed, card.Upright)
}

func TestRenderSkipsEmptyBlocks(t *testing.T) {
	t.Parallel()

	card := testCard()
	// The love preset includes The Tell, which this card does not carry.
	out := Render(card, domain.Upright, "love")
	assert.NotContains(t, out, "**The Tell:**")
	assert.Contains(t, out, "**Green Flag:** "+card.Guidance.GreenFlag)
}

func TestRenderUnknownToneUsesDefault(t *testing.T) {
	t.Parallel()

	card := testCard()
	assert.Equal(t,
		Render(card, domain.Upright, "classic"),
		Render(card, domain.Upright, "definitely-not-a-tone"))
}

func TestRenderNumerology(t *testing.T) {
	t.Parallel()

	card := testCard()
	out := Render(card, domain.Upright, "classic")
	assert.Contains(t, out, numerologyMap[1])

	// Cards without a number skip the block entirely.
	card.Number = nil
	out = Render(card, domain.Upright, "classic")
	assert.NotContains(t, out, numerologyMap[1])
}

func TestNumerologyReduction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, numerologyMap[7], numerologyText(7))
	assert.Equal(t, "16 → "+numerologyMap[7], numerologyText(16))
	assert.Equal(t, "19 → "+numerologyMap[1], numerologyText(19))
	assert.Equal(t, "", numerologyText(-1))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	short := "short text"
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("a", MaxSectionLen+50)
	out := Truncate(long)
	assert.Equal(t, MaxSectionLen, len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, TruncationMarker))

	exact := strings.Repeat("b", MaxSectionLen)
	assert.Equal(t, exact, Truncate(exact))
}

func TestRenderTruncatesLongOutput(t *testing.T) {
	t.Parallel()

	card := testCard()
	card.Upright = strings.Repeat("water rising ", 200)
	out := Render(card, domain.Upright, "quick")
	require.LessOrEqual(t, len([]rune(out)), MaxSectionLen)
	assert.True(t, strings.HasSuffix(out, TruncationMarker))
}
