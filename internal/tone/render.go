package tone

import (
	"fmt"
	"strings"

	"github.com/arcanara/arcanara/internal/domain"
)

// MaxSectionLen is the hard character ceiling for one rendered section.
// The response assembler relies on every section already fitting under the
// platform field limit, so truncation happens here and nowhere else.
const MaxSectionLen = 1000

// TruncationMarker is appended when a section is cut at the ceiling.
const TruncationMarker = "…"

// Render composes a card, orientation, and tone into bounded display text.
// It is a pure function: identical inputs always produce identical output,
// and no state is read or written. Blocks whose source field is empty are
// skipped; an unknown tone falls back to the default preset.
func Render(card *domain.Card, o domain.Orientation, toneName string) string {
	var parts []string
	for _, block := range Blocks(toneName) {
		text := source(card, o, block)
		if text == "" {
			continue
		}
		// The base meaning and numerology render unlabeled; numerology
		// text carries its own number prefix.
		if label, ok := blockLabels[block]; ok {
			parts = append(parts, fmt.Sprintf("**%s:** %s", label, text))
		} else {
			parts = append(parts, text)
		}
	}
	return Truncate(strings.Join(parts, "\n\n"))
}

// Truncate cuts text to MaxSectionLen runes, appending the truncation
// marker when anything was removed.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxSectionLen {
		return text
	}
	return string(runes[:MaxSectionLen-len([]rune(TruncationMarker))]) + TruncationMarker
}
