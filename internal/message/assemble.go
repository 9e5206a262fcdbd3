// Package message packs rendered sections into size-bounded output units
// for the external messaging-channel collaborator.
package message

import (
	"fmt"

	"github.com/arcanara/arcanara/internal/domain"
)

// DefaultUnitBudget is the per-unit character ceiling used when the caller
// does not supply one (the common platform embed limit, minus headroom).
const DefaultUnitBudget = 5800

// Unit is one bounded-size output message. ImageRef is an opaque reference
// resolved by the external image collaborator; empty means no image.
type Unit struct {
	Title    string
	Body     string
	ImageRef string
}

// Section is one pre-truncated piece of rendered content. The renderer
// guarantees each section already fits within any sane unit budget, so the
// assembler never splits a section across units.
type Section struct {
	Heading string
	Body    string
}

func (s Section) length() int {
	return len([]rune(s.text()))
}

func (s Section) text() string {
	if s.Heading == "" {
		return s.Body
	}
	return "**" + s.Heading + "**\n" + s.Body
}

// ImageResolver maps a card and orientation to an opaque image reference.
// It is a pure lookup supplied by an external collaborator; ok=false means
// no artwork.
type ImageResolver func(cardName string, o domain.Orientation) (ref string, ok bool)

// NoImages is an ImageResolver that never resolves. Used when images are
// disabled or no artwork collaborator is wired.
func NoImages(string, domain.Orientation) (string, bool) {
	return "", false
}

// Paginate accumulates sections into output units under perUnitBudget
// characters of body each. When the next section would exceed the budget
// the current unit is sealed and a new one opens with a "continued"
// heading. Section order is preserved across units and no section is ever
// split.
func Paginate(title string, sections []Section, perUnitBudget int) []Unit {
	if perUnitBudget <= 0 {
		perUnitBudget = DefaultUnitBudget
	}

	var units []Unit
	current := Unit{Title: title}
	used := 0

	for _, section := range sections {
		need := section.length()
		if used > 0 {
			need += 2 // paragraph separator
		}
		if used > 0 && used+need > perUnitBudget {
			units = append(units, current)
			current = Unit{Title: title + " (continued)"}
			used = 0
			need = section.length()
		}
		if used > 0 {
			current.Body += "\n\n"
		}
		current.Body += section.text()
		used += need
	}
	units = append(units, current)
	return units
}

// FormatSpreadLabel builds the uniform "Position: Card (Orientation)"
// heading every spread size reuses.
func FormatSpreadLabel(position string, card *domain.Card, o domain.Orientation) string {
	return fmt.Sprintf("%s: %s (%s)", position, card.Name, o)
}
