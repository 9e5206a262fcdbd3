// Package tone renders a drawn card into display text. A tone is a named
// preset: an ordered list of guidance blocks. Tones select and order
// content only; labels per block are fixed.
package tone

import "github.com/arcanara/arcanara/internal/domain"

// Block identifies one renderable content block of a card.
type Block string

// Renderable blocks. BlockMeaning is the orientation-dependent base
// meaning; the rest map to named guidance fields.
const (
	BlockMeaning      Block = "meaning"
	BlockNumerology   Block = "numerology"
	BlockTheme        Block = "theme"
	BlockGuidance     Block = "guidance"
	BlockCallToAction Block = "call_to_action"
	BlockMantra       Block = "mantra"
	BlockDo           Block = "do"
	BlockDont         Block = "dont"
	BlockWatchFor     Block = "watch_for"
	BlockShadow       Block = "shadow"
	BlockQuestions    Block = "questions"
	BlockNext24h      Block = "next_24h"
	BlockRelationship Block = "relationship"
	BlockWork         Block = "work"
	BlockMoney        Block = "money"
	BlockTell         Block = "tell"
	BlockPrescription Block = "prescription"
	BlockPitfall      Block = "pitfall"
	BlockGreenFlag    Block = "green_flag"
	BlockRedFlag      Block = "red_flag"
	BlockReaderVoice  Block = "reader_voice"
	BlockPoeticHint   Block = "poetic_hint"
)

// blockLabels are the fixed display labels. The base meaning renders
// unlabeled.
var blockLabels = map[Block]string{
	BlockTheme:        "Theme",
	BlockGuidance:     "Guidance",
	BlockCallToAction: "Call to Action",
	BlockMantra:       "Mantra",
	BlockDo:           "Do",
	BlockDont:         "Don't",
	BlockWatchFor:     "Watch For",
	BlockShadow:       "Shadow",
	BlockQuestions:    "Questions",
	BlockNext24h:      "Next 24 Hours",
	BlockRelationship: "In Love",
	BlockWork:         "At Work",
	BlockMoney:        "Money",
	BlockTell:         "The Tell",
	BlockPrescription: "Prescription",
	BlockPitfall:      "Pitfall",
	BlockGreenFlag:    "Green Flag",
	BlockRedFlag:      "Red Flag",
	BlockReaderVoice:  "Reader's Voice",
	BlockPoeticHint:   "Poetic Hint",
}

// DefaultTone is the preset used for users with no stored preference and as
// the fallback for unknown tone names.
const DefaultTone = "classic"

// presets maps tone names to their ordered block lists.
var presets = map[string][]Block{
	"classic": {
		BlockTheme, BlockNumerology, BlockMeaning,
		BlockGuidance, BlockCallToAction,
	},
	"quick": {
		BlockMeaning, BlockCallToAction,
	},
	"deep": {
		BlockMeaning, BlockShadow, BlockQuestions,
		BlockMantra, BlockPoeticHint,
	},
	"practical": {
		BlockMeaning, BlockDo, BlockDont, BlockWatchFor,
		BlockNext24h, BlockPrescription, BlockPitfall,
	},
	"love": {
		BlockMeaning, BlockRelationship, BlockGreenFlag,
		BlockRedFlag, BlockTell,
	},
	"work": {
		BlockMeaning, BlockWork, BlockMoney, BlockDo, BlockWatchFor,
	},
	"poetic": {
		BlockReaderVoice, BlockPoeticHint, BlockMantra, BlockCallToAction,
	},
}

// Known reports whether the given tone name is a shipped preset.
func Known(name string) bool {
	_, ok := presets[name]
	return ok
}

// Names returns the shipped tone names in stable order.
func Names() []string {
	return []string{"classic", "quick", "deep", "practical", "love", "work", "poetic"}
}

// Blocks returns the ordered block list for the tone, falling back to the
// default tone for unknown names. Unknown tones never error; the fallback
// is the documented policy.
func Blocks(name string) []Block {
	if blocks, ok := presets[name]; ok {
		return blocks
	}
	return presets[DefaultTone]
}

// source returns the text a block draws from, or "" when the card does not
// carry it. Empty sources are skipped by the renderer.
func source(card *domain.Card, o domain.Orientation, b Block) string {
	g := card.Guidance
	switch b {
	case BlockMeaning:
		return card.Meaning(o)
	case BlockNumerology:
		if card.Number == nil {
			return ""
		}
		return numerologyText(*card.Number)
	case BlockTheme:
		return g.Theme
	case BlockGuidance:
		return g.Guidance
	case BlockCallToAction:
		return g.CallToAction
	case BlockMantra:
		return g.Mantra
	case BlockDo:
		return g.Do
	case BlockDont:
		return g.Dont
	case BlockWatchFor:
		return g.WatchFor
	case BlockShadow:
		return g.Shadow
	case BlockQuestions:
		return joinQuestions(g.Questions)
	case BlockNext24h:
		return g.Next24h
	case BlockRelationship:
		return g.Relationship
	case BlockWork:
		return g.Work
	case BlockMoney:
		return g.Money
	case BlockTell:
		return g.Tell
	case BlockPrescription:
		return g.Prescription
	case BlockPitfall:
		return g.Pitfall
	case BlockGreenFlag:
		return g.GreenFlag
	case BlockRedFlag:
		return g.RedFlag
	case BlockReaderVoice:
		return g.ReaderVoice
	case BlockPoeticHint:
		return g.PoeticHint
	}
	return ""
}

func joinQuestions(qs []string) string {
	if len(qs) == 0 {
		return ""
	}
	out := ""
	for i, q := range qs {
		if i > 0 {
			out += "\n"
		}
		out += "- " + q
	}
	return out
}
