package domain

// Suit identifies which of the four minor suits a card belongs to, or the
// Major Arcana.
type Suit string

// Known suits.
const (
	SuitWands       Suit = "Wands"
	SuitCups        Suit = "Cups"
	SuitSwords      Suit = "Swords"
	SuitPentacles   Suit = "Pentacles"
	SuitMajorArcana Suit = "Major Arcana"
)

// Valid reports whether the suit is one of the five known suits.
func (s Suit) Valid() bool {
	switch s {
	case SuitWands, SuitCups, SuitSwords, SuitPentacles, SuitMajorArcana:
		return true
	}
	return false
}

// Orientation is the facing of a drawn card.
type Orientation string

// Possible orientations.
const (
	Upright  Orientation = "Upright"
	Reversed Orientation = "Reversed"
)

// Valid reports whether the orientation is Upright or Reversed.
func (o Orientation) Valid() bool {
	return o == Upright || o == Reversed
}

// Guidance holds the optional named guidance fields a card may carry.
// Empty fields are simply absent from the dataset; the renderer skips them.
type Guidance struct {
	Theme        string   `json:"theme,omitempty"`
	Guidance     string   `json:"guidance,omitempty"`
	CallToAction string   `json:"call_to_action,omitempty"`
	Mantra       string   `json:"mantra,omitempty"`
	Do           string   `json:"do,omitempty"`
	Dont         string   `json:"dont,omitempty"`
	WatchFor     string   `json:"watch_for,omitempty"`
	Shadow       string   `json:"shadow,omitempty"`
	Questions    []string `json:"questions,omitempty"`
	Next24h      string   `json:"next_24h,omitempty"`
	Relationship string   `json:"relationship,omitempty"`
	Work         string   `json:"work,omitempty"`
	Money        string   `json:"money,omitempty"`
	Tell         string   `json:"tell,omitempty"`
	Prescription string   `json:"prescription,omitempty"`
	Pitfall      string   `json:"pitfall,omitempty"`
	GreenFlag    string   `json:"green_flag,omitempty"`
	RedFlag      string   `json:"red_flag,omitempty"`
	ReaderVoice  string   `json:"reader_voice,omitempty"`
	PoeticHint   string   `json:"poetic_hint,omitempty"`
}

// Card is one immutable entry in the tarot catalog. The full set is loaded
// once at startup and never mutated afterwards; callers share pointers into
// the catalog and must treat them as read-only.
type Card struct {
	Name     string   `json:"name"`
	Suit     Suit     `json:"suit"`
	Number   *int     `json:"number,omitempty"`
	Upright  string   `json:"upright"`
	Reversed string   `json:"reversed"`
	Guidance Guidance `json:"guidance"`
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.Name == "" {
		return ErrCardNameEmpty
	}
	if !c.Suit.Valid() {
		return ErrCardSuitInvalid
	}
	if c.Upright == "" || c.Reversed == "" {
		return ErrCardMeaningEmpty
	}
	return nil
}

// Meaning returns the base meaning text for the given orientation.
func (c *Card) Meaning(o Orientation) string {
	if o == Reversed {
		return c.Reversed
	}
	return c.Upright
}

// DrawResult pairs a card with the orientation it was drawn in. It is
// ephemeral unless explicitly persisted (the daily-card path).
type DrawResult struct {
	Card        *Card
	Orientation Orientation
}
