package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/arcanara/arcanara/internal/catalog"
	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/message"
	"github.com/arcanara/arcanara/internal/reading"
	"github.com/arcanara/arcanara/internal/tone"
)

// Invocation is one parsed user command: who asked, which command, and the
// remaining free-text argument (may be empty).
type Invocation struct {
	UserID string
	Name   string
	Arg    string
}

// Handler dispatches invocations to command implementations. It is safe
// for concurrent use; per-user state lives in the service and its stores.
type Handler struct {
	catalog    *catalog.Catalog
	svc        *reading.Service
	images     message.ImageResolver
	unitBudget int
	now        func() time.Time
	logger     *slog.Logger
}

// NewHandler creates a command handler.
// If images is nil no artwork is attached. If unitBudget is non-positive
// the default budget is used. If log is nil the default logger is used.
func NewHandler(
	cat *catalog.Catalog,
	svc *reading.Service,
	images message.ImageResolver,
	unitBudget int,
	log *slog.Logger,
) *Handler {
	if images == nil {
		images = message.NoImages
	}
	if unitBudget <= 0 {
		unitBudget = message.DefaultUnitBudget
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		catalog:    cat,
		svc:        svc,
		images:     images,
		unitBudget: unitBudget,
		now:        time.Now,
		logger:     log.With(slog.String("component", "commands")),
	}
}

// aliases maps every accepted invocation name to its canonical command.
var aliases = map[string]string{
	"draw": "draw", "pull": "draw", "single": "draw", "card": "draw",
	"daily": "daily", "cardoftheday": "daily", "today": "daily",
	"threecard": "threecard", "three": "threecard", "spread": "threecard",
	"read": "read", "reading": "read",
	"celtic": "celtic", "celticcross": "celtic",
	"wisdom": "wisdom", "collective": "wisdom", "message": "wisdom",
	"meaning": "meaning",
	"clarify": "clarify", "clarifier": "clarify", "followup": "clarify",
	"intent": "intent", "focus": "intent", "setintent": "intent",
	"intention": "intent",
	"mystery": "mystery",
	"reveal":  "reveal",
	"tone":    "tone",
	"settings": "settings",
	"history":  "history",
	"forget":   "forget",
	"shuffle": "shuffle", "reset": "shuffle", "cleanse": "shuffle",
	"help": "help", "arcanara": "help", "insight": "help",
}

// Handle runs one invocation and returns the output units to deliver.
// Expected user mistakes (unknown command, unknown card, unknown tone) are
// answered as units, not errors; an error means the reading itself failed.
func (h *Handler) Handle(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	log := h.logger.With(
		slog.String("command", inv.Name),
		slog.String("user_id", inv.UserID))

	name, ok := aliases[strings.ToLower(strings.TrimSpace(inv.Name))]
	if !ok {
		return h.unknownCommand(inv.Name), nil
	}
	inv.Arg = strings.TrimSpace(inv.Arg)

	log.Debug("handling command")

	switch name {
	case "draw":
		return h.draw(ctx, inv)
	case "daily":
		return h.daily(ctx, inv)
	case "threecard":
		return h.threeCard(ctx, inv)
	case "read":
		return h.read(ctx, inv)
	case "celtic":
		return h.celticCross(ctx, inv)
	case "wisdom":
		return h.wisdom(ctx, inv)
	case "meaning":
		return h.meaning(ctx, inv)
	case "clarify":
		return h.clarify(ctx, inv)
	case "intent":
		return h.intent(ctx, inv)
	case "mystery":
		return h.mystery(ctx, inv)
	case "reveal":
		return h.reveal(ctx, inv)
	case "tone":
		return h.tone(ctx, inv)
	case "settings":
		return h.settings(ctx, inv)
	case "history":
		return h.history(ctx, inv)
	case "forget":
		return h.forget(ctx, inv)
	case "shuffle":
		return h.shuffle(ctx, inv)
	case "help":
		return h.help(), nil
	}
	return h.unknownCommand(inv.Name), nil
}

func (h *Handler) unknownCommand(name string) []message.Unit {
	return []message.Unit{{
		Title: "Unknown Command",
		Body:  "I don't know \"" + name + "\". Try `help` for the full list.",
	}}
}

// cardSection renders one drawn card as a section under the given heading,
// in the user's tone.
func cardSection(heading string, r domain.DrawResult, toneName string) message.Section {
	return message.Section{
		Heading: heading,
		Body:    tone.Render(r.Card, r.Orientation, toneName),
	}
}

// imageFor resolves the card's artwork reference when the user has images
// enabled.
func (h *Handler) imageFor(pref *domain.UserPreference, r domain.DrawResult) string {
	if !pref.ImagesEnabled {
		return ""
	}
	ref, ok := h.images(r.Card.Name, r.Orientation)
	if !ok {
		return ""
	}
	return ref
}

// intentionFooter appends the user's current intention as a closing
// section, when one is set.
func (h *Handler) intentionFooter(userID string, sections []message.Section) []message.Section {
	intention, ok := h.svc.Sessions().Intention(userID)
	if !ok {
		return sections
	}
	return append(sections, message.Section{
		Heading: "Your Intention",
		Body:    intention,
	})
}

// paginate packs sections into units and attaches artwork to the first.
func (h *Handler) paginate(title string, sections []message.Section, imageRef string) []message.Unit {
	units := message.Paginate(title, sections, h.unitBudget)
	if imageRef != "" && len(units) > 0 {
		units[0].ImageRef = imageRef
	}
	return units
}
