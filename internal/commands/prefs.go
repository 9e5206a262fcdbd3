package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arcanara/arcanara/internal/domain"
	"github.com/arcanara/arcanara/internal/message"
	"github.com/arcanara/arcanara/internal/reading"
	"github.com/arcanara/arcanara/internal/tone"
)

// intent sets or shows the user's current intention.
func (h *Handler) intent(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	if inv.Arg == "" {
		current, ok := h.svc.Sessions().Intention(inv.UserID)
		if !ok {
			return []message.Unit{{
				Title: "Intention",
				Body:  "No intention is set. Use `intent <your focus>` to set one.",
			}}, nil
		}
		return []message.Unit{{
			Title: "Intention",
			Body:  "Your current intention: " + current,
		}}, nil
	}

	h.svc.Sessions().SetIntention(inv.UserID, inv.Arg)
	return []message.Unit{{
		Title: "Intention Set",
		Body:  "Your readings will now carry this focus: " + inv.Arg,
	}}, nil
}

// tone shows, sets, or resets the user's tone preset.
func (h *Handler) tone(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	arg := strings.ToLower(inv.Arg)
	switch arg {
	case "":
		current := h.svc.Tone(ctx, inv.UserID)
		return []message.Unit{{
			Title: "Reading Tone",
			Body: fmt.Sprintf("Current tone: **%s**\nAvailable: %s\nUse `tone <name>` to switch or `tone reset` for the default.",
				current, strings.Join(tone.Names(), ", ")),
		}}, nil
	case "reset":
		if err := h.svc.ResetTone(ctx, inv.UserID); err != nil {
			return nil, err
		}
		return []message.Unit{{
			Title: "Reading Tone",
			Body:  "Tone reset to **" + h.svc.DefaultTone() + "**.",
		}}, nil
	}

	err := h.svc.SetTone(ctx, inv.UserID, arg)
	if errors.Is(err, reading.ErrUnknownTone) {
		return []message.Unit{{
			Title: "Unknown Tone",
			Body: fmt.Sprintf("%q is not a tone I know. Available: %s",
				inv.Arg, strings.Join(tone.Names(), ", ")),
		}}, nil
	}
	if err != nil {
		return nil, err
	}
	return []message.Unit{{
		Title: "Reading Tone",
		Body:  "Tone set to **" + arg + "**.",
	}}, nil
}

// settings shows current settings or toggles one of them. Accepted forms:
// "history on|off" and "images on|off".
func (h *Handler) settings(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	pref := h.svc.Settings(ctx, inv.UserID)

	if inv.Arg == "" {
		return []message.Unit{{
			Title: "Your Settings",
			Body: fmt.Sprintf(
				"Tone: **%s**\nHistory: **%s**\nImages: **%s**\n\nChange with `settings history on|off` or `settings images on|off`.",
				pref.Tone, onOff(pref.HistoryOptIn), onOff(pref.ImagesEnabled)),
		}}, nil
	}

	fields := strings.Fields(strings.ToLower(inv.Arg))
	if len(fields) != 2 {
		return h.settingsUsage(), nil
	}
	enabled, ok := parseOnOff(fields[1])
	if !ok {
		return h.settingsUsage(), nil
	}

	var update domain.PreferenceUpdate
	switch fields[0] {
	case "history":
		update.HistoryOptIn = &enabled
	case "images":
		update.ImagesEnabled = &enabled
	default:
		return h.settingsUsage(), nil
	}

	if err := h.svc.UpdateSettings(ctx, inv.UserID, update); err != nil {
		return nil, err
	}
	return []message.Unit{{
		Title: "Settings Updated",
		Body:  fmt.Sprintf("%s is now **%s**.", fields[0], onOff(enabled)),
	}}, nil
}

func (h *Handler) settingsUsage() []message.Unit {
	return []message.Unit{{
		Title: "Settings",
		Body:  "Usage: `settings history on|off` or `settings images on|off`.",
	}}
}

// history lists the user's logged readings, newest first.
func (h *Handler) history(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	pref := h.svc.Settings(ctx, inv.UserID)
	if !pref.HistoryOptIn {
		return []message.Unit{{
			Title: "Reading History",
			Body:  "History is off. Turn it on with `settings history on`; only readings made after that are kept.",
		}}, nil
	}

	limit := 0
	if inv.Arg != "" {
		n, err := strconv.Atoi(inv.Arg)
		if err != nil || n <= 0 {
			return []message.Unit{{
				Title: "Reading History",
				Body:  "Usage: `history` or `history <count>`.",
			}}, nil
		}
		limit = n
	}

	entries, err := h.svc.History(ctx, inv.UserID, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []message.Unit{{
			Title: "Reading History",
			Body:  "No readings logged yet.",
		}}, nil
	}

	var sections []message.Section
	for _, entry := range entries {
		var payload reading.HistoryPayload
		body := ""
		if len(entry.Payload) > 0 {
			if err := json.Unmarshal(entry.Payload, &payload); err == nil {
				for _, card := range payload.Cards {
					if body != "" {
						body += "\n"
					}
					body += fmt.Sprintf("- %s (%s)", card.Name, card.Orientation)
				}
				if payload.Focus != "" {
					body += "\nFocus: " + payload.Focus
				}
			}
		}
		if body == "" {
			body = "(no cards recorded)"
		}
		sections = append(sections, message.Section{
			Heading: fmt.Sprintf("%s, %s", entry.Command,
				entry.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")),
			Body: body,
		})
	}
	return h.paginate("Reading History", sections, ""), nil
}

// forget erases everything stored for the user.
func (h *Handler) forget(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	if err := h.svc.Forget(ctx, inv.UserID); err != nil {
		return nil, err
	}
	return []message.Unit{{
		Title: "Forgotten",
		Body:  "Your settings, daily cards, history, and session state have been erased.",
	}}, nil
}

// shuffle clears transient session state and offers a fresh start. Stored
// settings and history are untouched.
func (h *Handler) shuffle(ctx context.Context, inv Invocation) ([]message.Unit, error) {
	h.svc.Sessions().Forget(inv.UserID)
	return []message.Unit{{
		Title: "Deck Shuffled",
		Body:  "The deck has been cleansed and shuffled. Your intention and any pending mystery are cleared.",
	}}, nil
}

// help lists the available commands.
func (h *Handler) help() []message.Unit {
	return []message.Unit{{
		Title: "Arcanara Commands",
		Body: strings.Join([]string{
			"`draw` - a single card",
			"`daily` - your card of the day (same card all day)",
			"`threecard` - Past / Present / Future spread",
			"`read <focus>` - three-card reading around a focus",
			"`celtic` - ten-card Celtic Cross",
			"`wisdom` - a Major Arcana message",
			"`meaning <card>` - upright and reversed meanings",
			"`clarify` - one extra card for your last reading",
			"`intent <text>` - set your intention",
			"`mystery` / `reveal` - a face-down card, turned over later",
			"`tone [name|reset]` - choose a reading voice",
			"`settings` - history and image preferences",
			"`history [count]` - your logged readings",
			"`shuffle` - clear intention and pending mystery",
			"`forget` - erase everything stored about you",
		}, "\n"),
	}}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, bool) {
	switch s {
	case "on", "true", "yes":
		return true, true
	case "off", "false", "no":
		return false, true
	}
	return false, false
}
