package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReadingHistoryEntry is one append-only row of the opt-in reading log.
// Rows are written only if the user's history opt-in was true at write time
// and are never mutated after insert.
type ReadingHistoryEntry struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	Command   string          `json:"command"`
	Tone      string          `json:"tone"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewReadingHistoryEntry creates a new history entry with a fresh ID and
// timestamp. Returns an error if validation fails.
func NewReadingHistoryEntry(
	userID, command, tone string,
	payload json.RawMessage,
) (*ReadingHistoryEntry, error) {
	entry := &ReadingHistoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Command:   command,
		Tone:      tone,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Validate checks if the ReadingHistoryEntry has valid data.
func (e *ReadingHistoryEntry) Validate() error {
	if e.ID == uuid.Nil {
		return NewValidationError("id", "cannot be nil", ErrValidation)
	}
	if e.UserID == "" {
		return ErrEmptyUserID
	}
	if e.Command == "" {
		return NewValidationError("command", "cannot be empty", ErrValidation)
	}
	if len(e.Payload) > 0 {
		var js json.RawMessage
		if err := json.Unmarshal(e.Payload, &js); err != nil {
			return NewValidationError("payload", "must be valid JSON", ErrValidation)
		}
	}
	return nil
}
