package domain

import "time"

// Documented defaults for an absent preference record.
const (
	DefaultTone          = "classic"
	DefaultHistoryOptIn  = false
	DefaultImagesEnabled = true
)

// UserPreference is the persistent per-user settings record, keyed by the
// platform user ID. An absent record means the documented defaults.
type UserPreference struct {
	UserID        string    `json:"user_id"`
	Tone          string    `json:"tone"`
	HistoryOptIn  bool      `json:"history_opt_in"`
	ImagesEnabled bool      `json:"images_enabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultPreference returns the documented default settings for a user with
// no stored record.
func DefaultPreference(userID string) *UserPreference {
	return &UserPreference{
		UserID:        userID,
		Tone:          DefaultTone,
		HistoryOptIn:  DefaultHistoryOptIn,
		ImagesEnabled: DefaultImagesEnabled,
	}
}

// Validate checks if the UserPreference has valid data.
func (p *UserPreference) Validate() error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if p.Tone == "" {
		return NewValidationError("tone", "cannot be empty", ErrValidation)
	}
	return nil
}

// PreferenceUpdate carries a partial settings change. Nil fields retain
// their current (or default) value; writes merge, never replace.
type PreferenceUpdate struct {
	Tone          *string
	HistoryOptIn  *bool
	ImagesEnabled *bool
}

// Empty reports whether the update changes nothing.
func (u PreferenceUpdate) Empty() bool {
	return u.Tone == nil && u.HistoryOptIn == nil && u.ImagesEnabled == nil
}

// ApplyTo merges the update into the given preference record.
func (u PreferenceUpdate) ApplyTo(p *UserPreference) {
	if u.Tone != nil {
		p.Tone = *u.Tone
	}
	if u.HistoryOptIn != nil {
		p.HistoryOptIn = *u.HistoryOptIn
	}
	if u.ImagesEnabled != nil {
		p.ImagesEnabled = *u.ImagesEnabled
	}
}
