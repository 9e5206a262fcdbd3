package domain

import "time"

// DayKeyLayout is the calendar-day format used to key daily-card records.
// Days are reckoned in one fixed reference timezone (UTC) so that "today"
// means the same thing for every replica handling the same user.
const DayKeyLayout = "2006-01-02"

// DayKey returns the daily-card key for the given instant, in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// DailyCardRecord is the persisted result of a user's first daily draw for a
// calendar day. Created at most once per (user, day); subsequent draws for
// the same key return the stored value unchanged.
type DailyCardRecord struct {
	UserID      string      `json:"user_id"`
	Day         string      `json:"day"`
	CardName    string      `json:"card_name"`
	Orientation Orientation `json:"orientation"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Validate checks if the DailyCardRecord has valid data.
func (r *DailyCardRecord) Validate() error {
	if r.UserID == "" {
		return ErrEmptyUserID
	}
	if r.Day == "" {
		return ErrEmptyDay
	}
	if r.CardName == "" {
		return ErrCardNameEmpty
	}
	if !r.Orientation.Valid() {
		return ErrInvalidOrientation
	}
	return nil
}
