package domain

import "time"

// DateFormat is how meeting dates are shown to users.
const DateFormat = "02.01.2006"

// Meeting is a calendar date grouping availability answers. The date is
// always midnight; its Unix timestamp is the storage key.
type Meeting struct {
	Date time.Time
}

// NewMeeting creates a meeting at the given instant truncated to midnight.
func NewMeeting(t time.Time) Meeting {
	return Meeting{Date: Midnight(t)}
}

// MeetingFromTimestamp reconstructs a meeting from a stored key. The
// timestamp is used as-is, so keys round-trip exactly.
func MeetingFromTimestamp(ts int64) Meeting {
	return Meeting{Date: time.Unix(ts, 0)}
}

// Key returns the timestamp under which the meeting's availabilities are
// stored.
func (m Meeting) Key() int64 {
	return m.Date.Unix()
}

// Midnight truncates t to 00:00:00 of the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
