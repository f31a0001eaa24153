package event

import (
	"fmt"
	"time"
)

// Event is one seminar occurrence parsed from an ICS feed. Events are
// immutable after parsing; the store only ever appends them.
type Event struct {
	// UID is the stable identifier from the source feed, if it had one.
	UID         string
	Source      string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	// End is the zero time when the feed declared no DTEND.
	End    time.Time
	AllDay bool
	// StartTZ records a TZID parameter seen on DTSTART. It is informational
	// only: named zones are not resolved, so it never affects Start.
	StartTZ string
}

// Key returns the event's UID, or a composite of source, start timestamp,
// and summary when the feed did not provide one.
func (e Event) Key() string {
	if e.UID != "" {
		return e.UID
	}
	return fmt.Sprintf("%s|%d|%s", e.Source, e.Start.Unix(), e.Summary)
}

// HasEnd reports whether the event has a defined end.
func (e Event) HasEnd() bool {
	return !e.End.IsZero()
}
