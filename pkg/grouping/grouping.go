package grouping

import (
	"time"

	"github.com/econcal/econcal/pkg/event"
)

// DayKey formats the calendar day of t in loc, the key used by ByDate.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ByDate buckets events by local calendar day. Within a bucket the input
// order is preserved, so feeding the sorted filter output yields sorted
// buckets. Grid views use this for O(1) "events on day D" lookups.
func ByDate(events []event.Event, loc *time.Location) map[string][]event.Event {
	if loc == nil {
		loc = time.Local
	}
	buckets := make(map[string][]event.Event)
	for _, e := range events {
		k := DayKey(e.Start, loc)
		buckets[k] = append(buckets[k], e)
	}
	return buckets
}

// EntryType discriminates the records emitted by Sections.
type EntryType string

const (
	EntryMonth EntryType = "month"
	EntryWeek  EntryType = "week"
	EntryDay   EntryType = "day"
	EntryEvent EntryType = "event"
)

// Entry is one record of the list view: either a section marker for a
// month, week, or day boundary, or an event. Marker IDs derive from the
// calendar unit itself, so regrouping the same events reproduces identical
// IDs and unchanged sections keep their identity.
type Entry struct {
	Type EntryType
	ID   string
	// Date is the marker's boundary (first day of month, Sunday of week,
	// or the day itself) at midnight in the grouping location. For event
	// entries it is the event start.
	Date  time.Time
	Event *event.Event
}

// Sections walks a sorted event sequence once and interleaves month, week
// (Sunday-start), and day markers with the events. A marker of each
// granularity is emitted exactly when that unit differs from the previous
// event's; consecutive events on the same day add no markers.
func Sections(events []event.Event, loc *time.Location) []Entry {
	if loc == nil {
		loc = time.Local
	}

	out := make([]Entry, 0, len(events))
	var prevMonth, prevWeek, prevDay string

	for i := range events {
		e := events[i]
		d := e.Start.In(loc)

		monthID := "month-" + d.Format("2006-01")
		sunday := weekStart(d, loc)
		weekID := "week-" + sunday.Format("2006-01-02")
		dayID := "day-" + d.Format("2006-01-02")

		if monthID != prevMonth {
			out = append(out, Entry{
				Type: EntryMonth,
				ID:   monthID,
				Date: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc),
			})
			prevMonth = monthID
		}
		if weekID != prevWeek {
			out = append(out, Entry{Type: EntryWeek, ID: weekID, Date: sunday})
			prevWeek = weekID
		}
		if dayID != prevDay {
			out = append(out, Entry{
				Type: EntryDay,
				ID:   dayID,
				Date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc),
			})
			prevDay = dayID
		}

		out = append(out, Entry{
			Type:  EntryEvent,
			ID:    e.Key(),
			Date:  e.Start,
			Event: &events[i],
		})
	}

	return out
}

// weekStart returns midnight of the Sunday beginning t's week.
func weekStart(t time.Time, loc *time.Location) time.Time {
	d := t.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day()-int(d.Weekday()), 0, 0, 0, 0, loc)
}
