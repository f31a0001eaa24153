package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/econcal/econcal/pkg/event"
	"github.com/stretchr/testify/assert"
)

func TestWriteEvent_Structure(t *testing.T) {
	e := event.Event{
		UID:      "talk-1@example.edu",
		Source:   "UniMelb Economics",
		Summary:  "Applied Micro Seminar",
		Location: "Room 605",
		Start:    time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
	}

	doc := WriteEvent(e)

	for _, field := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//econcal//econcal//EN",
		"BEGIN:VEVENT",
		"UID:talk-1@example.edu",
		"DTSTART:20250115T090000Z",
		"DTEND:20250115T100000Z",
		"SUMMARY:Applied Micro Seminar",
		"LOCATION:Room 605",
		"DTSTAMP:",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		assert.Contains(t, doc, field)
	}
	assert.True(t, strings.HasSuffix(doc, "\r\n"))
}

func TestWriteEvent_AllDay(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Melbourne")
	assert.NoError(t, err)

	e := event.Event{
		Summary: "PhD Workshop",
		Start:   time.Date(2025, time.March, 1, 0, 0, 0, 0, loc),
		End:     time.Date(2025, time.March, 2, 0, 0, 0, 0, loc),
		AllDay:  true,
	}

	doc := WriteEvent(e)

	assert.Contains(t, doc, "DTSTART;VALUE=DATE:20250301")
	assert.Contains(t, doc, "DTEND;VALUE=DATE:20250302")
}

func TestWriteEvent_GeneratesUIDWhenMissing(t *testing.T) {
	e := event.Event{
		Summary: "Talk",
		Start:   time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC),
	}

	doc := WriteEvent(e)

	assert.Contains(t, doc, "UID:")
	assert.Contains(t, doc, "@econcal")
}

func TestWriteEvent_Escaping(t *testing.T) {
	e := event.Event{
		UID:         "x@y",
		Summary:     "Theory, Practice; Both",
		Description: "Line one\nLine two",
		Start:       time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC),
	}

	doc := WriteEvent(e)

	assert.Contains(t, doc, "SUMMARY:Theory\\, Practice\\; Both")
	assert.Contains(t, doc, "DESCRIPTION:Line one\\nLine two")
}

func TestRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Melbourne")
	assert.NoError(t, err)

	t.Run("timed event", func(t *testing.T) {
		original := event.Event{
			UID:         "rt-1@example.edu",
			Summary:     "Econometrics: Theory, Practice; Both",
			Description: "First line\nSecond line with \\ backslash",
			Location:    "Building 105, Room 3",
			Start:       time.Date(2025, time.July, 3, 4, 30, 0, 0, time.UTC),
			End:         time.Date(2025, time.July, 3, 6, 0, 0, 0, time.UTC),
		}

		parsed := Parse(WriteEvent(original), "src", loc)

		assert.Len(t, parsed, 1)
		got := parsed[0]
		assert.Equal(t, original.Summary, got.Summary)
		assert.Equal(t, original.Description, got.Description)
		assert.Equal(t, original.Location, got.Location)
		assert.True(t, got.Start.Equal(original.Start))
		assert.True(t, got.End.Equal(original.End))
		assert.Equal(t, original.UID, got.UID)
	})

	t.Run("all-day event", func(t *testing.T) {
		original := event.Event{
			UID:     "rt-2@example.edu",
			Summary: "Workshop",
			Start:   time.Date(2025, time.March, 1, 0, 0, 0, 0, loc),
			AllDay:  true,
		}

		parsed := Parse(WriteEvent(original), "src", loc)

		assert.Len(t, parsed, 1)
		assert.True(t, parsed[0].AllDay)
		assert.True(t, parsed[0].Start.Equal(original.Start))
	})
}

func TestWriteCalendar(t *testing.T) {
	events := []event.Event{
		{UID: "a@x", Summary: "First", Start: time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)},
		{UID: "b@x", Summary: "Second", Start: time.Date(2025, time.January, 20, 9, 0, 0, 0, time.UTC)},
	}

	doc := WriteCalendar("econcal", events)

	assert.Contains(t, doc, "X-WR-CALNAME:econcal")
	assert.Contains(t, doc, "METHOD:PUBLISH")
	assert.Equal(t, 2, strings.Count(doc, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(doc, "END:VEVENT"))
	assert.Equal(t, 1, strings.Count(doc, "BEGIN:VCALENDAR"))
}
