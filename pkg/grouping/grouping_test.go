package grouping

import (
	"testing"
	"time"

	"github.com/econcal/econcal/pkg/event"
	"github.com/stretchr/testify/assert"
)

var loc = time.UTC

func seminar(uid string, start time.Time) event.Event {
	return event.Event{UID: uid, Source: "src", Summary: "Seminar " + uid, Start: start}
}

func TestByDate(t *testing.T) {
	events := []event.Event{
		seminar("a", time.Date(2025, time.June, 10, 9, 0, 0, 0, loc)),
		seminar("b", time.Date(2025, time.June, 10, 14, 0, 0, 0, loc)),
		seminar("c", time.Date(2025, time.June, 11, 9, 0, 0, 0, loc)),
	}

	buckets := ByDate(events, loc)

	assert.Len(t, buckets, 2)
	assert.Len(t, buckets["2025-06-10"], 2)
	assert.Len(t, buckets["2025-06-11"], 1)
	// In-bucket order follows input order.
	assert.Equal(t, "a", buckets["2025-06-10"][0].UID)
	assert.Equal(t, "b", buckets["2025-06-10"][1].UID)
}

func TestByDate_LocalDayBoundary(t *testing.T) {
	mel, err := time.LoadLocation("Australia/Melbourne")
	assert.NoError(t, err)

	// 20:00 UTC on June 10 is already June 11 in Melbourne.
	events := []event.Event{
		seminar("a", time.Date(2025, time.June, 10, 20, 0, 0, 0, time.UTC)),
	}

	buckets := ByDate(events, mel)

	assert.Len(t, buckets["2025-06-11"], 1)
	assert.Empty(t, buckets["2025-06-10"])
}

func TestSections_MarkersAndOrder(t *testing.T) {
	// June 1 2025 is a Sunday; June 7 is in the same Sunday-start week.
	events := []event.Event{
		seminar("a", time.Date(2025, time.June, 2, 9, 0, 0, 0, loc)),
		seminar("b", time.Date(2025, time.June, 2, 14, 0, 0, 0, loc)),
		seminar("c", time.Date(2025, time.June, 7, 9, 0, 0, 0, loc)),
		seminar("d", time.Date(2025, time.June, 9, 9, 0, 0, 0, loc)),
		seminar("e", time.Date(2025, time.July, 1, 9, 0, 0, 0, loc)),
	}

	entries := Sections(events, loc)

	var shape []string
	for _, entry := range entries {
		shape = append(shape, string(entry.Type)+":"+entry.ID)
	}

	assert.Equal(t, []string{
		"month:month-2025-06",
		"week:week-2025-06-01",
		"day:day-2025-06-02",
		"event:a",
		"event:b",
		"day:day-2025-06-07",
		"event:c",
		"week:week-2025-06-08",
		"day:day-2025-06-09",
		"event:d",
		"month:month-2025-07",
		"week:week-2025-06-29",
		"day:day-2025-07-01",
		"event:e",
	}, shape)
}

func TestSections_Deterministic(t *testing.T) {
	events := []event.Event{
		seminar("a", time.Date(2025, time.June, 2, 9, 0, 0, 0, loc)),
		seminar("b", time.Date(2025, time.June, 20, 9, 0, 0, 0, loc)),
	}

	first := Sections(events, loc)
	second := Sections(events, loc)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestSections_MarkerDates(t *testing.T) {
	events := []event.Event{
		seminar("a", time.Date(2025, time.June, 4, 9, 0, 0, 0, loc)),
	}

	entries := Sections(events, loc)

	assert.Len(t, entries, 4)
	assert.True(t, entries[0].Date.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, loc)))
	// The week containing Wednesday June 4 starts on Sunday June 1.
	assert.True(t, entries[1].Date.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, loc)))
	assert.True(t, entries[2].Date.Equal(time.Date(2025, time.June, 4, 0, 0, 0, 0, loc)))
	assert.Equal(t, "a", entries[3].ID)
}

func TestSections_Empty(t *testing.T) {
	assert.Empty(t, Sections(nil, loc))
}
