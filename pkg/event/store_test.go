package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func talk(uid string, summary string) Event {
	return Event{
		UID:     uid,
		Source:  "src",
		Summary: summary,
		Start:   time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestStore_AppendsAndRegisters(t *testing.T) {
	store := NewStore()

	store.AddEvents("UniMelb Economics", []Event{talk("1", "A"), talk("2", "B")})
	store.AddEvents("Monash EBS", []Event{talk("3", "C")})

	assert.Len(t, store.Events(), 3)
	assert.Equal(t, []string{"UniMelb Economics", "Monash EBS"}, store.SourceNames())
}

func TestStore_DuplicateLoadDuplicatesEvents(t *testing.T) {
	store := NewStore()
	events := []Event{talk("1", "A")}

	store.AddEvents("src", events)
	store.AddEvents("src", events)

	// No de-duplication at the store level; registration stays idempotent.
	assert.Len(t, store.Events(), 2)
	assert.Equal(t, []string{"src"}, store.SourceNames())
}

func TestStore_EmptyBatchStillRegistersSource(t *testing.T) {
	store := NewStore()

	store.AddEvents("Empty Feed", nil)

	assert.Empty(t, store.Events())
	assert.Equal(t, []string{"Empty Feed"}, store.SourceNames())
}

func TestStore_FindByKey(t *testing.T) {
	store := NewStore()
	store.AddEvents("src", []Event{talk("uid-1@x", "A")})
	noUID := Event{Source: "src", Summary: "B", Start: time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)}
	store.AddEvents("src", []Event{noUID})

	found, ok := store.FindByKey("uid-1@x")
	assert.True(t, ok)
	assert.Equal(t, "A", found.Summary)

	found, ok = store.FindByKey(noUID.Key())
	assert.True(t, ok)
	assert.Equal(t, "B", found.Summary)

	_, ok = store.FindByKey("missing")
	assert.False(t, ok)
}

func TestStore_EventsReturnsCopy(t *testing.T) {
	store := NewStore()
	store.AddEvents("src", []Event{talk("1", "A")})

	events := store.Events()
	events[0].Summary = "mutated"

	assert.Equal(t, "A", store.Events()[0].Summary)
}

func TestEventKey(t *testing.T) {
	withUID := talk("uid-1@x", "A")
	assert.Equal(t, "uid-1@x", withUID.Key())

	withoutUID := Event{Source: "src", Summary: "A", Start: time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)}
	assert.Contains(t, withoutUID.Key(), "src|")
	assert.Contains(t, withoutUID.Key(), "|A")
}
