package feed

import (
	"sort"
	"sync"
	"time"

	"github.com/econcal/econcal/internal/event_bus"
	"github.com/econcal/econcal/internal/utils"
)

// LoadStatus is the last known outcome for one source. A failed load keeps
// its error message until a later load of the same source succeeds; this is
// what the UI surfaces as the per-source notification.
type LoadStatus struct {
	Source     string
	OK         bool
	EventCount int
	Error      string
	LoadedAt   time.Time
}

// StatusTracker listens on the event bus and records per-source outcomes.
type StatusTracker struct {
	mu       sync.RWMutex
	clock    utils.Clock
	bySource map[string]LoadStatus
}

func NewStatusTracker(bus *event_bus.EventBus, clock utils.Clock) *StatusTracker {
	t := &StatusTracker{
		clock:    clock,
		bySource: make(map[string]LoadStatus),
	}

	bus.Subscribe(event_bus.FeedLoaded, func(e event_bus.Event) error {
		data, ok := e.Data.(event_bus.FeedLoadedData)
		if !ok {
			return nil
		}
		t.record(LoadStatus{
			Source:     data.Source,
			OK:         true,
			EventCount: data.EventCount,
			LoadedAt:   t.clock.Now(),
		})
		return nil
	})
	bus.Subscribe(event_bus.FeedFailed, func(e event_bus.Event) error {
		data, ok := e.Data.(event_bus.FeedFailedData)
		if !ok {
			return nil
		}
		t.record(LoadStatus{
			Source:   data.Source,
			Error:    data.Err.Error(),
			LoadedAt: t.clock.Now(),
		})
		return nil
	})

	return t
}

func (t *StatusTracker) record(s LoadStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bySource[s.Source] = s
}

// Statuses returns the recorded outcomes sorted by source name.
func (t *StatusTracker) Statuses() []LoadStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]LoadStatus, 0, len(t.bySource))
	for _, s := range t.bySource {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
