package event

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store is the in-memory, append-only collection of events accumulated from
// all loaded sources. Feed fetches complete concurrently, so access is
// guarded; append order between sources is deliberately unspecified.
//
// Loading the same source twice duplicates its events. De-duplication is not
// the store's job.
type Store struct {
	mu      sync.RWMutex
	events  []Event
	sources []string
	known   map[string]bool
}

func NewStore() *Store {
	return &Store{known: make(map[string]bool)}
}

// AddEvents appends events and registers sourceName as a known source.
// Registration is idempotent; event addition is not.
func (s *Store) AddEvents(sourceName string, events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.known[sourceName] {
		s.known[sourceName] = true
		s.sources = append(s.sources, sourceName)
	}
	s.events = append(s.events, events...)
	log.Debugf("store: %d event(s) appended for source %q, total %d", len(events), sourceName, len(s.events))
}

// Events returns a copy of the accumulated event sequence.
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// SourceNames returns the known source names in registration order.
func (s *Store) SourceNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.sources))
	copy(out, s.sources)
	return out
}

// FindByKey returns the first event whose Key matches, or false.
func (s *Store) FindByKey(key string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.Key() == key {
			return e, true
		}
	}
	return Event{}, false
}
