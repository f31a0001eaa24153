package source

import (
	"sync"

	"github.com/econcal/econcal/internal/config"
)

// Source is a named origin of events.
type Source struct {
	Name            string
	Color           string
	FeedURL         string
	HomeURL         string
	SubscriptionURL string
}

// palette is the fixed set of display colors handed out to sources that do
// not declare one. Assignment cycles when more sources than colors exist.
var palette = []string{"blue", "green", "red", "purple", "orange", "teal", "pink", "yellow"}

// Registry is the typed lookup table of known sources, built once from
// configuration and growing monotonically as feeds are loaded. Sources are
// never pruned.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Source
	order  []string
}

// NewRegistry builds a registry pre-populated with the configured sources.
func NewRegistry(configured []config.Source) *Registry {
	r := &Registry{byName: make(map[string]Source)}
	for _, c := range configured {
		r.Register(Source{
			Name:            c.Name,
			Color:           c.Color,
			FeedURL:         c.FeedURL,
			HomeURL:         c.HomeURL,
			SubscriptionURL: c.SubscriptionURL,
		})
	}
	return r
}

// Register adds a source under its name and returns the stored value.
// Registering an already-known name is a no-op returning the existing
// source. A missing color gets the next palette entry.
func (r *Registry) Register(s Source) Source {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[s.Name]; ok {
		return existing
	}
	if s.Color == "" {
		s.Color = palette[len(r.order)%len(palette)]
	}
	r.byName[s.Name] = s
	r.order = append(r.order, s.Name)
	return s
}

// Get looks up a source by name.
func (r *Registry) Get(name string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// All returns the known sources in registration order.
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Source, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
