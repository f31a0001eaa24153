package feed

import (
	"context"
	"sync"
	"time"

	"github.com/econcal/econcal/internal/event_bus"
	"github.com/econcal/econcal/pkg/event"
	"github.com/econcal/econcal/pkg/ics"
	"github.com/econcal/econcal/pkg/source"
	log "github.com/sirupsen/logrus"
)

// Service loads calendar feeds into the event store. Each source is
// independent: a failure is published on the bus and logged, and never
// blocks or cancels the other loads.
type Service struct {
	fetcher  *Fetcher
	store    *event.Store
	registry *source.Registry
	bus      *event_bus.EventBus
	loc      *time.Location
}

func NewService(fetcher *Fetcher, store *event.Store, registry *source.Registry, bus *event_bus.EventBus, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{fetcher: fetcher, store: store, registry: registry, bus: bus, loc: loc}
}

// LoadConfigured fetches every registered source that has a feed URL,
// concurrently, and returns when all fetches have completed. Completion
// order is unspecified; appends to the store are commutative.
func (s *Service) LoadConfigured(ctx context.Context) {
	var wg sync.WaitGroup
	for _, src := range s.registry.All() {
		if src.FeedURL == "" {
			continue
		}
		wg.Add(1)
		go func(src source.Source) {
			defer wg.Done()
			s.loadOne(ctx, src)
		}(src)
	}
	wg.Wait()
}

func (s *Service) loadOne(ctx context.Context, src source.Source) {
	body, err := s.fetcher.Fetch(ctx, src.FeedURL)
	if err != nil {
		log.Errorf("feed: failed to load %q: %v", src.Name, err)
		s.publish(event_bus.NewEvent(event_bus.FeedFailed, event_bus.FeedFailedData{
			Source: src.Name,
			Err:    err,
		}))
		return
	}

	events := ics.Parse(body, src.Name, s.loc)
	s.store.AddEvents(src.Name, events)
	log.Infof("feed: loaded %d event(s) from %q", len(events), src.Name)
	s.publish(event_bus.NewEvent(event_bus.FeedLoaded, event_bus.FeedLoadedData{
		Source:     src.Name,
		EventCount: len(events),
	}))
}

// LoadFromURL registers a user-supplied source and loads it once.
func (s *Service) LoadFromURL(ctx context.Context, name string, url string) (int, error) {
	src := s.registry.Register(source.Source{Name: name, FeedURL: url, SubscriptionURL: url})

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.publish(event_bus.NewEvent(event_bus.FeedFailed, event_bus.FeedFailedData{
			Source: src.Name,
			Err:    err,
		}))
		return 0, err
	}

	events := ics.Parse(body, src.Name, s.loc)
	s.store.AddEvents(src.Name, events)
	s.publish(event_bus.NewEvent(event_bus.FeedLoaded, event_bus.FeedLoadedData{
		Source:     src.Name,
		EventCount: len(events),
	}))
	return len(events), nil
}

// LoadFromText parses pasted or uploaded ICS content under the given source
// name. Parsing cannot fail; unusable blocks are dropped silently.
func (s *Service) LoadFromText(name string, text string) int {
	src := s.registry.Register(source.Source{Name: name})

	events := ics.Parse(text, src.Name, s.loc)
	s.store.AddEvents(src.Name, events)
	s.publish(event_bus.NewEvent(event_bus.FeedLoaded, event_bus.FeedLoadedData{
		Source:     src.Name,
		EventCount: len(events),
	}))
	return len(events)
}

func (s *Service) publish(e event_bus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(e); err != nil {
		log.Debugf("feed: bus publish: %v", err)
	}
}
