package agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/econcal/econcal/internal/utils"
	"github.com/econcal/econcal/pkg/event"
	"github.com/econcal/econcal/pkg/filter"
	"github.com/econcal/econcal/pkg/grouping"
	"github.com/econcal/econcal/pkg/ics"
)

var ErrEventNotFound = fmt.Errorf("event not found")

// Service derives the browsable views from the event store. Every call
// recomputes from scratch; event volumes are small enough that incremental
// updates would buy nothing.
type Service interface {
	ListEvents(ctx context.Context, c filter.Criteria) []event.Event
	CalendarView(ctx context.Context, c filter.Criteria) map[string][]event.Event
	ListSections(ctx context.Context, c filter.Criteria) []grouping.Entry
	ExportEvent(ctx context.Context, key string) (string, error)
	ExportCalendar(ctx context.Context, c filter.Criteria, name string) string
	KnownSources(ctx context.Context) []string
}

type ServiceImpl struct {
	store *event.Store
	clock utils.Clock
	loc   *time.Location
}

func NewService(store *event.Store, clock utils.Clock, loc *time.Location) *ServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &ServiceImpl{store: store, clock: clock, loc: loc}
}

func (s *ServiceImpl) ListEvents(ctx context.Context, c filter.Criteria) []event.Event {
	return filter.Apply(s.store.Events(), c, s.clock.Now(), s.loc)
}

func (s *ServiceImpl) CalendarView(ctx context.Context, c filter.Criteria) map[string][]event.Event {
	return grouping.ByDate(s.ListEvents(ctx, c), s.loc)
}

func (s *ServiceImpl) ListSections(ctx context.Context, c filter.Criteria) []grouping.Entry {
	return grouping.Sections(s.ListEvents(ctx, c), s.loc)
}

// ExportEvent renders a single stored event as a downloadable ICS document.
func (s *ServiceImpl) ExportEvent(ctx context.Context, key string) (string, error) {
	e, ok := s.store.FindByKey(key)
	if !ok {
		return "", ErrEventNotFound
	}
	return ics.WriteEvent(e), nil
}

// ExportCalendar renders the current filtered view as one unified feed.
func (s *ServiceImpl) ExportCalendar(ctx context.Context, c filter.Criteria, name string) string {
	return ics.WriteCalendar(name, s.ListEvents(ctx, c))
}

func (s *ServiceImpl) KnownSources(ctx context.Context) []string {
	return s.store.SourceNames()
}
