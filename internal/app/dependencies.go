package app

import (
	"github.com/econcal/econcal/internal/config"
	"github.com/econcal/econcal/internal/event_bus"
	"github.com/econcal/econcal/internal/utils"
	"github.com/econcal/econcal/pkg/agenda"
	"github.com/econcal/econcal/pkg/event"
	"github.com/econcal/econcal/pkg/feed"
	"github.com/econcal/econcal/pkg/source"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus      *event_bus.EventBus
	Clock    utils.Clock
	Store    *event.Store
	Registry *source.Registry

	FeedFetcher *feed.Fetcher
	FeedService *feed.Service
	FeedStatus  *feed.StatusTracker
	FeedHandler *feed.Handler

	AgendaService agenda.Service
	AgendaHandler *agenda.Handler

	SourceHandler *source.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) *Dependencies {
	deps := &Dependencies{}
	loc := cfg.Calendar.Location()

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}
	deps.Store = event.NewStore()
	deps.Registry = source.NewRegistry(cfg.Sources)

	deps.FeedFetcher = feed.NewFetcher()
	deps.FeedService = feed.NewService(deps.FeedFetcher, deps.Store, deps.Registry, deps.Bus, loc)
	deps.FeedStatus = feed.NewStatusTracker(deps.Bus, deps.Clock)
	deps.FeedHandler = feed.NewHandler(deps.FeedService, deps.FeedStatus)

	deps.AgendaService = agenda.NewService(deps.Store, deps.Clock, loc)
	deps.AgendaHandler = agenda.NewHandler(deps.AgendaService, loc)

	deps.SourceHandler = source.NewHandler(deps.Registry, deps.FeedService, cfg.Tags)

	return deps
}
