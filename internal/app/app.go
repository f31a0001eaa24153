package app

import (
	"context"
	"net/http"
	"time"

	"github.com/econcal/econcal/internal/config"
	"github.com/econcal/econcal/internal/rest"
	"github.com/econcal/econcal/pkg/feed"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, router, feed scheduler, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (store, services, handlers...)
	deps := BuildDependencies(cfg)

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// Run loads the configured feeds, starts the refresh schedule, and serves
// HTTP until the listener fails. The initial load runs in the background so
// a slow feed does not delay startup; the API is usable immediately with
// whatever sources have loaded.
func (a *Application) Run() error {
	go a.deps.FeedService.LoadConfigured(context.Background())

	scheduler, err := feed.StartScheduler(a.cfg.Refresh.Cron, a.deps.FeedService)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
