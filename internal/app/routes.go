package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events & views
	r.HandleFunc("/api/event", deps.AgendaHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/event/calendar", deps.AgendaHandler.GetCalendar).Methods("GET")
	r.HandleFunc("/api/event/sections", deps.AgendaHandler.GetSections).Methods("GET")
	r.HandleFunc("/api/event/{eventKey}/ics", deps.AgendaHandler.DownloadEvent).Methods("GET")
	r.HandleFunc("/api/calendar.ics", deps.AgendaHandler.DownloadCalendar).Methods("GET")

	// Sources & tags
	r.HandleFunc("/api/source", deps.SourceHandler.ListSources).Methods("GET")
	r.HandleFunc("/api/source", deps.SourceHandler.AddSource).Methods("POST")
	r.HandleFunc("/api/source/upload", deps.SourceHandler.UploadSource).Methods("POST")
	r.HandleFunc("/api/tag", deps.SourceHandler.ListTags).Methods("GET")

	// Feed loading
	r.HandleFunc("/api/feed/refresh", deps.FeedHandler.Refresh).Methods("POST")
	r.HandleFunc("/api/feed/status", deps.FeedHandler.GetStatus).Methods("GET")
}
