package feed

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type StatusDTO struct {
	Source     string `json:"source"`
	OK         bool   `json:"ok"`
	EventCount int    `json:"eventCount"`
	Error      string `json:"error,omitempty"`
	LoadedAt   string `json:"loadedAt"`
}

type Handler struct {
	service *Service
	status  *StatusTracker
}

func NewHandler(service *Service, status *StatusTracker) *Handler {
	return &Handler{service: service, status: status}
}

// Refresh reloads every configured feed and returns the per-source outcomes.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Refreshing configured feeds")

	h.service.LoadConfigured(r.Context())
	h.writeStatuses(w)
}

// GetStatus returns the last known outcome for every loaded source.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeStatuses(w)
}

func (h *Handler) writeStatuses(w http.ResponseWriter) {
	statuses := h.status.Statuses()
	dtos := make([]StatusDTO, 0, len(statuses))
	for _, s := range statuses {
		dtos = append(dtos, StatusDTO{
			Source:     s.Source,
			OK:         s.OK,
			EventCount: s.EventCount,
			Error:      s.Error,
			LoadedAt:   s.LoadedAt.Format(time.RFC3339),
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
