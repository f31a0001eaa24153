package source

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/econcal/econcal/internal/rest"
	log "github.com/sirupsen/logrus"
)

// Loader loads events for a newly added source. Implemented by feed.Service.
type Loader interface {
	LoadFromURL(ctx context.Context, name string, url string) (int, error)
	LoadFromText(name string, text string) int
}

type SourceDTO struct {
	Name            string `json:"name"`
	Color           string `json:"color"`
	HomeURL         string `json:"homeUrl,omitempty"`
	SubscriptionURL string `json:"subscriptionUrl,omitempty"`
}

type Handler struct {
	registry *Registry
	loader   Loader
	tags     []string
}

func NewHandler(registry *Registry, loader Loader, tags []string) *Handler {
	return &Handler{registry: registry, loader: loader, tags: tags}
}

// ListSources returns all known sources with their display attributes.
func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sources := h.registry.All()
	dtos := make([]SourceDTO, 0, len(sources))
	for _, s := range sources {
		dtos = append(dtos, sourceToDTO(s))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// AddSource registers a user-supplied calendar URL and loads it immediately.
func (h *Handler) AddSource(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.URL = strings.TrimSpace(req.URL)
	if req.Name == "" || req.URL == "" {
		// An empty or cancelled prompt adds nothing.
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Both 'name' and 'url' are required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	count, err := h.loader.LoadFromURL(r.Context(), req.Name, req.URL)
	if err != nil {
		log.Errorf("failed to load source %q: %v", req.Name, err)
		w.WriteHeader(http.StatusBadGateway)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Failed to load calendar from " + req.Name,
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	s, _ := h.registry.Get(req.Name)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(struct {
		Source     SourceDTO `json:"source"`
		EventCount int       `json:"eventCount"`
	}{sourceToDTO(s), count}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UploadSource accepts pasted or uploaded ICS content under a source name.
func (h *Handler) UploadSource(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "'name' is required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	count := h.loader.LoadFromText(req.Name, req.Content)

	s, _ := h.registry.Get(req.Name)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(struct {
		Source     SourceDTO `json:"source"`
		EventCount int       `json:"eventCount"`
	}{sourceToDTO(s), count}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListTags returns the configured tag codes used for filtering.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tags := h.tags
	if tags == nil {
		tags = []string{}
	}
	if err := json.NewEncoder(w).Encode(tags); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func sourceToDTO(s Source) SourceDTO {
	return SourceDTO{
		Name:            s.Name,
		Color:           s.Color,
		HomeURL:         s.HomeURL,
		SubscriptionURL: s.SubscriptionURL,
	}
}
