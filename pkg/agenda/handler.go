package agenda

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/econcal/econcal/internal/rest"
	"github.com/econcal/econcal/pkg/event"
	"github.com/econcal/econcal/pkg/filter"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const customDateLayout = "2006-01-02"

type EventDTO struct {
	Key         string `json:"key"`
	UID         string `json:"uid,omitempty"`
	Source      string `json:"source"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	AllDay      bool   `json:"allDay,omitempty"`
}

type SectionDTO struct {
	Type  string    `json:"type"`
	ID    string    `json:"id"`
	Date  string    `json:"date"`
	Event *EventDTO `json:"event,omitempty"`
}

type Handler struct {
	service Service
	loc     *time.Location
}

func NewHandler(service Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{service: service, loc: loc}
}

// GetEvents returns the filtered, sorted event list.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	criteria, err := h.criteriaFromRequest(r)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}

	events := h.service.ListEvents(r.Context(), criteria)
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetCalendar returns events bucketed by local calendar day, for grid views.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	criteria, err := h.criteriaFromRequest(r)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}

	buckets := h.service.CalendarView(r.Context(), criteria)
	out := make(map[string][]EventDTO, len(buckets))
	for day, events := range buckets {
		dtos := make([]EventDTO, 0, len(events))
		for _, e := range events {
			dtos = append(dtos, eventToDTO(e))
		}
		out[day] = dtos
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetSections returns the list view: month/week/day markers interleaved
// with events.
func (h *Handler) GetSections(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	criteria, err := h.criteriaFromRequest(r)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}

	entries := h.service.ListSections(r.Context(), criteria)
	dtos := make([]SectionDTO, 0, len(entries))
	for _, entry := range entries {
		dto := SectionDTO{
			Type: string(entry.Type),
			ID:   entry.ID,
			Date: entry.Date.Format(time.RFC3339),
		}
		if entry.Event != nil {
			e := eventToDTO(*entry.Event)
			dto.Event = &e
		}
		dtos = append(dtos, dto)
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DownloadEvent serves one event as an .ics attachment.
func (h *Handler) DownloadEvent(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["eventKey"]

	doc, err := h.service.ExportEvent(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=event.ics")
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Errorf("failed to write ICS response: %v", err)
	}
}

// DownloadCalendar serves the filtered view as one unified .ics feed.
func (h *Handler) DownloadCalendar(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.criteriaFromRequest(r)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}

	doc := h.service.ExportCalendar(r.Context(), criteria, "econcal")
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=econcal.ics")
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Errorf("failed to write ICS response: %v", err)
	}
}

// criteriaFromRequest reconstructs filter criteria from the query string,
// the same shape the frontend mirrors into the location bar. An absent
// `sources` parameter means every known source; a present-but-empty one is
// an explicit empty selection.
func (h *Handler) criteriaFromRequest(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()

	c := filter.Criteria{
		Query: q.Get("q"),
		Tags:  splitList(q["tags"]),
	}

	if values, ok := q["sources"]; ok {
		c.Sources = splitList(values)
	} else {
		c.Sources = h.service.KnownSources(r.Context())
	}

	switch mode := q.Get("dateFilter"); mode {
	case "", string(filter.DateAll):
		c.DateMode = filter.DateAll
	case string(filter.DateUpcoming), string(filter.DatePast), string(filter.DateCustom):
		c.DateMode = filter.DateMode(mode)
	default:
		return filter.Criteria{}, fmt.Errorf("invalid dateFilter %q", mode)
	}

	if from := q.Get("from"); from != "" {
		t, err := time.ParseInLocation(customDateLayout, from, h.loc)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid from date %q", from)
		}
		c.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.ParseInLocation(customDateLayout, to, h.loc)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid to date %q", to)
		}
		c.To = t
	}

	return c, nil
}

// splitList flattens repeated and comma-separated query values, dropping
// empty entries.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func writeCriteriaError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid filter criteria",
		Details: err.Error(),
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		return
	}
}

func eventToDTO(e event.Event) EventDTO {
	var end string
	if e.HasEnd() {
		end = e.End.Format(time.RFC3339)
	}
	return EventDTO{
		Key:         e.Key(),
		UID:         e.UID,
		Source:      e.Source,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       e.Start.Format(time.RFC3339),
		End:         end,
		AllDay:      e.AllDay,
	}
}
