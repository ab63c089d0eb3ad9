// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/festgrid/internal/domain/model"
)

// maxEventBody caps POST /events payloads.
const maxEventBody = 64 << 10

// EventsHandler handles event requests
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// eventRequest is the body of POST /events.
type eventRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Time        string          `json:"time"`
	Day         model.Day       `json:"day"`
	Venue       model.Venue     `json:"venue"`
	Type        model.EventType `json:"type"`
	Description string          `json:"description"`
	Links       []model.Link    `json:"links"`
}

func (e eventRequest) validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("missing title")
	}
	return nil
}

func (e eventRequest) toModel() model.Event {
	return model.Event{
		ID:          e.ID,
		Title:       e.Title,
		Time:        e.Time,
		Day:         e.Day,
		Venue:       e.Venue,
		Type:        e.Type,
		Description: e.Description,
		Links:       e.Links,
	}
}

type eventsResponse struct {
	Events []model.Event `json:"events"`
	Count  int           `json:"count"`
}

// HandleEvents handles GET and POST /events requests.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.upsert(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"
	events, err := h.deps.Events(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Count: len(events)})
}

func (h *EventsHandler) upsert(w http.ResponseWriter, r *http.Request) {
	const op = "api.upsert_event"
	var req eventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ev, err := h.deps.UpsertEvent(r.Context(), req.toModel())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HandleEvent handles GET and DELETE /events/{id} requests.
func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.event"
	id := strings.TrimPrefix(r.URL.Path, "/events/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodGet:
		ev, err := h.deps.Event(r.Context(), id)
		if err != nil {
			writeUpstreamError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, ev)
	case http.MethodDelete:
		if err := h.deps.DeleteEvent(r.Context(), id); err != nil {
			writeUpstreamError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}
