// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/festgrid/internal/adapters/repository"
	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
	"github.com/okian/festgrid/internal/domain/zoom"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EventDependencies
	LayoutDependencies
	PrefsDependencies

	// ExportICS writes the current schedule as an iCalendar feed.
	ExportICS(ctx context.Context, w io.Writer) error
}

// EventDependencies defines the event CRUD operations.
type EventDependencies interface {
	Events(ctx context.Context) ([]model.Event, error)
	Event(ctx context.Context, id string) (model.Event, error)
	UpsertEvent(ctx context.Context, ev model.Event) (model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// LayoutDependencies exposes the computed grid.
type LayoutDependencies interface {
	Layout(ctx context.Context) (*layout.Snapshot, error)
	Slots() []timeslot.Slot
	ScrollTarget(ctx context.Context, req zoom.ScrollRequest) (zoom.ScrollTarget, error)
}

// PrefsDependencies exposes the persisted zoom hint flag.
type PrefsDependencies interface {
	HintDismissed() bool
	DismissHint(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	eventsHandler   *EventsHandler
	layoutHandler   *LayoutHandler
	calendarHandler *CalendarHandler
	prefsHandler    *PrefsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		eventsHandler:   NewEventsHandler(deps),
		layoutHandler:   NewLayoutHandler(deps),
		calendarHandler: NewCalendarHandler(deps),
		prefsHandler:    NewPrefsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEvent, "event"))
	mux.HandleFunc("/layout", MetricsMiddleware(s.layoutHandler.HandleLayout, "layout"))
	mux.HandleFunc("/slots", MetricsMiddleware(s.layoutHandler.HandleSlots, "slots"))
	mux.HandleFunc("/scroll-target", MetricsMiddleware(s.layoutHandler.HandleScrollTarget, "scroll_target"))
	mux.HandleFunc("/schedule.ics", MetricsMiddleware(s.calendarHandler.HandleCalendar, "schedule_ics"))
	mux.HandleFunc("/prefs/zoom-hint", MetricsMiddleware(s.prefsHandler.HandleZoomHint, "zoom_hint"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeUpstreamError translates errors returned by dependencies.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrInvalidEvent),
		errors.Is(err, zoom.ErrInvalidScrollRequest),
		errors.Is(err, zoom.ErrUnknownDay):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, zoom.ErrHintUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
