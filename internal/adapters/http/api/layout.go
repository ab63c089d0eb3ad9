// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
	"github.com/okian/festgrid/internal/domain/zoom"
)

// LayoutHandler serves the computed grid and its geometry helpers.
type LayoutHandler struct {
	deps LayoutDependencies
}

// NewLayoutHandler creates a new layout handler.
func NewLayoutHandler(deps LayoutDependencies) *LayoutHandler {
	return &LayoutHandler{deps: deps}
}

type layoutResponse struct {
	Fingerprint   string                             `json:"fingerprint"`
	Events        []model.PositionedEvent            `json:"events"`
	Cells         map[string][]model.PositionedEvent `json:"cells"`
	Diagnostics   []model.Diagnostic                 `json:"diagnostics"`
	Groups        int                                `json:"groups"`
	TotalLanesMax int                                `json:"total_lanes_max"`
}

// HandleLayout handles GET /layout requests.
func (h *LayoutHandler) HandleLayout(w http.ResponseWriter, r *http.Request) {
	const op = "api.layout"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Layout(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	resp := layoutResponse{
		Fingerprint:   fmt.Sprintf("%016x", snap.Fingerprint),
		Events:        snap.Events,
		Cells:         snap.Cells,
		Diagnostics:   snap.Diagnostics,
		Groups:        snap.Groups,
		TotalLanesMax: snap.MaxLanes,
	}
	if resp.Events == nil {
		resp.Events = []model.PositionedEvent{}
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []model.Diagnostic{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSlots handles GET /slots requests.
func (h *LayoutHandler) HandleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Slots []timeslot.Slot `json:"slots"`
	}{Slots: h.deps.Slots()})
}

// HandleScrollTarget handles GET /scroll-target?slot=|day=|now=1&zoom=&viewport=.
func (h *LayoutHandler) HandleScrollTarget(w http.ResponseWriter, r *http.Request) {
	const op = "api.scroll_target"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	req, err := parseScrollRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	target, err := h.deps.ScrollTarget(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, target)
}

func parseScrollRequest(r *http.Request) (zoom.ScrollRequest, error) {
	q := r.URL.Query()
	var req zoom.ScrollRequest

	if v := q.Get("slot"); v != "" {
		slot, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid slot %q", v)
		}
		req.Slot = &slot
	}
	req.Day = model.Day(q.Get("day"))
	if v := q.Get("now"); v != "" {
		now, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid now %q", v)
		}
		req.Now = now
	}
	if v := q.Get("zoom"); v != "" {
		z, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("invalid zoom %q", v)
		}
		req.Zoom = z
	}
	if v := q.Get("viewport"); v != "" {
		vh, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("invalid viewport %q", v)
		}
		req.ViewportHeight = vh
	}
	return req, nil
}
