// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// PrefsHandler serves the persisted zoom hint flag.
type PrefsHandler struct {
	deps PrefsDependencies
}

// NewPrefsHandler creates a new preferences handler.
func NewPrefsHandler(deps PrefsDependencies) *PrefsHandler {
	return &PrefsHandler{deps: deps}
}

type hintResponse struct {
	Dismissed bool `json:"dismissed"`
}

// HandleZoomHint handles GET and POST /prefs/zoom-hint requests.
func (h *PrefsHandler) HandleZoomHint(w http.ResponseWriter, r *http.Request) {
	const op = "api.zoom_hint"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, hintResponse{Dismissed: h.deps.HintDismissed()})
	case http.MethodPost:
		if err := h.deps.DismissHint(r.Context()); err != nil {
			writeUpstreamError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, hintResponse{Dismissed: true})
	default:
		http.NotFound(w, r)
	}
}
