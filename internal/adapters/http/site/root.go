package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/festgrid/internal/adapters/http/api"
	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("page render failed")
)

// Dependencies required by the page handler.
type Dependencies interface {
	Layout(ctx context.Context) (*layout.Snapshot, error)
	HintDismissed() bool
}

// Register attaches the schedule pages to mux.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewRootHandler(deps, NewRenderer(opts...))
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleRoot, "root"))
}

// RootHandler serves the grid and list pages.
type RootHandler struct {
	deps     Dependencies
	renderer *Renderer
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps Dependencies, renderer *Renderer) *RootHandler {
	return &RootHandler{deps: deps, renderer: renderer}
}

// HandleRoot handles GET / requests. ?view=list selects the list page and
// ?zoom= scales the grid rows.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	snap, err := h.deps.Layout(ctx)
	if err != nil {
		logger.Get().Error(ctx, "layout unavailable", logger.Error(err))
		http.Error(w, "schedule unavailable", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	q := r.URL.Query()
	if q.Get("view") == "list" {
		err = h.renderer.RenderList(&buf, snap)
	} else {
		z := 1.0
		if raw := q.Get("zoom"); raw != "" {
			if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
				z = v
			}
		}
		err = h.renderer.RenderGrid(&buf, snap, z, h.deps.HintDismissed())
	}
	if err != nil {
		logger.Get().Error(ctx, "render page", logger.Error(errors.Join(ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
