// Package zoom implements zoom and pan for the festival grid: a clamped
// target zoom eased toward by a frame ticker, zoom anchored at a screen
// point, scroll targets for days and the current time, pinch and wheel
// gestures, and visible-range tracking.
package zoom

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
	"github.com/okian/festgrid/pkg/logger"
)

// Controller owns zoom and scroll state for one grid view.
type Controller struct {
	mu sync.Mutex

	target    float64
	displayed float64
	// anchor is the container-relative point kept stationary while the
	// displayed zoom converges; nil when no anchor is active.
	anchor *Point

	viewport Viewport
	ticker   Ticker
	running  bool

	rowHeight    float64
	headerHeight float64

	pinching      bool
	pinchDistance float64

	visible   VisibleRange
	onVisible func(VisibleRange)

	now func() time.Time
	loc *time.Location
	log logger.Logger
}

// NewController creates a controller at zoom 1 with no viewport attached.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		target:       1,
		displayed:    1,
		rowHeight:    DefaultRowHeight,
		headerHeight: DefaultHeaderHeight,
		now:          time.Now,
		loc:          time.Local,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ticker == nil {
		c.ticker = NewFrameTicker(DefaultFrameInterval)
	}
	c.visible = RangeOf(0, 0)
	return c
}

// Start begins the easing loop.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	t := c.ticker
	c.mu.Unlock()
	t.Start(c.step)
}

// Close stops the easing loop and detaches the viewport.
func (c *Controller) Close() {
	c.mu.Lock()
	wasRunning := c.running
	c.running = false
	c.viewport = nil
	c.anchor = nil
	c.pinching = false
	t := c.ticker
	c.mu.Unlock()
	if wasRunning {
		t.Stop()
	}
}

// Attach binds the viewport. Attaching the same viewport twice is a no-op
// and reports false.
func (c *Controller) Attach(v Viewport) bool {
	if v == nil {
		return false
	}
	c.mu.Lock()
	if c.viewport == v {
		c.mu.Unlock()
		return false
	}
	c.viewport = v
	c.mu.Unlock()
	c.OnScroll()
	return true
}

// Detach unbinds the viewport.
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = nil
	c.anchor = nil
}

// AttachWithRetry polls resolve until it yields a viewport, waiting delay
// between attempts.
func (c *Controller) AttachWithRetry(ctx context.Context, resolve func() Viewport, delay time.Duration, attempts int) error {
	for i := 0; i < attempts; i++ {
		if v := resolve(); v != nil {
			c.Attach(v)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return ErrNoViewport
}

// Zoom returns the displayed zoom factor.
func (c *Controller) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayed
}

// TargetZoom returns the zoom factor being eased toward.
func (c *Controller) TargetZoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Settled reports whether the displayed zoom reached the target.
func (c *Controller) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayed == c.target
}

// SetZoom sets the target zoom, clamped to [MinZoom, MaxZoom]. The optional
// anchor is container-relative and defaults to the container centre.
// Without a viewport only the target changes.
func (c *Controller) SetZoom(z float64, anchor ...Point) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var a *Point
	if len(anchor) > 0 {
		a = &anchor[0]
	}
	return c.setZoomLocked(z, a)
}

func (c *Controller) setZoomLocked(z float64, anchor *Point) float64 {
	c.target = Clamp(z)
	c.anchor = nil
	if c.viewport == nil {
		return c.target
	}
	rect, ok := c.viewport.ContainerRect()
	if !ok {
		return c.target
	}
	a := rect.Center()
	if anchor != nil {
		a = *anchor
	}
	c.anchor = &a
	return c.target
}

// step advances the displayed zoom by one frame and compensates scroll.
func (c *Controller) step() {
	c.mu.Lock()
	if c.displayed == c.target {
		c.mu.Unlock()
		return
	}
	old := c.displayed
	gap := c.target - c.displayed
	if math.Abs(gap) < snapEps {
		c.displayed = c.target
	} else {
		c.displayed += gap * Easing
	}
	c.compensateLocked(old, c.displayed)
	if c.displayed == c.target {
		c.anchor = nil
	}
	vr, changed := c.refreshVisibleLocked()
	fn := c.onVisible
	c.mu.Unlock()
	if changed && fn != nil {
		fn(vr)
	}
}

func (c *Controller) compensateLocked(oldZoom, newZoom float64) {
	if c.viewport == nil || c.anchor == nil {
		return
	}
	if _, ok := c.viewport.ContainerRect(); !ok {
		return
	}
	off := c.viewport.ScrollOffset()
	c.viewport.SetScrollOffset(Point{
		X: AnchorScroll(off.X, c.anchor.X, oldZoom, newZoom),
		Y: AnchorScroll(off.Y, c.anchor.Y, oldZoom, newZoom),
	}, false)
}

// ScrollToSlot scrolls so that slot sits a third of the way down.
func (c *Controller) ScrollToSlot(slot int, smooth bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewport == nil {
		c.log.Warn(context.Background(), "scroll to slot skipped: no viewport", logger.Int("slot", slot))
		return ErrNoViewport
	}
	rect, ok := c.viewport.ContainerRect()
	if !ok {
		c.log.Warn(context.Background(), "scroll to slot skipped: container not ready", logger.Int("slot", slot))
		return ErrNoViewport
	}
	top := ScrollTopFor(slot, c.displayed, rect.Height, c.rowHeight, c.headerHeight)
	off := c.viewport.ScrollOffset()
	c.viewport.SetScrollOffset(Point{X: off.X, Y: top}, smooth)
	return nil
}

// ScrollToNow scrolls to the current hour. Outside the festival window it
// does nothing.
func (c *Controller) ScrollToNow() error {
	slot := timeslot.IndexAt(c.now().In(c.loc))
	if slot == timeslot.Invalid {
		return nil
	}
	return c.ScrollToSlot(slot, true)
}

// ScrollToDay scrolls to the first slot of day.
func (c *Controller) ScrollToDay(day model.Day) error {
	slot := timeslot.DayStart(day)
	if slot == timeslot.Invalid {
		return ErrUnknownDay
	}
	return c.ScrollToSlot(slot, true)
}

// OnScroll recomputes the visible range from the viewport.
func (c *Controller) OnScroll() {
	c.mu.Lock()
	vr, changed := c.refreshVisibleLocked()
	fn := c.onVisible
	c.mu.Unlock()
	if changed && fn != nil {
		fn(vr)
	}
}

// VisibleRange returns the last computed visible range.
func (c *Controller) VisibleRange() VisibleRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

func (c *Controller) refreshVisibleLocked() (VisibleRange, bool) {
	if c.viewport == nil {
		return c.visible, false
	}
	rect, ok := c.viewport.ContainerRect()
	if !ok {
		return c.visible, false
	}
	off := c.viewport.ScrollOffset()
	first, last := VisibleSlots(off.Y, rect.Height, c.rowHeight*c.displayed, c.headerHeight*c.displayed)
	if first == c.visible.First && last == c.visible.Last {
		return c.visible, false
	}
	c.visible = RangeOf(first, last)
	return c.visible, true
}
