package zoom

import (
	"time"

	"github.com/okian/festgrid/pkg/logger"
)

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithRowHeight sets the slot row height in px at zoom 1.
func WithRowHeight(px float64) Option {
	return func(c *Controller) {
		if px > 0 {
			c.rowHeight = px
		}
	}
}

// WithHeaderHeight sets the header height in px at zoom 1.
func WithHeaderHeight(px float64) Option {
	return func(c *Controller) {
		if px >= 0 {
			c.headerHeight = px
		}
	}
}

// WithTicker replaces the frame ticker.
func WithTicker(t Ticker) Option {
	return func(c *Controller) {
		if t != nil {
			c.ticker = t
		}
	}
}

// WithClock injects the wall clock used by ScrollToNow.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the time zone the festival runs in.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger sets the logger for degraded operations.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithVisibleRangeListener is called whenever the visible slot range changes.
func WithVisibleRangeListener(fn func(VisibleRange)) Option {
	return func(c *Controller) {
		c.onVisible = fn
	}
}
