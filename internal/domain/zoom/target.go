package zoom

import (
	"errors"

	"github.com/okian/festgrid/internal/domain/model"
)

// Errors returned by server-side scroll and hint lookups.
var (
	ErrInvalidScrollRequest = errors.New("invalid scroll request")
	ErrHintUnavailable      = errors.New("hint preference store not configured")
)

// ScrollRequest selects a scroll destination. Exactly one of Slot, Day and
// Now is used, in that order of precedence.
type ScrollRequest struct {
	Slot           *int
	Day            model.Day
	Now            bool
	Zoom           float64
	ViewportHeight float64
}

// ScrollTarget is the scroll-top that brings a slot a third of the way down
// the viewport. Found is false when "now" lies outside the festival.
type ScrollTarget struct {
	Found     bool      `json:"found"`
	Slot      int       `json:"slot"`
	Day       model.Day `json:"day,omitempty"`
	Label     string    `json:"label,omitempty"`
	Zoom      float64   `json:"zoom"`
	ScrollTop float64   `json:"scroll_top"`
}
