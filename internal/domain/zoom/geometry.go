package zoom

import (
	"math"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
)

// Zoom limits and easing.
const (
	MinZoom   = 0.5
	MaxZoom   = 3.0
	WheelStep = 0.1
	Easing    = 0.15
	snapEps   = 0.001

	DefaultRowHeight    = 60.0
	DefaultHeaderHeight = 40.0
)

// Clamp limits z to [MinZoom, MaxZoom].
func Clamp(z float64) float64 {
	if math.IsNaN(z) {
		return MinZoom
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// AnchorScroll returns the scroll offset that keeps the content under
// anchor fixed when the scale changes from oldZoom to newZoom.
func AnchorScroll(offset, anchor, oldZoom, newZoom float64) float64 {
	if oldZoom <= 0 {
		return math.Max(0, offset)
	}
	return math.Max(0, (offset+anchor)*(newZoom/oldZoom)-anchor)
}

// ScrollTopFor returns the scroll-top that brings slot a third of the way
// down a viewport of the given height.
func ScrollTopFor(slot int, zoom, viewportHeight, rowHeight, headerHeight float64) float64 {
	top := headerHeight*zoom + float64(slot)*rowHeight*zoom - viewportHeight/3
	return math.Max(0, top)
}

// VisibleRange is the span of slots currently on screen.
type VisibleRange struct {
	First      int       `json:"first"`
	Last       int       `json:"last"`
	FirstDay   model.Day `json:"first_day"`
	FirstLabel string    `json:"first_label"`
	LastDay    model.Day `json:"last_day"`
	LastLabel  string    `json:"last_label"`
}

// VisibleSlots returns the first and last slot at least partly visible.
func VisibleSlots(scrollTop, viewportHeight, rowHeight, headerHeight float64) (first, last int) {
	if rowHeight <= 0 {
		return 0, 0
	}
	first = int(math.Floor((scrollTop - headerHeight) / rowHeight))
	last = int(math.Ceil((scrollTop+viewportHeight-headerHeight)/rowHeight)) - 1
	first = clampSlot(first)
	last = clampSlot(last)
	if last < first {
		last = first
	}
	return first, last
}

// RangeOf resolves slot indices into a labelled range.
func RangeOf(first, last int) VisibleRange {
	fs, _ := timeslot.At(first)
	ls, _ := timeslot.At(last)
	return VisibleRange{
		First:      first,
		Last:       last,
		FirstDay:   fs.Day,
		FirstLabel: fs.Label,
		LastDay:    ls.Day,
		LastLabel:  ls.Label,
	}
}

func clampSlot(i int) int {
	if i < 0 {
		return 0
	}
	if i > timeslot.Count-1 {
		return timeslot.Count - 1
	}
	return i
}
