package zoom

import "errors"

// Sentinel errors.
var (
	ErrNoViewport = errors.New("viewport not attached")
	ErrUnknownDay = errors.New("unknown festival day")
)

// Point is a 2-D coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the on-screen box of the scroll container.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the container-relative centre of r.
func (r Rect) Center() Point {
	return Point{X: r.Width / 2, Y: r.Height / 2}
}

// Viewport adapts the scrollable surface the grid is drawn in.
type Viewport interface {
	// ContainerRect reports the container box; ok is false while the
	// container does not exist yet.
	ContainerRect() (rect Rect, ok bool)
	ScrollOffset() Point
	SetScrollOffset(p Point, smooth bool)
}
