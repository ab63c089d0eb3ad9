package zoom

import "math"

// Touch is one finger in viewport client coordinates.
type Touch struct {
	ClientX float64
	ClientY float64
}

// Wheel is a wheel event in viewport client coordinates.
type Wheel struct {
	DeltaY  float64
	ClientX float64
	ClientY float64
	Ctrl    bool
	Meta    bool
}

// TouchStart enters the pinching state on a two-finger touch. The return
// value tells the caller to suppress the platform default.
func (c *Controller) TouchStart(touches []Touch) bool {
	if len(touches) != 2 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinching = true
	c.pinchDistance = distance(touches[0], touches[1])
	return true
}

// TouchMove zooms by the change in finger distance, anchored at the
// pinch midpoint.
func (c *Controller) TouchMove(touches []Touch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pinching || len(touches) != 2 {
		return false
	}
	d := distance(touches[0], touches[1])
	if c.pinchDistance <= 0 {
		c.pinchDistance = d
		return true
	}
	scale := d / c.pinchDistance
	mid := Point{
		X: (touches[0].ClientX + touches[1].ClientX) / 2,
		Y: (touches[0].ClientY + touches[1].ClientY) / 2,
	}
	c.setZoomLocked(c.target*scale, c.toContainerLocked(mid))
	c.pinchDistance = d
	return true
}

// TouchEnd leaves the pinching state once fewer than two fingers remain.
func (c *Controller) TouchEnd(remaining int) {
	if remaining >= 2 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinching = false
	c.pinchDistance = 0
}

// Pinching reports whether a pinch gesture is in progress.
func (c *Controller) Pinching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pinching
}

// OnWheel zooms by one WheelStep per tick while Ctrl or Cmd is held.
// Plain wheel events are left to the platform and return false.
func (c *Controller) OnWheel(w Wheel) bool {
	if !w.Ctrl && !w.Meta || w.DeltaY == 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	step := WheelStep
	if w.DeltaY > 0 {
		step = -WheelStep
	}
	c.setZoomLocked(c.target+step, c.toContainerLocked(Point{X: w.ClientX, Y: w.ClientY}))
	return true
}

// toContainerLocked converts client coordinates to container-relative ones.
// It returns nil when no container is available.
func (c *Controller) toContainerLocked(p Point) *Point {
	if c.viewport == nil {
		return nil
	}
	rect, ok := c.viewport.ContainerRect()
	if !ok {
		return nil
	}
	return &Point{X: p.X - rect.Left, Y: p.Y - rect.Top}
}

func distance(a, b Touch) float64 {
	return math.Hypot(a.ClientX-b.ClientX, a.ClientY-b.ClientY)
}
