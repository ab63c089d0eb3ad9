package zoom

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60 Hz display.
const DefaultFrameInterval = time.Second / 60

// Ticker drives the zoom easing loop once per frame.
type Ticker interface {
	Start(fn func())
	Stop()
}

// FrameTicker calls fn on a time.Ticker until stopped.
type FrameTicker struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewFrameTicker creates a ticker firing every interval.
func NewFrameTicker(interval time.Duration) *FrameTicker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameTicker{interval: interval}
}

// Start begins calling fn. A second Start while running is ignored.
func (t *FrameTicker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.loop(fn, t.stop, t.done)
}

func (t *FrameTicker) loop(fn func(), stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			fn()
		}
	}
}

// Stop cancels the loop and waits for the last frame to finish.
// It must not be called from inside fn.
func (t *FrameTicker) Stop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// ManualTicker runs frames only when Tick is called.
type ManualTicker struct {
	mu sync.Mutex
	fn func()
}

// Start registers fn as the frame callback.
func (t *ManualTicker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fn == nil {
		t.fn = fn
	}
}

// Stop unregisters the callback.
func (t *ManualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fn = nil
}

// Running reports whether a callback is registered.
func (t *ManualTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fn != nil
}

// Tick runs n frames. It returns false when the ticker is stopped.
func (t *ManualTicker) Tick(n int) bool {
	t.mu.Lock()
	fn := t.fn
	t.mu.Unlock()
	if fn == nil {
		return false
	}
	for i := 0; i < n; i++ {
		fn()
	}
	return true
}
