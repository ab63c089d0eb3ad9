package zoom

import (
	"context"
	"sync"
)

// HintKey is the preference key of the dismissed gesture hint.
const HintKey = "festgrid.zoom-hint-dismissed"

// KV is a small persisted key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// HintFlag remembers whether the pinch/zoom hint was dismissed. The flag
// is read once on creation and written at most once.
type HintFlag struct {
	kv        KV
	mu        sync.Mutex
	dismissed bool
}

// LoadHintFlag reads the flag from kv.
func LoadHintFlag(ctx context.Context, kv KV) (*HintFlag, error) {
	v, ok, err := kv.Get(ctx, HintKey)
	if err != nil {
		return nil, err
	}
	return &HintFlag{kv: kv, dismissed: ok && v == "true"}, nil
}

// Dismissed reports the current flag value.
func (h *HintFlag) Dismissed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dismissed
}

// Dismiss persists the flag. It reports whether a write happened.
func (h *HintFlag) Dismiss(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dismissed {
		return false, nil
	}
	if err := h.kv.Set(ctx, HintKey, "true"); err != nil {
		return false, err
	}
	h.dismissed = true
	return true, nil
}
