package layout

import "time"

// Snapshot is an immutable layout of one version of the event list.
type Snapshot struct {
	// Fingerprint identifies the event list the snapshot was computed from.
	Fingerprint uint64    `json:"fingerprint"`
	ComputedAt  time.Time `json:"computed_at"`
	Result
}
