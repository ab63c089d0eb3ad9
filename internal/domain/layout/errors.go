package layout

import "errors"

// Reasons an event is left out of the layout.
var (
	ErrMalformedTime  = errors.New("malformed time")
	ErrUnknownVenue   = errors.New("unknown venue")
	ErrSlotOutOfRange = errors.New("slot out of range")
)

// reasonCode maps a drop error onto a stable, label-friendly code.
func reasonCode(err error) string {
	switch {
	case errors.Is(err, ErrMalformedTime):
		return "malformed_time"
	case errors.Is(err, ErrUnknownVenue):
		return "unknown_venue"
	case errors.Is(err, ErrSlotOutOfRange):
		return "slot_out_of_range"
	default:
		return "invalid"
	}
}
