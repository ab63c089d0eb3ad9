package testevents

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/pkg/logger"
)

// ErrVerification is returned when the served layout disagrees with the
// submitted events.
var ErrVerification = errors.New("layout verification failed")

// verifyLayout checks that every submitted event was either placed or
// reported, that spoiled events were dropped and that placed geometry is
// self-consistent.
func verifyLayout(ctx context.Context, submitted []model.Event, out *LayoutResponse) error {
	logger.Get().Info(ctx, "verifying layout")

	placed := make(map[string]model.PositionedEvent, len(out.Events))
	for _, pe := range out.Events {
		placed[pe.Event.ID] = pe
	}
	dropped := make(map[string]string, len(out.Diagnostics))
	for _, d := range out.Diagnostics {
		dropped[d.EventID] = d.Reason
	}

	var errs []error
	for _, ev := range submitted {
		pe, isPlaced := placed[ev.ID]
		_, isDropped := dropped[ev.ID]
		switch {
		case !isPlaced && !isDropped:
			errs = append(errs, fmt.Errorf("event %s missing from layout", ev.ID))
		case isPlaced && isDropped:
			errs = append(errs, fmt.Errorf("event %s both placed and dropped", ev.ID))
		case isPlaced && spoiled(ev):
			errs = append(errs, fmt.Errorf("event %s placed despite time %q venue %q", ev.ID, ev.Time, ev.Venue))
		case isPlaced:
			if err := checkGeometry(pe); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	logger.Get().Info(ctx, "layout verified", logger.Int("events", len(submitted)))
	return nil
}

func spoiled(ev model.Event) bool {
	return ev.Venue.Index() < 0 || ev.Time == "tba"
}

// checkGeometry validates the geometry of a single placed event.
func checkGeometry(pe model.PositionedEvent) error {
	id := pe.Event.ID
	switch {
	case pe.Duration != pe.EndMinutes-pe.StartMinutes:
		return fmt.Errorf("event %s duration %d does not match %d-%d", id, pe.Duration, pe.StartMinutes, pe.EndMinutes)
	case pe.TotalLanes < 1 || pe.Lane < 0 || pe.Lane >= pe.TotalLanes:
		return fmt.Errorf("event %s lane %d outside 0..%d", id, pe.Lane, pe.TotalLanes-1)
	case pe.MinuteOffset != pe.StartMinutes%60:
		return fmt.Errorf("event %s minute offset %d does not match start %d", id, pe.MinuteOffset, pe.StartMinutes)
	case pe.GridRowEnd < pe.GridRowStart:
		return fmt.Errorf("event %s ends on row %d before row %d", id, pe.GridRowEnd, pe.GridRowStart)
	}
	return nil
}
