package testevents

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/pkg/logger"
)

// Constants for event generation.
const (
	minuteStep     = 15
	minDuration    = 30
	maxDuration    = 180
	lastDayMinute  = 23*60 + 45
	sundayEndClock = 20 * 60
)

var eventTypes = []model.EventType{
	model.TypeDJ, model.TypeLive, model.TypePerformance, model.TypeWorkshop, model.TypeInteractive,
}

var titles = []string{
	"Opening", "Jam Session", "Sunrise Set", "Zine Workshop", "Open Stage",
	"Yoga", "Closing", "Poetry Slam", "Silent Disco", "Brunch",
}

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	if n <= 1 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// dayWindow returns the first and last allowed start minute of the day and
// the latest end minute.
func dayWindow(day model.Day) (firstStart, lastEnd int) {
	switch day {
	case model.Friday:
		return 19 * 60, lastDayMinute
	case model.Sunday:
		return 0, sundayEndClock
	default:
		return 0, lastDayMinute
	}
}

// generateEvents creates the specified number of events with unique IDs.
func generateEvents(ctx context.Context, config *Config, stats *Stats) ([]model.Event, error) {
	logger.Get().Info(ctx, "generating events", logger.Int("numEvents", config.NumEvents))

	events := make([]model.Event, 0, config.NumEvents)
	for i := 0; i < config.NumEvents; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during event generation: %w", err)
		}
		ev := generateSingleEvent(i)
		if randInt(PercentageMultiplier) < config.InvalidPercent {
			ev = spoil(ev)
		}
		events = append(events, ev)
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated events successfully", logger.Int("count", len(events)))
	return events, nil
}

// generateSingleEvent creates an event that fits the festival window.
func generateSingleEvent(index int) model.Event {
	day := model.Days[randInt(len(model.Days))]
	first, last := dayWindow(day)

	startSteps := (last - minDuration - first) / minuteStep
	start := first + randInt(startSteps+1)*minuteStep

	durSteps := (maxDuration - minDuration) / minuteStep
	end := start + minDuration + randInt(durSteps+1)*minuteStep
	if end > last {
		end = last
	}

	return model.Event{
		ID:    uuid.NewString(),
		Title: fmt.Sprintf("%s #%d", titles[randInt(len(titles))], index),
		Time:  fmt.Sprintf("%02d:%02d - %02d:%02d", start/60, start%60, end/60, end%60),
		Day:   day,
		Venue: model.Venues[randInt(len(model.Venues))],
		Type:  eventTypes[randInt(len(eventTypes))],
	}
}

// spoil makes ev unplaceable with either a garbled time or an unknown venue.
func spoil(ev model.Event) model.Event {
	if randInt(2) == 0 {
		ev.Time = "tba"
	} else {
		ev.Venue = "garten"
	}
	return ev
}
