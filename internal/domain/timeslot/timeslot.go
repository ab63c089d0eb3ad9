// Package timeslot defines the hourly time axis of the festival weekend.
//
// The window runs from Friday 19:00 to Sunday 20:00: Friday contributes
// hours 19-23, Saturday all 24 hours and Sunday hours 0-20, giving 50
// consecutive slots indexed 0..49.
package timeslot

import (
	"fmt"
	"time"

	"github.com/okian/festgrid/internal/domain/model"
)

// Window bounds and day offsets.
const (
	FridayFirstHour = 19
	SundayLastHour  = 20

	FridayStart   = 0
	SaturdayStart = 5
	SundayStart   = 29

	Count = 50

	// Invalid is returned for (day, hour) pairs outside the window.
	Invalid = -1
)

// Slot is one hour of the festival window.
type Slot struct {
	Index int       `json:"index"`
	Day   model.Day `json:"day"`
	Hour  int       `json:"hour"`
	Label string    `json:"label"`
}

var slots = buildSlots()

func buildSlots() []Slot {
	out := make([]Slot, 0, Count)
	add := func(day model.Day, from, to int) {
		for h := from; h <= to; h++ {
			out = append(out, Slot{Index: len(out), Day: day, Hour: h, Label: fmt.Sprintf("%02d:00", h)})
		}
	}
	add(model.Friday, FridayFirstHour, 23)
	add(model.Saturday, 0, 23)
	add(model.Sunday, 0, SundayLastHour)
	return out
}

// Build returns the ordered slot sequence. The result is a fresh copy.
func Build() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// At returns the slot with the given index.
func At(index int) (Slot, bool) {
	if index < 0 || index >= Count {
		return Slot{}, false
	}
	return slots[index], true
}

// IndexOf maps (day, hour) to a slot index, or Invalid.
func IndexOf(day model.Day, hour int) int {
	if hour < 0 || hour > 23 {
		return Invalid
	}
	switch day {
	case model.Friday:
		if hour < FridayFirstHour {
			return Invalid
		}
		return hour - FridayFirstHour
	case model.Saturday:
		return SaturdayStart + hour
	case model.Sunday:
		if hour > SundayLastHour {
			return Invalid
		}
		return SundayStart + hour
	default:
		return Invalid
	}
}

// DayStart returns the first slot index of day, or Invalid.
func DayStart(day model.Day) int {
	switch day {
	case model.Friday:
		return FridayStart
	case model.Saturday:
		return SaturdayStart
	case model.Sunday:
		return SundayStart
	default:
		return Invalid
	}
}

// DayOf maps a wall-clock weekday onto a festival day. Other weekdays yield "".
func DayOf(wd time.Weekday) model.Day {
	switch wd {
	case time.Friday:
		return model.Friday
	case time.Saturday:
		return model.Saturday
	case time.Sunday:
		return model.Sunday
	default:
		return ""
	}
}

// IndexAt resolves a wall-clock instant, in its own location, to a slot index.
func IndexAt(t time.Time) int {
	day := DayOf(t.Weekday())
	if day == "" {
		return Invalid
	}
	return IndexOf(day, t.Hour())
}
