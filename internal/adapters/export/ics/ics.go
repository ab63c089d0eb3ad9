// Package ics renders the laid-out schedule as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
)

const (
	defaultProductID = "-//festgrid//schedule//EN"
	defaultName      = "Festival schedule"
	uidDomain        = "festgrid"
)

// Exporter converts positioned events into VEVENTs anchored at the
// festival's Friday.
type Exporter struct {
	friday    time.Time
	loc       *time.Location
	productID string
	name      string
	now       func() time.Time
}

// NewExporter creates an exporter for the festival starting on friday.
// Only the calendar date of friday is used.
func NewExporter(friday time.Time, opts ...Option) *Exporter {
	e := &Exporter{
		loc:       time.UTC,
		productID: defaultProductID,
		name:      defaultName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	y, m, d := friday.Date()
	e.friday = time.Date(y, m, d, 0, 0, 0, 0, e.loc)
	return e
}

// WindowStart returns the wall-clock start of slot 0.
func (e *Exporter) WindowStart() time.Time {
	y, m, d := e.friday.Date()
	return time.Date(y, m, d, timeslot.FridayFirstHour, 0, 0, 0, e.loc)
}

// At converts minutes from the start of the festival window into a time.
func (e *Exporter) At(minutes int) time.Time {
	y, m, d := e.friday.Date()
	return time.Date(y, m, d, timeslot.FridayFirstHour, minutes, 0, 0, e.loc)
}

// Calendar builds the calendar for events.
func (e *Exporter) Calendar(events []model.PositionedEvent) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(e.productID)
	cal.SetXWRCalName(e.name)
	cal.SetXWRTimezone(e.loc.String())

	stamp := e.now().UTC()
	for _, pe := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@%s", pe.Event.ID, uidDomain))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.At(pe.StartMinutes))
		ve.SetEndAt(e.At(pe.StartMinutes + pe.Duration))
		ve.SetSummary(pe.Event.Title)
		ve.SetLocation(pe.Event.Venue.Label())
		if pe.Event.Type != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, string(pe.Event.Type))
		}
		if desc := description(pe.Event); desc != "" {
			ve.SetDescription(desc)
		}
		if len(pe.Event.Links) > 0 {
			ve.SetURL(pe.Event.Links[0].URL)
		}
	}
	return cal
}

// Write serializes the calendar for events to w.
func (e *Exporter) Write(w io.Writer, events []model.PositionedEvent) error {
	_, err := io.WriteString(w, e.Calendar(events).Serialize())
	return err
}

func description(ev model.Event) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(ev.Description))
	for _, l := range ev.Links {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if l.Label != "" {
			b.WriteString(l.Label)
			b.WriteString(": ")
		}
		b.WriteString(l.URL)
	}
	return b.String()
}
