// Package layout resolves festival events onto the venue/time grid.
//
// Resolution is pure: the same input always yields the same output, and
// events that cannot be placed are reported as diagnostics instead of
// failing the batch.
package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
)

// Result is the output of one layout pass.
type Result struct {
	// Events holds the placed events in input order.
	Events []model.PositionedEvent `json:"events"`
	// Cells maps "<gridColumn>-<gridRowStart>" to the events starting there.
	Cells map[string][]model.PositionedEvent `json:"cells"`
	// Diagnostics lists the dropped events.
	Diagnostics []model.Diagnostic `json:"diagnostics"`
	// Groups is the number of overlap groups across all venues.
	Groups int `json:"groups"`
	// MaxLanes is the widest overlap group.
	MaxLanes int `json:"max_lanes"`
}

// Resolver turns raw events into positioned events.
type Resolver struct {
	buffer       int
	headerRows   int
	labelColumns int
}

// NewResolver creates a resolver with the default grid geometry.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		buffer:       defaultBufferMinutes,
		headerRows:   defaultHeaderRows,
		labelColumns: defaultLabelColumns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Layout resolves events with the default resolver.
func Layout(events []model.Event) Result {
	return NewResolver().Resolve(events)
}

// CellKey builds the Cells lookup key.
func CellKey(column, rowStart int) string {
	return strconv.Itoa(column) + "-" + strconv.Itoa(rowStart)
}

// Resolve places events on the grid. It never fails; unplaceable events
// end up in Result.Diagnostics.
//
// Only a lower end hour marks an overnight event. An end earlier than the
// start within the same hour, such as "10:30 - 10:15", is not rolled over
// and is reported as malformed_time.
func (r *Resolver) Resolve(events []model.Event) Result {
	res := Result{
		Events:      []model.PositionedEvent{},
		Cells:       map[string][]model.PositionedEvent{},
		Diagnostics: []model.Diagnostic{},
	}

	byVenue := make([][]int, len(model.Venues))
	for _, ev := range events {
		pe, err := r.project(ev)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
				EventID: ev.ID,
				Title:   ev.Title,
				Time:    ev.TimeOrDefault(),
				Venue:   ev.Venue,
				Reason:  reasonCode(err),
				Err:     err,
			})
			continue
		}
		idx := len(res.Events)
		res.Events = append(res.Events, pe)
		v := ev.Venue.Index()
		byVenue[v] = append(byVenue[v], idx)
	}

	for _, members := range byVenue {
		groups, lanes := r.assignLanes(res.Events, members)
		res.Groups += groups
		if lanes > res.MaxLanes {
			res.MaxLanes = lanes
		}
	}

	for _, pe := range res.Events {
		key := CellKey(pe.GridColumn, pe.GridRowStart)
		res.Cells[key] = append(res.Cells[key], pe)
	}
	return res
}

// project parses an event's time and venue into grid geometry.
func (r *Resolver) project(ev model.Event) (model.PositionedEvent, error) {
	raw := ev.TimeOrDefault()
	parts := strings.Split(raw, " - ")
	if len(parts) != 2 {
		return model.PositionedEvent{}, fmt.Errorf("%w: %q", ErrMalformedTime, raw)
	}
	sh, sm, err := parseClock(parts[0])
	if err != nil {
		return model.PositionedEvent{}, err
	}
	eh, em, err := parseClock(parts[1])
	if err != nil {
		return model.PositionedEvent{}, err
	}

	startSlot := timeslot.IndexOf(ev.Day, sh)
	endDay := ev.Day
	overnight := eh < sh
	if overnight {
		endDay = ev.Day.Next()
	}
	endSlot := timeslot.IndexOf(endDay, eh)
	if startSlot == timeslot.Invalid || endSlot == timeslot.Invalid {
		return model.PositionedEvent{}, fmt.Errorf("%w: %s %q", ErrSlotOutOfRange, ev.Day, raw)
	}

	venue := ev.Venue.Index()
	if venue < 0 {
		return model.PositionedEvent{}, fmt.Errorf("%w: %q", ErrUnknownVenue, ev.Venue)
	}

	start := startSlot*60 + sm
	end := endSlot*60 + em
	if end < start {
		return model.PositionedEvent{}, fmt.Errorf("%w: ends before it starts: %q", ErrMalformedTime, raw)
	}

	// Duration uses clock arithmetic, independent of the slot axis.
	duration := (eh-sh)*60 - sm + em
	if overnight {
		duration = (24-sh+eh)*60 - sm + em
	}

	rowEnd := endSlot + r.headerRows + 1
	if em > 0 {
		rowEnd++
	}

	return model.PositionedEvent{
		Event:        ev,
		StartMinutes: start,
		EndMinutes:   end,
		Duration:     duration,
		GridRowStart: startSlot + r.headerRows + 1,
		GridRowEnd:   rowEnd,
		GridColumn:   venue + r.labelColumns + 1,
		Lane:         0,
		TotalLanes:   1,
		MinuteOffset: sm,
	}, nil
}

// parseClock parses "HH" or "HH:MM".
func parseClock(s string) (hour, minute int, err error) {
	fields := strings.Split(strings.TrimSpace(s), ":")
	if len(fields) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	if !digits(fields[0]) {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrMalformedTime, fields[0])
	}
	hour, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrMalformedTime, fields[0])
	}
	if len(fields) == 2 && fields[1] != "" {
		if !digits(fields[1]) {
			return 0, 0, fmt.Errorf("%w: minute %q", ErrMalformedTime, fields[1])
		}
		minute, err = strconv.Atoi(fields[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, 0, fmt.Errorf("%w: minute %q", ErrMalformedTime, fields[1])
		}
	}
	return hour, minute, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Overlaps reports whether a and b intersect once each is shortened by
// buffer minutes at its end.
func Overlaps(a, b model.PositionedEvent, buffer int) bool {
	return a.StartMinutes < b.EndMinutes-buffer && b.StartMinutes < a.EndMinutes-buffer
}

// assignLanes groups one venue's events and sets Lane/TotalLanes in place.
// It returns the number of groups and the widest group's lane count.
func (r *Resolver) assignLanes(all []model.PositionedEvent, members []int) (groups, maxLanes int) {
	switch len(members) {
	case 0:
		return 0, 0
	case 1:
		all[members[0]].Lane = 0
		all[members[0]].TotalLanes = 1
		return 1, 1
	}

	order := append([]int(nil), members...)
	sort.SliceStable(order, func(i, j int) bool {
		return all[order[i]].StartMinutes < all[order[j]].StartMinutes
	})

	// An event joins the first group where it overlaps any member.
	var clusters [][]int
	for _, idx := range order {
		placed := false
		for g := range clusters {
			if r.overlapsAny(all, clusters[g], idx) {
				clusters[g] = append(clusters[g], idx)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []int{idx})
		}
	}

	for _, cluster := range clusters {
		// lanes[i] is the index of the most recent event in lane i.
		var lanes []int
		for _, idx := range cluster {
			lane := -1
			for l, last := range lanes {
				if !Overlaps(all[last], all[idx], r.buffer) {
					lane = l
					break
				}
			}
			if lane < 0 {
				lane = len(lanes)
				lanes = append(lanes, idx)
			} else {
				lanes[lane] = idx
			}
			all[idx].Lane = lane
		}
		for _, idx := range cluster {
			all[idx].TotalLanes = len(lanes)
		}
		if len(lanes) > maxLanes {
			maxLanes = len(lanes)
		}
	}
	return len(clusters), maxLanes
}

func (r *Resolver) overlapsAny(all []model.PositionedEvent, cluster []int, idx int) bool {
	for _, m := range cluster {
		if Overlaps(all[m], all[idx], r.buffer) {
			return true
		}
	}
	return false
}
