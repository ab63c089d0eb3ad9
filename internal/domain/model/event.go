// Package model contains domain models passed between layers.
package model

// Day is one of the three festival days.
type Day string

// Festival days in chronological order.
const (
	Friday   Day = "Freitag"
	Saturday Day = "Samstag"
	Sunday   Day = "Sonntag"
)

// Days lists the festival days in order.
var Days = []Day{Friday, Saturday, Sunday}

// Next returns the following festival day, or "" after Sunday.
func (d Day) Next() Day {
	switch d {
	case Friday:
		return Saturday
	case Saturday:
		return Sunday
	default:
		return ""
	}
}

// Venue is one of the fixed performance spaces.
type Venue string

// Venues in column order.
const (
	Outside    Venue = "draussen"
	Upstairs   Venue = "oben"
	Downstairs Venue = "unten"
)

// Venues lists the venues in grid column order.
var Venues = []Venue{Outside, Upstairs, Downstairs}

// Index returns the column index of v, or -1 for an unknown venue.
func (v Venue) Index() int {
	for i, known := range Venues {
		if v == known {
			return i
		}
	}
	return -1
}

// Label is the display name of the venue.
func (v Venue) Label() string {
	switch v {
	case Outside:
		return "Draußen"
	case Upstairs:
		return "Oben"
	case Downstairs:
		return "Unten"
	default:
		return string(v)
	}
}

// EventType drives colour and label only.
type EventType string

// Known event types.
const (
	TypeDJ          EventType = "dj"
	TypeLive        EventType = "live"
	TypePerformance EventType = "performance"
	TypeWorkshop    EventType = "workshop"
	TypeInteractive EventType = "interaktiv"
)

// DefaultTime is used when an event carries no time string.
const DefaultTime = "19:00 - 20:00"

// Link is an external reference attached to an event.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Event is a schedule entry as provided by the data owner.
type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Time        string    `json:"time,omitempty" yaml:"time,omitempty"` // "HH:MM - HH:MM"
	Day         Day       `json:"day" yaml:"day"`
	Venue       Venue     `json:"venue" yaml:"venue"`
	Type        EventType `json:"type,omitempty" yaml:"type,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Links       []Link    `json:"links,omitempty" yaml:"links,omitempty"`
}

// TimeOrDefault returns the event time string, falling back to DefaultTime.
func (e Event) TimeOrDefault() string {
	if e.Time == "" {
		return DefaultTime
	}
	return e.Time
}

// PositionedEvent is an event with its resolved grid geometry.
type PositionedEvent struct {
	Event Event `json:"event"`

	StartMinutes int `json:"start_minutes"` // minutes from the start of the festival window
	EndMinutes   int `json:"end_minutes"`
	Duration     int `json:"duration"`

	GridRowStart int `json:"grid_row_start"`
	GridRowEnd   int `json:"grid_row_end"`
	GridColumn   int `json:"grid_column"`

	Lane         int `json:"lane"`
	TotalLanes   int `json:"total_lanes"`
	MinuteOffset int `json:"minute_offset"`
}

// Diagnostic explains why an event was left out of the layout.
type Diagnostic struct {
	EventID string `json:"event_id"`
	Title   string `json:"title"`
	Time    string `json:"time"`
	Venue   Venue  `json:"venue"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}
