// Package site renders the festival grid and list views as HTML.
package site

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"sync"

	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
	"github.com/okian/festgrid/internal/domain/zoom"
)

const (
	defaultTitle        = "Festival"
	defaultHeaderRows   = 1
	defaultLabelColumns = 2
)

var funcMap = template.FuncMap{
	"typeColor": func(t model.EventType) template.CSS {
		return template.CSS(TypeColor(t))
	},
	"venueLabel": func(v model.Venue) string { return v.Label() },
}

var (
	gridPageTmpl, listPageTmpl *template.Template
	tmplOnce                   sync.Once
)

func templates() (grid, list *template.Template) {
	tmplOnce.Do(func() {
		gridPageTmpl = template.Must(template.New("grid").Funcs(funcMap).Parse(tmplBase + tmplGrid))
		listPageTmpl = template.Must(template.New("list").Funcs(funcMap).Parse(tmplBase + tmplList))
	})
	return gridPageTmpl, listPageTmpl
}

// Renderer turns layout snapshots into HTML pages.
type Renderer struct {
	title        string
	rowHeight    float64
	headerHeight float64
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithGeometry sets the base row and header height in px.
func WithGeometry(rowHeight, headerHeight float64) Option {
	return func(r *Renderer) {
		if rowHeight > 0 {
			r.rowHeight = rowHeight
		}
		if headerHeight >= 0 {
			r.headerHeight = headerHeight
		}
	}
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		title:        defaultTitle,
		rowHeight:    zoom.DefaultRowHeight,
		headerHeight: zoom.DefaultHeaderHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type venueColumn struct {
	Column int
	Label  string
}

type dayBand struct {
	Day      model.Day
	RowStart int
	RowEnd   int
}

type placedEvent struct {
	Event model.PositionedEvent
	Box   Box
}

type gridCell struct {
	Row    int
	Column int
	Events []placedEvent
}

type slotRow struct {
	Row   int
	Slot  int
	Label string
	Cells []gridCell
}

type gridPage struct {
	Title         string
	View          string
	HintDismissed bool
	Dropped       int
	Template      template.CSS
	LabelColumns  int
	TimeColumn    int
	Venues        []venueColumn
	Days          []dayBand
	Rows          []slotRow
}

// RenderGrid writes the grid view of snap at zoom factor z.
func (r *Renderer) RenderGrid(w io.Writer, snap *layout.Snapshot, z float64, hintDismissed bool) error {
	z = zoom.Clamp(z)
	rowHeight := r.rowHeight * z
	headerHeight := r.headerHeight * z

	page := gridPage{
		Title:         r.title,
		View:          "grid",
		HintDismissed: hintDismissed,
		Dropped:       len(snap.Diagnostics),
		LabelColumns:  defaultLabelColumns,
		TimeColumn:    defaultLabelColumns,
		Template: template.CSS(fmt.Sprintf(
			"grid-template-columns:80px 64px repeat(%d,minmax(140px,1fr));grid-template-rows:%.2fpx repeat(%d,%.2fpx)",
			len(model.Venues), headerHeight, timeslot.Count, rowHeight)),
	}

	for i, v := range model.Venues {
		page.Venues = append(page.Venues, venueColumn{Column: i + defaultLabelColumns + 1, Label: v.Label()})
	}
	for i, d := range model.Days {
		end := timeslot.Count
		if i+1 < len(model.Days) {
			end = timeslot.DayStart(model.Days[i+1])
		}
		page.Days = append(page.Days, dayBand{
			Day:      d,
			RowStart: timeslot.DayStart(d) + defaultHeaderRows + 1,
			RowEnd:   end + defaultHeaderRows + 1,
		})
	}
	for _, s := range timeslot.Build() {
		row := s.Index + defaultHeaderRows + 1
		sr := slotRow{Row: row, Slot: s.Index, Label: s.Label}
		for _, vc := range page.Venues {
			cell := gridCell{Row: row, Column: vc.Column}
			for _, pe := range snap.Cells[layout.CellKey(vc.Column, row)] {
				cell.Events = append(cell.Events, placedEvent{Event: pe, Box: Place(pe, rowHeight)})
			}
			sr.Cells = append(sr.Cells, cell)
		}
		page.Rows = append(page.Rows, sr)
	}

	grid, _ := templates()
	return grid.ExecuteTemplate(w, "base", page)
}

type dayGroup struct {
	Day    model.Day
	Events []model.PositionedEvent
}

type listPage struct {
	Title   string
	View    string
	Dropped int
	Groups  []dayGroup
}

// RenderList writes the list view of snap: events grouped by day and
// ordered by start.
func (r *Renderer) RenderList(w io.Writer, snap *layout.Snapshot) error {
	page := listPage{Title: r.title, View: "list", Dropped: len(snap.Diagnostics)}
	page.Groups = GroupByDay(snap.Events)
	_, list := templates()
	return list.ExecuteTemplate(w, "base", page)
}

// GroupByDay buckets events by their start day in festival order and sorts
// each bucket by start time, then venue.
func GroupByDay(events []model.PositionedEvent) []dayGroup {
	buckets := make(map[model.Day][]model.PositionedEvent, len(model.Days))
	for _, pe := range events {
		buckets[pe.Event.Day] = append(buckets[pe.Event.Day], pe)
	}
	out := make([]dayGroup, 0, len(model.Days))
	for _, d := range model.Days {
		evs := buckets[d]
		if len(evs) == 0 {
			continue
		}
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].StartMinutes != evs[j].StartMinutes {
				return evs[i].StartMinutes < evs[j].StartMinutes
			}
			return evs[i].GridColumn < evs[j].GridColumn
		})
		out = append(out, dayGroup{Day: d, Events: evs})
	}
	return out
}
