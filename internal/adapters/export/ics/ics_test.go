package ics_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/okian/festgrid/internal/adapters/export/ics"
	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExporter(t *testing.T) {
	Convey("Given a laid-out schedule", t, func() {
		cest := time.FixedZone("CEST", 2*60*60)
		friday := time.Date(2026, time.June, 19, 0, 0, 0, 0, time.UTC)
		stamp := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
		exp := ics.NewExporter(friday,
			ics.WithLocation(cest),
			ics.WithCalendarName("Test Fest"),
			ics.WithClock(func() time.Time { return stamp }),
		)

		res := layout.Layout([]model.Event{
			{ID: "open", Title: "Opening", Time: "19:30 - 20:15", Day: model.Friday, Venue: model.Outside, Type: model.TypeLive,
				Description: "Welcome", Links: []model.Link{{Label: "Info", URL: "https://example.org/open"}}},
			{ID: "night", Title: "Night", Time: "23:00 - 02:00", Day: model.Friday, Venue: model.Downstairs, Type: model.TypeDJ},
			{ID: "broken", Title: "Broken", Time: "noon", Day: model.Friday, Venue: model.Outside},
		})
		So(res.Events, ShouldHaveLength, 2)

		Convey("Slot offsets map onto wall-clock times", func() {
			So(exp.WindowStart().Equal(time.Date(2026, time.June, 19, 19, 0, 0, 0, cest)), ShouldBeTrue)
			So(exp.At(29*60).Equal(time.Date(2026, time.June, 21, 0, 0, 0, 0, cest)), ShouldBeTrue)
		})

		Convey("The feed round-trips through the parser", func() {
			var buf bytes.Buffer
			So(exp.Write(&buf, res.Events), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "BEGIN:VCALENDAR")
			So(out, ShouldContainSubstring, "X-WR-CALNAME:Test Fest")
			So(out, ShouldContainSubstring, "METHOD:PUBLISH")

			cal, err := ical.ParseCalendar(strings.NewReader(out))
			So(err, ShouldBeNil)
			events := cal.Events()
			So(events, ShouldHaveLength, 2)

			byUID := map[string]*ical.VEvent{}
			for _, ve := range events {
				byUID[ve.Id()] = ve
			}

			open := byUID["open@festgrid"]
			So(open, ShouldNotBeNil)
			start, err := open.GetStartAt()
			So(err, ShouldBeNil)
			So(start.Equal(time.Date(2026, time.June, 19, 19, 30, 0, 0, cest)), ShouldBeTrue)
			end, err := open.GetEndAt()
			So(err, ShouldBeNil)
			So(end.Equal(time.Date(2026, time.June, 19, 20, 15, 0, 0, cest)), ShouldBeTrue)
			So(open.GetProperty(ical.ComponentPropertySummary).Value, ShouldEqual, "Opening")
			So(open.GetProperty(ical.ComponentPropertyLocation).Value, ShouldEqual, model.Outside.Label())
			So(open.GetProperty(ical.ComponentPropertyCategories).Value, ShouldEqual, "live")

			night := byUID["night@festgrid"]
			So(night, ShouldNotBeNil)
			nstart, _ := night.GetStartAt()
			nend, _ := night.GetEndAt()
			So(nstart.Equal(time.Date(2026, time.June, 19, 23, 0, 0, 0, cest)), ShouldBeTrue)
			So(nend.Equal(time.Date(2026, time.June, 20, 2, 0, 0, 0, cest)), ShouldBeTrue)
		})

		Convey("An empty schedule still yields a calendar", func() {
			cal := exp.Calendar(nil)
			So(cal.Events(), ShouldBeEmpty)
		})
	})
}
