package site

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeDeps struct {
	snap      *layout.Snapshot
	err       error
	dismissed bool
}

func (f *fakeDeps) Layout(context.Context) (*layout.Snapshot, error) { return f.snap, f.err }
func (f *fakeDeps) HintDismissed() bool                               { return f.dismissed }

func seedSnapshot() *layout.Snapshot {
	events := []model.Event{
		{ID: "a", Title: "Opening", Time: "19:00 - 20:30", Day: model.Friday, Venue: model.Outside, Type: model.TypeDJ},
		{ID: "b", Title: "Jam", Time: "19:30 - 21:00", Day: model.Friday, Venue: model.Outside, Type: model.TypeLive},
		{ID: "c", Title: "Brunch", Time: "10:00 - 12:00", Day: model.Saturday, Venue: model.Upstairs, Type: model.TypeWorkshop},
		{ID: "d", Title: "Closing", Time: "18:00 - 19:00", Day: model.Sunday, Venue: model.Downstairs},
		{ID: "x", Title: "Garden", Time: "12:00 - 13:00", Day: model.Saturday, Venue: "garten"},
	}
	return &layout.Snapshot{Result: layout.Layout(events)}
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestTextSize(t *testing.T) {
	Convey("TextSize picks the class from height and lanes", t, func() {
		So(TextSize(20, 1), ShouldEqual, TextXS)
		So(TextSize(120, 3), ShouldEqual, TextXS)
		So(TextSize(45, 1), ShouldEqual, TextSM)
		So(TextSize(120, 2), ShouldEqual, TextSM)
		So(TextSize(60, 1), ShouldEqual, TextBase)
	})
}

func TestPlace(t *testing.T) {
	Convey("Given an event sharing its venue with one other", t, func() {
		snap := seedSnapshot()
		var pe model.PositionedEvent
		for _, e := range snap.Events {
			if e.Event.ID == "b" {
				pe = e
			}
		}

		Convey("Then its box is offset by the start minute and takes the right lane", func() {
			box := Place(pe, 60)
			So(box.Top, ShouldEqual, 30.0)
			So(box.Height, ShouldEqual, 90.0)
			So(box.LeftPct, ShouldEqual, 50.0)
			So(box.WidthPct, ShouldEqual, 50.0)
			So(box.Text, ShouldEqual, TextSM)
			So(string(box.Style()), ShouldEqual, "top:30.00px;height:90.00px;left:50.0000%;width:50.0000%")
		})

		Convey("Then doubling the row height doubles the box", func() {
			box := Place(pe, 120)
			So(box.Top, ShouldEqual, 60.0)
			So(box.Height, ShouldEqual, 180.0)
		})
	})
}

func TestTypeColor(t *testing.T) {
	Convey("Known types get their own colour and unknown ones a neutral one", t, func() {
		So(TypeColor(model.TypeDJ), ShouldEqual, "#7c3aed")
		So(TypeColor(""), ShouldEqual, "#475569")
	})
}

func TestGroupByDay(t *testing.T) {
	Convey("Given positioned events out of order", t, func() {
		snap := seedSnapshot()
		events := []model.PositionedEvent{snap.Events[3], snap.Events[1], snap.Events[2], snap.Events[0]}

		Convey("Then they are grouped by festival day and sorted by start", func() {
			groups := GroupByDay(events)
			So(groups, ShouldHaveLength, 3)
			So(groups[0].Day, ShouldEqual, model.Friday)
			So(groups[0].Events, ShouldHaveLength, 2)
			So(groups[0].Events[0].Event.ID, ShouldEqual, "a")
			So(groups[0].Events[1].Event.ID, ShouldEqual, "b")
			So(groups[1].Day, ShouldEqual, model.Saturday)
			So(groups[2].Day, ShouldEqual, model.Sunday)
		})
	})
}

func TestRootHandler(t *testing.T) {
	Convey("Given the site registered on a mux", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		deps := &fakeDeps{snap: seedSnapshot()}
		mux := http.NewServeMux()
		Register(context.Background(), mux, deps, WithTitle("Sommerfest"))

		Convey("When requesting the grid", func() {
			w := get(mux, "/")
			body := w.Body.String()

			Convey("Then it renders every slot, venue and placed event", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(body, ShouldContainSubstring, "<title>Sommerfest</title>")
				So(body, ShouldContainSubstring, `data-slot="0"`)
				So(body, ShouldContainSubstring, `data-slot="49"`)
				So(body, ShouldNotContainSubstring, `data-slot="50"`)
				So(body, ShouldContainSubstring, "Oben")
				So(body, ShouldContainSubstring, `data-id="a"`)
				So(body, ShouldContainSubstring, `data-id="d"`)
				So(body, ShouldNotContainSubstring, `data-id="x"`)
				So(body, ShouldContainSubstring, `data-lanes="2"`)
				So(body, ShouldContainSubstring, "grid-template-rows:40.00px repeat(50,60.00px)")
			})

			Convey("Then the dropped event is counted and the hint is shown", func() {
				So(body, ShouldContainSubstring, "1 Veranstaltung(en)")
				So(body, ShouldContainSubstring, `id="zoom-hint"`)
			})
		})

		Convey("When the hint was dismissed", func() {
			deps.dismissed = true
			body := get(mux, "/").Body.String()

			Convey("Then no hint is rendered", func() {
				So(body, ShouldNotContainSubstring, `id="zoom-hint"`)
			})
		})

		Convey("When requesting a zoomed grid", func() {
			body := get(mux, "/?zoom=2").Body.String()

			Convey("Then rows and header scale with the zoom", func() {
				So(body, ShouldContainSubstring, "grid-template-rows:80.00px repeat(50,120.00px)")
			})
		})

		Convey("When the zoom is out of range", func() {
			body := get(mux, "/?zoom=9").Body.String()

			Convey("Then it is clamped", func() {
				So(body, ShouldContainSubstring, "grid-template-rows:120.00px repeat(50,180.00px)")
			})
		})

		Convey("When requesting the list view", func() {
			body := get(mux, "/?view=list").Body.String()

			Convey("Then events appear grouped by day in start order", func() {
				friday := strings.Index(body, "<h2>Freitag</h2>")
				saturday := strings.Index(body, "<h2>Samstag</h2>")
				opening := strings.Index(body, "Opening")
				jam := strings.Index(body, "Jam")
				brunch := strings.Index(body, "Brunch")
				So(friday, ShouldBeGreaterThan, -1)
				So(opening, ShouldBeGreaterThan, friday)
				So(jam, ShouldBeGreaterThan, opening)
				So(saturday, ShouldBeGreaterThan, jam)
				So(brunch, ShouldBeGreaterThan, saturday)
				So(body, ShouldContainSubstring, `class="active">Liste`)
			})
		})

		Convey("When requesting an unknown path", func() {
			w := get(mux, "/nope")

			Convey("Then it returns 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When posting to the page", func() {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})

		Convey("When the layout is unavailable", func() {
			deps.err = errors.New("boom")
			w := get(mux, "/")

			Convey("Then it returns 503", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}
