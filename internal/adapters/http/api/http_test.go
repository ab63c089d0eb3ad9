package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/festgrid/internal/adapters/http/api"
	"github.com/okian/festgrid/internal/adapters/repository"
	service "github.com/okian/festgrid/internal/app"
	"github.com/okian/festgrid/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func newMux(t *testing.T, withPrefs bool) (*http.ServeMux, *service.Service) {
	t.Helper()
	opts := []service.Option{
		service.WithLocation(time.UTC),
		service.WithClock(func() time.Time { return time.Date(2026, time.June, 20, 10, 0, 0, 0, time.UTC) }),
	}
	if withPrefs {
		prefs, err := repository.OpenFilePrefs(filepath.Join(t.TempDir(), "prefs.json"))
		if err != nil {
			t.Fatalf("open prefs: %v", err)
		}
		opts = append(opts, service.WithPrefs(prefs))
	}
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux, svc
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newMux(t, true)

		Convey("Health exposes prometheus metrics", func() {
			w := do(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "festgrid_")
		})

		Convey("Stats are served as JSON", func() {
			w := do(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["started"], ShouldEqual, true)
		})

		Convey("Slots lists the festival window", func() {
			w := do(mux, "GET", "/slots", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Slots []struct {
					Index int    `json:"index"`
					Label string `json:"label"`
				} `json:"slots"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Slots, ShouldHaveLength, 50)
		})

		Convey("Unknown methods are not found", func() {
			So(do(mux, "PUT", "/events", "{}").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, "POST", "/layout", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestEventsAndLayout(t *testing.T) {
	Convey("Given an empty schedule", t, func() {
		mux, _ := newMux(t, false)

		Convey("Listing returns an empty array", func() {
			w := do(mux, "GET", "/events", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"events":[]`)
		})

		Convey("Posting events updates the layout immediately", func() {
			w := do(mux, "POST", "/events", `{"id":"a","title":"A","time":"19:00 - 20:00","day":"Freitag","venue":"draussen","type":"live"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			w = do(mux, "POST", "/events", `{"id":"b","title":"B","time":"19:30 - 21:00","day":"Freitag","venue":"draussen"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			w = do(mux, "POST", "/events", `{"id":"c","title":"C","time":"late","day":"Freitag","venue":"oben"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			w = do(mux, "GET", "/layout", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Events        []model.PositionedEvent            `json:"events"`
				Cells         map[string][]model.PositionedEvent `json:"cells"`
				Diagnostics   []model.Diagnostic                 `json:"diagnostics"`
				TotalLanesMax int                                `json:"total_lanes_max"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Events, ShouldHaveLength, 2)
			So(body.TotalLanesMax, ShouldEqual, 2)
			So(body.Diagnostics, ShouldHaveLength, 1)
			So(body.Diagnostics[0].EventID, ShouldEqual, "c")
			So(body.Diagnostics[0].Reason, ShouldEqual, "malformed_time")
			So(body.Cells["3-2"], ShouldHaveLength, 2)
		})

		Convey("A created event can be fetched and deleted", func() {
			w := do(mux, "POST", "/events", `{"title":"Generated"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			id, _ := decode(w)["id"].(string)
			So(id, ShouldNotBeEmpty)

			So(do(mux, "GET", "/events/"+id, "").Code, ShouldEqual, http.StatusOK)
			So(do(mux, "DELETE", "/events/"+id, "").Code, ShouldEqual, http.StatusNoContent)

			w = do(mux, "GET", "/events/"+id, "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["code"], ShouldEqual, "not_found")
		})

		Convey("Invalid bodies are rejected", func() {
			So(do(mux, "POST", "/events", `{"title":""}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "POST", "/events", `not json`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "POST", "/events", `{"title":"x","unknown":1}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "GET", "/events/a/b", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestScrollTarget(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newMux(t, false)

		Convey("A slot resolves to a scroll-top", func() {
			w := do(mux, "GET", "/scroll-target?slot=5&viewport=600", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["scroll_top"], ShouldEqual, 140.0)
			So(body["found"], ShouldEqual, true)
		})

		Convey("A day resolves to its first slot", func() {
			w := do(mux, "GET", "/scroll-target?day=Sonntag&viewport=600&zoom=2", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["slot"], ShouldEqual, 29.0)
			So(body["zoom"], ShouldEqual, 2.0)
		})

		Convey("Now resolves against the service clock", func() {
			w := do(mux, "GET", "/scroll-target?now=1&viewport=600", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["slot"], ShouldEqual, 15.0)
		})

		Convey("Bad parameters are rejected", func() {
			So(do(mux, "GET", "/scroll-target?slot=abc", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "GET", "/scroll-target?slot=99", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "GET", "/scroll-target?day=Montag", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "GET", "/scroll-target", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestCalendarAndPrefs(t *testing.T) {
	Convey("Given a schedule with one event", t, func() {
		mux, _ := newMux(t, true)
		So(do(mux, "POST", "/events", `{"id":"a","title":"Opening","time":"19:00 - 20:00","day":"Freitag","venue":"draussen"}`).Code, ShouldEqual, http.StatusOK)

		Convey("The calendar is served as text/calendar", func() {
			w := do(mux, "GET", "/schedule.ics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "text/calendar")
			So(w.Body.String(), ShouldContainSubstring, "SUMMARY:Opening")
		})

		Convey("The zoom hint can be dismissed", func() {
			w := do(mux, "GET", "/prefs/zoom-hint", "")
			So(decode(w)["dismissed"], ShouldEqual, false)
			So(do(mux, "POST", "/prefs/zoom-hint", "").Code, ShouldEqual, http.StatusOK)
			w = do(mux, "GET", "/prefs/zoom-hint", "")
			So(decode(w)["dismissed"], ShouldEqual, true)
		})
	})

	Convey("Without a preference store dismissing is unavailable", t, func() {
		mux, _ := newMux(t, false)
		w := do(mux, "POST", "/prefs/zoom-hint", "")
		So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		So(decode(w)["code"], ShouldEqual, "unavailable")
	})
}
