package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/festgrid/internal/config"
	"github.com/okian/festgrid/pkg/logger"
	"github.com/okian/festgrid/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

const seedYAML = `events:
  - id: a
    title: Opening
    time: "19:00 - 20:00"
    day: Freitag
    venue: draussen
`

func TestNewService(t *testing.T) {
	convey.Convey("Given a configuration with seed and prefs files", t, func() {
		dir := t.TempDir()
		events := filepath.Join(dir, "events.yaml")
		convey.So(os.WriteFile(events, []byte(seedYAML), 0o600), convey.ShouldBeNil)

		cfg := config.New(context.Background())
		cfg.EventsFile = events
		cfg.PrefsFile = filepath.Join(dir, "prefs.json")

		convey.Convey("When building and starting the service", func() {
			svc, err := newService(cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the seed is loaded", func() {
				evs, err := svc.Events(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(evs, convey.ShouldHaveLength, 1)
			})

			convey.Convey("Then the hint can be dismissed and is persisted", func() {
				convey.So(svc.DismissHint(context.Background()), convey.ShouldBeNil)
				_, err := os.Stat(cfg.PrefsFile)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the timezone is unknown", func() {
			cfg.Timezone = "Mars/Olympus"
			_, err := newService(cfg, logger.Nop())

			convey.Convey("Then building fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the wired mux", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.PrefsFile = ""
		svc, err := newService(cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, cfg, svc)

		for _, path := range []string{"/", "/?view=list", "/healthz", "/layout", "/slots", "/events", "/schedule.ics", "/openapi.yaml"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		}
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metrics updaters", t, func() {
		convey.Convey("Then a system update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the system updater stops with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then a service update publishes the layout shape", func() {
			ctx := context.Background()
			cfg := config.New(ctx)
			cfg.PrefsFile = ""
			svc, err := newService(cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			convey.So(metrics.NewManager(), convey.ShouldNotBeNil)
		})
	})
}
