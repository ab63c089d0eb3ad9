package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("grid"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors are registered on that registry", func() {
				So(m, ShouldNotBeNil)
				m.layoutRuns.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_grid_layout_runs_total"], ShouldBeTrue)
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "festgrid")
				So(m.subsystem, ShouldEqual, "schedule")
				So(len(m.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording layout metrics", func() {
			before := testutil.ToFloat64(globalManager.layoutRuns)
			RecordLayoutRun(1.5)
			UpdateLayoutShape(12, 4, 3)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.layoutRuns), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.positionedEvents), ShouldEqual, 12.0)
				So(testutil.ToFloat64(globalManager.overlapGroups), ShouldEqual, 4.0)
				So(testutil.ToFloat64(globalManager.maxLanes), ShouldEqual, 3.0)
			})
		})

		Convey("When recording dropped events by reason", func() {
			before := testutil.ToFloat64(globalManager.droppedEvents.WithLabelValues("unknown_venue"))
			RecordDroppedEvent("unknown_venue")
			RecordDroppedEvent("unknown_venue")

			Convey("Then the labelled counter increases", func() {
				So(testutil.ToFloat64(globalManager.droppedEvents.WithLabelValues("unknown_venue")), ShouldEqual, before+2)
			})
		})

		Convey("When recording the remaining metrics", func() {
			So(func() {
				RecordSnapshotCacheHit()
				UpdateStoredEvents(7)
				RecordSeedReload("ok")
				RecordHintDismissal()
				RecordCalendarExport()
				RecordHTTPRequest("layout", "GET", "200")
				RecordHTTPRequestDuration("layout", "GET", "200", 3)
				RecordErrorByEndpoint("events", "POST", "client_error")
				RecordErrorByType("client_error", "medium")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(10)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.storedEvents), ShouldEqual, 7.0)
		})

		Convey("Then GetRegistry exposes the custom registry", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}

func TestRecordersConcurrently(t *testing.T) {
	Convey("Recording from many goroutines is safe", t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				RecordLayoutRun(0.2)
				RecordSnapshotCacheHit()
			}()
		}
		wg.Wait()
		So(testutil.ToFloat64(globalManager.layoutRuns), ShouldBeGreaterThanOrEqualTo, 20.0)
	})
}
