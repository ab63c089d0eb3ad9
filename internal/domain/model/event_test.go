package model_test

import (
	"testing"

	model "github.com/okian/festgrid/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDay(t *testing.T) {
	convey.Convey("Given the festival days", t, func() {
		convey.Convey("Then Next walks Friday to Sunday and stops", func() {
			convey.So(model.Friday.Next(), convey.ShouldEqual, model.Saturday)
			convey.So(model.Saturday.Next(), convey.ShouldEqual, model.Sunday)
			convey.So(model.Sunday.Next(), convey.ShouldEqual, model.Day(""))
			convey.So(model.Day("Montag").Next(), convey.ShouldEqual, model.Day(""))
		})
	})
}

func TestVenue(t *testing.T) {
	convey.Convey("Given the venues", t, func() {
		convey.Convey("Then Index follows column order", func() {
			convey.So(model.Outside.Index(), convey.ShouldEqual, 0)
			convey.So(model.Upstairs.Index(), convey.ShouldEqual, 1)
			convey.So(model.Downstairs.Index(), convey.ShouldEqual, 2)
			convey.So(model.Venue("keller").Index(), convey.ShouldEqual, -1)
		})

		convey.Convey("And labels are human readable", func() {
			convey.So(model.Outside.Label(), convey.ShouldEqual, "Draußen")
			convey.So(model.Venue("keller").Label(), convey.ShouldEqual, "keller")
		})
	})
}

func TestEventTimeOrDefault(t *testing.T) {
	convey.Convey("Given events with and without a time", t, func() {
		convey.So(model.Event{}.TimeOrDefault(), convey.ShouldEqual, "19:00 - 20:00")
		convey.So(model.Event{Time: "10:00 - 11:00"}.TimeOrDefault(), convey.ShouldEqual, "10:00 - 11:00")
	})
}
