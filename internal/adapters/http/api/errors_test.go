package api

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorHelpers(t *testing.T) {
	Convey("Given the error helpers", t, func() {
		cause := errors.New("boom")

		Convey("WrapKind matches both kind and cause", func() {
			err := WrapKind("api.op", ErrBadRequest, cause)
			So(err.Error(), ShouldEqual, "api.op: bad request: boom")
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(errors.Is(err, ErrNotFound), ShouldBeFalse)
		})

		Convey("NewKind carries only the kind", func() {
			err := NewKind("api.op", ErrNotFound)
			So(err.Error(), ShouldEqual, "api.op: not found")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Wrap keeps nil nil", func() {
			So(Wrap("api.op", nil), ShouldBeNil)
			So(Wrap("api.op", cause).Error(), ShouldEqual, "api.op: boom")
		})
	})
}

func TestErrorClassification(t *testing.T) {
	Convey("Status codes map onto metric labels", t, func() {
		So(getErrorType(503), ShouldEqual, "unavailable")
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorSeverity(500), ShouldEqual, "high")
		So(getErrorSeverity(404), ShouldEqual, "medium")
	})
}
