package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const seedYAML = `events:
  - id: a
    title: Opening
    time: "19:00 - 20:30"
    day: Freitag
    venue: draussen
  - id: b
    title: Jam
    time: "19:30 - 21:00"
    day: Freitag
    venue: draussen
  - id: x
    title: Garden
    time: "12:00 - 13:00"
    day: Samstag
    venue: garten
`

func TestRun(t *testing.T) {
	convey.Convey("Given an events file", t, func() {
		path := filepath.Join(t.TempDir(), "events.yaml")
		convey.So(os.WriteFile(path, []byte(seedYAML), 0o600), convey.ShouldBeNil)

		convey.Convey("When dumping the layout", func() {
			var buf bytes.Buffer
			err := run(&buf, path, true, defaultBuffer)
			convey.So(err, convey.ShouldBeNil)

			var out dump
			convey.So(json.Unmarshal(buf.Bytes(), &out), convey.ShouldBeNil)

			convey.Convey("Then placed events and diagnostics are both reported", func() {
				convey.So(out.Events, convey.ShouldHaveLength, 2)
				convey.So(out.Diagnostics, convey.ShouldHaveLength, 1)
				convey.So(out.Diagnostics[0].EventID, convey.ShouldEqual, "x")
				convey.So(out.MaxLanes, convey.ShouldEqual, 2)
				convey.So(buf.String(), convey.ShouldContainSubstring, "\n  \"events\"")
			})
		})

		convey.Convey("When the file is missing", func() {
			err := run(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.yaml"), false, defaultBuffer)

			convey.Convey("Then an error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
