package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/festgrid/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.PrefsFile, convey.ShouldEqual, "festgrid-prefs.json")
			convey.So(cfg.Timezone, convey.ShouldEqual, "Europe/Berlin")
			convey.So(cfg.FestivalFriday, convey.ShouldEqual, "2026-06-19")
			convey.So(cfg.RowHeight, convey.ShouldEqual, 60.0)
			convey.So(cfg.HeaderHeight, convey.ShouldEqual, 40.0)
			convey.So(cfg.Validate(context.Background()), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given the default config", t, func() {
		cfg := config.New(ctx)

		convey.Convey("The festival Friday resolves in the configured zone", func() {
			loc, err := cfg.Location()
			convey.So(err, convey.ShouldBeNil)
			friday, err := cfg.Friday(loc)
			convey.So(err, convey.ShouldBeNil)
			convey.So(friday.Weekday(), convey.ShouldEqual, time.Friday)
			convey.So(friday.Location(), convey.ShouldEqual, loc)
		})

		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"unknown timezone", func(c *config.Config) { c.Timezone = "Mars/Olympus" }},
			{"unparsable friday", func(c *config.Config) { c.FestivalFriday = "next friday" }},
			{"friday on a saturday", func(c *config.Config) { c.FestivalFriday = "2026-06-20" }},
			{"zero row height", func(c *config.Config) { c.RowHeight = 0 }},
			{"negative header", func(c *config.Config) { c.HeaderHeight = -1 }},
			{"cron without file", func(c *config.Config) { c.ReloadCron = "*/5 * * * *" }},
			{"bad cron", func(c *config.Config) { c.EventsFile = "events.yaml"; c.ReloadCron = "every now and then" }},
		}
		for _, tc := range cases {
			convey.Convey("It rejects "+tc.name, func() {
				tc.mutate(cfg)
				err := cfg.Validate(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("It accepts a reload schedule with a file", func() {
			cfg.EventsFile = "events.yaml"
			cfg.ReloadCron = "@every 10m"
			convey.So(cfg.Validate(ctx), convey.ShouldBeNil)
		})
	})
}
