package config_test

import (
	"errors"
	"testing"

	"github.com/okian/flightdesk/internal/config"
	"github.com/okian/flightdesk/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.HistorySize, convey.ShouldEqual, 20)
			convey.So(cfg.DefaultTopN, convey.ShouldEqual, 3)
			convey.So(cfg.MaxTopN, convey.ShouldEqual, 50)
			convey.So(cfg.MaintenanceLookaheadDays, convey.ShouldEqual, 0)
			convey.So(cfg.Weights(), convey.ShouldResemble, scoring.DefaultWeights())
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid settings", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = "" },
			"unknown store":      func(c *config.Config) { c.Store = "redis" },
			"empty sqlite path":  func(c *config.Config) { c.Store = config.StoreSQLite; c.SQLitePath = "" },
			"zero default top n": func(c *config.Config) { c.DefaultTopN = 0 },
			"max below default":  func(c *config.Config) { c.MaxTopN = 2 },
			"negative lookahead": func(c *config.Config) { c.MaintenanceLookaheadDays = -1 },
		}

		for name, mutate := range cases {
			convey.Convey("When the config has "+name, func() {
				cfg := config.New()
				mutate(cfg)

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
