package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/flightdesk/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDate(t *testing.T) {
	Convey("Given source date values", t, func() {
		Convey("When the value is a valid day", func() {
			d := model.ParseDate(" 2024-01-10 ")

			Convey("Then it is known", func() {
				So(d.IsKnown(), ShouldBeTrue)
				So(d.String(), ShouldEqual, "2024-01-10")
			})
		})

		Convey("When the value is empty", func() {
			d := model.ParseDate("  ")

			Convey("Then it is absent", func() {
				So(d.IsAbsent(), ShouldBeTrue)
				So(d.String(), ShouldEqual, "")
			})
		})

		Convey("When the value does not parse", func() {
			d := model.ParseDate("10/01/2024")

			Convey("Then it is unknown and keeps the raw text", func() {
				So(d.IsUnknown(), ShouldBeTrue)
				So(d.Raw(), ShouldEqual, "10/01/2024")
				So(d.String(), ShouldEqual, "unknown")
			})
		})
	})
}

func TestDateJSON(t *testing.T) {
	Convey("Given dates in every state", t, func() {
		v := struct {
			A model.Date `json:"a"`
			B model.Date `json:"b"`
			C model.Date `json:"c"`
		}{model.MustDate("2024-02-01"), model.ParseDate("soon"), model.Date{}}

		b, err := json.Marshal(v)

		Convey("Then they render as day, unknown and null", func() {
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"a":"2024-02-01","b":"unknown","c":null}`)
		})
	})
}

func TestDateAddDays(t *testing.T) {
	Convey("Given a known date", t, func() {
		d := model.MustDate("2024-02-28")

		Convey("Then AddDays crosses month boundaries", func() {
			So(d.AddDays(2).String(), ShouldEqual, "2024-03-01")
		})
	})

	Convey("Given an unknown date", t, func() {
		d := model.ParseDate("x")

		Convey("Then AddDays leaves it unknown", func() {
			So(d.AddDays(3).IsUnknown(), ShouldBeTrue)
		})
	})
}

func window(start, end string) model.Window {
	return model.Window{Start: model.ParseDate(start), End: model.ParseDate(end)}
}

func TestWindowOverlaps(t *testing.T) {
	Convey("Given mission windows", t, func() {
		Convey("When they share a day", func() {
			overlap, ok := window("2024-01-10", "2024-01-12").Overlaps(window("2024-01-12", "2024-01-15"))

			Convey("Then they overlap inclusively", func() {
				So(ok, ShouldBeTrue)
				So(overlap, ShouldBeTrue)
			})
		})

		Convey("When they are adjacent", func() {
			overlap, ok := window("2024-01-10", "2024-01-12").Overlaps(window("2024-01-13", "2024-01-15"))

			Convey("Then they do not overlap", func() {
				So(ok, ShouldBeTrue)
				So(overlap, ShouldBeFalse)
			})
		})

		Convey("When an end date is missing", func() {
			single := window("2024-01-12", "")
			overlap, ok := single.Overlaps(window("2024-01-10", "2024-01-12"))

			Convey("Then the window is a single day", func() {
				So(single.EffectiveEnd().String(), ShouldEqual, "2024-01-12")
				So(ok, ShouldBeTrue)
				So(overlap, ShouldBeTrue)
			})
		})

		Convey("When a date is unknown", func() {
			overlap, ok := window("TBD", "2024-01-12").Overlaps(window("2024-01-10", "2024-01-12"))

			Convey("Then overlap is undeterminable", func() {
				So(ok, ShouldBeFalse)
				So(overlap, ShouldBeFalse)
			})
		})

		Convey("When a start date is missing", func() {
			_, ok := window("", "").Overlaps(window("2024-01-10", "2024-01-12"))

			Convey("Then overlap is undeterminable", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestWindowIntersect(t *testing.T) {
	Convey("Given two overlapping windows", t, func() {
		got := window("2024-01-10", "2024-01-12").Intersect(window("2024-01-11", "2024-01-15"))

		Convey("Then the intersection spans the shared days", func() {
			So(got.Start.String(), ShouldEqual, "2024-01-11")
			So(got.End.String(), ShouldEqual, "2024-01-12")
		})
	})
}
