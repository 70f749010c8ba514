package swimtime_test

import (
	"errors"
	"testing"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/swimtime"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given textual race times", t, func() {
		Convey("When parsing a seconds-only time", func() {
			seconds, ok, err := swimtime.Parse("35.15")

			Convey("Then it converts to canonical seconds", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(seconds, ShouldAlmostEqual, 35.15, 0.0001)
			})
		})

		Convey("When parsing a minute-qualified time", func() {
			seconds, ok, err := swimtime.Parse("1:23.39")

			Convey("Then minutes fold into the seconds value", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(seconds, ShouldAlmostEqual, 83.39, 0.0001)
			})
		})

		Convey("When parsing a multi-minute time", func() {
			seconds, ok, err := swimtime.Parse("61:01.05")

			Convey("Then any minute count is accepted", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(seconds, ShouldAlmostEqual, 3661.05, 0.0001)
			})
		})

		Convey("When parsing no-time sentinels", func() {
			for _, text := range []string{"DQ", "dq", "Pending", "NS", "  ns  ", ""} {
				seconds, ok, err := swimtime.Parse(text)

				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				So(seconds, ShouldEqual, 0)
			}
		})

		Convey("When parsing malformed input", func() {
			for _, text := range []string{
				"abc",
				"1:60.00", // seconds component must stay below a minute
				"1:-5.00",
				"-10.00", // non-positive times are corrupt data
				"0",
				"1:2:3.00",
			} {
				_, ok, err := swimtime.Parse(text)

				So(ok, ShouldBeFalse)
				So(errors.Is(err, swimtime.ErrMalformedTime), ShouldBeTrue)
			}
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given canonical seconds", t, func() {
		Convey("When formatting sub-minute times", func() {
			So(swimtime.Format(35.15), ShouldEqual, "35.15")
			So(swimtime.Format(9.5), ShouldEqual, "9.50")
		})

		Convey("When formatting minute-and-above times", func() {
			So(swimtime.Format(60.0), ShouldEqual, "1:00.00")
			So(swimtime.Format(83.39), ShouldEqual, "1:23.39")
			So(swimtime.Format(3661.05), ShouldEqual, "61:01.05")
		})

		Convey("When the value rounds up to a whole minute", func() {
			Convey("Then the seconds field never reaches 60", func() {
				So(swimtime.Format(119.999), ShouldEqual, "2:00.00")
			})
		})

		Convey("When round-tripping through Parse", func() {
			for _, text := range []string{"35.15", "1:04.29", "1:00.00", "12:34.56"} {
				seconds, ok, err := swimtime.Parse(text)

				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(swimtime.Format(seconds), ShouldEqual, text)
			}
		})
	})
}
