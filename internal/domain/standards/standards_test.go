package standards_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/standards"
	. "github.com/smartystreets/goconvey/convey"
)

const tableYAML = `
age_groups:
  "10U":
    "50 FR SCY":
      AAAA: "29.99"
      AAA: "31.79"
      AA: "33.59"
      A: "35.39"
      BB: "38.99"
      B: "42.69"
    "100 FR SCY":
      AAAA: "1:05.99"
      AAA: "1:09.99"
      BB: "1:25.99"
      B: "1:33.99"
  "11-12":
    "50 FR SCY":
      AAAA: "25.99"
      AAA: "27.59"
      AA: "29.09"
      A: "30.69"
      BB: "33.79"
      B: "36.89"
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standards.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassify(t *testing.T) {
	Convey("Given a loaded standards table", t, func() {
		table, err := standards.Load(writeTable(t, tableYAML))
		So(err, ShouldBeNil)

		Convey("When a time beats the fastest threshold", func() {
			tier, err := table.Classify("50 FR SCY", "10U", 29.50)

			So(err, ShouldBeNil)
			So(tier, ShouldEqual, standards.TierAAAA)
		})

		Convey("When a time lands exactly on a threshold", func() {
			tier, err := table.Classify("50 FR SCY", "10U", 33.59)

			Convey("Then the tie earns the tier", func() {
				So(err, ShouldBeNil)
				So(tier, ShouldEqual, standards.TierAA)
			})
		})

		Convey("When a time sits between two thresholds", func() {
			tier, err := table.Classify("50 FR SCY", "10U", 36.00)

			So(err, ShouldBeNil)
			So(tier, ShouldEqual, standards.TierBB)
		})

		Convey("When a time is slower than every threshold", func() {
			tier, err := table.Classify("50 FR SCY", "10U", 55.00)

			So(err, ShouldBeNil)
			So(tier, ShouldEqual, standards.TierBelowLowest)
		})

		Convey("When an event has sparse tier coverage", func() {
			tier, err := table.Classify("100 FR SCY", "10U", 72.00)

			Convey("Then missing tiers are skipped, not misclassified", func() {
				So(err, ShouldBeNil)
				So(tier, ShouldEqual, standards.TierBB)
			})
		})

		Convey("When the age group has no direct entry", func() {
			tier, err := table.Classify("50 FR SCY", "9-10", 33.00)

			Convey("Then the combined 10-and-under band covers it", func() {
				So(err, ShouldBeNil)
				So(tier, ShouldEqual, standards.TierAA)
			})
		})

		Convey("When no table entry exists for the pair", func() {
			_, err := table.Classify("400 IM SCY", "10U", 300.00)

			So(errors.Is(err, standards.ErrUnknownStandard), ShouldBeTrue)
		})
	})
}

func TestNextTarget(t *testing.T) {
	Convey("Given a loaded standards table", t, func() {
		table, err := standards.Load(writeTable(t, tableYAML))
		So(err, ShouldBeNil)

		Convey("When the swim sits mid-table", func() {
			target, err := table.NextTarget("50 FR SCY", "10U", 36.00)

			Convey("Then the next faster tier is the goal", func() {
				So(err, ShouldBeNil)
				So(target, ShouldNotBeNil)
				So(target.Tier, ShouldEqual, standards.TierA)
				So(target.ThresholdSeconds, ShouldAlmostEqual, 35.39, 0.0001)
				So(target.GapSeconds, ShouldAlmostEqual, 0.61, 0.0001)
			})
		})

		Convey("When the swim is slower than every threshold", func() {
			target, err := table.NextTarget("50 FR SCY", "10U", 55.00)

			Convey("Then the slowest tier is the goal", func() {
				So(err, ShouldBeNil)
				So(target, ShouldNotBeNil)
				So(target.Tier, ShouldEqual, standards.TierB)
			})
		})

		Convey("When the swim already sits at the fastest tier", func() {
			target, err := table.NextTarget("50 FR SCY", "10U", 29.50)

			So(err, ShouldBeNil)
			So(target, ShouldBeNil)
		})

		Convey("When no table entry exists for the pair", func() {
			_, err := table.NextTarget("400 IM SCY", "10U", 300.00)

			So(errors.Is(err, standards.ErrUnknownStandard), ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given standards table artifacts", t, func() {
		Convey("When the artifact is valid", func() {
			table, err := standards.Load(writeTable(t, tableYAML))

			So(err, ShouldBeNil)
			So(table.Events("11-12"), ShouldContain, "50 FR SCY")
		})

		Convey("When the file does not exist", func() {
			_, err := standards.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			So(errors.Is(err, standards.ErrLoadTable), ShouldBeTrue)
		})

		Convey("When a tier name is unknown", func() {
			_, err := standards.Load(writeTable(t, `
age_groups:
  "10U":
    "50 FR SCY":
      AAAAA: "28.99"
`))

			So(errors.Is(err, standards.ErrInvalidTable), ShouldBeTrue)
		})

		Convey("When a threshold is not a valid time", func() {
			_, err := standards.Load(writeTable(t, `
age_groups:
  "10U":
    "50 FR SCY":
      AAAA: "fast"
`))

			So(errors.Is(err, standards.ErrInvalidTable), ShouldBeTrue)
		})

		Convey("When thresholds do not increase toward slower tiers", func() {
			_, err := standards.Load(writeTable(t, `
age_groups:
  "10U":
    "50 FR SCY":
      AAAA: "31.99"
      AAA: "30.99"
`))

			So(errors.Is(err, standards.ErrInvalidTable), ShouldBeTrue)
		})

		Convey("When the artifact has no age groups", func() {
			_, err := standards.Load(writeTable(t, "age_groups: {}\n"))

			So(errors.Is(err, standards.ErrLoadTable), ShouldBeTrue)
		})
	})
}
