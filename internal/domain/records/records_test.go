package records_test

import (
	"testing"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/records"
	. "github.com/smartystreets/goconvey/convey"
)

func swim(id, label string, date string, seconds float64) model.Result {
	d, _ := time.Parse("2006-01-02", date)
	return model.Result{
		ResultID:    id,
		EventLabel:  label,
		Date:        d,
		TimeSeconds: &seconds,
	}
}

func noTime(id, label string, date string) model.Result {
	d, _ := time.Parse("2006-01-02", date)
	return model.Result{
		ResultID:   id,
		EventLabel: label,
		Date:       d,
	}
}

func TestPersonalRecords(t *testing.T) {
	Convey("Given a result history", t, func() {
		history := []model.Result{
			swim("r1", "50 FR SCY", "2025-03-14", 36.33),
			swim("r2", "50 FR SCY", "2025-05-02", 35.81),
			swim("r3", "50 FR SCY", "2025-07-11", 35.15),
			noTime("r4", "50 FR SCY", "2025-08-01"),
			swim("r5", "100 IM SCY", "2025-06-20", 88.40),
		}

		Convey("When reducing to personal records", func() {
			prs := records.PersonalRecords(history)

			Convey("Then each event keeps its fastest valid swim", func() {
				So(prs, ShouldHaveLength, 2)
				So(prs["50 FR SCY"].TimeSeconds, ShouldAlmostEqual, 35.15, 0.0001)
				So(prs["50 FR SCY"].Date.Format("2006-01-02"), ShouldEqual, "2025-07-11")
				So(prs["100 IM SCY"].TimeSeconds, ShouldAlmostEqual, 88.40, 0.0001)
			})
		})

		Convey("When two swims tie for fastest", func() {
			tied := []model.Result{
				swim("r1", "50 BK SCY", "2025-06-15", 40.00),
				swim("r2", "50 BK SCY", "2025-04-10", 40.00),
			}
			prs := records.PersonalRecords(tied)

			Convey("Then the earlier swim holds the record", func() {
				So(prs["50 BK SCY"].Date.Format("2006-01-02"), ShouldEqual, "2025-04-10")
			})
		})

		Convey("When an event only has no-time swims", func() {
			prs := records.PersonalRecords([]model.Result{
				noTime("r1", "50 FL SCY", "2025-03-01"),
				noTime("r2", "50 FL SCY", "2025-04-01"),
			})

			Convey("Then it is absent from the record table", func() {
				So(prs, ShouldBeEmpty)
			})
		})

		Convey("When events differ only by course suffix", func() {
			prs := records.PersonalRecords([]model.Result{
				swim("r1", "100 FR SCY", "2025-03-01", 75.00),
				swim("r2", "100 FR LCM", "2025-03-15", 85.00),
			})

			Convey("Then they stay separate records", func() {
				So(prs, ShouldHaveLength, 2)
			})
		})
	})
}

func TestImprovements(t *testing.T) {
	Convey("Given a result history", t, func() {
		Convey("When an event improved over the season", func() {
			improvements := records.Improvements([]model.Result{
				swim("r3", "50 FR SCY", "2025-07-11", 35.15),
				swim("r1", "50 FR SCY", "2025-03-14", 36.33),
				swim("r2", "50 FR SCY", "2025-05-02", 35.81),
			})

			Convey("Then the delta compares first against last by date", func() {
				imp := improvements["50 FR SCY"]
				So(imp.FirstSeconds, ShouldAlmostEqual, 36.33, 0.0001)
				So(imp.LastSeconds, ShouldAlmostEqual, 35.15, 0.0001)
				So(imp.Seconds, ShouldAlmostEqual, 1.18, 0.0001)
				So(imp.Percent, ShouldAlmostEqual, 1.18/36.33*100, 0.0001)
				So(imp.Count, ShouldEqual, 3)
			})
		})

		Convey("When an event regressed", func() {
			improvements := records.Improvements([]model.Result{
				swim("r1", "50 BR SCY", "2025-03-14", 45.00),
				swim("r2", "50 BR SCY", "2025-06-14", 46.20),
			})

			Convey("Then the negative delta is reported as-is", func() {
				So(improvements["50 BR SCY"].Seconds, ShouldAlmostEqual, -1.20, 0.0001)
			})
		})

		Convey("When an event has a single valid swim", func() {
			improvements := records.Improvements([]model.Result{
				swim("r1", "200 FR SCY", "2025-03-14", 165.00),
				noTime("r2", "200 FR SCY", "2025-05-14"),
			})

			Convey("Then it is omitted entirely", func() {
				So(improvements, ShouldBeEmpty)
			})
		})
	})
}

func TestValidByEvent(t *testing.T) {
	Convey("Given a mixed history", t, func() {
		history := []model.Result{
			swim("r2", "50 FR SCY", "2025-05-02", 35.81),
			noTime("r4", "50 FR SCY", "2025-04-01"),
			swim("r1", "50 FR SCY", "2025-03-14", 36.33),
			swim("r5", "100 IM SCY", "2025-06-20", 88.40),
		}

		Convey("When selecting one event's valid swims", func() {
			selected := records.ValidByEvent(history, "50 FR SCY")

			Convey("Then only timed swims remain, date ascending", func() {
				So(selected, ShouldHaveLength, 2)
				So(selected[0].ResultID, ShouldEqual, "r1")
				So(selected[1].ResultID, ShouldEqual, "r2")
			})
		})
	})
}
