// Package records reduces a result history to personal records and
// first-versus-latest improvement summaries.
//
// Both reductions are pure functions over the supplied slice: no-time
// swims (DQ, Pending, NS) are filtered out first, and events group by
// exact label match. "100 FR SCY" and "100 FR" are distinct events by
// design; course conversion is a different problem and fuzzy merging
// would hide it.
package records

import (
	"sort"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
)

// minSwimsForImprovement guards against improvement claims from a single
// data point.
const minSwimsForImprovement = 2

// percentScale converts a ratio to percent.
const percentScale = 100

// PersonalRecords returns the best valid swim per event label. Best is the
// minimum time; ties break to the earliest date. Events with no valid
// swims are absent from the map.
func PersonalRecords(results []model.Result) map[string]model.PersonalRecord {
	records := make(map[string]model.PersonalRecord)
	for _, grouped := range groupValidByEvent(results) {
		best := grouped[0]
		for _, r := range grouped[1:] {
			if r.Seconds() < best.Seconds() {
				best = r
				continue
			}
			if r.Seconds() == best.Seconds() && r.Date.Before(best.Date) {
				best = r
			}
		}
		records[best.EventLabel] = model.PersonalRecord{
			EventLabel:  best.EventLabel,
			TimeSeconds: best.Seconds(),
			Date:        best.Date,
			Meet:        best.Meet,
		}
	}
	return records
}

// Improvements compares the chronologically first and last valid swims per
// event. Events with fewer than two valid swims are omitted rather than
// reported as zero improvement. Regressions yield negative values and are
// never clamped.
func Improvements(results []model.Result) map[string]model.Improvement {
	improvements := make(map[string]model.Improvement)
	for label, grouped := range groupValidByEvent(results) {
		if len(grouped) < minSwimsForImprovement {
			continue
		}
		first := grouped[0].Seconds()
		last := grouped[len(grouped)-1].Seconds()
		delta := first - last
		improvements[label] = model.Improvement{
			EventLabel:   label,
			FirstSeconds: first,
			LastSeconds:  last,
			Seconds:      delta,
			Percent:      delta / first * percentScale,
			Count:        len(grouped),
		}
	}
	return improvements
}

// ValidByEvent returns the valid swims for one event label, date
// ascending. The trend predictor shares this selection.
func ValidByEvent(results []model.Result, eventLabel string) []model.Result {
	var selected []model.Result
	for _, r := range results {
		if r.EventLabel == eventLabel && r.HasTime() {
			selected = append(selected, r)
		}
	}
	sortByDate(selected)
	return selected
}

// groupValidByEvent buckets valid swims by exact event label, each bucket
// date ascending.
func groupValidByEvent(results []model.Result) map[string][]model.Result {
	grouped := make(map[string][]model.Result)
	for _, r := range results {
		if !r.HasTime() {
			continue
		}
		grouped[r.EventLabel] = append(grouped[r.EventLabel], r)
	}
	for _, bucket := range grouped {
		sortByDate(bucket)
	}
	return grouped
}

// sortByDate orders swims date ascending, stably, so same-day swims keep
// their input order.
func sortByDate(results []model.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})
}
