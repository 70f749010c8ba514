// Package trend fits a linear model over an event's recent swims and
// projects a time at a target date.
//
// The fit prefers swims from the current season; when the season window
// holds fewer than two points it falls back to the last few results, and
// with fewer than two points overall there is no forecast at all — an
// expected outcome for rarely-swum events, not an error.
package trend

import (
	"math"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/records"
)

// Defaults for the forecast options.
const (
	// DefaultFloorRatio bounds a prediction to 85% of the current best:
	// the model must not promise a physiologically implausible drop.
	DefaultFloorRatio = 0.85

	// DefaultFallbackCount is how many trailing results to fit when the
	// season window is too thin.
	DefaultFallbackCount = 3

	// minFitPoints is the least number of samples a line can be fit to.
	minFitPoints = 2

	// highConfidencePoints is the sample count from which the coarse
	// confidence label reads "high".
	highConfidencePoints = 3

	hoursPerDay = 24
)

// Options tunes the forecast. The zero value selects the defaults; a zero
// SeasonStart disables the season window and goes straight to the
// trailing-count fallback.
type Options struct {
	SeasonStart   time.Time
	FloorRatio    float64
	FallbackCount int
}

func (o Options) floorRatio() float64 {
	if o.FloorRatio > 0 {
		return o.FloorRatio
	}
	return DefaultFloorRatio
}

func (o Options) fallbackCount() int {
	if o.FallbackCount >= minFitPoints {
		return o.FallbackCount
	}
	return DefaultFallbackCount
}

// Forecast projects a time for one event at the target date. It returns
// nil when fewer than two valid swims are available to fit.
func Forecast(results []model.Result, eventLabel string, target time.Time, opts Options) *model.Forecast {
	valid := records.ValidByEvent(results, eventLabel)
	fitted := selectWindow(valid, opts)
	if len(fitted) < minFitPoints {
		return nil
	}

	// Encode dates as days since the first fitted swim; timestamps at
	// nanosecond scale make the normal equations ill-conditioned.
	origin := fitted[0].Date
	xs := make([]float64, len(fitted))
	ys := make([]float64, len(fitted))
	for i, r := range fitted {
		xs[i] = daysSince(origin, r.Date)
		ys[i] = r.Seconds()
	}
	slope, intercept := linearFit(xs, ys)

	predicted := slope*daysSince(origin, target) + intercept

	best := math.Inf(1)
	for _, r := range valid {
		if r.Seconds() < best {
			best = r.Seconds()
		}
	}
	floor := opts.floorRatio() * best
	clamped := predicted < floor
	if clamped {
		predicted = floor
	}

	confidence := model.ConfidenceMedium
	if len(fitted) >= highConfidencePoints {
		confidence = model.ConfidenceHigh
	}

	return &model.Forecast{
		EventLabel:       eventLabel,
		TargetDate:       target,
		PredictedSeconds: predicted,
		Slope:            slope,
		Intercept:        intercept,
		Points:           len(fitted),
		Confidence:       confidence,
		Clamped:          clamped,
	}
}

// selectWindow applies the recency preference: season swims when at least
// two exist, otherwise the trailing fallbackCount swims.
func selectWindow(valid []model.Result, opts Options) []model.Result {
	if !opts.SeasonStart.IsZero() {
		var season []model.Result
		for _, r := range valid {
			if !r.Date.Before(opts.SeasonStart) {
				season = append(season, r)
			}
		}
		if len(season) >= minFitPoints {
			return season
		}
	}
	n := opts.fallbackCount()
	if len(valid) > n {
		return valid[len(valid)-n:]
	}
	return valid
}

// linearFit computes ordinary least-squares slope and intercept for
// y = slope*x + intercept. With a degenerate x spread (all swims on one
// day) the fit degrades to a flat line at the mean.
func linearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if math.Abs(denom) < 1e-10 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func daysSince(origin, t time.Time) float64 {
	return t.Sub(origin).Hours() / hoursPerDay
}
