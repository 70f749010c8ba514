package seedresults

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/swimtime"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	sentinelDivisor    = 25 // roughly 1 in 25 swims produces no time
)

// seedEvent describes one event in the synthetic program: a plausible
// target time the swimmer converges toward over the seasons, and how far
// above it the first recorded swim starts.
type seedEvent struct {
	label       string
	goalSeconds float64
	startFactor float64 // first swim is goal * (1 + startFactor)
}

// program is a realistic age-group meet lineup. Goal times sit around
// B/BB tiers so seeded data exercises the full classification range.
var program = []seedEvent{
	{label: "50 FR SCY", goalSeconds: 33.5, startFactor: 0.14},
	{label: "100 FR SCY", goalSeconds: 75.0, startFactor: 0.16},
	{label: "50 BK SCY", goalSeconds: 40.0, startFactor: 0.13},
	{label: "50 BR SCY", goalSeconds: 45.5, startFactor: 0.15},
	{label: "50 FL SCY", goalSeconds: 37.0, startFactor: 0.17},
	{label: "100 IM SCY", goalSeconds: 85.0, startFactor: 0.15},
	{label: "200 FR SCY", goalSeconds: 165.0, startFactor: 0.12},
}

var meetNames = []string{
	"Autumn Splash Invitational",
	"Winter Championships",
	"New Year Classic",
	"Spring Distance Derby",
	"Valley Sprint Series",
	"Regional Qualifier",
	"Summer Long Course Open",
	"Last Chance Meet",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateResults builds a multi-season history where every event trends
// faster meet over meet, with jitter and the occasional DQ, so records,
// improvements, and forecasts all have something to chew on.
func generateResults(ctx context.Context, config *Config, stats *Stats) []RawResult {
	logger.Get().Info(ctx, "generating synthetic seasons",
		logger.Int("seasons", config.Seasons),
		logger.Int("meetsPerSeason", config.MeetsPer),
	)

	totalMeets := config.Seasons * config.MeetsPer
	// First meet of the first season, anchored relative to today.
	firstMeet := time.Now().UTC().AddDate(0, -totalMeets, 0)

	results := make([]RawResult, 0, totalMeets*len(program))
	for meet := 0; meet < totalMeets; meet++ {
		meetDate := firstMeet.AddDate(0, meet, 0)
		meetName := meetNames[meet%len(meetNames)]
		// progress runs 0 at the first meet to 1 at the last.
		progress := float64(meet) / float64(maxInt(totalMeets-1, 1))

		for _, ev := range program {
			// Not every event is swum at every meet.
			if getRandomFloat() < 0.25 {
				continue
			}
			results = append(results, generateSwim(ev, meetDate, meetName, progress))
		}
	}

	stats.ResultsGenerated = len(results)
	logger.Get().Info(ctx, "generated results", logger.Int("count", len(results)))
	return results
}

// generateSwim produces one swim of an event: the goal-convergent time
// with jitter, or a no-time sentinel once in a while.
func generateSwim(ev seedEvent, date time.Time, meet string, progress float64) RawResult {
	r := RawResult{
		ResultID:   uuid.NewString(),
		EventLabel: ev.label,
		Date:       date.Format("2006-01-02"),
		Meet:       meet,
		Age:        11,
	}

	n, _ := rand.Int(rand.Reader, big.NewInt(sentinelDivisor))
	if n.Int64() == 0 {
		r.Time = "DQ"
		return r
	}

	// Linear drop from goal*(1+startFactor) toward goal, plus up to 2%
	// of race-day noise in either direction.
	seconds := ev.goalSeconds * (1 + ev.startFactor*(1-progress))
	seconds *= 1 + (getRandomFloat()-0.5)*0.04

	r.Time = swimtime.Format(seconds)
	r.Points = int(600 * (1 - (seconds-ev.goalSeconds)/ev.goalSeconds*4))
	if r.Points < 0 {
		r.Points = 0
	}
	return r
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
