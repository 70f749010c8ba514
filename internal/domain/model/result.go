// Package model contains domain records passed between layers.
package model

import "time"

// RawResult represents a swim result as submitted by clients, before
// normalization. Fields mirror the JSON schema for /results.
type RawResult struct {
	ResultID   string    // unique id for idempotent re-ingest
	EventLabel string    // raw event label, e.g. "100 FR SCY"
	Date       time.Time // calendar date of the swim
	Time       string    // "35.15", "1:04.29", or a no-time sentinel (DQ/Pending/NS)
	Meet       string    // meet name, pass-through metadata
	Points     int       // power points, pass-through metadata
	Age        int       // swimmer age at the meet, pass-through metadata
}

// Result is one recorded competition swim after time normalization.
type Result struct {
	ResultID   string
	EventLabel string
	Date       time.Time
	// TimeSeconds is nil exactly when the swim produced no valid finish
	// (DQ, Pending, NS). Zero and negative values never occur.
	TimeSeconds *float64
	Meet        string
	Points      int
	Age         int
}

// HasTime reports whether the swim produced a countable finish time.
func (r Result) HasTime() bool {
	return r.TimeSeconds != nil
}

// Seconds returns the finish time, or 0 for no-time swims. Callers must
// check HasTime first when the distinction matters.
func (r Result) Seconds() float64 {
	if r.TimeSeconds == nil {
		return 0
	}
	return *r.TimeSeconds
}

// PersonalRecord is the fastest valid swim for one event label. It is a
// view recomputed from the full result history, never persisted.
type PersonalRecord struct {
	EventLabel  string    `json:"event_label"`
	TimeSeconds float64   `json:"time_seconds"`
	Date        time.Time `json:"date"` // date the record was set
	Meet        string    `json:"meet,omitempty"`
}

// Improvement compares the chronologically first and last valid swims of
// an event. Seconds is first minus last: positive means getting faster,
// negative means regression and is reported as-is.
type Improvement struct {
	EventLabel   string  `json:"event_label"`
	FirstSeconds float64 `json:"first_seconds"`
	LastSeconds  float64 `json:"last_seconds"`
	Seconds      float64 `json:"seconds"`
	Percent      float64 `json:"percent"`
	Count        int     `json:"count"` // valid swims considered, always >= 2
}

// Forecast is a linear trend fitted over recent swims of one event and
// projected to a target date.
type Forecast struct {
	EventLabel       string    `json:"event_label"`
	TargetDate       time.Time `json:"target_date"`
	PredictedSeconds float64   `json:"predicted_seconds"`
	Slope            float64   `json:"slope"`      // seconds gained or lost per day
	Intercept        float64   `json:"intercept"`  // fitted seconds at the first sample
	Points           int       `json:"points"`     // samples contributing to the fit
	Confidence       string    `json:"confidence"` // "high" | "medium", informational only
	Clamped          bool      `json:"clamped"`    // true when the plausibility floor kicked in
}

// Forecast confidence labels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)
