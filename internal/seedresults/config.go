package seedresults

import "time"

// Config holds configuration for the seeding run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Seasons    int           // Number of seasons to simulate
	MeetsPer   int           // Meets per season
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated results
	Verbose    bool          // Enable verbose logging
}

// RawResult mirrors the JSON schema of POST /results.
type RawResult struct {
	ResultID   string `json:"result_id"`
	EventLabel string `json:"event_label"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Meet       string `json:"meet"`
	Points     int    `json:"points"`
	Age        int    `json:"age"`
}

// AckResponse represents the response from result submission.
type AckResponse struct {
	Status    string `json:"status"`
	ResultID  string `json:"result_id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds seeding statistics.
type Stats struct {
	ResultsGenerated int
	ResultsSubmitted int
	ResultsAccepted  int
	ResultsDuplicate int
	ResultsFailed    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
