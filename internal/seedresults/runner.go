package seedresults

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// processingWait gives the service time to drain the ingest queue before
// the read-back checks run.
const processingWait = 3 * time.Second

// Run executes the complete seeding flow: health check, generation,
// submission, then a read-back of the aggregate endpoints.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting result seeding",
		logger.String("baseURL", config.BaseURL),
		logger.Int("seasons", config.Seasons),
		logger.Int("meetsPerSeason", config.MeetsPer),
		logger.Int("workers", config.Workers),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	results := generateResults(ctx, config, stats)

	if err := submitResults(ctx, config, results, stats); err != nil {
		return fmt.Errorf("result submission failed: %w", err)
	}

	logger.Get().Info(ctx, "waiting for the ingest queue to drain")
	time.Sleep(processingWait)

	if err := readBackAggregates(ctx, config); err != nil {
		logger.Get().Warn(ctx, "aggregate read-back failed", logger.Error(err))
	}

	if config.OutputFile != "" {
		if err := saveResultsToFile(ctx, config, results); err != nil {
			logger.Get().Warn(ctx, "failed to save results to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics).
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// readBackAggregates fetches the records and improvements tables after
// seeding and logs their sizes, a cheap end-to-end sanity check.
func readBackAggregates(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	var records []json.RawMessage
	if err := getJSON(ctx, client, config.BaseURL+"/records", &records); err != nil {
		return fmt.Errorf("records: %w", err)
	}

	var improvements []json.RawMessage
	if err := getJSON(ctx, client, config.BaseURL+"/improvements", &improvements); err != nil {
		return fmt.Errorf("improvements: %w", err)
	}

	logger.Get().Info(ctx, "aggregates after seeding",
		logger.Int("personalRecords", len(records)),
		logger.Int("improvedEvents", len(improvements)),
	)
	return nil
}

func getJSON(ctx context.Context, client *HTTPClient, url string, v interface{}) error {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.Unmarshal(body, v)
}

// saveResultsToFile writes the generated results as a JSON array so a
// seeding run can be replayed.
func saveResultsToFile(ctx context.Context, config *Config, results []RawResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to save")
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(config.OutputFile, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "results saved to file", logger.String("filename", config.OutputFile))
	return nil
}

// displayFinalStats prints the final seeding statistics.
func displayFinalStats(stats *Stats) {
	var resultsPerSecond float64
	if stats.Duration > 0 {
		resultsPerSecond = float64(stats.ResultsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("resultsGenerated", stats.ResultsGenerated),
		logger.Int("resultsSubmitted", stats.ResultsSubmitted),
		logger.Int("resultsAccepted", stats.ResultsAccepted),
		logger.Int("resultsDuplicate", stats.ResultsDuplicate),
		logger.Int("resultsFailed", stats.ResultsFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("resultsPerSecond", resultsPerSecond))
}
