package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/seedresults"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/logger"
)

// Default configuration constants.
const (
	defaultSeasons     = 2
	defaultMeetsPer    = 8
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultSeedTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		seasons    = flag.Int("seasons", defaultSeasons, "Number of seasons to simulate")
		meets      = flag.Int("meets", defaultMeetsPer, "Meets per season")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated results (optional)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	config := &seedresults.Config{
		BaseURL:    *baseURL,
		Seasons:    *seasons,
		MeetsPer:   *meets,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}

	if err := seedresults.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
