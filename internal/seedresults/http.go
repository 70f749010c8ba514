package seedresults

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitResults posts results concurrently through a worker pool.
func submitResults(ctx context.Context, config *Config, results []RawResult, stats *Stats) error {
	logger.Get().Info(ctx, "submitting results",
		logger.Int("count", len(results)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/results"

	var (
		accepted  int64
		duplicate int64
		failed    int64
		submitted int64
	)

	bar := progressbar.Default(int64(len(results)))

	resultChan := make(chan RawResult, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for r := range resultChan {
				select {
				case <-ctx.Done():
					return
				default:
					outcome := submitSingleResult(ctx, client, url, r)

					atomic.AddInt64(&submitted, 1)
					switch outcome {
					case "accepted":
						atomic.AddInt64(&accepted, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}
					_ = bar.Add(1)
				}
			}
		}()
	}

	go func() {
		defer close(resultChan)
		for _, r := range results {
			select {
			case <-ctx.Done():
				return
			case resultChan <- r:
			}
		}
	}()

	wg.Wait()
	_ = bar.Finish()

	stats.ResultsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ResultsAccepted = int(atomic.LoadInt64(&accepted))
	stats.ResultsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.ResultsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "submission completed",
		logger.Int("accepted", stats.ResultsAccepted),
		logger.Int("duplicate", stats.ResultsDuplicate),
		logger.Int("failed", stats.ResultsFailed),
	)
	return nil
}

// submitSingleResult posts one result and classifies the outcome.
func submitSingleResult(ctx context.Context, client *HTTPClient, url string, r RawResult) string {
	resp, err := client.Post(ctx, url, r)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	if resp.StatusCode != http.StatusAccepted {
		return "failed"
	}
	var ack AckResponse
	if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
		return "duplicate"
	}
	return "accepted"
}
