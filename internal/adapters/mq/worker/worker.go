// Package worker defines the workers that normalize raw results off the
// ingest queue and write them to the store.
//
// Normalization is where the per-record error policy lives: a malformed
// time is logged, counted, and skipped so one bad row from the scraper
// never takes the rest of the batch with it.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/adapters/mq/queue"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/event"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/swimtime"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/logger"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// RawResult abstracts what workers read off the queue.
type RawResult = model.RawResult

// Upserter writes a normalized result into the store.
type Upserter interface {
	Upsert(ctx context.Context, r model.Result) (bool, error)
}

// Queue defines how workers receive raw results.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.RawResult
}

// Worker normalizes raw results and writes them using the provided
// interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// NormalizingWorker implements Worker for raw result processing.
type NormalizingWorker struct {
	queue    Queue
	upserter Upserter
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewNormalizingWorker creates a new worker with configuration options.
func NewNormalizingWorker(q Queue, upserter Upserter, opts ...Option) *NormalizingWorker {
	w := &NormalizingWorker{
		queue:    q,
		upserter: upserter,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *NormalizingWorker) Run(ctx context.Context) {
	defer close(w.done)

	resultChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case raw, ok := <-resultChan:
			if !ok {
				return
			}
			if err := w.process(ctx, raw); err != nil {
				// Skip the record and keep draining; the error was
				// already counted per its kind.
				w.logger.Warn(ctx, "skipping raw result",
					logger.String("resultID", raw.ResultID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *NormalizingWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process normalizes and stores a single raw result.
func (w *NormalizingWorker) process(ctx context.Context, raw queue.RawResult) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	seconds, hasTime, err := swimtime.Parse(raw.Time)
	if err != nil {
		metrics.RecordParseFailure()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "parse_error")
		metrics.RecordErrorByType("parse_error", "medium")
		return fmt.Errorf("result %s: %w", raw.ResultID, err)
	}

	// The descriptor is derived downstream on demand; parsing here only
	// surfaces degraded labels in the metrics while they are fresh.
	if d := event.Parse(raw.EventLabel); d.Stroke == event.UnknownStroke {
		metrics.RecordDegradedLabel()
		w.logger.Debug(ctx, "event label has no recognized stroke",
			logger.String("eventLabel", raw.EventLabel),
		)
	}

	result := model.Result{
		ResultID:   raw.ResultID,
		EventLabel: raw.EventLabel,
		Date:       raw.Date,
		Meet:       raw.Meet,
		Points:     raw.Points,
		Age:        raw.Age,
	}
	if hasTime {
		result.TimeSeconds = &seconds
	} else {
		metrics.RecordNoTimeResult()
	}

	created, err := w.upserter.Upsert(ctx, result)
	if err != nil {
		metrics.RecordStoreError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		metrics.RecordErrorByType("store_error", "high")
		return fmt.Errorf("store result %s: %w", raw.ResultID, err)
	}

	if created {
		metrics.RecordResultIngested()
	} else {
		metrics.RecordResultReingested()
	}
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers  []*NormalizingWorker
	queue    Queue
	upserter Upserter

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, upserter Upserter) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*NormalizingWorker, workerCount),
		queue:    q,
		upserter: upserter,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewNormalizingWorker(
			q,
			upserter,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)
	for _, w := range p.workers {
		ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
		_ = w.Shutdown(ctx)
		cancel()
	}
}

// Shutdown closes the queue and waits for the workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil && !errors.Is(err, queue.ErrClosed) {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
