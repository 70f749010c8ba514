// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/adapters/http/api"
	resultqueue "github.com/yvh1223/vihaan-swim-tracker-sub000/internal/adapters/mq/queue"
	workerpool "github.com/yvh1223/vihaan-swim-tracker-sub000/internal/adapters/mq/worker"
	repository "github.com/yvh1223/vihaan-swim-tracker-sub000/internal/adapters/repository"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/records"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/standards"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/swimtime"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/trend"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/logger"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/metrics"
)

// Service implements the API dependencies for the swim tracker engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	resultQueue resultqueue.Queue
	workerPool  *workerpool.Pool
	table       *standards.Table

	// Configuration
	workerCount   int
	queueSize     int
	standardsPath string
	birthDate     time.Time
	trendOpts     trend.Options

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of normalization workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithStandardsPath sets the path of the time-standards YAML file,
// loaded on Start.
func WithStandardsPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.standardsPath = path
		}
	}
}

// WithStandardsTable injects a pre-loaded standards table, bypassing the
// file load on Start.
func WithStandardsTable(t *standards.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithBirthDate sets the swimmer's birth date used for age-group math.
func WithBirthDate(d time.Time) Option {
	return func(s *Service) {
		if !d.IsZero() {
			s.birthDate = d
		}
	}
}

// WithTrendOptions sets the forecast tuning knobs.
func WithTrendOptions(opts trend.Options) Option {
	return func(s *Service) {
		s.trendOpts = opts
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10000,
		standardsPath: "standards.yaml",
		trendOpts: trend.Options{
			FloorRatio:    trend.DefaultFloorRatio,
			FallbackCount: trend.DefaultFallbackCount,
		},
		stopCh: make(chan struct{}),
		logger: nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting swim tracker service...")

	s.store = repository.NewMemStore(ctx,
		repository.WithCapacityHint(s.queueSize),
	)
	s.resultQueue = resultqueue.NewInMemoryQueue(
		resultqueue.WithCapacity(s.queueSize),
		resultqueue.WithBufferSize(s.queueSize),
	)

	if s.table == nil {
		table, err := standards.Load(s.standardsPath)
		if err != nil {
			return err
		}
		s.table = table
		s.logger.Info(ctx, "loaded time standards",
			logger.String("path", s.standardsPath),
		)
	}

	s.workerPool = workerpool.NewPool(s.workerCount, s.resultQueue, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "swim tracker service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping swim tracker service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if q, ok := s.resultQueue.(*resultqueue.InMemoryQueue); ok && !q.IsClosed() {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "swim tracker service stopped")
}

// HasResult reports whether a result id was already ingested.
func (s *Service) HasResult(ctx context.Context, resultID string) bool {
	return s.store.Has(ctx, resultID)
}

// Enqueue submits a raw result for asynchronous normalization. Returns
// false when the queue refuses it (backpressure or shutdown).
func (s *Service) Enqueue(ctx context.Context, r model.RawResult) bool {
	ok := s.resultQueue.Enqueue(ctx, r)
	if !ok {
		s.logger.Warn(ctx, "ingest queue refused result",
			logger.String("resultID", r.ResultID),
			logger.Int("queueLen", s.resultQueue.Len(ctx)),
		)
	}
	return ok
}

// Results returns the normalized history, optionally filtered to one
// event label. Results come back in stable chronological order.
func (s *Service) Results(ctx context.Context, eventLabel string) ([]model.Result, error) {
	if eventLabel == "" {
		return s.store.All(ctx), nil
	}
	return s.store.ByEvent(ctx, eventLabel), nil
}

// Records returns the personal-record table enriched with standards
// standings, sorted by event label.
func (s *Service) Records(ctx context.Context) ([]api.RecordEntry, error) {
	prs := records.PersonalRecords(s.store.All(ctx))

	labels := make([]string, 0, len(prs))
	for label := range prs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	entries := make([]api.RecordEntry, 0, len(labels))
	for _, label := range labels {
		pr := prs[label]
		entry := api.RecordEntry{
			PersonalRecord: pr,
			TimeText:       swimtime.Format(pr.TimeSeconds),
			AgeGroup:       standards.AgeGroupOn(s.birthDate, pr.Date),
		}
		s.grade(ctx, &entry)
		entries = append(entries, entry)
	}
	return entries, nil
}

// grade fills in the standards columns of a record entry. A record whose
// event has no tier table is marked unavailable instead of failing the
// whole table.
func (s *Service) grade(ctx context.Context, entry *api.RecordEntry) {
	tier, err := s.table.Classify(entry.EventLabel, entry.AgeGroup, entry.TimeSeconds)
	if err != nil {
		entry.StandardUnavailable = true
		metrics.RecordUnknownStandard()
		s.logger.Debug(ctx, "no tier table for record",
			logger.String("event", entry.EventLabel),
			logger.String("ageGroup", entry.AgeGroup),
		)
		return
	}
	entry.Standard = tier
	metrics.RecordClassification(string(tier))

	target, err := s.table.NextTarget(entry.EventLabel, entry.AgeGroup, entry.TimeSeconds)
	if err == nil {
		entry.NextTarget = target
	}
}

// Improvements compares first and last valid swims per event, sorted by
// event label. Events with fewer than two valid swims are omitted.
func (s *Service) Improvements(ctx context.Context) ([]model.Improvement, error) {
	byEvent := records.Improvements(s.store.All(ctx))

	labels := make([]string, 0, len(byEvent))
	for label := range byEvent {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]model.Improvement, 0, len(labels))
	for _, label := range labels {
		out = append(out, byEvent[label])
	}
	return out, nil
}

// Forecast projects the event's trend to the target date. A nil forecast
// with nil error means the event has too little history to fit.
func (s *Service) Forecast(ctx context.Context, eventLabel string, target time.Time) (*model.Forecast, error) {
	f := trend.Forecast(s.store.All(ctx), eventLabel, target, s.trendOpts)
	if f == nil {
		metrics.RecordForecastInsufficient()
		s.logger.Debug(ctx, "insufficient history for forecast",
			logger.String("event", eventLabel),
		)
		return nil, nil
	}
	metrics.RecordForecast(f.Confidence)
	return f, nil
}

// Classify grades an ad hoc time against the standards in effect on the
// given date.
func (s *Service) Classify(ctx context.Context, eventLabel string, seconds float64, onDate time.Time) (api.Classification, error) {
	ageGroup := standards.AgeGroupOn(s.birthDate, onDate)

	tier, err := s.table.Classify(eventLabel, ageGroup, seconds)
	if err != nil {
		metrics.RecordUnknownStandard()
		return api.Classification{}, err
	}
	metrics.RecordClassification(string(tier))

	classification := api.Classification{
		EventLabel:  eventLabel,
		AgeGroup:    ageGroup,
		TimeSeconds: seconds,
		Standard:    tier,
	}
	if target, err := s.table.NextTarget(eventLabel, ageGroup, seconds); err == nil {
		classification.NextTarget = target
	}
	return classification, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		queueLen := s.resultQueue.Len(ctx)
		totalResults := s.store.Count(ctx)
		totalEvents := len(s.store.Events(ctx))

		stats["queueLength"] = queueLen
		stats["totalResults"] = totalResults
		stats["totalEvents"] = totalEvents

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreResults(totalResults)
		metrics.UpdateStoreEvents(totalEvents)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
