// Package queue defines the contract for buffering raw results between
// the ingest API and the normalization workers.
//
// Implementations may use channels or more advanced structures; the
// in-memory bounded queue is enough for a single swimmer's history.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity   = 10000
	defaultBufferSize = 10000
)

// RawResult is the payload type flowing through the queue.
type RawResult = model.RawResult

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a raw result to the queue.
	// Returns false if the queue is full and the result was not enqueued.
	Enqueue(ctx context.Context, r RawResult) bool

	// Dequeue returns a channel that receives raw results as they become
	// available. The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan RawResult

	// Len returns the current number of queued results.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue. After closing, no new
	// results can be enqueued and the dequeue channel closes.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	results    chan RawResult
	capacity   int
	bufferSize int
	mu         sync.RWMutex
	closed     bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultCapacity,
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(q)
	}

	q.results = make(chan RawResult, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)
	return q
}

// Enqueue adds a raw result to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r RawResult) bool {
	start := time.Now()
	defer func() {
		metrics.RecordQueueProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}
	if len(q.results) >= q.capacity {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "capacity_exceeded")
		return false
	}

	select {
	case q.results <- r:
		metrics.RecordQueueEnqueue()
		q.publishSize()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that receives raw results as they become
// available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan RawResult {
	out := make(chan RawResult)
	go func() {
		defer close(out)
		for r := range q.results {
			select {
			case out <- r:
				metrics.RecordQueueDequeue()
				q.publishSize()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued results.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.results)
	q.publishSize()
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.results)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) publishSize() {
	size := len(q.results)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
