package queue

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity sets the maximum number of buffered raw results.
func WithCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.bufferSize = n
		}
	}
}
