package queue

import "errors"

// ErrClosed marks operations against a closed queue.
var ErrClosed = errors.New("queue closed")
