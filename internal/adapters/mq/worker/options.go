package worker

import "github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/logger"

// Option applies a configuration option to the NormalizingWorker.
type Option func(*NormalizingWorker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *NormalizingWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(w *NormalizingWorker) {
		if l != nil {
			w.logger = l
		}
	}
}
