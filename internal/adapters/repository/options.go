package repository

import "github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacityHint presizes the id index for an expected history size.
func WithCapacityHint(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.byID = make(map[string]model.Result, n)
		}
	}
}
