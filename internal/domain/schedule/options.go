// Package schedule builds a full week of duty assignments.
package schedule

import (
	"math/rand"

	"github.com/okian/rota/internal/domain/assign"
	"github.com/okian/rota/pkg/logger"
)

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithRand sets the shuffler used for every day. Tests pass a seeded
// *rand.Rand to get reproducible weeks.
func WithRand(rng assign.Shuffler) Option {
	return func(s *Scheduler) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed seeds a private rand source. A zero seed keeps the default.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // scheduling fairness, not security
		}
	}
}

// WithLogger sets the logger used for per-day debug output.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}
