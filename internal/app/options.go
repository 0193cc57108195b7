package service

import (
	"time"

	repository "github.com/okian/rota/internal/adapters/repository"
	"github.com/okian/rota/internal/domain/assign"
	"github.com/okian/rota/internal/domain/schedule"
	"github.com/okian/rota/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRosterSource sets where the roster is loaded from.
func WithRosterSource(src repository.RosterSource) Option {
	return func(s *Service) {
		if src != nil {
			s.rosterSource = src
		}
	}
}

// WithHistoryStore sets where last period's participants are kept.
func WithHistoryStore(h repository.HistoryStore) Option {
	return func(s *Service) {
		if h != nil {
			s.history = h
		}
	}
}

// WithScheduleSink sets where generated weeks are written.
func WithScheduleSink(sink repository.ScheduleSink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithCleaner sets the component that prunes old schedule files.
func WithCleaner(c repository.Cleaner) Option {
	return func(s *Service) {
		if c != nil {
			s.cleaner = c
		}
	}
}

// WithSeed fixes the random source so runs are reproducible. Zero keeps the
// time-seeded default.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.schedulerOpts = append(s.schedulerOpts, schedule.WithSeed(seed))
		}
	}
}

// WithRand sets the shuffler used by the scheduler.
func WithRand(rng assign.Shuffler) Option {
	return func(s *Service) {
		if rng != nil {
			s.schedulerOpts = append(s.schedulerOpts, schedule.WithRand(rng))
		}
	}
}

// WithStartDate sets the Monday of the first generated period. The zero time
// keeps the default of the next Monday after today.
func WithStartDate(monday time.Time) Option {
	return func(s *Service) {
		s.startDate = monday
	}
}

// WithRetentionDays sets how old a schedule must be before Cleanup removes it.
func WithRetentionDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.retentionDays = days
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
