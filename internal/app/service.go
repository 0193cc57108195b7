// Package service wires the roster, scheduler and file stores into the
// generate / history / cleanup operations used by the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	repository "github.com/okian/rota/internal/adapters/repository"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/rotation"
	"github.com/okian/rota/internal/domain/schedule"
	"github.com/okian/rota/internal/domain/types"
	"github.com/okian/rota/pkg/logger"
	"github.com/okian/rota/pkg/metrics"
)

// Defaults used when no adapter options are given.
const (
	DefaultRosterFile    = "names.txt"
	DefaultOutputDir     = "Schedules"
	DefaultHistoryFile   = "schedule_history.txt"
	DefaultRetentionDays = 90
)

// Generation is the outcome of one successful Generate call.
type Generation struct {
	RunID     string
	Requested rotation.Mode
	Mode      rotation.Mode
	Period    types.Period
	Week      model.WeekSchedule
	Warnings  []model.Warning
	Paths     []string
	History   model.HistorySet
}

// Service runs schedule generations against a roster loaded once at Start.
type Service struct {
	mu sync.RWMutex

	// Adapters
	rosterSource repository.RosterSource
	history      repository.HistoryStore
	sink         repository.ScheduleSink
	cleaner      repository.Cleaner

	scheduler     *schedule.Scheduler
	schedulerOpts []schedule.Option

	// Configuration
	startDate     time.Time
	retentionDays int
	now           func() time.Time

	// State
	started        bool
	roster         model.Roster
	rosterWarnings []model.Warning
	period         types.Period
	generations    int

	logger logger.Logger
}

// New constructs a Service. Adapters not supplied through options default to
// files under the working directory.
func New(opts ...Option) *Service {
	s := &Service{
		retentionDays: DefaultRetentionDays,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rosterSource == nil {
		s.rosterSource = repository.NewFileRoster(DefaultRosterFile)
	}
	layout := repository.NewLayout(DefaultOutputDir)
	if s.history == nil {
		s.history = repository.NewFileHistory(filepath.Join(DefaultOutputDir, DefaultHistoryFile))
	}
	if s.sink == nil {
		s.sink = repository.NewFileSink(layout)
	}
	if s.cleaner == nil {
		s.cleaner = repository.NewFileCleaner(layout)
	}

	return s
}

// Start loads the roster and fixes the first period. Calling it again is a
// no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.scheduler = schedule.New(append([]schedule.Option{schedule.WithLogger(s.logger)}, s.schedulerOpts...)...)

	roster, warnings, err := s.rosterSource.Load(ctx)
	if err != nil {
		metrics.RecordError("roster")
		return fmt.Errorf("load roster: %w", err)
	}
	for _, w := range warnings {
		s.logger.Warn(ctx, "roster line ignored", logger.String("detail", w.Message))
		metrics.RecordWarning(string(w.Kind))
	}
	metrics.UpdateRosterSize(roster.Len())

	start := s.startDate
	if start.IsZero() {
		start = types.NextMonday(s.now())
	}

	s.roster = roster
	s.rosterWarnings = warnings
	s.period = types.NewPeriod(start)
	s.started = true

	s.logger.Info(ctx, "rota service started",
		logger.Int("people", roster.Len()),
		logger.Int("ignoredLines", len(warnings)),
		logger.String("period", s.period.String()),
	)
	return nil
}

// Stop marks the service stopped. The roster is kept so Stats still reports it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "rota service stopped", logger.Int("generations", s.generations))
}

// Generate builds the current period's week, writes the three category files
// and then replaces the history. On success the current period advances by
// one week. Nothing is written when the roster is empty.
func (s *Service) Generate(ctx context.Context, mode rotation.Mode) (Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Generation{}, ErrNotStarted
	}

	begin := time.Now()
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run", runID))

	last, err := s.history.Read(ctx)
	if err != nil {
		metrics.RecordGenerationFailure("read_history")
		metrics.RecordError("history")
		return Generation{}, err
	}

	effective := rotation.Effective(mode, last)
	if effective != mode {
		log.Info(ctx, "no history from last period; fair generation behaves like fresh")
	}

	res, err := s.scheduler.Week(ctx, s.roster, rotation.AvoidPool(mode, last))
	if err != nil {
		reason := "scheduler"
		if errors.Is(err, schedule.ErrEmptyRoster) {
			reason = "empty_roster"
		}
		metrics.RecordGenerationFailure(reason)
		return Generation{}, err
	}

	for _, w := range res.Warnings {
		log.Warn(ctx, "schedule warning", logger.String("kind", string(w.Kind)), logger.String("detail", w.String()))
		metrics.RecordWarning(string(w.Kind))
	}

	paths, err := s.sink.Write(ctx, s.period, res.Week, s.roster)
	for range paths {
		metrics.RecordFileWritten("schedule")
	}
	if err != nil {
		metrics.RecordGenerationFailure("write_schedule")
		metrics.RecordError("sink")
		return Generation{}, err
	}

	next := schedule.History(res.Week)
	if err := s.history.Write(ctx, next); err != nil {
		metrics.RecordGenerationFailure("write_history")
		metrics.RecordError("history")
		return Generation{}, err
	}
	metrics.RecordFileWritten("history")
	metrics.UpdateHistorySize(next.Len())

	for _, c := range model.Categories {
		metrics.RecordAssignments(c.String(), len(model.Weekdays)*c.Headcount())
	}
	elapsed := time.Since(begin)
	metrics.RecordGeneration(effective.String(), float64(elapsed.Microseconds())/1000, float64(s.now().Unix()))

	gen := Generation{
		RunID:     runID,
		Requested: mode,
		Mode:      effective,
		Period:    s.period,
		Week:      res.Week,
		Warnings:  res.Warnings,
		Paths:     paths,
		History:   next,
	}

	log.Info(ctx, "schedules generated",
		logger.String("mode", effective.String()),
		logger.String("period", s.period.String()),
		logger.Int("warnings", len(res.Warnings)),
		logger.Int("historySize", next.Len()),
	)

	s.period = s.period.Next()
	s.generations++
	return gen, nil
}

// History returns the participants recorded by the last generation.
func (s *Service) History(ctx context.Context) (model.HistorySet, error) {
	h, err := s.history.Read(ctx)
	if err != nil {
		metrics.RecordError("history")
		return nil, err
	}
	metrics.UpdateHistorySize(h.Len())
	return h, nil
}

// Cleanup removes schedule files whose period started more than the
// retention window ago.
func (s *Service) Cleanup(ctx context.Context) (int, error) {
	s.mu.RLock()
	retention := s.retentionDays
	s.mu.RUnlock()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, -retention)

	n, err := s.cleaner.Clean(ctx, cutoff)
	metrics.RecordFilesCleaned(n)
	if err != nil {
		metrics.RecordError("cleaner")
	}

	log := s.logger
	if log == nil {
		log = logger.Get()
	}
	log.Info(ctx, "old schedules cleaned",
		logger.Int("removed", n),
		logger.Time("cutoff", cutoff),
	)
	return n, err
}

// Period returns the period the next Generate call will fill.
func (s *Service) Period() types.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period
}

// Roster returns the roster loaded at Start.
func (s *Service) Roster() model.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster
}

// RosterWarnings returns the lines dropped while loading the roster.
func (s *Service) RosterWarnings() []model.Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Warning(nil), s.rosterWarnings...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"retentionDays": s.retentionDays,
		"generations":   s.generations,
	}

	if s.started {
		stats["rosterSize"] = s.roster.Len()
		stats["ignoredLines"] = len(s.rosterWarnings)
		stats["period"] = s.period.String()
	}

	return stats
}
