package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/rota/internal/domain/assign"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/pkg/logger"
)

// Result is a generated week together with every warning raised while
// building it.
type Result struct {
	Week     model.WeekSchedule
	Warnings []model.Warning
}

// Scheduler drives the day assigner across every weekday of a period.
// It keeps no state between calls besides its random source.
type Scheduler struct {
	rng    assign.Shuffler
	logger logger.Logger
}

// New creates a Scheduler. Without WithRand or WithSeed it shuffles with a
// time-seeded source.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // scheduling fairness, not security
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Week assigns every weekday independently. Each day starts from the full
// roster, so one person can serve on several days of the same week.
// The avoid pool only steers Counting; pass nil or an empty set to ignore it.
func (s *Scheduler) Week(ctx context.Context, roster model.Roster, avoid model.HistorySet) (Result, error) {
	if roster.Empty() {
		return Result{}, ErrEmptyRoster
	}

	res := Result{Week: make(model.WeekSchedule, len(model.Weekdays))}
	if roster.Len() < model.MinDisjointRoster {
		res.Warnings = append(res.Warnings, model.Warning{
			Kind: model.DegradedResultWarning,
			Message: fmt.Sprintf("roster has %d people, fewer than the %d needed to keep duties apart each day",
				roster.Len(), model.MinDisjointRoster),
		})
	}

	people := roster.People()
	for _, day := range model.Weekdays {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("week generation cancelled: %w", err)
		}

		ds, warnings := assign.Day(people, avoid, s.rng)
		res.Week[day] = ds
		for _, w := range warnings {
			res.Warnings = append(res.Warnings, w.OnDay(day))
		}

		if s.logger != nil {
			s.logger.Debug(ctx, "day assigned",
				logger.String("day", day.String()),
				logger.Any("snack", ds.Snack),
				logger.Any("keys", ds.Keys),
				logger.String("counting", string(ds.Counting)),
				logger.Int("warnings", len(warnings)),
			)
		}
	}

	return res, nil
}

// History returns everyone who holds any duty on any day of week. The result
// replaces the previous period's history; it never accumulates.
func History(week model.WeekSchedule) model.HistorySet {
	h := make(model.HistorySet)
	for _, ds := range week {
		for _, p := range ds.People() {
			h[p] = struct{}{}
		}
	}
	return h
}
