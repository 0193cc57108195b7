package trials

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/rotation"
	"github.com/okian/rota/internal/domain/schedule"
	"github.com/okian/rota/pkg/logger"
	"github.com/okian/rota/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// outcome is what a single trial reports back to the aggregator.
type outcome struct {
	week       model.WeekSchedule
	violations []string
	// Fair trials only: days where someone outside the avoid pool was free,
	// and how many of those days Counting went to such a person.
	avoidChecks int
	avoidHeld   int
}

// Run executes cfg.Trials independent generations on a bounded pool of
// workers. Each trial owns its random source, so a run is reproducible for a
// given seed regardless of scheduling order.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	if cfg.Roster.Empty() {
		return nil, schedule.ErrEmptyRoster
	}

	stats := Stats{StartTime: time.Now()}
	runID := uuid.NewString()
	log := logger.Get().With(logger.String("run", runID))

	log.Info(ctx, "starting fairness trials",
		logger.Int("trials", cfg.Trials),
		logger.Int("workers", cfg.Workers),
		logger.Int("people", cfg.Roster.Len()),
		logger.String("mode", cfg.Mode.String()),
		logger.Int64("seed", cfg.Seed),
	)

	outcomes := make([]outcome, cfg.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < cfg.Trials; i++ {
		i := i
		g.Go(func() error {
			out, err := runTrial(gctx, cfg, cfg.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			outcomes[i] = out
			if cfg.Verbose {
				log.Debug(gctx, "trial finished", logger.Int("trial", i), logger.Int("violations", len(out.violations)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	report := aggregate(runID, cfg, outcomes, stats)
	metrics.RecordTrials(cfg.Mode.String(), cfg.Trials)

	log.Info(ctx, "fairness trials finished",
		logger.Int("violations", len(report.Violations)),
		logger.Float64("coverage", report.Coverage),
		logger.Float64("avoidanceRate", report.AvoidanceRate()),
		logger.String("duration", stats.Duration.String()),
	)
	return report, nil
}

// runTrial generates one week, or for Fair a first week whose participants
// form the avoid pool of a second, and verifies the last week generated.
func runTrial(ctx context.Context, cfg Config, seed int64) (outcome, error) {
	sched := schedule.New(schedule.WithRand(rand.New(rand.NewSource(seed)))) //nolint:gosec // simulation

	first, err := sched.Week(ctx, cfg.Roster, nil)
	if err != nil {
		return outcome{}, err
	}
	if cfg.Mode != rotation.Fair {
		return outcome{
			week:       first.Week,
			violations: Verify(cfg.Roster, first.Week, nil),
		}, nil
	}

	avoid := rotation.AvoidPool(cfg.Mode, schedule.History(first.Week))
	second, err := sched.Week(ctx, cfg.Roster, avoid)
	if err != nil {
		return outcome{}, err
	}

	out := outcome{
		week:       second.Week,
		violations: Verify(cfg.Roster, second.Week, avoid),
	}
	for _, day := range model.Weekdays {
		ds := second.Week[day]
		if !avoidable(cfg.Roster, ds, avoid) {
			continue
		}
		out.avoidChecks++
		if !avoid.Contains(ds.Counting) {
			out.avoidHeld++
		}
	}
	return out, nil
}
