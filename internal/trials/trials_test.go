package trials_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/rotation"
	"github.com/okian/rota/internal/domain/schedule"
	"github.com/okian/rota/internal/trials"
	"github.com/okian/rota/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a roster of twenty", t, func() {
		roster := trials.SyntheticRoster(20)

		Convey("When running fresh trials", func() {
			report, err := trials.Run(ctx, trials.Config{Roster: roster, Trials: 300, Workers: 4, Seed: 7})

			Convey("Then no invariant is violated", func() {
				So(err, ShouldBeNil)
				So(report.Violations, ShouldBeEmpty)
				So(report.Trials, ShouldEqual, 300)
				So(report.RunID, ShouldNotBeEmpty)
			})

			Convey("Then everyone gets at least one duty across the run", func() {
				So(report.Coverage, ShouldEqual, 1.0)
			})

			Convey("Then counting days add up to one per day per trial", func() {
				total := 0
				for _, n := range report.CountingDays {
					total += n
				}
				So(total, ShouldEqual, 300*len(model.Weekdays))
				least, most := report.CountingSpread()
				So(least, ShouldBeGreaterThan, 0)
				So(most, ShouldBeGreaterThanOrEqualTo, least)
			})
		})

		Convey("When running fair trials", func() {
			report, err := trials.Run(ctx, trials.Config{Roster: roster, Trials: 200, Workers: 3, Mode: rotation.Fair, Seed: 11})

			Convey("Then counting always avoids last week when it can", func() {
				So(err, ShouldBeNil)
				So(report.Violations, ShouldBeEmpty)
				So(report.AvoidanceRate(), ShouldEqual, 1.0)
			})
		})

		Convey("When the same seed is used twice", func() {
			a, errA := trials.Run(ctx, trials.Config{Roster: roster, Trials: 50, Workers: 8, Seed: 3})
			b, errB := trials.Run(ctx, trials.Config{Roster: roster, Trials: 50, Workers: 1, Seed: 3})

			Convey("Then the distributions match regardless of worker count", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a.CountingDays, ShouldResemble, b.CountingDays)
				So(a.DutyDays, ShouldResemble, b.DutyDays)
			})
		})
	})

	Convey("Given rosters of three to five", t, func() {
		for _, n := range []int{3, 4, 5} {
			report, err := trials.Run(ctx, trials.Config{Roster: trials.SyntheticRoster(n), Trials: 50, Workers: 2})

			So(err, ShouldBeNil)
			So(report.Violations, ShouldBeEmpty)
		}
	})

	Convey("Given a roster of four where keys is short a person", t, func() {
		roster := trials.SyntheticRoster(4)
		p := roster.People()
		week := model.WeekSchedule{}
		for _, d := range model.Weekdays {
			week[d] = model.DaySchedule{Snack: p[0:3], Keys: []model.Person{p[3], p[3], p[3]}, Counting: p[0]}
		}

		Convey("Then the repeated keys person is a violation", func() {
			So(trials.Verify(roster, week, nil), ShouldHaveLength, len(model.Weekdays))
		})
	})

	Convey("Given an empty roster", t, func() {
		_, err := trials.Run(ctx, trials.Config{Roster: trials.SyntheticRoster(0)})

		Convey("Then ErrEmptyRoster is returned", func() {
			So(errors.Is(err, schedule.ErrEmptyRoster), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := trials.Run(cctx, trials.Config{Roster: trials.SyntheticRoster(10), Trials: 20, Workers: 2})

		Convey("Then the run fails", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given a roster of seven", t, func() {
		roster := trials.SyntheticRoster(7)
		p := roster.People()
		good := model.DaySchedule{Snack: p[0:3], Keys: p[3:6], Counting: p[6]}
		week := model.WeekSchedule{}
		for _, d := range model.Weekdays {
			week[d] = good
		}

		Convey("When the week is valid", func() {
			Convey("Then there are no violations", func() {
				So(trials.Verify(roster, week, nil), ShouldBeEmpty)
			})
		})

		Convey("When counting repeats a snack person", func() {
			week[model.Tuesday] = model.DaySchedule{Snack: p[0:3], Keys: p[3:6], Counting: p[0]}

			Convey("Then it is reported", func() {
				v := trials.Verify(roster, week, nil)
				So(v, ShouldHaveLength, 1)
				So(v[0], ShouldStartWith, "Tuesday")
			})
		})

		Convey("When keys repeats a person", func() {
			week[model.Monday] = model.DaySchedule{Snack: p[0:3], Keys: []model.Person{p[3], p[3], p[4]}, Counting: p[6]}

			Convey("Then it is reported", func() {
				v := trials.Verify(roster, week, nil)
				So(v, ShouldHaveLength, 1)
				So(v[0], ShouldEqual, "Monday: keys repeats a person")
			})
		})

		Convey("When a day is missing", func() {
			delete(week, model.Friday)

			Convey("Then the week is rejected", func() {
				So(trials.Verify(roster, week, nil), ShouldHaveLength, 1)
			})
		})

		Convey("When counting is in the avoid pool with nobody else free", func() {
			avoid := model.NewHistorySet(p[6])

			Convey("Then it is allowed", func() {
				So(trials.Verify(roster, week, avoid), ShouldBeEmpty)
			})
		})

		Convey("When the report is printed", func() {
			report, err := trials.Run(context.Background(), trials.Config{Roster: roster, Trials: 10, Workers: 2, Mode: rotation.Fair})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(report.WriteSummary(&buf), ShouldBeNil)

			Convey("Then it names the mode and result", func() {
				So(buf.String(), ShouldContainSubstring, "Trials: 10 (fair) over 7 people")
				So(buf.String(), ShouldContainSubstring, "No invariant violations.")
			})
		})
	})
}
