package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	repository "github.com/okian/rota/internal/adapters/repository"
	"github.com/okian/rota/internal/config"
	"github.com/okian/rota/internal/domain/rotation"
	"github.com/smartystreets/goconvey/convey"
)

type workspace struct {
	roster string
	output string
}

func newWorkspace(t *testing.T, people int) workspace {
	t.Helper()
	dir := t.TempDir()
	var b strings.Builder
	for i := 1; i <= people; i++ {
		fmt.Fprintf(&b, "Student %02d - %dB\n", i, i%3+1)
	}
	roster := filepath.Join(dir, "names.txt")
	if err := os.WriteFile(roster, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return workspace{roster: roster, output: filepath.Join(dir, "Schedules")}
}

func (w workspace) run(stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCommand(strings.NewReader(stdin), &stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{
		"--roster", w.roster,
		"--output", w.output,
		"--start", "2025-03-10",
		"--seed", "99",
	}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateCommand(t *testing.T) {
	convey.Convey("Given a roster of twelve", t, func() {
		w := newWorkspace(t, 12)

		convey.Convey("When generating a fresh week", func() {
			out, _, err := w.run("", "generate", "--mode", "fresh")

			convey.Convey("Then the week is printed and saved", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Week 10/03/2025 to 14/03/2025 (fresh)")
				convey.So(out, convey.ShouldContainSubstring, "saved ")
				for _, dir := range []string{"Snack schedules", "Keys schedules", "Counting schedules"} {
					matches, _ := filepath.Glob(filepath.Join(w.output, dir, "schedule_*_10-03-2025_to_14-03-2025.txt"))
					convey.So(matches, convey.ShouldHaveLength, 1)
				}
				_, statErr := os.Stat(filepath.Join(w.output, "schedule_history.txt"))
				convey.So(statErr, convey.ShouldBeNil)
			})

			convey.Convey("And the history command lists the participants", func() {
				hist, _, histErr := w.run("", "history")
				convey.So(histErr, convey.ShouldBeNil)
				convey.So(hist, convey.ShouldContainSubstring, "people worked last week")
				convey.So(hist, convey.ShouldContainSubstring, "Student")
			})
		})

		convey.Convey("When generating a fair week with no history", func() {
			out, _, err := w.run("", "generate", "-m", "fair")

			convey.Convey("Then it runs as fresh", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "ran as fresh")
			})
		})

		convey.Convey("When the mode is unknown", func() {
			_, _, err := w.run("", "generate", "--mode", "random")

			convey.Convey("Then ErrUnknownMode is returned", func() {
				convey.So(errors.Is(err, rotation.ErrUnknownMode), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the start date is not a Monday", func() {
			_, _, err := w.run("", "--start", "2025-03-11", "generate")

			convey.Convey("Then the configuration is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a metrics file is configured", func() {
			metricsFile := filepath.Join(filepath.Dir(w.roster), "rota.prom")
			t.Setenv("ROTA_METRICS_FILE", metricsFile)
			_, _, err := w.run("", "generate")

			convey.Convey("Then the registry is flushed to it", func() {
				convey.So(err, convey.ShouldBeNil)
				data, readErr := os.ReadFile(metricsFile)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "rota_scheduler_generations_total")
			})
		})

		convey.Convey("When a metrics namespace is configured", func() {
			metricsFile := filepath.Join(filepath.Dir(w.roster), "school.prom")
			t.Setenv("ROTA_METRICS_FILE", metricsFile)
			t.Setenv("ROTA_METRICS_NAMESPACE", "school")
			_, _, err := w.run("", "generate")

			convey.Convey("Then metric names carry it", func() {
				convey.So(err, convey.ShouldBeNil)
				data, readErr := os.ReadFile(metricsFile)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, `school_scheduler_generations_total{mode="fresh"} 1`)
				convey.So(string(data), convey.ShouldNotContainSubstring, "rota_scheduler_")
			})
		})
	})

	convey.Convey("Given a missing roster file", t, func() {
		w := newWorkspace(t, 0)
		w.roster = filepath.Join(filepath.Dir(w.roster), "absent.txt")

		convey.Convey("Then generate fails with ErrRosterNotFound", func() {
			_, _, err := w.run("", "generate")
			convey.So(errors.Is(err, repository.ErrRosterNotFound), convey.ShouldBeTrue)
		})
	})
}

func TestHistoryCommand(t *testing.T) {
	convey.Convey("Given nothing has been generated", t, func() {
		w := newWorkspace(t, 8)

		convey.Convey("Then history says so", func() {
			out, _, err := w.run("", "history")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "No history recorded yet.")
		})
	})
}

func TestCleanupCommand(t *testing.T) {
	convey.Convey("Given an old schedule file", t, func() {
		w := newWorkspace(t, 8)
		dir := filepath.Join(w.output, "Keys schedules")
		convey.So(os.MkdirAll(dir, 0o750), convey.ShouldBeNil)
		old := filepath.Join(dir, "schedule_keys_06-01-2020_to_10-01-2020.txt")
		convey.So(os.WriteFile(old, []byte("x"), 0o644), convey.ShouldBeNil)

		convey.Convey("When running cleanup", func() {
			out, _, err := w.run("", "cleanup")

			convey.Convey("Then the file is removed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Removed 1 schedule files older than 90 days.")
				_, statErr := os.Stat(old)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMenuCommand(t *testing.T) {
	convey.Convey("Given the interactive menu", t, func() {
		w := newWorkspace(t, 10)

		convey.Convey("When generating twice then showing history and exiting", func() {
			out, _, err := w.run("1\n2\n3\n5\ny\n", "menu")

			convey.Convey("Then each generation moves to the following week", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "This week: 03/03/2025 to 07/03/2025\nWeek to generate: 10/03/2025 to 14/03/2025")
				convey.So(out, convey.ShouldContainSubstring, "Week 10/03/2025 to 14/03/2025 (fresh)")
				convey.So(out, convey.ShouldContainSubstring, "Week 17/03/2025 to 21/03/2025 (fair)")
				convey.So(out, convey.ShouldContainSubstring, "This week: 17/03/2025 to 21/03/2025\nWeek to generate: 24/03/2025 to 28/03/2025")
				convey.So(out, convey.ShouldContainSubstring, "people worked last week")
				convey.So(out, convey.ShouldEndWith, "Bye.\n")
			})
		})

		convey.Convey("When the choice is invalid and exit is declined", func() {
			out, _, err := w.run("9\n5\nn\n", "menu")

			convey.Convey("Then the menu keeps going until input ends", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Invalid choice.")
				convey.So(out, convey.ShouldNotContainSubstring, "Bye.")
			})
		})
	})
}

func TestSimulateCommand(t *testing.T) {
	convey.Convey("Given a synthetic roster", t, func() {
		w := newWorkspace(t, 0)

		convey.Convey("When simulating fair trials", func() {
			out, _, err := w.run("", "simulate", "--people", "12", "--trials", "40", "--workers", "2", "--mode", "fair")

			convey.Convey("Then the summary reports no violations", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Trials: 40 (fair) over 12 people")
				convey.So(out, convey.ShouldContainSubstring, "No invariant violations.")
			})
		})
	})

	convey.Convey("Given the roster file", t, func() {
		w := newWorkspace(t, 9)

		convey.Convey("Then simulate uses it by default", func() {
			out, _, err := w.run("", "simulate", "--trials", "20")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "over 9 people")
		})
	})
}
