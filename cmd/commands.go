package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/okian/rota/internal/app"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/rotation"
	"github.com/okian/rota/internal/trials"
)

func newGenerateCommand(st *cliState) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate next week's schedules",
		Long: "Generate writes the snack, keys and counting schedules for the next week.\n" +
			"In fair mode nobody who worked last week is given counting when someone else is free.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := rotation.ParseMode(mode)
			if err != nil {
				return err
			}
			svc, err := st.startService(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			gen, err := svc.Generate(cmd.Context(), m)
			if err != nil {
				return fail("generation failed", err)
			}
			printGeneration(cmd.OutOrStdout(), gen, svc.Roster())
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", rotation.Fresh.String(), "fresh or fair")
	return cmd
}

func newHistoryCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show who worked in the last generated week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := st.newService()
			if err != nil {
				return err
			}
			h, err := svc.History(cmd.Context())
			if err != nil {
				return fail("reading history failed", err)
			}
			printHistory(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newCleanupCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete schedule files older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := st.newService()
			if err != nil {
				return err
			}
			n, err := svc.Cleanup(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d schedule files older than %d days.\n", n, st.cfg.RetentionDays)
			if err != nil {
				return fail("cleanup incomplete", err)
			}
			return nil
		},
	}
}

func newSimulateCommand(st *cliState) *cobra.Command {
	var (
		mode    string
		people  int
		count   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run many seeded generations and report fairness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := rotation.ParseMode(mode)
			if err != nil {
				return err
			}

			cfg := trials.Config{
				Trials:  st.cfg.Trials,
				Workers: st.cfg.TrialWorkers,
				Mode:    m,
				Seed:    st.cfg.Seed,
			}
			if cmd.Flags().Changed("trials") {
				cfg.Trials = count
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			if people > 0 {
				cfg.Roster = trials.SyntheticRoster(people)
			} else {
				svc, err := st.startService(cmd)
				if err != nil {
					return err
				}
				cfg.Roster = svc.Roster()
				svc.Stop()
			}

			report, err := trials.Run(cmd.Context(), cfg)
			if err != nil {
				return fail("simulation failed", err)
			}
			if err := report.WriteSummary(cmd.OutOrStdout()); err != nil {
				return err
			}
			if len(report.Violations) > 0 {
				return fmt.Errorf("%d invariant violations", len(report.Violations))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&mode, "mode", "m", rotation.Fresh.String(), "fresh or fair")
	f.IntVar(&people, "people", 0, "use a synthetic roster of this size instead of the roster file")
	f.IntVar(&count, "trials", trials.DefaultTrials, "number of trials")
	f.IntVar(&workers, "workers", 0, "concurrent workers (default from config)")
	return cmd
}

func (st *cliState) startService(cmd *cobra.Command) (*app.Service, error) {
	svc, err := st.newService()
	if err != nil {
		return nil, err
	}
	if err := svc.Start(cmd.Context()); err != nil {
		return nil, fail("failed to start", err)
	}
	for _, w := range svc.RosterWarnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return svc, nil
}

func printGeneration(out io.Writer, gen app.Generation, roster model.Roster) {
	fmt.Fprintf(out, "Week %s (%s)\n", gen.Period, gen.Mode)
	if gen.Requested != gen.Mode {
		fmt.Fprintln(out, "No history from last week; fair generation ran as fresh.")
	}
	for _, day := range model.Weekdays {
		ds := gen.Week[day]
		fmt.Fprintf(out, "  %-9s %s  snack: %s  keys: %s  counting: %s\n",
			day, gen.Period.Dates[day].Format("02/01"),
			joinLabels(roster, ds.Snack), joinLabels(roster, ds.Keys), roster.Label(ds.Counting))
	}
	for _, w := range gen.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	for _, p := range gen.Paths {
		fmt.Fprintf(out, "saved %s\n", p)
	}
}

func printHistory(out io.Writer, h model.HistorySet) {
	if h.Len() == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return
	}
	fmt.Fprintf(out, "%d people worked last week:\n", h.Len())
	for _, p := range h.Sorted() {
		fmt.Fprintf(out, "  %s\n", p)
	}
}

func joinLabels(roster model.Roster, people []model.Person) string {
	labels := make([]string, len(people))
	for i, p := range people {
		labels[i] = roster.Label(p)
	}
	return strings.Join(labels, " | ")
}
