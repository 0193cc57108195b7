package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/okian/rota/internal/app"
	"github.com/okian/rota/internal/domain/rotation"
	"github.com/okian/rota/internal/domain/schedule"
)

// Menu choices.
const (
	choiceFresh   = "1"
	choiceFair    = "2"
	choiceHistory = "3"
	choiceCleanup = "4"
	choiceExit    = "5"
)

func newMenuCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Long:  "Menu keeps the roster loaded and moves to the following week after every generation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := st.startService(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()
			return runMenu(cmd, svc, st.cfg.RetentionDays)
		},
	}
}

// runMenu reads choices line by line until exit is confirmed or input ends.
func runMenu(cmd *cobra.Command, svc *app.Service, retentionDays int) error {
	ctx := cmd.Context()
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		printMenu(out, svc, retentionDays)
		choice, ok := prompt(in, out, "Choice: ")
		if !ok {
			return nil
		}

		switch choice {
		case choiceFresh, choiceFair:
			mode, _ := rotation.ParseMode(choice)
			gen, err := svc.Generate(ctx, mode)
			if errors.Is(err, schedule.ErrEmptyRoster) {
				fmt.Fprintln(out, "The roster is empty; add names to the roster file first.")
				continue
			}
			if err != nil {
				return err
			}
			printGeneration(out, gen, svc.Roster())
		case choiceHistory:
			h, err := svc.History(ctx)
			if err != nil {
				return err
			}
			printHistory(out, h)
		case choiceCleanup:
			n, err := svc.Cleanup(ctx)
			fmt.Fprintf(out, "Removed %d schedule files older than %d days.\n", n, retentionDays)
			if err != nil {
				fmt.Fprintf(out, "Some files could not be removed: %v\n", err)
			}
		case choiceExit:
			answer, ok := prompt(in, out, "Exit? (y/n): ")
			if !ok || strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
				fmt.Fprintln(out, "Bye.")
				return nil
			}
		default:
			fmt.Fprintln(out, "Invalid choice.")
		}
	}
}

func printMenu(out io.Writer, svc *app.Service, retentionDays int) {
	current := svc.Period()
	fmt.Fprintf(out, "\n=== Weekly duty rota ===\nThis week: %s\nWeek to generate: %s\n", current.Previous(), current)
	fmt.Fprintf(out, "%s. Generate schedules (fresh draw)\n", choiceFresh)
	fmt.Fprintf(out, "%s. Generate schedules (fair: skip last week's people for counting)\n", choiceFair)
	fmt.Fprintf(out, "%s. Show last week's history\n", choiceHistory)
	fmt.Fprintf(out, "%s. Delete schedules older than %d days\n", choiceCleanup, retentionDays)
	fmt.Fprintf(out, "%s. Exit\n", choiceExit)
}

// prompt writes label and returns the next trimmed line; ok is false at EOF.
func prompt(in *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
