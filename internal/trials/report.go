package trials

import (
	"fmt"
	"io"
	"sort"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/rotation"
)

// maxListedViolations caps how many violations WriteSummary prints.
const maxListedViolations = 10

// Report aggregates every trial of a run.
type Report struct {
	RunID      string
	Mode       rotation.Mode
	Trials     int
	RosterSize int
	Stats      Stats

	// CountingDays counts, per person, the days they were given Counting.
	CountingDays map[model.Person]int
	// DutyDays counts, per person, the days they held any duty.
	DutyDays map[model.Person]int
	// Coverage is the fraction of the roster that held at least one duty.
	Coverage float64

	AvoidanceChecks int
	AvoidanceHeld   int

	Violations []string
}

func aggregate(runID string, cfg Config, outcomes []outcome, stats Stats) *Report {
	r := &Report{
		RunID:        runID,
		Mode:         cfg.Mode,
		Trials:       cfg.Trials,
		RosterSize:   cfg.Roster.Len(),
		Stats:        stats,
		CountingDays: make(map[model.Person]int, cfg.Roster.Len()),
		DutyDays:     make(map[model.Person]int, cfg.Roster.Len()),
	}
	for _, p := range cfg.Roster.People() {
		r.CountingDays[p] = 0
		r.DutyDays[p] = 0
	}

	for i, out := range outcomes {
		for _, v := range out.violations {
			r.Violations = append(r.Violations, fmt.Sprintf("trial %d: %s", i, v))
		}
		r.AvoidanceChecks += out.avoidChecks
		r.AvoidanceHeld += out.avoidHeld

		for _, ds := range out.week {
			r.CountingDays[ds.Counting]++
			seen := make(map[model.Person]bool, len(ds.People()))
			for _, p := range ds.People() {
				if !seen[p] {
					seen[p] = true
					r.DutyDays[p]++
				}
			}
		}
	}

	covered := 0
	for _, n := range r.DutyDays {
		if n > 0 {
			covered++
		}
	}
	if r.RosterSize > 0 {
		r.Coverage = float64(covered) / float64(r.RosterSize)
	}
	return r
}

// AvoidanceRate is the share of avoidable days on which Counting went to
// someone outside the avoid pool. It is 1 when nothing was checked.
func (r *Report) AvoidanceRate() float64 {
	if r.AvoidanceChecks == 0 {
		return 1
	}
	return float64(r.AvoidanceHeld) / float64(r.AvoidanceChecks)
}

// CountingSpread returns the fewest and most Counting days any one person got.
func (r *Report) CountingSpread() (least, most int) {
	first := true
	for _, n := range r.CountingDays {
		if first || n < least {
			least = n
		}
		if first || n > most {
			most = n
		}
		first = false
	}
	return least, most
}

// WriteSummary prints a human-readable summary of the run.
func (r *Report) WriteSummary(w io.Writer) error {
	least, most := r.CountingSpread()
	if _, err := fmt.Fprintf(w,
		"Trials: %d (%s) over %d people in %s\nCoverage: %.1f%%\nCounting days per person: min %d, max %d\n",
		r.Trials, r.Mode, r.RosterSize, r.Stats.Duration, r.Coverage*100, least, most); err != nil {
		return err
	}
	if r.Mode == rotation.Fair {
		if _, err := fmt.Fprintf(w, "Counting avoided last week's participants on %d of %d days (%.1f%%)\n",
			r.AvoidanceHeld, r.AvoidanceChecks, r.AvoidanceRate()*100); err != nil {
			return err
		}
	}

	if len(r.Violations) == 0 {
		_, err := fmt.Fprintln(w, "No invariant violations.")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d invariant violations:\n", len(r.Violations)); err != nil {
		return err
	}
	listed := append([]string(nil), r.Violations...)
	sort.Strings(listed)
	if len(listed) > maxListedViolations {
		listed = listed[:maxListedViolations]
	}
	for _, v := range listed {
		if _, err := fmt.Fprintf(w, "  %s\n", v); err != nil {
			return err
		}
	}
	return nil
}
