package trials

import (
	"fmt"

	"github.com/okian/rota/internal/domain/model"
)

// Verify checks week against the scheduling invariants for roster and returns
// one message per violation. avoid is the pool Counting should have steered
// away from; pass nil for a fresh week.
func Verify(roster model.Roster, week model.WeekSchedule, avoid model.HistorySet) []string {
	var violations []string
	if len(week) != len(model.Weekdays) || !week.Complete() {
		return append(violations, fmt.Sprintf("week has %d of %d days", len(week), len(model.Weekdays)))
	}

	n := roster.Len()
	for _, day := range model.Weekdays {
		ds := week[day]
		if len(ds.Snack) != model.SnackHeadcount {
			violations = append(violations, fmt.Sprintf("%s: snack has %d people", day, len(ds.Snack)))
		}
		if len(ds.Keys) != model.KeysHeadcount {
			violations = append(violations, fmt.Sprintf("%s: keys has %d people", day, len(ds.Keys)))
		}
		if n >= model.SnackHeadcount && !distinct(ds.Snack) {
			violations = append(violations, fmt.Sprintf("%s: snack repeats a person", day))
		}
		if n >= model.KeysHeadcount && !distinct(ds.Keys) {
			violations = append(violations, fmt.Sprintf("%s: keys repeats a person", day))
		}
		for _, p := range ds.People() {
			if !roster.Contains(p) {
				violations = append(violations, fmt.Sprintf("%s: %q is not on the roster", day, p))
			}
		}

		if n >= model.SnackHeadcount+model.KeysHeadcount && overlaps(ds.Snack, ds.Keys) {
			violations = append(violations, fmt.Sprintf("%s: snack and keys overlap", day))
		}
		if n >= model.MinDisjointRoster && (containsPerson(ds.Snack, ds.Counting) || containsPerson(ds.Keys, ds.Counting)) {
			violations = append(violations, fmt.Sprintf("%s: counting %q also holds another duty", day, ds.Counting))
		}

		if avoid.Len() > 0 && avoid.Contains(ds.Counting) && avoidable(roster, ds, avoid) {
			violations = append(violations, fmt.Sprintf("%s: counting %q worked last period although others were free", day, ds.Counting))
		}
	}
	return violations
}

// avoidable reports whether someone outside Snack, Keys and avoid was free to
// take Counting on ds.
func avoidable(roster model.Roster, ds model.DaySchedule, avoid model.HistorySet) bool {
	for _, p := range roster.People() {
		if containsPerson(ds.Snack, p) || containsPerson(ds.Keys, p) {
			continue
		}
		if !avoid.Contains(p) {
			return true
		}
	}
	return false
}

func distinct(in []model.Person) bool {
	seen := make(map[model.Person]struct{}, len(in))
	for _, p := range in {
		if _, ok := seen[p]; ok {
			return false
		}
		seen[p] = struct{}{}
	}
	return true
}

func overlaps(a, b []model.Person) bool {
	for _, p := range a {
		if containsPerson(b, p) {
			return true
		}
	}
	return false
}

func containsPerson(in []model.Person, p model.Person) bool {
	for _, q := range in {
		if q == p {
			return true
		}
	}
	return false
}
