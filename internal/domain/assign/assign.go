// Package assign fills a single weekday's duty slots.
//
// Day is a pure function of the roster, the avoid pool and the shuffler it is
// given: the same inputs and an identically seeded shuffler always produce the
// same DaySchedule.
package assign

import (
	"fmt"

	"github.com/okian/rota/internal/domain/model"
)

// Shuffler permutes n elements uniformly at random. *rand.Rand satisfies it
// with a Fisher-Yates shuffle.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Day selects Snack, Keys and Counting for one weekday.
//
// Snack and Keys are disjoint whenever the roster has at least six people and
// Counting is disjoint from both whenever it has at least seven. Counting
// prefers people outside avoid. Smaller rosters still yield a full schedule;
// each rule that had to be relaxed is reported as a warning.
func Day(roster []model.Person, avoid model.HistorySet, rng Shuffler) (model.DaySchedule, []model.Warning) {
	var warnings []model.Warning
	if len(roster) == 0 {
		return model.DaySchedule{}, warnings
	}

	// Snack: first draws from a shuffled copy of the roster.
	pool := shuffled(roster, rng)
	snack, pool := draw(pool, model.SnackHeadcount)
	if len(roster) < model.SnackHeadcount {
		warnings = append(warnings, model.Warning{
			Kind:    model.DegradedResultWarning,
			Message: fmt.Sprintf("roster has %d people; snack repeats people to fill %d slots", len(roster), model.SnackHeadcount),
		})
	}

	// Keys: from whoever is left, refilled from roster minus Snack when short.
	rest := without(pool, snack)
	if len(rest) < model.KeysHeadcount {
		rest = shuffled(without(roster, snack), rng)
	} else {
		rest = shuffled(rest, rng)
	}
	keys := append([]model.Person(nil), rest[:min(len(rest), model.KeysHeadcount)]...)
	if len(keys) < model.KeysHeadcount {
		warnings = append(warnings, model.Warning{
			Kind:    model.DegradedResultWarning,
			Message: fmt.Sprintf("only %d people available for keys after snack; sharing with snack", len(keys)),
		})
		keys = topUp(keys, shuffled(snack, rng), model.KeysHeadcount)
	}

	// Counting: prefer the residual outside the avoid pool.
	residual := without(roster, snack, keys)
	candidates := residual
	if avoid.Len() > 0 {
		candidates = filter(residual, func(p model.Person) bool { return !avoid.Contains(p) })
		if len(candidates) == 0 && len(residual) > 0 {
			warnings = append(warnings, model.Warning{
				Kind:    model.DataWarning,
				Message: "every counting candidate worked last period; ignoring history for this day",
			})
			candidates = residual
		}
	}
	if len(candidates) == 0 {
		warnings = append(warnings, model.Warning{
			Kind:    model.DegradedResultWarning,
			Message: "nobody left for counting after snack and keys; choosing from the full roster",
		})
		candidates = roster
	}
	counting := roster[0]
	if c := shuffled(candidates, rng); len(c) > 0 {
		counting = c[0]
	}

	return model.DaySchedule{Snack: snack, Keys: keys, Counting: counting}, warnings
}

// shuffled returns a uniformly permuted copy of in.
func shuffled(in []model.Person, rng Shuffler) []model.Person {
	out := make([]model.Person, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// draw takes up to n people off the front of pool and returns them with the
// remainder. When pool is shorter than n it is cycled so exactly n are
// returned; with fewer than n people the result necessarily repeats.
func draw(pool []model.Person, n int) ([]model.Person, []model.Person) {
	if len(pool) >= n {
		return append([]model.Person(nil), pool[:n]...), pool[n:]
	}
	if len(pool) == 0 {
		return nil, nil
	}
	out := make([]model.Person, 0, n)
	for i := 0; len(out) < n; i++ {
		out = append(out, pool[i%len(pool)])
	}
	return out, nil
}

// topUp appends people from extra to in until it has n entries, skipping
// anyone already present. If extra runs out, it cycles over in itself.
func topUp(in, extra []model.Person, n int) []model.Person {
	out := append([]model.Person(nil), in...)
	for _, p := range extra {
		if len(out) >= n {
			return out
		}
		if !contains(out, p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return out
	}
	for i := 0; len(out) < n; i++ {
		out = append(out, out[i])
	}
	return out
}

// without returns in minus every person found in any of the excluded slices,
// preserving order.
func without(in []model.Person, excluded ...[]model.Person) []model.Person {
	return filter(in, func(p model.Person) bool {
		for _, ex := range excluded {
			if contains(ex, p) {
				return false
			}
		}
		return true
	})
}

func filter(in []model.Person, keep func(model.Person) bool) []model.Person {
	out := make([]model.Person, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func contains(in []model.Person, p model.Person) bool {
	for _, q := range in {
		if q == p {
			return true
		}
	}
	return false
}
