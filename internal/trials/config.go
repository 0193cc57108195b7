// Package trials runs many independent generations to check the scheduler's
// invariants and measure how evenly it spreads duties.
package trials

import (
	"fmt"
	"runtime"
	"time"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/rotation"
)

// Config holds configuration for a trial run.
type Config struct {
	Roster  model.Roster  // Roster every trial schedules
	Trials  int           // Number of independent trials
	Workers int           // Number of concurrent workers
	Mode    rotation.Mode // Fresh checks one week, Fair chains two
	Seed    int64         // Base seed; trial i uses Seed+i
	Verbose bool          // Log every trial
}

// Defaults applied by Run when a field is zero.
const (
	DefaultTrials = 1000
	DefaultSeed   = 1
)

func (c Config) withDefaults() Config {
	if c.Trials <= 0 {
		c.Trials = DefaultTrials
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	return c
}

// SyntheticRoster returns n people named "Person 001", "Person 002", ...
func SyntheticRoster(n int) model.Roster {
	people := make([]model.Person, n)
	for i := range people {
		people[i] = model.Person(fmt.Sprintf("Person %03d", i+1))
	}
	return model.NewRoster(people, nil)
}

// Stats holds timing for a run.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
