// Package repository persists rosters, schedules and history as flat text files.
package repository

import (
	"context"
	"time"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/types"
)

// RosterSource produces the roster for a run.
type RosterSource interface {
	// Load reads the roster. Duplicate names are dropped and reported as
	// DataWarnings rather than errors.
	Load(ctx context.Context) (model.Roster, []model.Warning, error)
}

// HistoryStore reads and replaces last period's participants.
type HistoryStore interface {
	// Read returns the stored history, or an empty set when none exists.
	Read(ctx context.Context) (model.HistorySet, error)
	// Write replaces the stored history with h.
	Write(ctx context.Context, h model.HistorySet) error
}

// ScheduleSink persists a generated week, one output per duty category.
type ScheduleSink interface {
	// Write stores week for period and returns the written locations.
	Write(ctx context.Context, period types.Period, week model.WeekSchedule, roster model.Roster) ([]string, error)
}

// Cleaner removes schedules that fell out of the retention window.
type Cleaner interface {
	// Clean deletes schedules whose period started before cutoff and returns
	// how many were removed.
	Clean(ctx context.Context, cutoff time.Time) (int, error)
}
