package model

import "fmt"

// WarningKind classifies non-fatal conditions raised during generation.
type WarningKind string

// Warning kinds.
const (
	// DataWarning flags suspicious input that was worked around, such as a
	// duplicate roster entry or an avoid pool that left nobody to pick.
	DataWarning WarningKind = "data"
	// DegradedResultWarning flags output that could not honor every
	// disjointness rule because the roster is too small.
	DegradedResultWarning WarningKind = "degraded"
)

// Warning is a non-fatal condition surfaced to the caller.
type Warning struct {
	Kind    WarningKind
	Day     *Weekday // nil when the warning is not tied to a day
	Message string
}

func (w Warning) String() string {
	if w.Day != nil {
		return fmt.Sprintf("%s warning (%s): %s", w.Kind, *w.Day, w.Message)
	}
	return fmt.Sprintf("%s warning: %s", w.Kind, w.Message)
}

// OnDay returns a copy of w tied to day.
func (w Warning) OnDay(day Weekday) Warning {
	w.Day = &day
	return w
}
