// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/rota/internal/domain/model"
)

const (
	daysPerWeek = 7
	dateLayout  = "2006-01-02"
)

// Period is one scheduling week, Monday through Friday.
type Period struct {
	Start time.Time
	Dates map[model.Weekday]time.Time
}

// NewPeriod builds the period starting on start. The time of day is dropped.
func NewPeriod(start time.Time) Period {
	start = truncateDay(start)
	dates := make(map[model.Weekday]time.Time, len(model.Weekdays))
	for i, d := range model.Weekdays {
		dates[d] = start.AddDate(0, 0, i)
	}
	return Period{Start: start, Dates: dates}
}

// End returns the Friday of the period.
func (p Period) End() time.Time { return p.Dates[model.Friday] }

// Next returns the following week's period.
func (p Period) Next() Period { return NewPeriod(p.Start.AddDate(0, 0, daysPerWeek)) }

// Previous returns the prior week's period.
func (p Period) Previous() Period { return NewPeriod(p.Start.AddDate(0, 0, -daysPerWeek)) }

// String renders the period as dd/mm/yyyy to dd/mm/yyyy.
func (p Period) String() string {
	return p.Start.Format("02/01/2006") + " to " + p.End().Format("02/01/2006")
}

// NextMonday returns the Monday after today. When today is a Monday the
// following week's Monday is returned.
func NextMonday(today time.Time) time.Time {
	today = truncateDay(today)
	ahead := (int(time.Monday) - int(today.Weekday()) + daysPerWeek) % daysPerWeek
	if ahead == 0 {
		ahead = daysPerWeek
	}
	return today.AddDate(0, 0, ahead)
}

// ParseDate parses a YYYY-MM-DD date in the local zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
