package model

import "slices"

// Weekday is one of the five working days a period covers.
type Weekday int

// Working days in period order.
const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists every working day in order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday} //nolint:gochecknoglobals // fixed calendar

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} //nolint:gochecknoglobals // fixed calendar

func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return "Weekday(?)"
	}
	return weekdayNames[d]
}

// Category is a duty type with a fixed daily headcount.
type Category int

// Duty categories.
const (
	Snack Category = iota
	Keys
	Counting
)

// Categories lists every duty category in rendering order.
var Categories = []Category{Snack, Keys, Counting} //nolint:gochecknoglobals // fixed duty set

// Daily headcounts per category.
const (
	SnackHeadcount    = 3
	KeysHeadcount     = 3
	CountingHeadcount = 1

	// MinDisjointRoster is the smallest roster that lets all three
	// categories be filled without anyone holding two duties on one day.
	MinDisjointRoster = SnackHeadcount + KeysHeadcount + CountingHeadcount
)

// Headcount returns how many people the category needs per day.
func (c Category) Headcount() int {
	switch c {
	case Snack:
		return SnackHeadcount
	case Keys:
		return KeysHeadcount
	case Counting:
		return CountingHeadcount
	default:
		return 0
	}
}

func (c Category) String() string {
	switch c {
	case Snack:
		return "snack"
	case Keys:
		return "keys"
	case Counting:
		return "counting"
	default:
		return "unknown"
	}
}

// DaySchedule holds one weekday's assignments.
type DaySchedule struct {
	Snack    []Person
	Keys     []Person
	Counting Person
}

// Slot returns the people assigned to category c.
func (d DaySchedule) Slot(c Category) []Person {
	switch c {
	case Snack:
		return slices.Clone(d.Snack)
	case Keys:
		return slices.Clone(d.Keys)
	case Counting:
		if d.Counting == "" {
			return nil
		}
		return []Person{d.Counting}
	default:
		return nil
	}
}

// People returns everyone holding any duty that day, in category order.
// A person holding two duties appears twice.
func (d DaySchedule) People() []Person {
	out := make([]Person, 0, len(d.Snack)+len(d.Keys)+1)
	out = append(out, d.Snack...)
	out = append(out, d.Keys...)
	if d.Counting != "" {
		out = append(out, d.Counting)
	}
	return out
}

// WeekSchedule maps every weekday of a period to its assignments.
type WeekSchedule map[Weekday]DaySchedule

// Complete reports whether every weekday has an entry.
func (w WeekSchedule) Complete() bool {
	if len(w) != len(Weekdays) {
		return false
	}
	for _, d := range Weekdays {
		if _, ok := w[d]; !ok {
			return false
		}
	}
	return true
}

// ByCategory projects the week onto a single duty category.
func (w WeekSchedule) ByCategory(c Category) map[Weekday][]Person {
	out := make(map[Weekday][]Person, len(w))
	for day, ds := range w {
		out[day] = ds.Slot(c)
	}
	return out
}
