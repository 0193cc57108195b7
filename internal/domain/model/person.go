// Package model contains domain models passed between layers.
package model

import "slices"

// Person identifies someone eligible for duty. Unique within a Roster.
type Person string

// Roster is the ordered set of people eligible for one scheduling run.
// It is built once per run and treated as read-only afterwards.
type Roster struct {
	people []Person
	labels map[Person]string
}

// NewRoster builds a Roster from people in order. Labels maps a person to the
// display label used in rendered schedules and may be nil. Callers are
// expected to have removed duplicates already; a repeated person is ignored.
func NewRoster(people []Person, labels map[Person]string) Roster {
	r := Roster{
		people: make([]Person, 0, len(people)),
		labels: make(map[Person]string, len(labels)),
	}
	seen := make(map[Person]struct{}, len(people))
	for _, p := range people {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		r.people = append(r.people, p)
		if l, ok := labels[p]; ok {
			r.labels[p] = l
		}
	}
	return r
}

// People returns a copy of the roster in its original order.
func (r Roster) People() []Person { return slices.Clone(r.people) }

// Len returns the number of people on the roster.
func (r Roster) Len() int { return len(r.people) }

// Empty reports whether nobody is on the roster.
func (r Roster) Empty() bool { return len(r.people) == 0 }

// Contains reports whether p is on the roster.
func (r Roster) Contains(p Person) bool { return slices.Contains(r.people, p) }

// Label returns the display label for p, falling back to the identifier.
func (r Roster) Label(p Person) string {
	if l, ok := r.labels[p]; ok && l != "" {
		return l
	}
	return string(p)
}
