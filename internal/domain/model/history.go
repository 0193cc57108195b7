package model

import "sort"

// HistorySet is the set of people who held any duty in the previous period.
type HistorySet map[Person]struct{}

// NewHistorySet builds a set from people.
func NewHistorySet(people ...Person) HistorySet {
	h := make(HistorySet, len(people))
	for _, p := range people {
		h[p] = struct{}{}
	}
	return h
}

// Contains reports whether p is in the set. Safe on a nil set.
func (h HistorySet) Contains(p Person) bool {
	_, ok := h[p]
	return ok
}

// Len returns the set size.
func (h HistorySet) Len() int { return len(h) }

// Sorted returns the members in lexical order.
func (h HistorySet) Sorted() []Person {
	out := make([]Person, 0, len(h))
	for p := range h {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether both sets hold exactly the same people.
func (h HistorySet) Equal(other HistorySet) bool {
	if len(h) != len(other) {
		return false
	}
	for p := range h {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}
