// Package dedupe detects repeated identifiers while a roster is read.
package dedupe

import (
	"context"
	"strings"
)

// Deduper records identifiers so later repeats can be dropped.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded, recording it
	// if not. The first occurrence always wins.
	SeenAndRecord(ctx context.Context, id string) bool

	// Duplicates returns every repeated id in the order repeats were seen.
	Duplicates() []string
}

// inMemoryDeduper is a map-backed Deduper. Rosters are small and read once,
// so no eviction is needed.
type inMemoryDeduper struct {
	seen       map[string]struct{}
	duplicates []string
	normalize  func(string) string
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen:      make(map[string]struct{}),
		normalize: strings.TrimSpace,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// SeenAndRecord checks id and records it when new.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	key := d.normalize(id)
	if _, exists := d.seen[key]; exists {
		d.duplicates = append(d.duplicates, id)
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Duplicates returns a copy of the repeats seen so far.
func (d *inMemoryDeduper) Duplicates() []string {
	return append([]string(nil), d.duplicates...)
}
