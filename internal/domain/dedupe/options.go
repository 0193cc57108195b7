// Package dedupe detects repeated identifiers while a roster is read.
package dedupe

import "strings"

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithCaseFold makes identifiers that differ only in letter case count as
// the same person.
func WithCaseFold(enabled bool) Option {
	return func(d *inMemoryDeduper) {
		if enabled {
			d.normalize = strings.ToLower
		}
	}
}

// WithNormalizer sets a custom key function applied before comparison.
func WithNormalizer(fn func(string) string) Option {
	return func(d *inMemoryDeduper) {
		if fn != nil {
			d.normalize = fn
		}
	}
}
