package repository

import (
	"github.com/okian/rota/internal/domain/dedupe"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o644
)

// RosterOption configures a FileRoster.
type RosterOption func(*FileRoster)

// WithCaseInsensitiveNames treats names that differ only in case as the same
// person when checking for duplicates.
func WithCaseInsensitiveNames(enabled bool) RosterOption {
	return func(r *FileRoster) {
		r.dedupeOpts = append(r.dedupeOpts, dedupe.WithCaseFold(enabled))
	}
}

// WithRosterLogger sets the logger used to report dropped lines.
func WithRosterLogger(l logger.Logger) RosterOption {
	return func(r *FileRoster) {
		if l != nil {
			r.logger = l
		}
	}
}

// LayoutOption configures a Layout.
type LayoutOption func(*Layout)

// WithCategoryDir overrides the folder name used for one category.
func WithCategoryDir(c model.Category, dir string) LayoutOption {
	return func(l *Layout) {
		if dir != "" {
			l.dirs[c] = dir
		}
	}
}

// Option configures the file sink, history store and cleaner.
type Option func(*fileOptions)

type fileOptions struct {
	logger logger.Logger
}

// WithLogger sets the logger used to report file activity.
func WithLogger(l logger.Logger) Option {
	return func(o *fileOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) fileOptions {
	var o fileOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
