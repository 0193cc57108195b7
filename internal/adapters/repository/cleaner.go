package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/pkg/logger"
)

// FileCleaner deletes schedule files whose period started before a cutoff.
type FileCleaner struct {
	layout Layout
	opts   fileOptions
}

// NewFileCleaner returns a cleaner for layout.
func NewFileCleaner(layout Layout, opts ...Option) *FileCleaner {
	return &FileCleaner{layout: layout, opts: applyOptions(opts)}
}

// Clean removes every schedule_*.txt in the category folders whose start date
// is before cutoff. Files whose name carries no readable date are skipped.
// Removal errors are collected and returned together after all folders have
// been visited.
func (c *FileCleaner) Clean(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	var errs []error

	for _, cat := range model.Categories {
		matches, err := filepath.Glob(filepath.Join(c.layout.Dir(cat), filePrefix+"*"+fileSuffix))
		if err != nil {
			return removed, err
		}

		for _, path := range matches {
			if err := ctx.Err(); err != nil {
				return removed, err
			}

			start, err := periodStart(path)
			if err != nil {
				c.warn(ctx, "could not read date from schedule file name", logger.String("file", filepath.Base(path)))
				continue
			}
			if !start.Before(cutoff) {
				continue
			}

			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("remove %s: %w", filepath.Base(path), err))
				continue
			}
			removed++
			if c.opts.logger != nil {
				c.opts.logger.Info(ctx, "old schedule removed", logger.String("file", filepath.Base(path)))
			}
		}
	}
	return removed, errors.Join(errs...)
}

func (c *FileCleaner) warn(ctx context.Context, msg string, fields ...logger.Field) {
	if c.opts.logger != nil {
		c.opts.logger.Warn(ctx, msg, fields...)
	}
}
