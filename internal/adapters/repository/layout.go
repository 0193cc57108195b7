package repository

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/types"
)

const (
	fileDateLayout = "02-01-2006"
	filePrefix     = "schedule_"
	fileSuffix     = ".txt"
)

// Layout decides where each category's schedules live:
//
//	<root>/<category dir>/schedule_<category>_<dd-mm-yyyy>_to_<dd-mm-yyyy>.txt
type Layout struct {
	root string
	dirs map[model.Category]string
}

// NewLayout returns the default folder layout under root.
func NewLayout(root string, opts ...LayoutOption) Layout {
	l := Layout{
		root: root,
		dirs: map[model.Category]string{
			model.Snack:    "Snack schedules",
			model.Keys:     "Keys schedules",
			model.Counting: "Counting schedules",
		},
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// Root returns the output root.
func (l Layout) Root() string { return l.root }

// Dir returns the folder holding category c.
func (l Layout) Dir(c model.Category) string {
	return filepath.Join(l.root, l.dirs[c])
}

// Path returns the schedule file for category c and period p.
func (l Layout) Path(c model.Category, p types.Period) string {
	name := fmt.Sprintf("%s%s_%s_to_%s%s", filePrefix, c,
		p.Start.Format(fileDateLayout), p.End().Format(fileDateLayout), fileSuffix)
	return filepath.Join(l.Dir(c), name)
}

// periodStart extracts the start date from a schedule file name. The date is
// the third underscore-separated field.
func periodStart(name string) (time.Time, error) {
	parts := strings.Split(filepath.Base(name), "_")
	if len(parts) < 3 {
		return time.Time{}, fmt.Errorf("unexpected schedule file name %q", name)
	}
	return time.ParseInLocation(fileDateLayout, parts[2], time.Local)
}
