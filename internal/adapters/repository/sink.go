package repository

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/types"
	"github.com/okian/rota/pkg/logger"
)

const ruleWidth = 40

// FileSink renders each category of a week into its own text file.
type FileSink struct {
	layout Layout
	opts   fileOptions
}

// NewFileSink returns a sink writing under layout.
func NewFileSink(layout Layout, opts ...Option) *FileSink {
	return &FileSink{layout: layout, opts: applyOptions(opts)}
}

// Write renders and stores the three category files for period.
func (s *FileSink) Write(ctx context.Context, period types.Period, week model.WeekSchedule, roster model.Roster) ([]string, error) {
	if !week.Complete() {
		return nil, ErrIncomplete
	}

	paths := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		if err := os.MkdirAll(s.layout.Dir(c), directoryPermission); err != nil {
			return paths, fmt.Errorf("%w: %w", ErrWriteSchedule, err)
		}

		path := s.layout.Path(c, period)
		content := Render(c, period, week, roster)
		if err := writeFileAtomic(path, []byte(content)); err != nil {
			return paths, fmt.Errorf("%w: %s: %w", ErrWriteSchedule, c, err)
		}
		paths = append(paths, path)

		if s.opts.logger != nil {
			s.opts.logger.Info(ctx, "schedule saved", logger.String("category", c.String()), logger.String("path", path))
		}
	}
	return paths, nil
}

// Render formats one category of week as text. Names are shown with their
// roster display labels.
func Render(c model.Category, period types.Period, week model.WeekSchedule, roster model.Roster) string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%s SCHEDULE - WEEK: %s TO %s\n",
		strings.ToUpper(c.String()), period.Start.Format("02/01"), period.End().Format("02/01"))
	b.WriteString(rule + "\n\n")

	for _, day := range model.Weekdays {
		fmt.Fprintf(&b, "%s %s\n", day, period.Dates[day].Format("02/01"))

		slot := week[day].Slot(c)
		labels := make([]string, len(slot))
		for i, p := range slot {
			labels[i] = roster.Label(p)
		}
		b.WriteString(layoutSlot(c, labels))
		b.WriteString("\n")
	}
	return b.String()
}

// layoutSlot arranges a day's labels by role: Snack has one person on the
// queue and two in support, Keys has two on the first floor and one on the
// second.
func layoutSlot(c model.Category, labels []string) string {
	switch {
	case c == model.Snack && len(labels) == model.SnackHeadcount:
		return fmt.Sprintf("queue: %s\nsupport: %s | %s\n", labels[0], labels[1], labels[2])
	case c == model.Keys && len(labels) == model.KeysHeadcount:
		return fmt.Sprintf("1st floor: %s | %s\n2nd floor: %s\n", labels[0], labels[1], labels[2])
	default:
		return strings.Join(labels, " | ") + "\n"
	}
}
