package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/okian/rota/internal/domain/dedupe"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/pkg/logger"
	"github.com/okian/rota/pkg/metrics"
)

// labelSeparator splits "Name - label" roster lines.
const labelSeparator = " - "

var utf8BOM = []byte{0xEF, 0xBB, 0xBF} //nolint:gochecknoglobals // constant byte sequence

// FileRoster reads a roster from a UTF-8 text file with one person per line.
// Everything before the first " - " is the identifier; the whole line is the
// display label.
type FileRoster struct {
	path       string
	dedupeOpts []dedupe.Option
	logger     logger.Logger
}

// NewFileRoster returns a roster source for path.
func NewFileRoster(path string, opts ...RosterOption) *FileRoster {
	r := &FileRoster{path: path}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads and parses the roster file.
func (r *FileRoster) Load(ctx context.Context) (model.Roster, []model.Warning, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Roster{}, nil, fmt.Errorf("%w: %s", ErrRosterNotFound, r.path)
		}
		return model.Roster{}, nil, fmt.Errorf("%w: %w", ErrReadRoster, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return model.Roster{}, nil, fmt.Errorf("%w: %s", ErrRosterEncoding, r.path)
	}
	return ParseRoster(ctx, bytes.NewReader(data), r.logger, r.dedupeOpts...)
}

// ParseRoster parses roster lines from rd. Lines are trimmed before the name
// is cut at the first " - ". Blank lines are skipped; repeated names are
// dropped with a DataWarning.
func ParseRoster(ctx context.Context, rd io.Reader, log logger.Logger, opts ...dedupe.Option) (model.Roster, []model.Warning, error) {
	var (
		people   []model.Person
		labels   = make(map[model.Person]string)
		warnings []model.Warning
		seen     = dedupe.NewInMemoryDeduper(opts...)
	)

	sc := bufio.NewScanner(rd)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		name, _, _ := strings.Cut(line, labelSeparator)
		name = strings.TrimSpace(name)

		if seen.SeenAndRecord(ctx, name) {
			warnings = append(warnings, model.Warning{
				Kind:    model.DataWarning,
				Message: fmt.Sprintf("duplicate name %q on line %d ignored", name, lineNo),
			})
			if log != nil {
				log.Warn(ctx, "duplicate roster name ignored", logger.String("name", name), logger.Int("line", lineNo))
			}
			continue
		}

		p := model.Person(name)
		people = append(people, p)
		labels[p] = line
	}
	if err := sc.Err(); err != nil {
		return model.Roster{}, nil, fmt.Errorf("%w: %w", ErrReadRoster, err)
	}

	if dups := seen.Duplicates(); len(dups) > 0 {
		metrics.RecordDuplicatesDropped(len(dups))
		if log != nil {
			log.Info(ctx, "roster duplicates dropped", logger.Int("count", len(dups)), logger.Any("names", dups))
		}
	}
	return model.NewRoster(people, labels), warnings, nil
}
