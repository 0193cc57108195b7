package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/pkg/logger"
)

// FileHistory stores the history set as sorted names, one per line.
type FileHistory struct {
	path string
	opts fileOptions
}

// NewFileHistory returns a history store backed by path.
func NewFileHistory(path string, opts ...Option) *FileHistory {
	return &FileHistory{path: path, opts: applyOptions(opts)}
}

// Path returns the backing file.
func (h *FileHistory) Path() string { return h.path }

// Read loads the history. A missing file is an empty history.
func (h *FileHistory) Read(_ context.Context) (model.HistorySet, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.HistorySet{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadHistory, err)
	}
	defer func() { _ = f.Close() }()

	set := model.HistorySet{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			set[model.Person(name)] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadHistory, err)
	}
	return set, nil
}

// Write replaces the history file. The new content is written to a temporary
// file in the same directory and renamed over the old one.
func (h *FileHistory) Write(ctx context.Context, set model.HistorySet) error {
	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHistory, err)
	}

	var b strings.Builder
	for _, p := range set.Sorted() {
		b.WriteString(string(p))
		b.WriteByte('\n')
	}

	if err := writeFileAtomic(h.path, []byte(b.String())); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHistory, err)
	}

	if h.opts.logger != nil {
		h.opts.logger.Info(ctx, "history updated", logger.String("path", h.path), logger.Int("people", set.Len()))
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(filePermission); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
