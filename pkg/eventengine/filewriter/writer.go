// Package filewriter saves generated code to a filesystem.
package filewriter

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

const (
	defaultConcurrency = 4
	dirPerm            = 0o755
	filePerm           = 0o644
)

var ErrDuplicatePath = errors.New("duplicate path")

// Writer is an eventengine.FileWriter. It is safe for concurrent use.
type Writer struct {
	fs          afero.Fs
	logger      *zap.Logger
	written     []string
	concurrency int
	mu          sync.Mutex
	dryRun      bool
}

var _ eventengine.FileWriter = (*Writer)(nil)

type Option func(*Writer)

// WithFs writes to fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(w *Writer) {
		w.fs = fs
	}
}

// WithConcurrency bounds the number of files WriteAll writes at once.
func WithConcurrency(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// WithDryRun records the files without writing them.
func WithDryRun(enabled bool) Option {
	return func(w *Writer) {
		w.dryRun = enabled
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func New(options ...Option) *Writer {
	w := &Writer{
		fs:          afero.NewOsFs(),
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
	}
	for _, option := range options {
		option(w)
	}

	return w
}

// Write creates the directories of path and writes code to it.
func (w *Writer) Write(path, code string) error {
	if path == "" {
		return errors.New("empty path")
	}

	if !w.dryRun {
		err := w.fs.MkdirAll(filepath.Dir(path), dirPerm)
		if err != nil {
			return errors.Wrapf(err, "unable to create directory of %s", path)
		}
		err = afero.WriteFile(w.fs, path, []byte(code), os.FileMode(filePerm))
		if err != nil {
			return errors.Wrapf(err, "unable to write %s", path)
		}
	}

	w.mu.Lock()
	w.written = append(w.written, path)
	w.mu.Unlock()

	w.logger.Debug("file written", zap.String("path", path), zap.Int("bytes", len(code)), zap.Bool("dry_run", w.dryRun))

	return nil
}

// WriteAll writes every unit to its path. Paths must be distinct.
func (w *Writer) WriteAll(units []workflow.Unit) error {
	seen := make(map[string]struct{}, len(units))
	for _, unit := range units {
		if _, ok := seen[unit.Path]; ok {
			return errors.Wrap(ErrDuplicatePath, unit.Path)
		}
		seen[unit.Path] = struct{}{}
	}

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, unit := range units {
		g.Go(func() error {
			return w.Write(unit.Path, unit.Code)
		})
	}

	return g.Wait()
}

// Written returns the sorted paths written so far.
func (w *Writer) Written() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	written := slices.Clone(w.written)
	slices.Sort(written)

	return written
}
