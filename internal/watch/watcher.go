package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
	"git.home.luguber.info/inful/featuredoc/internal/logfields"
)

// RunFunc performs one full generation run.
type RunFunc func(ctx context.Context) error

// Watcher reruns a RunFunc whenever a relevant file under its roots changes.
type Watcher struct {
	roots     []string
	ignore    []string
	run       RunFunc
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger
}

// New creates a watcher over roots. Directories are watched recursively,
// skipping the same directories the source parser skips.
func New(roots []string, debounce time.Duration, run RunFunc, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{run: run, watcher: fw, logger: logger}
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve watch root: %w", err)
		}
		w.roots = append(w.roots, abs)
	}
	w.debouncer = NewDebouncer(debounce, w.runOnce)
	return w, nil
}

// Ignore excludes dirs, typically the output directory, from watching.
func (w *Watcher) Ignore(dirs ...string) {
	for _, d := range dirs {
		if abs, err := filepath.Abs(d); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}
}

func (w *Watcher) ignored(path string) bool {
	for _, d := range w.ignore {
		if path == d || strings.HasPrefix(path, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run performs an initial run, then reruns on every debounced change until
// ctx is done. Run errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	for _, root := range w.roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	w.logger.Info("Watching for changes", slog.Any("roots", w.roots))

	go w.eventLoop(ctx)
	w.debouncer.Trigger()
	w.debouncer.Run(ctx)
	return nil
}

func (w *Watcher) runOnce(ctx context.Context) {
	start := time.Now()
	if err := w.run(ctx); err != nil {
		w.logger.Error("Documentation run failed",
			logfields.Category(string(ferrors.GetCategory(err))),
			logfields.Error(err))
		return
	}
	w.logger.Info("Documentation run complete", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDir(info.Name()) {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
					w.debouncer.Trigger()
					continue
				}
			}
			if event.Op == fsnotify.Chmod || !Relevant(event.Name) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), logfields.Reason(event.Op.String()))
			w.debouncer.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (skipDir(d.Name()) || w.ignored(path)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Relevant reports whether a change to path can alter the generated pages.
func Relevant(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, "_test.go"):
		return false
	case strings.HasSuffix(base, ".go"), base == "go.mod":
		return true
	case strings.HasSuffix(base, ".html"), strings.HasSuffix(base, ".css"):
		return true
	default:
		return false
	}
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
