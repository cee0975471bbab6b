package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
)

// ChangeFunc is called once per debounced burst of changes with the
// changed paths, sorted
type ChangeFunc func(ctx context.Context, changed []string) error

// watchedExtensions are the files that trigger a callback inside a
// watched directory
var watchedExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".toml": true,
}

// Watcher watches manifest and config files for changes and calls back
// after a quiet period
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool // watched individually
	dirs     map[string]bool // any manifest or config file inside counts
	debounce time.Duration
	onChange ChangeFunc

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
	fire    chan struct{}
}

// NewWatcher watches paths, which may be files or directories.
// Directories are watched recursively. Files are watched through their
// parent directory so editors that replace files on save are seen.
func NewWatcher(paths []string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]bool),
		fire:     make(chan struct{}, 1),
	}

	for _, p := range paths {
		if err := w.add(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", p)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return errors.Wrapf(err, "failed to watch %s", p)
	}

	if !info.IsDir() {
		w.files[abs] = true
		return w.watchDir(filepath.Dir(abs))
	}

	return filepath.WalkDir(abs, func(dir string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		w.dirs[dir] = true
		return w.watchDir(dir)
	})
}

func (w *Watcher) watchDir(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch directory %s", dir)
	}
	return nil
}

// Run processes events until ctx is cancelled. Callbacks run on the
// calling goroutine, one at a time.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debugw("Watcher detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error", logger.FieldError, err)

		case <-w.fire:
			changed := w.drain()
			if len(changed) == 0 {
				continue
			}
			if err := w.onChange(ctx, changed); err != nil {
				logger.Errorw("Change handler failed",
					logger.FieldCount, len(changed),
					logger.FieldError, err)
			}
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(event.Name)
	if isBackupFile(name) {
		return false
	}
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)] && watchedExtensions[strings.ToLower(filepath.Ext(name))]
}

// schedule debounces rapid file changes
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[filepath.Clean(path)] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]bool)
	sort.Strings(changed)
	return changed
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
