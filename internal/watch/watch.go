// Package watch re-runs a callback when watched stylesheets or token files
// change on disk.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"bennypowers.dev/tokenlint/internal/collections"
	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/internal/source"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the bursts of events editors emit on save
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher
type Options struct {
	Debounce time.Duration
	// Filter selects the files under watched directories that trigger a
	// change. Files passed to Start directly always do.
	Filter func(path string) bool
	// SkipDir leaves a directory below a watched root, and everything under
	// it, unwatched. Hidden directories are skipped when it is nil.
	SkipDir func(path string) bool
}

// Watcher calls onChange once per burst of writes to a watched file
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(path string)
	options  Options

	files collections.Set[string]
	roots []string

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// New creates a watcher that reports changed paths to onChange
func New(onChange func(path string), options Options) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if options.SkipDir == nil {
		options.SkipDir = func(path string) bool {
			return source.HiddenDir(filepath.Base(path))
		}
	}
	return &Watcher{
		watcher:        watcher,
		onChange:       onChange,
		options:        options,
		files:          collections.NewSet[string](),
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start watches each path. Files are watched through their directory so
// that editors which save by rename are still seen; directories are
// watched recursively.
func (w *Watcher) Start(paths []string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	dirs := collections.NewSet[string]()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		if !info.IsDir() {
			w.files.Add(abs)
			dirs.Add(filepath.Dir(abs))
			continue
		}
		w.roots = append(w.roots, abs)
		_ = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if path != abs && w.options.SkipDir(path) {
				return filepath.SkipDir
			}
			dirs.Add(path)
			return nil
		})
	}

	for _, dir := range collections.Sorted(dirs) {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	log.Info("Watching %d files in %d directories", len(w.files), len(dirs))
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	return w.watcher.Close()
}

// Pending returns the number of changes waiting out their debounce
func (w *Watcher) Pending() int {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	return len(w.debounceTimers)
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}
	path := filepath.Clean(event.Name)
	if !w.relevant(path) {
		return
	}
	log.Debug("File event %s on %s", event.Op, path)
	w.debounce(path)
}

func (w *Watcher) relevant(path string) bool {
	if w.files.Has(path) {
		return true
	}
	if w.options.Filter == nil {
		return false
	}
	for _, root := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return w.options.Filter(path)
		}
	}
	return false
}

func (w *Watcher) debounce(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(w.options.Debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			w.onChange(path)
		}
	})
}
