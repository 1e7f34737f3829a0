package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/daylight/internal/shared"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is the quiet period after the last file event before a
// change notification fires. Theme switches rewrite several files in quick
// succession and should surface as one notification.
const DebounceInterval = 200 * time.Millisecond

// Watcher watches the GTK theme directories and calls a callback once per
// coalesced burst of changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dirs     []string
	callback func()
	closeC   chan struct{}
	started  atomic.Bool
	logger   *log.Logger
}

// NewWatcher creates a watcher over the GTK config directory and, when the
// active theme is imported from elsewhere, the imported theme's directory.
func NewWatcher(callback func(), logger *log.Logger) *Watcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	dir := gtkDir()
	dirs := []string{dir}
	if themePath, found := resolveThemePath(dir); found {
		if themeDir := filepath.Dir(themePath); themeDir != dir {
			dirs = append(dirs, themeDir)
		}
	}

	return &Watcher{dirs: dirs, callback: callback, logger: logger}
}

// newWatcherForDirs is the test seam for watching arbitrary directories.
func newWatcherForDirs(dirs []string, callback func(), logger *log.Logger) *Watcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Watcher{dirs: dirs, callback: callback, logger: logger}
}

// Start begins watching. Starting an already-started watcher is a no-op.
func (w *Watcher) Start() error {
	if !w.started.CompareAndSwap(false, true) {
		w.logger.Debug("theme watcher already started")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.started.Store(false)
		return fmt.Errorf("failed to create theme watcher: %w", err)
	}
	w.watcher = watcher

	watching := 0
	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			w.logger.Warn("failed to watch theme directory", "dir", dir, "error", err)
			continue
		}
		watching++
	}
	if watching == 0 {
		watcher.Close()
		w.started.Store(false)
		return fmt.Errorf("no theme directories to watch")
	}

	w.closeC = make(chan struct{})
	go w.watchLoop()

	w.logger.Debug("theme watcher started", "dirs", w.dirs)
	return nil
}

// Close stops the watcher. Closing a stopped watcher is a no-op.
func (w *Watcher) Close() error {
	if !w.started.CompareAndSwap(true, false) {
		return nil
	}
	close(w.closeC)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	var (
		timer       *time.Timer
		timerAccess sync.Mutex
	)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("theme file changed", "file", event.Name)

			// theme switches write files in bursts; reset the timer on each
			// event and only notify after a quiet period
			timerAccess.Lock()
			if timer == nil {
				timer = time.AfterFunc(DebounceInterval, func() {
					w.callback()
					timerAccess.Lock()
					timer = nil
					timerAccess.Unlock()
				})
			} else {
				timer.Reset(DebounceInterval)
			}
			timerAccess.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		case <-w.closeC:
			return
		}
	}
}
