package git

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay coalesces bursts of filesystem events into one callback.
const DebounceDelay = 200 * time.Millisecond

// Watcher reports repository changes. The callback runs on the watcher's
// goroutine and must not touch UI state directly.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	onError  func(error)
	delay    time.Duration

	stopCh chan struct{}
	once   sync.Once
}

// NewWatcher watches the repository root and its .git directory.
func NewWatcher(r *Repo, onChange func(), onError func(error)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(r.Root); err != nil {
		w.Close()
		return nil, err
	}
	// .git can be a file in linked worktrees; the root watch still covers edits.
	_ = w.Add(filepath.Join(r.Root, ".git"))

	return &Watcher{
		watcher:  w,
		onChange: onChange,
		onError:  onError,
		delay:    DebounceDelay,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins delivering events.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

// watchLoop owns the debounce timer; fire is nil while nothing is pending.
func (w *Watcher) watchLoop() {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ignoreEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// ignoreEvent filters git's lock files and pure chmod noise.
func ignoreEvent(event fsnotify.Event) bool {
	if strings.HasSuffix(event.Name, ".lock") {
		return true
	}
	return event.Op == fsnotify.Chmod
}
