package resource

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultPollDelay is the recurring poll interval used until Schedule is
// called.
const DefaultPollDelay = 30 * time.Second

// FileWatcher is an active object watching the file system for changes.
//
// It polls: each registered (path, listener) pair keeps a baseline of the
// last successful check, and a single background worker periodically diffs
// every watch against the current state, delivering a Notification per
// changed watch. The worker runs only while at least one watch is
// registered.
type FileWatcher struct {
	store  *FileStore
	logger *zap.Logger

	// mu guards the watch set and the worker start/stop transitions. The
	// watches slice is copied on mutation so the poll tick always iterates
	// a consistent snapshot without holding mu.
	mu      sync.Mutex
	watches []*watch
	delay   time.Duration
	stop    chan struct{} // nil while idle

	// pollMu serializes tick. A cancelled worker only observes its closed
	// stop channel once any in-flight tick returns, so a reconfigured poll
	// can briefly leave the outgoing worker alive next to its replacement;
	// holding pollMu across the whole tick keeps the watch baselines
	// single-writer regardless.
	pollMu sync.Mutex

	suppressed atomic.Uint64
}

func newFileWatcher(store *FileStore, logger *zap.Logger) *FileWatcher {
	return &FileWatcher{
		store:  store,
		logger: logger,
		delay:  DefaultPollDelay,
	}
}

// AddListener registers listener for changes to path. Registering an
// already-present (path, listener) pair is a no-op. The first registration
// starts the recurring poll.
func (w *FileWatcher) AddListener(path string, listener Listener) {
	path = Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, wt := range w.watches {
		if wt.path == path && sameListener(wt.listener, listener) {
			return // already listening
		}
	}
	next := make([]*watch, len(w.watches), len(w.watches)+1)
	copy(next, w.watches)
	w.watches = append(next, newWatch(w.store.base, path, listener))
	if w.stop == nil {
		w.stop = make(chan struct{})
		go w.run(w.stop, w.delay)
		w.logger.Debug("poll started", zap.Duration("delay", w.delay))
	}
}

// RemoveListener deregisters the (path, listener) pair. Removing the last
// watch cancels the recurring poll; a tick already in progress is not
// interrupted.
func (w *FileWatcher) RemoveListener(path string, listener Listener) {
	path = Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	next := make([]*watch, 0, len(w.watches))
	for _, wt := range w.watches {
		if wt.path == path && sameListener(wt.listener, listener) {
			continue
		}
		next = append(next, wt)
	}
	if len(next) == len(w.watches) {
		return
	}
	w.watches = next
	if len(w.watches) == 0 && w.stop != nil {
		close(w.stop) // stop watching, nobody is looking
		w.stop = nil
		w.logger.Debug("poll stopped")
	}
}

// Schedule reconfigures the recurring poll delay. A running poll is
// cancelled and rescheduled at the new delay.
func (w *FileWatcher) Schedule(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delay = delay
	if w.stop != nil {
		close(w.stop)
		w.stop = make(chan struct{})
		go w.run(w.stop, delay)
	}
}

// sameListener reports whether a and b are the identical registered value.
// Listeners of a non-comparable dynamic type are never identical, so such
// values register and deregister as distinct watches without panicking the
// identity scan.
func sameListener(a, b Listener) bool {
	if a == nil || b == nil {
		return a == b
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

// Suppressed reports how many listener failures have been recovered and
// discarded since the watcher was created.
func (w *FileWatcher) Suppressed() uint64 {
	return w.suppressed.Load()
}

// run executes the recurring poll with fixed-delay semantics until stop is
// closed. All diffing and dispatch happens sequentially on this goroutine.
func (w *FileWatcher) run(stop chan struct{}, delay time.Duration) {
	for {
		select {
		case <-stop:
			return
		case <-time.After(delay):
		}
		w.tick(time.Now())
	}
}

// tick diffs every watch against current state and dispatches notifications
// for those that changed. Ticks are mutually exclusive across workers.
func (w *FileWatcher) tick(now time.Time) {
	w.pollMu.Lock()
	defer w.pollMu.Unlock()

	w.mu.Lock()
	watches := w.watches // snapshot; mutations replace the slice
	w.mu.Unlock()

	for _, wt := range watches {
		changed := wt.changed(now)
		if len(changed) == 0 {
			continue
		}
		n := NotificationFromFiles(w.store, w.store.base, changed)
		w.dispatch(wt.listener, n)
	}
}

// dispatch delivers n to listener, recovering any panic so one misbehaving
// listener cannot disturb the rest of the tick or later polls.
func (w *FileWatcher) dispatch(listener Listener, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			w.suppressed.Add(1)
			w.logger.Warn("resource listener failed",
				zap.Strings("delta", n.Delta()),
				zap.Any("reason", r))
		}
	}()
	listener.Changed(n)
}

// watch is the baseline state for one (path, listener) registration.
// Identity is the (path, listener) pair; the baseline fields are mutated
// only under the watcher's poll lock.
type watch struct {
	path     string
	listener Listener
	file     string // platform location

	checked  time.Time // zero means known absent
	contents []string  // child names at last check, directories only
}

func newWatch(base, path string, listener Listener) *watch {
	wt := &watch{
		path:     path,
		listener: listener,
		file:     Resolve(base, path),
	}
	if info, err := os.Stat(wt.file); err == nil {
		wt.checked = time.Now()
		if info.IsDir() {
			wt.contents = childNames(wt.file)
		}
	}
	return wt
}

// changed diffs the watch against current state and returns the platform
// locations changed since the last check. The baseline advances to now
// whenever the watched item exists, regardless of outcome.
func (wt *watch) changed(now time.Time) []string {
	info, err := os.Stat(wt.file)
	if err != nil {
		if !wt.checked.IsZero() {
			// Deleted since the last check: report once.
			wt.checked = time.Time{}
			wt.contents = nil
			return []string{wt.file}
		}
		return nil // known absent
	}

	mark := wt.checked
	wt.checked = now

	if !info.IsDir() {
		if info.ModTime().After(mark) {
			return []string{wt.file}
		}
		return nil
	}

	previous := wt.contents
	current := childNames(wt.file)
	wt.contents = current

	// Added and removed children, by name.
	var delta []string
	for _, name := range diff(current, previous) {
		delta = append(delta, filepath.Join(wt.file, name))
	}
	for _, name := range diff(previous, current) {
		delta = append(delta, filepath.Join(wt.file, name))
	}

	// A modified directory, or a modified file inside it, reports as a
	// change to the directory itself. The directory path is reported at
	// most once per tick.
	dirChanged := info.ModTime().After(mark)
	if !dirChanged {
		for _, name := range current {
			ci, err := os.Stat(filepath.Join(wt.file, name))
			if err == nil && ci.ModTime().After(mark) {
				dirChanged = true
				break
			}
		}
	}
	if dirChanged {
		delta = append(delta, wt.file)
	}
	return delta
}

// childNames lists the entry names of a directory in sorted order. A
// directory that cannot be listed reads as empty.
func childNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

// diff returns the elements of a not present in b. Both inputs are sorted.
func diff(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) {
		switch {
		case j >= len(b) || a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] == b[j]:
			i++
			j++
		default:
			j++
		}
	}
	return out
}
