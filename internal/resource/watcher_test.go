package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every delivered delta.
type recorder struct {
	mu     sync.Mutex
	deltas [][]string
	notify chan []string
}

func newRecorder() *recorder {
	return &recorder{notify: make(chan []string, 16)}
}

func (r *recorder) Changed(n Notification) {
	delta := append([]string(nil), n.Delta()...)
	r.mu.Lock()
	r.deltas = append(r.deltas, delta)
	r.mu.Unlock()
	select {
	case r.notify <- delta:
	default:
	}
}

func (r *recorder) all() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.deltas...)
}

// panicker always fails in its callback.
type panicker struct{}

func (panicker) Changed(Notification) { panic("listener misbehaving") }

// setTimes pins the mtime of a platform location.
func setTimes(t *testing.T, file string, stamp time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(file, stamp, stamp))
}

func TestWatcher_RegistrationIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	l := newRecorder()

	w.AddListener("styles", l)
	w.AddListener("styles", l)
	w.mu.Lock()
	count := len(w.watches)
	w.mu.Unlock()
	assert.Equal(t, 1, count, "re-registering the same pair is a no-op")

	// Removing an unregistered pair must not disturb the active watch.
	w.RemoveListener("styles", newRecorder())
	w.RemoveListener("workspaces", l)
	w.mu.Lock()
	count = len(w.watches)
	running := w.stop != nil
	w.mu.Unlock()
	assert.Equal(t, 1, count)
	assert.True(t, running)

	w.RemoveListener("styles", l)
	w.mu.Lock()
	count = len(w.watches)
	running = w.stop != nil
	w.mu.Unlock()
	assert.Equal(t, 0, count)
	assert.False(t, running, "last removal cancels the recurring poll")
}

func TestWatcher_FileModification(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	l := newRecorder()

	file, err := store.Get("styles/default.sld").File()
	require.NoError(t, err)
	w.AddListener("styles/default.sld", l)

	// No modification since the baseline: listener is not invoked.
	w.tick(time.Now())
	assert.Empty(t, l.all())

	setTimes(t, file, time.Now().Add(time.Hour))
	w.tick(time.Now().Add(2 * time.Hour))
	require.Equal(t, [][]string{{"styles/default.sld"}}, l.all())

	// Baseline advanced: no repeat notification.
	w.tick(time.Now().Add(3 * time.Hour))
	assert.Len(t, l.all(), 1)
}

func TestWatcher_DeletionReportedOnce(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	l := newRecorder()

	_, err := store.Get("styles/default.sld").File()
	require.NoError(t, err)
	w.AddListener("styles/default.sld", l)

	require.True(t, store.Remove("styles/default.sld"))
	w.tick(time.Now())
	require.Equal(t, [][]string{{"styles/default.sld"}}, l.all())

	// Still absent: no duplicate deletion event.
	w.tick(time.Now())
	assert.Len(t, l.all(), 1)
}

func TestWatcher_DirectoryScenario(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	l := newRecorder()

	past := time.Now().Add(-time.Hour)
	styles, err := store.Get("styles").Dir()
	require.NoError(t, err)
	icon := filepath.Join(styles, "icon.png")
	require.NoError(t, os.WriteFile(icon, []byte{1}, 0o644))
	setTimes(t, icon, past)
	setTimes(t, styles, past)

	w.AddListener("styles", l)

	// Tick 1: baseline only.
	w.tick(time.Now())
	assert.Empty(t, l.all())

	// Tick 2: icon2.png added.
	icon2 := filepath.Join(styles, "icon2.png")
	require.NoError(t, os.WriteFile(icon2, []byte{2}, 0o644))
	setTimes(t, icon2, past)
	setTimes(t, styles, past)
	w.tick(time.Now())
	require.Equal(t, [][]string{{"styles/icon2.png"}}, l.all())

	// Tick 3: icon.png removed.
	require.NoError(t, os.Remove(icon))
	setTimes(t, styles, past)
	w.tick(time.Now())
	require.Equal(t, [][]string{{"styles/icon2.png"}, {"styles/icon.png"}}, l.all())

	// Tick 4: icon2.png touched; reported as a change to the directory.
	setTimes(t, icon2, time.Now().Add(time.Hour))
	w.tick(time.Now().Add(2 * time.Hour))
	require.Equal(t, [][]string{{"styles/icon2.png"}, {"styles/icon.png"}, {"styles"}}, l.all())
}

func TestWatcher_DirectoryPathReportedOnce(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	l := newRecorder()

	past := time.Now().Add(-time.Hour)
	styles, err := store.Get("styles").Dir()
	require.NoError(t, err)
	icon := filepath.Join(styles, "icon.png")
	require.NoError(t, os.WriteFile(icon, []byte{1}, 0o644))
	setTimes(t, icon, past)
	setTimes(t, styles, past)

	w.AddListener("styles", l)

	// Both the directory's own mtime and a child mtime advance in one tick.
	future := time.Now().Add(time.Hour)
	setTimes(t, icon, future)
	setTimes(t, styles, future)
	w.tick(time.Now().Add(2 * time.Hour))

	require.Len(t, l.all(), 1)
	count := 0
	for _, p := range l.all()[0] {
		if p == "styles" {
			count++
		}
	}
	assert.Equal(t, 1, count, "directory path appears exactly once in the delta")
}

func TestWatcher_ListenerFailureIsIsolated(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	healthy := newRecorder()

	file, err := store.Get("styles/default.sld").File()
	require.NoError(t, err)
	w.AddListener("styles/default.sld", panicker{})
	w.AddListener("styles/default.sld", healthy)

	setTimes(t, file, time.Now().Add(time.Hour))
	w.tick(time.Now().Add(2 * time.Hour))

	assert.Equal(t, uint64(1), w.Suppressed())
	require.Equal(t, [][]string{{"styles/default.sld"}}, healthy.all(),
		"a failing listener must not starve the others")

	// The next tick still runs.
	setTimes(t, file, time.Now().Add(3*time.Hour))
	w.tick(time.Now().Add(4 * time.Hour))
	assert.Len(t, healthy.all(), 2)
	assert.Equal(t, uint64(2), w.Suppressed())
}

func TestWatcher_ScheduledPollDelivers(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	w.Schedule(10 * time.Millisecond)
	l := newRecorder()

	file, err := store.Get("workspaces/default.xml").File()
	require.NoError(t, err)
	w.AddListener("workspaces/default.xml", l)
	defer w.RemoveListener("workspaces/default.xml", l)

	setTimes(t, file, time.Now().Add(time.Hour))

	select {
	case delta := <-l.notify:
		assert.Equal(t, []string{"workspaces/default.xml"}, delta)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification within bounded delay")
	}
}

func TestWatcher_ScheduleWhileRunning(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	l := newRecorder()

	_, err := store.Get("styles/default.sld").File()
	require.NoError(t, err)
	w.AddListener("styles/default.sld", l)
	defer w.RemoveListener("styles/default.sld", l)

	// Reconfiguring the interval keeps exactly one recurring task running.
	w.Schedule(20 * time.Millisecond)
	w.Schedule(10 * time.Millisecond)
	w.mu.Lock()
	running := w.stop != nil
	w.mu.Unlock()
	assert.True(t, running)
}

func TestWatcher_ReconfigureDuringPoll(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()
	l := newRecorder()

	styles, err := store.Get("styles").Dir()
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		name := filepath.Join(styles, fmt.Sprintf("style-%03d.sld", i))
		require.NoError(t, os.WriteFile(name, []byte{1}, 0o644))
	}

	w.AddListener("styles", l)
	defer w.RemoveListener("styles", l)

	// Rapid reconfiguration can briefly leave the outgoing worker alive
	// next to its replacement; the watch baselines must stay
	// single-writer throughout (run with -race).
	w.Schedule(time.Millisecond)
	for i := 0; i < 25; i++ {
		w.Schedule(time.Millisecond)
		time.Sleep(time.Millisecond)
	}
}

// fanout delivers deltas to several sinks; its dynamic type is not
// comparable.
type fanout struct {
	sinks []chan []string
}

func (f fanout) Changed(n Notification) {
	for _, sink := range f.sinks {
		select {
		case sink <- n.Delta():
		default:
		}
	}
}

func TestWatcher_NonComparableListener(t *testing.T) {
	store := newTestStore(t)
	w := store.Watcher()

	f := fanout{sinks: []chan []string{make(chan []string, 1)}}
	w.AddListener("styles", f)
	w.AddListener("styles", f)
	w.mu.Lock()
	count := len(w.watches)
	w.mu.Unlock()
	assert.Equal(t, 2, count, "non-comparable listeners register as distinct values")

	w.RemoveListener("styles", f)
	w.mu.Lock()
	count = len(w.watches)
	w.mu.Unlock()
	assert.Equal(t, 2, count, "non-comparable listeners are never identical")
}

var _ Listener = (*recorder)(nil)
