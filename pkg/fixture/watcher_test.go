package fixture

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// waitForEvent returns the first event for path or fails after a timeout.
func waitForEvent(t *testing.T, events <-chan Event, path string) Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Path == path {
				return e
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
			return Event{}
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	l, root, _ := newTestLoader(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "users"), 0755))

	w, err := l.Watch()
	require.NoError(t, err)

	events := make(chan Event, 64)
	w.OnChange(func(e Event) {
		select {
		case events <- e:
		default:
		}
	})
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	path := writeFixture(t, root, "users/list.json", "{}")
	e := waitForEvent(t, events, "users/list.json")
	assert.Contains(t, []Op{OpCreate, OpWrite}, e.Op)

	require.NoError(t, os.Remove(path))
	for {
		e = waitForEvent(t, events, "users/list.json")
		if e.Op == OpRemove {
			break
		}
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "absent"), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Start(), ErrDirectory)
	assert.NoError(t, w.Stop())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w, err := NewWatcher(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_StartTwice(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w, err := NewWatcher(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, w.Start())
	assert.ErrorIs(t, w.Start(), ErrWatcherStarted)
	assert.NoError(t, w.Stop())
}

func TestWatcher_StartAfterStop(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	assert.ErrorIs(t, w.Start(), ErrWatcherStopped)
	assert.NoError(t, w.Stop())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "rename", OpRename.String())
	assert.Equal(t, "unknown", Op(42).String())
}
