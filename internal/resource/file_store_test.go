package resource

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestFileStore_TypeProbesAtCallTime(t *testing.T) {
	store := newTestStore(t)
	res := store.Get("styles/default.sld")

	assert.Equal(t, Undefined, res.Type())

	require.NoError(t, os.MkdirAll(filepath.Join(store.Base(), "styles"), 0o755))
	require.NoError(t, os.WriteFile(Resolve(store.Base(), "styles/default.sld"), []byte("<s/>"), 0o644))
	assert.Equal(t, File, res.Type())

	require.True(t, store.Remove("styles/default.sld"))
	assert.Equal(t, Undefined, res.Type(), "type is probed, never cached")
}

func TestFileStore_OutIsCrashSafe(t *testing.T) {
	store := newTestStore(t)
	res := store.Get("workspaces/default.xml")

	w, err := res.Out()
	require.NoError(t, err)
	_, err = w.Write([]byte("<workspace/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	in, err := res.In()
	require.NoError(t, err)
	data, err := io.ReadAll(in)
	require.NoError(t, err)
	require.NoError(t, in.Close())
	assert.Equal(t, "<workspace/>", string(data))

	_, err = os.Stat(Resolve(store.Base(), "workspaces/default.xml") + ".tmp")
	assert.True(t, os.IsNotExist(err), "no temp sibling may remain")
}

func TestFileStore_FileAndDir(t *testing.T) {
	store := newTestStore(t)

	dir, err := store.Get("styles").Dir()
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file, err := store.Get("styles/default.sld").File()
	require.NoError(t, err)
	_, err = os.Stat(file)
	assert.NoError(t, err, "File() creates an empty file on demand")

	// Type mismatch fails with an illegal-state error.
	_, err = store.Get("styles").File()
	assert.Error(t, err)
	_, err = store.Get("styles/default.sld").Dir()
	assert.Error(t, err)
}

func TestFileStore_FileAdvancesModificationTime(t *testing.T) {
	store := newTestStore(t)
	res := store.Get("styles/default.sld")

	file, err := res.File()
	require.NoError(t, err)
	past := time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(file, past, past))

	// File on an existing entry behaves like touch.
	_, err = res.File()
	require.NoError(t, err)
	assert.True(t, res.LastModified().After(past))
}

func TestFileStore_ListAndNavigation(t *testing.T) {
	store := newTestStore(t)
	for _, p := range []string{"styles/b.sld", "styles/a.sld"} {
		_, err := store.Get(p).File()
		require.NoError(t, err)
	}
	_, err := store.Get("styles/icons").Dir()
	require.NoError(t, err)

	var names []string
	for _, child := range store.Get("styles").List() {
		names = append(names, child.Name())
	}
	assert.Equal(t, []string{"a.sld", "b.sld", "icons"}, names)

	assert.Nil(t, store.Get("styles/a.sld").List(), "non-directories list as empty")
	assert.Nil(t, store.Get("ghost").List())

	parent, err := store.Get("styles/a.sld").Parent()
	require.NoError(t, err)
	assert.Equal(t, "styles", parent.Path())

	child, err := store.Get("styles").Get("icons")
	require.NoError(t, err)
	assert.Equal(t, "styles/icons", child.Path())
	assert.Equal(t, Directory, child.Type())
}

func TestFileStore_MoveAndRemove(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get("styles/old.sld").File()
	require.NoError(t, err)

	require.NoError(t, store.Move("styles/old.sld", "styles/new.sld"))
	assert.Equal(t, Undefined, store.Get("styles/old.sld").Type())
	assert.Equal(t, File, store.Get("styles/new.sld").Type())

	assert.True(t, store.Remove("styles"))
	assert.Equal(t, Undefined, store.Get("styles").Type())
	assert.True(t, store.Remove("styles"), "removing an absent path succeeds trivially")
}

func TestFileStore_Lock(t *testing.T) {
	store := newTestStore(t)
	res := store.Get("workspaces/default.xml")

	lock := res.Lock()
	acquired := make(chan struct{})
	go func() {
		l := store.Get("workspaces/default.xml").Lock()
		close(acquired)
		l.Release()
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock must block until the first is released")
	case <-time.After(50 * time.Millisecond):
	}

	lock.Release()
	<-acquired
	lock.Release() // double release is a no-op
}
