package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOut_WriteThenRename(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.conf")

	w, err := Out(target)
	require.NoError(t, err)

	_, err = w.Write([]byte("max-connections=10\n"))
	require.NoError(t, err)

	// Until close, only the temp sibling is touched.
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err), "target must not exist before close")
	_, err = os.Stat(target + ".tmp")
	assert.NoError(t, err, "temp sibling should hold the staged bytes")

	require.NoError(t, w.Close())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "max-connections=10\n", string(data))
	_, err = os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(err), "no temp sibling may remain after close")
}

func TestOut_InterruptedWriteLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.conf")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0o644))

	w, err := Out(target)
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	// Simulate a crash before close.
	require.NoError(t, w.Abort())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestOut_CloseCannotReplaceDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "styles")
	require.NoError(t, os.Mkdir(target, 0o755))

	w, err := Out(target)
	require.NoError(t, err)
	_, err = w.Write([]byte("<s/>"))
	require.NoError(t, err)

	err = w.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out:", "a failed close reports in the write register")
}

func TestMove(t *testing.T) {
	t.Run("Rename", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a.txt")
		dst := filepath.Join(dir, "b.txt")
		require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

		require.NoError(t, Move(src, dst))

		_, err := os.Stat(src)
		assert.True(t, os.IsNotExist(err))
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("SameFileIsNoop", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
		stamp := time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, os.Chtimes(src, stamp, stamp))

		require.NoError(t, Move(src, src))

		info, err := os.Stat(src)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(stamp), "no-op move must not touch the file")
		data, _ := os.ReadFile(src)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("ReplacesExistingDestination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a.txt")
		dst := filepath.Join(dir, "b.txt")
		require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
		require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

		require.NoError(t, Move(src, dst))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("MissingSource", func(t *testing.T) {
		dir := t.TempDir()
		err := Move(filepath.Join(dir, "ghost"), filepath.Join(dir, "b.txt"))
		assert.Error(t, err)
	})

	t.Run("EmptyArguments", func(t *testing.T) {
		assert.Error(t, Move("", "b.txt"))
		assert.Error(t, Move("a.txt", ""))
	})
}

func TestDelete(t *testing.T) {
	t.Run("RecursiveTree", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "workspace")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "styles", "icons"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "catalog.xml"), []byte("<c/>"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "styles", "default.sld"), []byte("<s/>"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "styles", "icons", "city.png"), []byte{1}, 0o644))

		assert.True(t, Delete(root))
		_, err := os.Stat(root)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("AbsentIsIdempotent", func(t *testing.T) {
		assert.True(t, Delete(filepath.Join(t.TempDir(), "ghost")))
	})

	t.Run("PartialFailureReportsUnclean", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission bits do not bind root")
		}
		dir := t.TempDir()
		root := filepath.Join(dir, "workspace")
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.MkdirAll(locked, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(locked, "pinned.txt"), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "loose.txt"), []byte("x"), 0o644))
		require.NoError(t, os.Chmod(locked, 0o555))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		assert.False(t, Delete(root), "undeletable child must report partial completion")

		// The deletable sibling is still removed.
		_, err := os.Stat(filepath.Join(root, "loose.txt"))
		assert.True(t, os.IsNotExist(err))
	})
}
