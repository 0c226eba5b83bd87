package resource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// FileStore is the filesystem-backed Store. Store paths resolve to platform
// locations under a fixed base directory.
type FileStore struct {
	base    string
	logger  *zap.Logger
	locks   *LockRegistry
	watcher *FileWatcher
}

// NewFileStore opens a store rooted at base, creating the directory if it
// does not yet exist.
func NewFileStore(base string, logger *zap.Logger) (*FileStore, error) {
	if base == "" {
		return nil, fmt.Errorf("store: base directory required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	info, err := os.Stat(base)
	switch {
	case err != nil:
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, fmt.Errorf("store: cannot create base directory '%s': %w", base, err)
		}
	case !info.IsDir():
		return nil, fmt.Errorf("store: '%s': Not a directory", base)
	}
	s := &FileStore{
		base:   filepath.Clean(base),
		logger: logger,
		locks:  NewLockRegistry(),
	}
	s.watcher = newFileWatcher(s, logger)
	return s, nil
}

// Base returns the platform location of the store root.
func (s *FileStore) Base() string {
	return s.base
}

// Watcher returns the change-notification dispatcher for this store.
func (s *FileStore) Watcher() *FileWatcher {
	return s.watcher
}

// Get returns a handle for the given store path.
func (s *FileStore) Get(path string) Resource {
	return &fileResource{store: s, path: Clean(path)}
}

// Remove deletes the item at path, recursively for directories, reporting
// whether everything was removed.
func (s *FileStore) Remove(path string) bool {
	return Delete(Resolve(s.base, path))
}

// Move renames the item at src to dst.
func (s *FileStore) Move(src, dst string) error {
	return Move(Resolve(s.base, src), Resolve(s.base, dst))
}

// fileResource is a Resource over a FileStore path.
type fileResource struct {
	store *FileStore
	path  string
}

// file returns the platform location backing this resource.
func (r *fileResource) file() string {
	return Resolve(r.store.base, r.path)
}

func (r *fileResource) Path() string {
	return r.path
}

func (r *fileResource) Name() string {
	return Base(r.path)
}

func (r *fileResource) Type() Type {
	info, err := os.Stat(r.file())
	if err != nil {
		return Undefined
	}
	if info.IsDir() {
		return Directory
	}
	return File
}

func (r *fileResource) In() (io.ReadCloser, error) {
	f, err := os.Open(r.file())
	if err != nil {
		return nil, fmt.Errorf("read: %s: No such file or directory", r.path)
	}
	return f, nil
}

func (r *fileResource) Out() (io.WriteCloser, error) {
	file := r.file()
	if info, err := os.Stat(file); err == nil && info.IsDir() {
		return nil, fmt.Errorf("write: %s: Is a directory", r.path)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("write: %s: %w", r.path, err)
	}
	return Out(file)
}

func (r *fileResource) File() (string, error) {
	file := r.file()
	info, err := os.Stat(file)
	if err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("%s: Is a directory", r.path)
		}
		now := time.Now()
		if err := os.Chtimes(file, now, now); err != nil {
			return "", fmt.Errorf("touch: %s: %w", r.path, err)
		}
		return file, nil
	}
	// Not present yet: create an empty file.
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", fmt.Errorf("touch: %s: %w", r.path, err)
	}
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return "", fmt.Errorf("touch: %s: %w", r.path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("touch: %s: %w", r.path, err)
	}
	return file, nil
}

func (r *fileResource) Dir() (string, error) {
	file := r.file()
	info, err := os.Stat(file)
	if err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("%s: Not a directory", r.path)
		}
		return file, nil
	}
	if err := os.MkdirAll(file, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %s: %w", r.path, err)
	}
	return file, nil
}

func (r *fileResource) Parent() (Resource, error) {
	return r.store.Get(Parent(r.path)), nil
}

func (r *fileResource) Get(path string) (Resource, error) {
	return r.store.Get(Join(r.path, path)), nil
}

func (r *fileResource) List() []Resource {
	entries, err := os.ReadDir(r.file())
	if err != nil {
		return nil // not a directory, or gone
	}
	children := make([]Resource, len(entries)) // ReadDir sorts by name
	for i, e := range entries {
		children[i] = r.store.Get(Join(r.path, e.Name()))
	}
	return children
}

func (r *fileResource) LastModified() time.Time {
	info, err := os.Stat(r.file())
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (r *fileResource) Lock() Lock {
	return r.store.locks.Lock(r.path)
}

func (r *fileResource) String() string {
	return r.path
}
