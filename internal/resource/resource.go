// Package resource provides a path-addressed resource abstraction over a
// backing store, crash-safe file mutation helpers, and a polling
// change-notification subsystem.
package resource

import (
	"io"
	"time"

	"go.uber.org/zap"
)

// Type classifies what a path currently points at in the backing store.
type Type int

const (
	// Undefined marks a path with no backing item.
	Undefined Type = iota
	// File marks a path backed by a plain file.
	File
	// Directory marks a path backed by a directory.
	Directory
)

func (t Type) String() string {
	switch t {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "undefined"
	}
}

// Resource is a handle to a path-addressed item. A Resource carries no
// identity beyond its path: the backing item may appear, change type or
// vanish between calls, and Type reports whatever the store holds right now.
type Resource interface {
	// Path returns the store-relative path of this resource.
	Path() string

	// Name returns the final path segment.
	Name() string

	// Type probes the backing store and reports File, Directory or
	// Undefined.
	Type() Type

	// In opens the backing item for reading.
	In() (io.ReadCloser, error)

	// Out opens the backing item for writing, creating it (and any missing
	// parent directories) as required. Store implementations write through
	// a temporary sibling so that a reader never observes a partial write.
	Out() (io.WriteCloser, error)

	// File returns the platform location of the backing file, creating an
	// empty file as needed. An already-present file has its modification
	// time advanced. Fails when the path holds a directory.
	File() (string, error)

	// Dir returns the platform location of the backing directory, creating
	// it as needed. Fails when the path holds a plain file.
	Dir() (string, error)

	// Parent returns the enclosing directory resource.
	Parent() (Resource, error)

	// Get returns the resource addressed by path relative to this one.
	Get(path string) (Resource, error)

	// List returns the children of a directory resource, sorted by name.
	// Non-directories (and vanished paths) list as empty.
	List() []Resource

	// LastModified returns the modification time of the backing item, or
	// the zero time when it does not exist.
	LastModified() time.Time

	// Lock takes an advisory hold on the resource, released via the
	// returned token.
	Lock() Lock
}

// Lock is a scoped advisory hold on a resource.
type Lock interface {
	// Release gives up the hold. Calling Release more than once is a no-op.
	Release()
}

// Store hands out Resource handles for store-relative paths.
type Store interface {
	// Get returns a handle for path. The handle is always returned; whether
	// anything backs it is reported by Resource.Type.
	Get(path string) Resource

	// Remove deletes the item at path, recursively for directories.
	// Removal is best effort: it reports whether everything was removed.
	Remove(path string) bool

	// Move renames the item at src to dst.
	Move(src, dst string) error
}

// Listener is notified of changes to a watched path.
//
// Changed is invoked from the poll worker; a panic raised by the listener
// is recovered at the dispatch boundary and never disturbs other listeners
// or later polls.
//
// Registration identity is the listener value itself: pass the same value
// to deregister. Use a pointer (or another comparable type) as the
// listener; values of non-comparable dynamic types are treated as distinct
// on every registration and cannot be deregistered individually.
type Listener interface {
	Changed(n Notification)
}

// logger backs the package-level warnings emitted by best-effort operations
// such as Delete. It defaults to a nop logger.
var logger = zap.NewNop()

// SetLogger installs the logger used for package-level warnings.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}
